package summaries

import "errors"

var (
	// ErrNotFound indicates the summary does not exist or is not visible
	// to the caller.
	ErrNotFound = errors.New("summary not found")
	// ErrNoContent indicates summarization was requested on a document
	// with no extracted text. Precondition failure: the document's status
	// is left untouched.
	ErrNoContent = errors.New("document has no content to summarize")
	// ErrInvalidText rejects an empty replacement text on update.
	ErrInvalidText = errors.New("summary text required")
)
