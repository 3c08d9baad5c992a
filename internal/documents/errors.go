package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist or is not visible
	// to the caller.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates the upload failed validation (empty file,
	// oversized payload, disallowed extension or content type).
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtraction indicates the text extraction step failed. Fatal for
	// the upload; no document row is persisted.
	ErrExtraction = errors.New("text extraction failed")
)
