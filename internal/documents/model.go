package documents

import "time"

// Processing status lifecycle for a document. Transitions are driven by the
// summaries pipeline: uploaded -> processing -> completed | failed. A fresh
// attempt may re-enter processing from failed.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// File type classification derived from the validated extension.
const (
	FileTypePDF     = "pdf"
	FileTypeTXT     = "txt"
	FileTypeDOCX    = "docx"
	FileTypeUnknown = "unknown"
)

// Document represents an uploaded document owned by a user.
type Document struct {
	ID               string
	OwnerID          string
	OriginalFilename string
	FileType         string
	FileSize         int64
	ContentText      string
	StoragePath      string
	Status           string
	UploadedAt       time.Time
	ProcessedAt      *time.Time
}
