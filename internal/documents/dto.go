package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID       string     `json:"documentId"`
	OriginalFilename string     `json:"originalFilename"`
	FileType         string     `json:"fileType"`
	FileSize         int64      `json:"fileSize"`
	Status           string     `json:"status"`
	UploadedAt       time.Time  `json:"uploadedAt"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       doc.ID,
		OriginalFilename: doc.OriginalFilename,
		FileType:         doc.FileType,
		FileSize:         doc.FileSize,
		Status:           doc.Status,
		UploadedAt:       doc.UploadedAt,
		ProcessedAt:      doc.ProcessedAt,
	}
}
