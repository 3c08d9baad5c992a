package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, ownerID, documentID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error)
	UpdateStatus(ctx context.Context, documentID, status string, processedAt *time.Time) error
	Delete(ctx context.Context, ownerID, documentID string) error
}
