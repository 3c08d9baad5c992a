package summaries

import "context"

// Repo defines persistence operations for summaries.
type Repo interface {
	Create(ctx context.Context, summary Summary) error
	GetByID(ctx context.Context, summaryID string) (Summary, error)
	ListByDocument(ctx context.Context, documentID string) ([]Summary, error)
	UpdateText(ctx context.Context, summaryID, summaryText string) error
	Delete(ctx context.Context, summaryID string) error
	DeleteByDocument(ctx context.Context, documentID string) error
}
