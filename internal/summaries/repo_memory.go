package summaries

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Summary // summaryID -> summary
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Summary),
	}
}

// Create stores a summary.
func (r *MemoryRepo) Create(ctx context.Context, summary Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[summary.ID] = summary
	return nil
}

// GetByID returns a summary by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, summaryID string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.data[summaryID]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return summary, nil
}

// ListByDocument returns summaries for a document, newest first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0)
	for _, summary := range r.data {
		if summary.DocumentID == documentID {
			out = append(out, summary)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateText overwrites the summary text.
func (r *MemoryRepo) UpdateText(ctx context.Context, summaryID, summaryText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	summary, ok := r.data[summaryID]
	if !ok {
		return ErrNotFound
	}
	summary.SummaryText = summaryText
	r.data[summaryID] = summary
	return nil
}

// Delete removes a summary.
func (r *MemoryRepo) Delete(ctx context.Context, summaryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[summaryID]; !ok {
		return ErrNotFound
	}
	delete(r.data, summaryID)
	return nil
}

// DeleteByDocument removes all summaries referencing a document.
func (r *MemoryRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, summary := range r.data {
		if summary.DocumentID == documentID {
			delete(r.data, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
