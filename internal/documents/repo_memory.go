package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // ownerID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a document for an owner.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.OwnerID] = append(r.data[doc.OwnerID], doc)
	return nil
}

// GetByID returns a document by ID for an owner.
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByOwner returns documents for an owner, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ownerDocs := r.data[ownerID]
	r.mu.RUnlock()

	if len(ownerDocs) == 0 || offset >= len(ownerDocs) {
		return []Document{}, nil
	}

	// Copy and sort newest-first by UploadedAt.
	docs := make([]Document, len(ownerDocs))
	copy(docs, ownerDocs)
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})

	end := len(docs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return docs[offset:end], nil
}

// UpdateStatus sets the processing status for a document regardless of owner.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, documentID, status string, processedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for ownerID, docs := range r.data {
		for i := range docs {
			if docs[i].ID == documentID {
				docs[i].Status = status
				if processedAt != nil {
					docs[i].ProcessedAt = processedAt
				}
				r.data[ownerID] = docs
				return nil
			}
		}
	}
	return ErrNotFound
}

// Delete removes a document for an owner.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			r.data[ownerID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
