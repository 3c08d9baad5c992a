package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    owner_id,
    original_filename,
    file_type,
    file_size,
    content_text,
    storage_path,
    status,
    uploaded_at,
    processed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL)`

	status := doc.Status
	if status == "" {
		status = StatusUploaded
	}

	var contentText sql.NullString
	if doc.ContentText != "" {
		contentText = sql.NullString{String: doc.ContentText, Valid: true}
	}
	var storagePath sql.NullString
	if doc.StoragePath != "" {
		storagePath = sql.NullString{String: doc.StoragePath, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerID,
		doc.OriginalFilename,
		doc.FileType,
		doc.FileSize,
		contentText,
		storagePath,
		status,
		doc.UploadedAt,
	)
	return err
}

const selectColumns = `
SELECT id, owner_id, original_filename, file_type, file_size, content_text, storage_path, status, uploaded_at, processed_at
FROM documents`

// GetByID fetches a document by ID for an owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	const query = selectColumns + `
WHERE owner_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ownerID, documentID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByOwner lists documents ordered newest-first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = selectColumns + `
WHERE owner_id = $1
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateStatus sets the processing status for a document. The status column
// is advisory bookkeeping, not a lock: this is a plain UPDATE, and callers
// needing at-most-one-in-flight must add a conditional update on top.
func (r *PGRepo) UpdateStatus(ctx context.Context, documentID, status string, processedAt *time.Time) error {
	const query = `
UPDATE documents
SET status = $1, processed_at = COALESCE($2, processed_at)
WHERE id = $3`
	var ts sql.NullTime
	if processedAt != nil {
		ts = sql.NullTime{Time: *processedAt, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, status, ts, documentID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document row; summaries cascade at the schema level.
func (r *PGRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	const query = `
DELETE FROM documents
WHERE owner_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, ownerID, documentID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var contentText sql.NullString
	var storagePath sql.NullString
	var processedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.OriginalFilename,
		&doc.FileType,
		&doc.FileSize,
		&contentText,
		&storagePath,
		&doc.Status,
		&doc.UploadedAt,
		&processedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if contentText.Valid {
		doc.ContentText = contentText.String
	}
	if storagePath.Valid {
		doc.StoragePath = storagePath.String
	}
	if processedAt.Valid {
		doc.ProcessedAt = &processedAt.Time
	}
	return doc, nil
}

var _ DocumentsRepo = (*PGRepo)(nil)
