package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new summary.
func (r *PGRepo) Create(ctx context.Context, summary Summary) error {
	const query = `
INSERT INTO summaries (
    id,
    document_id,
    summary_text,
    summary_ratio,
    model_used,
    processing_time_ms,
    confidence_score,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		summary.ID,
		summary.DocumentID,
		summary.SummaryText,
		summary.SummaryRatio,
		summary.ModelUsed,
		summary.ProcessingTimeMs,
		summary.ConfidenceScore,
		summary.CreatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, document_id, summary_text, summary_ratio, model_used, processing_time_ms, confidence_score, created_at
FROM summaries`

// GetByID fetches a summary by ID.
func (r *PGRepo) GetByID(ctx context.Context, summaryID string) (Summary, error) {
	const query = selectColumns + `
WHERE id = $1
LIMIT 1`
	var summary Summary
	err := r.DB.QueryRowContext(ctx, query, summaryID).Scan(
		&summary.ID,
		&summary.DocumentID,
		&summary.SummaryText,
		&summary.SummaryRatio,
		&summary.ModelUsed,
		&summary.ProcessingTimeMs,
		&summary.ConfidenceScore,
		&summary.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return summary, nil
}

// ListByDocument lists summaries for a document, newest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]Summary, error) {
	const query = selectColumns + `
WHERE document_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(
			&summary.ID,
			&summary.DocumentID,
			&summary.SummaryText,
			&summary.SummaryRatio,
			&summary.ModelUsed,
			&summary.ProcessingTimeMs,
			&summary.ConfidenceScore,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// UpdateText overwrites the summary text.
func (r *PGRepo) UpdateText(ctx context.Context, summaryID, summaryText string) error {
	const query = `
UPDATE summaries
SET summary_text = $1
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, summaryText, summaryID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a summary.
func (r *PGRepo) Delete(ctx context.Context, summaryID string) error {
	const query = `
DELETE FROM summaries
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, summaryID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByDocument removes all summaries referencing a document.
func (r *PGRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	const query = `
DELETE FROM summaries
WHERE document_id = $1`
	_, err := r.DB.ExecContext(ctx, query, documentID)
	return err
}

var _ Repo = (*PGRepo)(nil)
