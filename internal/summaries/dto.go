package summaries

import "time"

// SummaryResponse is the outward-facing representation of a summary.
type SummaryResponse struct {
	SummaryID        string    `json:"summaryId"`
	DocumentID       string    `json:"documentId"`
	SummaryText      string    `json:"summaryText"`
	SummaryRatio     float64   `json:"summaryRatio"`
	ModelUsed        string    `json:"modelUsed"`
	ProcessingTimeMs int       `json:"processingTimeMs"`
	ConfidenceScore  float64   `json:"confidenceScore"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateSummaryRequest carries the knobs for a summarization run.
type CreateSummaryRequest struct {
	SummaryRatio float64 `json:"summaryRatio"`
}

// UpdateSummaryRequest overwrites the stored summary text.
type UpdateSummaryRequest struct {
	SummaryText string `json:"summaryText" binding:"required"`
}

func toResponse(summary Summary) SummaryResponse {
	return SummaryResponse{
		SummaryID:        summary.ID,
		DocumentID:       summary.DocumentID,
		SummaryText:      summary.SummaryText,
		SummaryRatio:     summary.SummaryRatio,
		ModelUsed:        summary.ModelUsed,
		ProcessingTimeMs: summary.ProcessingTimeMs,
		ConfidenceScore:  summary.ConfidenceScore,
		CreatedAt:        summary.CreatedAt,
	}
}
