package summaries

import "time"

// Ratio bounds for a summary request. Callers asking for anything outside
// are clamped before the ratio is accepted.
const (
	MinRatio     = 0.10
	MaxRatio     = 0.50
	DefaultRatio = 0.30
)

// Summary is one computed result for a document. A document may have any
// number of summaries; the reference is one-directional (no back-pointer).
type Summary struct {
	ID               string
	DocumentID       string
	SummaryText      string
	SummaryRatio     float64
	ModelUsed        string
	ProcessingTimeMs int
	ConfidenceScore  float64
	CreatedAt        time.Time
}

// ClampRatio bounds a requested ratio to [MinRatio, MaxRatio].
func ClampRatio(ratio float64) float64 {
	if ratio < MinRatio {
		return MinRatio
	}
	if ratio > MaxRatio {
		return MaxRatio
	}
	return ratio
}
