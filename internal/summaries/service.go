package summaries

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"summarizer-backend/internal/ai"
	"summarizer-backend/internal/cache"
	"summarizer-backend/internal/documents"
	"summarizer-backend/internal/progress"
	"summarizer-backend/internal/shared/metrics"
	"summarizer-backend/internal/shared/telemetry"
)

// Service drives the summarization pipeline: it owns the document status
// state machine (uploaded -> processing -> completed | failed), invokes the
// summarization client, persists results, and emits progress events.
//
// Concurrent Create calls for the same document are not mutually excluded
// here; the status field is advisory bookkeeping, not a lock. Callers that
// need at-most-one-in-flight per document must enforce it at the storage
// layer (e.g. a conditional update).
type Service struct {
	Repo     Repo
	DocRepo  documents.DocumentsRepo
	AI       ai.Summarizer
	Cache    *cache.Cache
	Notifier *progress.Notifier
}

// Create runs one summarization attempt for a document.
//
// A document with no extracted text fails the precondition before any status
// transition. The summarization client itself cannot fail (remote errors
// degrade to the local fallback inside it), so a "failed" status signals a
// persistence error, never AI-service unavailability. AI outages show up in
// the modelUsed field, not in status.
func (s *Service) Create(ctx context.Context, ownerID, documentID string, ratio float64) (Summary, error) {
	ratio = ClampRatio(ratio)

	doc, err := s.DocRepo.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return Summary{}, err
	}
	if strings.TrimSpace(doc.ContentText) == "" {
		return Summary{}, ErrNoContent
	}

	startedAt := time.Now().UTC()
	metrics.IncSummaryStarted()
	s.Cache.MarkProcessing(ctx, documentID, map[string]any{
		"documentId": documentID,
		"ratio":      ratio,
		"startedAt":  startedAt,
	})

	if err := s.DocRepo.UpdateStatus(ctx, documentID, documents.StatusProcessing, nil); err != nil {
		s.Cache.EvictProcessing(ctx, documentID)
		return Summary{}, err
	}
	s.publish(documentID, "started", 10, 20, "Summarization started")

	s.publish(documentID, "summarizing", 50, 10, "Generating summary")
	result := s.AI.Summarize(ctx, doc.ContentText, ratio)

	summary := Summary{
		ID:               uuid.NewString(),
		DocumentID:       documentID,
		SummaryText:      result.Text,
		SummaryRatio:     ratio,
		ModelUsed:        result.ModelUsed,
		ProcessingTimeMs: result.ProcessingTimeMs,
		ConfidenceScore:  result.ConfidenceScore,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, summary); err != nil {
		return Summary{}, s.fail(ctx, documentID, err)
	}

	processedAt := time.Now().UTC()
	if err := s.DocRepo.UpdateStatus(ctx, documentID, documents.StatusCompleted, &processedAt); err != nil {
		return Summary{}, s.fail(ctx, documentID, err)
	}

	metrics.IncSummaryCompleted()
	if result.Fallback {
		metrics.IncSummaryFallback()
	}
	metrics.ObserveSummaryDurationMs(float64(time.Since(startedAt).Milliseconds()))

	s.Cache.PutSummary(ctx, summary.ID, summary)
	s.Cache.EvictDocument(ctx, documentID)
	s.Cache.EvictProcessing(ctx, documentID)

	s.publish(documentID, "completed", 100, 0, "Summary ready")

	telemetry.Info("summaries.create.completed", map[string]any{
		"document_id": documentID,
		"summary_id":  summary.ID,
		"model_used":  summary.ModelUsed,
		"ratio":       ratio,
		"fallback":    result.Fallback,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	})

	return summary, nil
}

// fail marks the document failed and surfaces the original error. The failed
// transition itself is best-effort: if it cannot be persisted either, the
// original error still wins.
func (s *Service) fail(ctx context.Context, documentID string, cause error) error {
	if err := s.DocRepo.UpdateStatus(ctx, documentID, documents.StatusFailed, nil); err != nil {
		telemetry.Error("summaries.create.fail_status", map[string]any{
			"document_id": documentID,
			"err":         err.Error(),
		})
	}
	metrics.IncSummaryFailed()
	s.Cache.EvictProcessing(ctx, documentID)
	s.publish(documentID, "failed", 100, 0, "Summarization failed")
	return cause
}

func (s *Service) publish(documentID, step string, pct, eta int, message string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Publish(documentID, progress.Event{
		Type:                   progress.EventTypeUpdate,
		DocumentID:             documentID,
		Step:                   step,
		Progress:               pct,
		EstimatedTimeRemaining: eta,
		Message:                message,
	})
}

// Get returns a summary scoped to the owner of its document.
func (s *Service) Get(ctx context.Context, ownerID, summaryID string) (Summary, error) {
	summary, err := s.Repo.GetByID(ctx, summaryID)
	if err != nil {
		return Summary{}, err
	}
	if err := s.checkOwnership(ctx, ownerID, summary.DocumentID); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// ListByDocument returns all summaries of an owner's document, newest first.
func (s *Service) ListByDocument(ctx context.Context, ownerID, documentID string) ([]Summary, error) {
	if _, err := s.DocRepo.GetByID(ctx, ownerID, documentID); err != nil {
		return nil, err
	}
	return s.Repo.ListByDocument(ctx, documentID)
}

// UpdateText overwrites the exposed summary text. Plain field overwrite; no
// re-summarization.
func (s *Service) UpdateText(ctx context.Context, ownerID, summaryID, summaryText string) (Summary, error) {
	if strings.TrimSpace(summaryText) == "" {
		return Summary{}, ErrInvalidText
	}
	if _, err := s.Get(ctx, ownerID, summaryID); err != nil {
		return Summary{}, err
	}
	if err := s.Repo.UpdateText(ctx, summaryID, summaryText); err != nil {
		return Summary{}, err
	}
	s.Cache.EvictSummary(ctx, summaryID)
	return s.Repo.GetByID(ctx, summaryID)
}

// Delete removes a summary.
func (s *Service) Delete(ctx context.Context, ownerID, summaryID string) error {
	if _, err := s.Get(ctx, ownerID, summaryID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, summaryID); err != nil {
		return err
	}
	s.Cache.EvictSummary(ctx, summaryID)
	return nil
}

// checkOwnership hides summaries of other owners' documents as not found.
func (s *Service) checkOwnership(ctx context.Context, ownerID, documentID string) error {
	if _, err := s.DocRepo.GetByID(ctx, ownerID, documentID); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
