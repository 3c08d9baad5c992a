package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"summarizer-backend/internal/shared/telemetry"
)

// FallbackModel is the provenance tag recorded when the remote service was
// not used. Downstream consumers distinguish degraded results by it.
const FallbackModel = "fallback-extractive"

// DefaultModel is the identifier sent to the remote service when none is
// configured.
const DefaultModel = "facebook/bart-large-cnn"

// Result is the outcome of a summarization request. Exactly one of the two
// paths produced it: the remote service or the local extractive fallback,
// recorded in Fallback/ModelUsed.
type Result struct {
	Text             string
	ModelUsed        string
	ProcessingTimeMs int
	ConfidenceScore  float64
	OriginalLength   int
	SummaryLength    int
	Fallback         bool
}

// Summarizer produces a summary for a text at a given ratio.
type Summarizer interface {
	Summarize(ctx context.Context, text string, ratio float64) Result
}

// Client calls the remote summarization service, degrading to the local
// extractive fallback on any remote failure.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a summarization client. An empty baseURL disables the
// remote path entirely; every request then uses the fallback.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type summarizeRequest struct {
	Text         string  `json:"text"`
	SummaryRatio float64 `json:"summary_ratio"`
	ModelName    string  `json:"model_name"`
}

type summarizeResponse struct {
	SummaryText      string  `json:"summary_text"`
	ModelUsed        string  `json:"model_used"`
	ProcessingTimeMs int     `json:"processing_time_ms"`
	ConfidenceScore  float64 `json:"confidence_score"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
}

// Summarize returns a summary for the text. It never fails outward: any
// remote error (network, timeout, non-2xx, malformed or empty response) is
// absorbed and replaced by the deterministic fallback, keeping the pipeline
// available when the AI dependency is degraded.
func (c *Client) Summarize(ctx context.Context, text string, ratio float64) Result {
	if c.baseURL != "" {
		result, err := c.summarizeRemote(ctx, text, ratio)
		if err == nil {
			return result
		}
		telemetry.Error("ai.summarize.fallback", map[string]any{
			"err":   err.Error(),
			"model": c.model,
		})
	}

	start := time.Now()
	summary := FallbackSummary(text, ratio)
	return Result{
		Text:             summary,
		ModelUsed:        FallbackModel,
		ProcessingTimeMs: int(time.Since(start).Milliseconds()),
		ConfidenceScore:  0,
		OriginalLength:   len(text),
		SummaryLength:    len(summary),
		Fallback:         true,
	}
}

func (c *Client) summarizeRemote(ctx context.Context, text string, ratio float64) (Result, error) {
	payload, err := json.Marshal(summarizeRequest{
		Text:         text,
		SummaryRatio: ratio,
		ModelName:    c.model,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("summarize status %d", resp.StatusCode)
	}

	var parsed summarizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("summarize response parse: %w", err)
	}
	if strings.TrimSpace(parsed.SummaryText) == "" {
		return Result{}, fmt.Errorf("summarize response empty summary_text")
	}

	modelUsed := parsed.ModelUsed
	if modelUsed == "" {
		modelUsed = c.model
	}

	return Result{
		Text:             parsed.SummaryText,
		ModelUsed:        modelUsed,
		ProcessingTimeMs: parsed.ProcessingTimeMs,
		ConfidenceScore:  parsed.ConfidenceScore,
		OriginalLength:   parsed.OriginalLength,
		SummaryLength:    parsed.SummaryLength,
	}, nil
}

// IsHealthy probes the remote health endpoint. Success is the body containing
// the substring "healthy". Advisory only; it gates nothing in Summarize.
func (c *Client) IsHealthy(ctx context.Context) bool {
	if c.baseURL == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}
	return strings.Contains(string(body), "healthy")
}

var _ Summarizer = (*Client)(nil)
