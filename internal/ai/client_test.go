package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSummarizeRemoteSuccess(t *testing.T) {
	var received summarizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(summarizeResponse{
			SummaryText:      "A remote summary.",
			ModelUsed:        "facebook/bart-large-cnn",
			ProcessingTimeMs: 321,
			ConfidenceScore:  0.92,
			OriginalLength:   40,
			SummaryLength:    17,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "facebook/bart-large-cnn", 5*time.Second)
	result := client.Summarize(context.Background(), "Some document text to summarize.", 0.3)

	if result.Fallback {
		t.Fatalf("expected remote result, got fallback")
	}
	if result.Text != "A remote summary." {
		t.Fatalf("Text = %q", result.Text)
	}
	if result.ModelUsed != "facebook/bart-large-cnn" {
		t.Fatalf("ModelUsed = %q", result.ModelUsed)
	}
	if result.ProcessingTimeMs != 321 {
		t.Fatalf("ProcessingTimeMs = %d", result.ProcessingTimeMs)
	}
	if received.Text != "Some document text to summarize." {
		t.Fatalf("request text = %q", received.Text)
	}
	if received.SummaryRatio != 0.3 {
		t.Fatalf("request ratio = %v", received.SummaryRatio)
	}
	if received.ModelName != "facebook/bart-large-cnn" {
		t.Fatalf("request model = %q", received.ModelName)
	}
}

func TestSummarizeRemoteErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	result := client.Summarize(context.Background(), "First sentence. Second sentence. Third sentence.", 0.34)

	if !result.Fallback {
		t.Fatalf("expected fallback result")
	}
	if result.ModelUsed != FallbackModel {
		t.Fatalf("ModelUsed = %q, want %q", result.ModelUsed, FallbackModel)
	}
	if result.Text == "" {
		t.Fatalf("fallback produced empty summary")
	}
	if result.ConfidenceScore != 0 {
		t.Fatalf("fallback confidence = %v, want 0", result.ConfidenceScore)
	}
}

func TestSummarizeEmptyResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(summarizeResponse{SummaryText: "   "})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	result := client.Summarize(context.Background(), "One sentence here.", 0.3)

	if !result.Fallback {
		t.Fatalf("expected fallback for blank remote summary")
	}
}

func TestSummarizeNoBaseURLUsesFallback(t *testing.T) {
	client := NewClient("", "", time.Second)
	result := client.Summarize(context.Background(), "Alpha. Beta. Gamma.", 0.34)

	if !result.Fallback {
		t.Fatalf("expected fallback without base URL")
	}
	if result.Text != "Alpha." {
		t.Fatalf("Text = %q, want %q", result.Text, "Alpha.")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("http://example.com/", "  ", 0)
	if client.model != DefaultModel {
		t.Fatalf("model = %q, want %q", client.model, DefaultModel)
	}
	if client.baseURL != "http://example.com" {
		t.Fatalf("baseURL = %q, trailing slash not trimmed", client.baseURL)
	}
}

func TestIsHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	if !client.IsHealthy(context.Background()) {
		t.Fatalf("expected healthy")
	}
}

func TestIsHealthyDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	if client.IsHealthy(context.Background()) {
		t.Fatalf("expected unhealthy for degraded body")
	}

	offline := NewClient("", "", time.Second)
	if offline.IsHealthy(context.Background()) {
		t.Fatalf("expected unhealthy without base URL")
	}
}
