package cache

import (
	"context"
	"testing"
)

func TestNewDisabledWithoutAddr(t *testing.T) {
	if c := New("", "", 0); c != nil {
		t.Fatalf("expected nil cache for empty addr")
	}
}

// Every operation on a disabled cache must be a silent no-op; callers never
// branch on cache availability.
func TestNilCacheNoOps(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.PutDocument(ctx, "doc-1", map[string]string{"k": "v"})
	c.PutSummary(ctx, "sum-1", "text")
	c.MarkProcessing(ctx, "doc-1", "marker")
	c.EvictDocument(ctx, "doc-1")
	c.EvictSummary(ctx, "sum-1")
	c.EvictProcessing(ctx, "doc-1")

	var dest map[string]string
	if c.GetDocument(ctx, "doc-1", &dest) {
		t.Fatalf("GetDocument on nil cache returned true")
	}
	if c.GetSummary(ctx, "sum-1", &dest) {
		t.Fatalf("GetSummary on nil cache returned true")
	}
	if c.Exists(ctx, "document:doc-1") {
		t.Fatalf("Exists on nil cache returned true")
	}
}

func TestTTLConstants(t *testing.T) {
	if ArtifactTTL.Hours() != 24 {
		t.Fatalf("ArtifactTTL = %v, want 24h", ArtifactTTL)
	}
	if ProcessingTTL.Hours() != 1 {
		t.Fatalf("ProcessingTTL = %v, want 1h", ProcessingTTL)
	}
}
