package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"summarizer-backend/internal/shared/telemetry"
)

// Key namespaces and their default TTLs. Artifact entries live for a day;
// the in-flight processing marker is advisory and short-lived (it is not a
// concurrency lock).
const (
	documentPrefix   = "document:"
	summaryPrefix    = "summary:"
	processingPrefix = "processing:"

	ArtifactTTL   = 24 * time.Hour
	ProcessingTTL = time.Hour
)

// Cache is a best-effort, TTL-bounded store for computed artifacts backed by
// Redis. A nil Cache (or one built with no address) is a silent no-op, and
// every operation swallows backend errors: cache failures must never abort
// the pipeline.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. An empty addr returns a disabled cache.
func New(addr, password string, db int) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client}
}

// PutDocument caches a document artifact.
func (c *Cache) PutDocument(ctx context.Context, documentID string, value any) {
	c.put(ctx, documentPrefix+documentID, value, ArtifactTTL)
}

// GetDocument loads a cached document artifact into dest. Returns false when
// absent or on any backend failure.
func (c *Cache) GetDocument(ctx context.Context, documentID string, dest any) bool {
	return c.get(ctx, documentPrefix+documentID, dest)
}

// PutSummary caches a summary artifact.
func (c *Cache) PutSummary(ctx context.Context, summaryID string, value any) {
	c.put(ctx, summaryPrefix+summaryID, value, ArtifactTTL)
}

// GetSummary loads a cached summary artifact into dest.
func (c *Cache) GetSummary(ctx context.Context, summaryID string, dest any) bool {
	return c.get(ctx, summaryPrefix+summaryID, dest)
}

// MarkProcessing records an advisory in-flight marker for a document.
func (c *Cache) MarkProcessing(ctx context.Context, documentID string, value any) {
	c.put(ctx, processingPrefix+documentID, value, ProcessingTTL)
}

// EvictDocument removes a cached document artifact.
func (c *Cache) EvictDocument(ctx context.Context, documentID string) {
	c.evict(ctx, documentPrefix+documentID)
}

// EvictSummary removes a cached summary artifact.
func (c *Cache) EvictSummary(ctx context.Context, summaryID string) {
	c.evict(ctx, summaryPrefix+summaryID)
}

// EvictProcessing clears the in-flight marker for a document.
func (c *Cache) EvictProcessing(ctx context.Context, documentID string) {
	c.evict(ctx, processingPrefix+documentID)
}

// Exists reports whether a raw key is present. False on any failure.
func (c *Cache) Exists(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logErr("exists", key, err)
		return false
	}
	return n > 0
}

func (c *Cache) put(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logErr("marshal", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logErr("set", key, err)
	}
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logErr("get", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logErr("unmarshal", key, err)
		return false
	}
	return true
}

func (c *Cache) evict(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logErr("del", key, err)
	}
}

func (c *Cache) logErr(op, key string, err error) {
	telemetry.Error("cache."+op+".failed", map[string]any{
		"key": key,
		"err": err.Error(),
	})
}
