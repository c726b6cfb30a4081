// Package embcache caches embeddings in process memory. The cache holds only
// derived data keyed by input hash and lives exactly as long as the model
// weights do; nothing is persisted.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

// CachedEmbedder is a decorator that memoizes the inner embedder.
type CachedEmbedder struct {
	inner      domain.Embedder
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger

	mu      sync.RWMutex
	entries map[string][]float32
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(inner domain.Embedder, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:      inner,
		cacheTotal: cacheTotal,
		logger:     logger,
		entries:    make(map[string][]float32),
	}
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hit: TotalTokens = 0 (no real tokens consumed).
// Cache miss: full EmbeddingResult from inner.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	c.mu.RLock()
	vec, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.incCache("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = result.Embedding
	c.mu.Unlock()

	c.logger.Debug("Embedding cached", zap.String("key", key), zap.Int("dimensions", len(result.Embedding)))
	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (c *CachedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// Len reports the number of cached embeddings.
func (c *CachedEmbedder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CachedEmbedder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
