// Package hugot provides the default embedding provider: a local ONNX
// sentence-transformer pipeline. The model artifact is downloaded from the
// Hugging Face hub on first use, cached on disk, and loaded into memory once
// for the process lifetime; inference is deterministic for fixed weights.
package hugot

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/metrics"
)

const providerName = "local"

// Embedder runs a feature-extraction pipeline over a local ONNX model.
type Embedder struct {
	model      string
	dimensions int
	cacheDir   string
	logger     *zap.Logger

	once     sync.Once
	initErr  error
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
}

// Config holds the local embedding provider settings.
type Config struct {
	// Model is the Hugging Face repository of the sentence-transformer,
	// e.g. "sentence-transformers/all-MiniLM-L6-v2".
	Model string
	// Dimensions is the expected output dimension (384 for MiniLM).
	Dimensions int
	// CacheDir is where the model artifact is downloaded and kept.
	CacheDir string
	Logger   *zap.Logger
}

// NewEmbedder creates a local embedding provider. The model is not loaded
// until the first Embed, Warmup, or HealthCheck call.
func NewEmbedder(cfg *Config) *Embedder {
	return &Embedder{
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		cacheDir:   cfg.CacheDir,
		logger:     cfg.Logger,
	}
}

// Warmup downloads and loads the model so the first analysis does not pay
// the cost. Safe to call more than once.
func (e *Embedder) Warmup() error {
	return e.ensureReady()
}

// Embed implements domain.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: res.Embeddings[0]}, nil
}

// BatchEmbed implements domain.BatchEmbedder. Token usage stays zero: local
// inference consumes no billable tokens.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}
	if err := e.ensureReady(); err != nil {
		return domain.BatchEmbeddingResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("embed canceled: %w", err)
	}

	start := time.Now()

	output, err := e.pipeline.RunPipeline(texts)

	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(providerName, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(providerName, e.model, "inference_error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf("run pipeline: %v: %w", err, domain.ErrEmbeddingProviderError)
	}

	if len(output.Embeddings) != len(texts) {
		metrics.EmbeddingRequestsTotal.WithLabelValues(providerName, e.model, "error").Inc()
		return domain.BatchEmbeddingResult{}, fmt.Errorf(
			"pipeline returned %d vectors for %d inputs: %w",
			len(output.Embeddings), len(texts), domain.ErrEmbeddingProviderError)
	}
	for i, vec := range output.Embeddings {
		if e.dimensions > 0 && len(vec) != e.dimensions {
			return domain.BatchEmbeddingResult{}, fmt.Errorf(
				"%w: vector %d has %d dimensions, model configured for %d",
				domain.ErrDimensionMismatch, i, len(vec), e.dimensions)
		}
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(providerName, e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(providerName, e.model).Observe(duration.Seconds())

	return domain.BatchEmbeddingResult{Embeddings: output.Embeddings}, nil
}

// HealthCheck reports whether the model is loaded and usable.
func (e *Embedder) HealthCheck(_ context.Context) error {
	return e.ensureReady()
}

// Close releases the inference session.
func (e *Embedder) Close() error {
	if e.session == nil {
		return nil
	}
	if err := e.session.Destroy(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// ensureReady downloads the model artifact if missing and loads it exactly
// once. The loaded pipeline is read-only afterwards, so concurrent Embed
// calls need no locking.
func (e *Embedder) ensureReady() error {
	e.once.Do(func() {
		e.initErr = e.load()
	})
	return e.initErr
}

func (e *Embedder) load() error {
	if err := os.MkdirAll(e.cacheDir, 0o755); err != nil {
		return fmt.Errorf("create model cache dir: %w", err)
	}

	e.logger.Info("Fetching embedding model (first run downloads the artifact)",
		zap.String("model", e.model),
		zap.String("cache_dir", e.cacheDir),
	)

	modelPath, err := hugot.DownloadModel(e.model, e.cacheDir, hugot.NewDownloadOptions())
	if err != nil {
		return fmt.Errorf("download model %s: %w", e.model, err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return fmt.Errorf("create inference session: %w", err)
	}

	// Raw pooled embeddings are fine here: cosine similarity normalizes.
	pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "sentence-embedder",
	})
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("create feature extraction pipeline: %w", err)
	}

	e.session = session
	e.pipeline = pipeline

	e.logger.Info("Embedding model loaded",
		zap.String("model", e.model),
		zap.String("path", modelPath),
		zap.Int("dimensions", e.dimensions),
	)
	return nil
}
