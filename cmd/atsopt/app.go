package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/config"
	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/extract"
	"github.com/Suraj317github/ats-resume-optimizer/internal/keywords"
	logpkg "github.com/Suraj317github/ats-resume-optimizer/internal/logger"
	"github.com/Suraj317github/ats-resume-optimizer/internal/metrics"
	"github.com/Suraj317github/ats-resume-optimizer/internal/repository/embcache"
	hugotEmb "github.com/Suraj317github/ats-resume-optimizer/internal/transport/hugot"
	openaiEmb "github.com/Suraj317github/ats-resume-optimizer/internal/transport/openai"
	analyzeuc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/analyze"
	embeddinguc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/embedding"
)

// loadApp loads configuration based on ENV and creates the logger.
func loadApp() (string, config.Config, *zap.Logger, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}

	return env, cfg, logger, nil
}

// buildEmbedder assembles the decorator chain: provider -> cached ->
// instrumented. The returned closer releases provider resources; for the
// remote provider it is a no-op.
func buildEmbedder(cfg config.Config, logger *zap.Logger) (*embeddinguc.InstrumentedEmbedder, func() error, error) {
	var base domain.Embedder
	closer := func() error { return nil }

	switch cfg.Embedding.Provider {
	case "local":
		local := hugotEmb.NewEmbedder(&hugotEmb.Config{
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			CacheDir:   cfg.Embedding.CacheDir,
			Logger:     logger,
		})
		base = local
		closer = local.Close
	case "openai":
		provCfg := cfg.Embedding.Providers["openai"]
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     provCfg.APIKey,
			BaseURL:    provCfg.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
	default:
		return nil, nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}

	cached := embcache.New(base, metrics.EmbeddingCacheTotal, logger)
	instrumented := embeddinguc.NewInstrumentedEmbedder(
		cached, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	return instrumented, closer, nil
}

// buildAnalyzeService wires the scoring pipeline from config.
func buildAnalyzeService(cfg config.Config, embedder domain.Embedder, logger *zap.Logger) (*analyzeuc.Service, error) {
	kw := keywords.NewExtractor(cfg.Scoring.MinKeywordLen, cfg.Scoring.FluffWords)
	keyword, semantic := cfg.Weights()
	weights := domain.Weights{Keyword: keyword, Semantic: semantic}

	svc, err := analyzeuc.New(extract.New(), kw, embedder, weights, logger)
	if err != nil {
		return nil, fmt.Errorf("create analysis service: %w", err)
	}
	return svc, nil
}
