package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	hugotEmb "github.com/Suraj317github/ats-resume-optimizer/internal/transport/hugot"
)

var fetchModelCommand = &cobra.Command{
	Use:   "fetch-model",
	Short: "Download the local embedding model ahead of time",
	Long: `Downloads the configured sentence-transformer model into the cache
directory so the first analysis does not pay the download cost. Only
meaningful when the embedding provider is "local".`,
	RunE: runFetchModel,
}

func init() {
	rootCmd.AddCommand(fetchModelCommand)
}

func runFetchModel(_ *cobra.Command, _ []string) error {
	_, cfg, logger, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Embedding.Provider != "local" {
		return fmt.Errorf("embedding provider is %q, nothing to fetch", cfg.Embedding.Provider)
	}

	embedder := hugotEmb.NewEmbedder(&hugotEmb.Config{
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		CacheDir:   cfg.Embedding.CacheDir,
		Logger:     logger,
	})
	defer func() { _ = embedder.Close() }()

	logger.Info("Fetching embedding model",
		zap.String("model", cfg.Embedding.Model),
		zap.String("cache_dir", cfg.Embedding.CacheDir),
	)

	if err := embedder.Warmup(); err != nil {
		return fmt.Errorf("fetch model: %w", err)
	}

	logger.Info("Model ready", zap.String("model", cfg.Embedding.Model))
	return nil
}
