package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/metrics"
	"github.com/Suraj317github/ats-resume-optimizer/internal/transport/web"
	"github.com/Suraj317github/ats-resume-optimizer/internal/usecase/health"
	"github.com/Suraj317github/ats-resume-optimizer/internal/version"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve the single-page analysis UI",
	Long: `Starts an HTTP server with the upload form, the rendered match report,
plus /healthz and /metrics for operators.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCommand)
}

func runServe(_ *cobra.Command, _ []string) error {
	env, cfg, logger, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting atsopt server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	// Register embedding metrics explicitly (no init())
	metrics.Register()

	embedder, closeEmbedder, err := buildEmbedder(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeEmbedder() }()

	analyzeSvc, err := buildAnalyzeService(cfg, embedder, logger)
	if err != nil {
		return err
	}
	healthSvc := health.New(embedder)

	server := web.NewServer(analyzeSvc, healthSvc, cfg.HTTP.MaxUploadBytes, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
