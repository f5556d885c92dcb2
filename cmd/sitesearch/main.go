package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/config"
	logpkg "github.com/kailas-cloud/sitesearch/internal/logger"
	"github.com/kailas-cloud/sitesearch/internal/metrics"
	indexrepo "github.com/kailas-cloud/sitesearch/internal/repository/index"
	chiTransport "github.com/kailas-cloud/sitesearch/internal/transport/chi"
	"github.com/kailas-cloud/sitesearch/internal/transport/fetch"
	"github.com/kailas-cloud/sitesearch/internal/usecase/health"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
	"github.com/kailas-cloud/sitesearch/internal/usecase/search"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sitesearch server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_file", cfg.Index.File),
		zap.String("index_url", cfg.Index.URL),
		zap.String("site_dir", cfg.Site.Dir),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	recorder := metrics.NewRecorder()

	source, err := newSource(&cfg.Index, logger)
	if err != nil {
		logger.Fatal("Invalid index source", zap.Error(err))
	}

	loader := index.NewLoader(source, recorder, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loader.Load(ctx)

	searchSvc := search.New(recorder)
	renderer := render.New().WithExcerptLength(cfg.Render.ExcerptLength)
	healthSvc := health.New(loader)

	server := chiTransport.NewServer(loader, searchSvc, renderer, healthSvc, logger).
		WithSiteDir(cfg.Site.Dir)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newSource picks the file or HTTP index source from configuration.
func newSource(cfg *config.IndexConfig, logger *zap.Logger) (index.Source, error) {
	if cfg.File != "" {
		return indexrepo.NewFileSource(cfg.File), nil
	}
	src, err := fetch.NewSource(&fetch.Config{
		BaseURL:   cfg.URL,
		Path:      cfg.Path,
		Retries:   cfg.FetchRetries,
		RetryWait: time.Duration(cfg.RetryWaitMs) * time.Millisecond,
		Timeout:   time.Duration(cfg.FetchTimeoutSec) * time.Second,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("http index source: %w", err)
	}
	return src, nil
}
