package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/qepting91/reddit-video-feed/internal/collector"
	"github.com/qepting91/reddit-video-feed/internal/config"
	"github.com/qepting91/reddit-video-feed/internal/dashboard"
	"github.com/qepting91/reddit-video-feed/internal/domain"
	"github.com/qepting91/reddit-video-feed/internal/feed"
	"github.com/qepting91/reddit-video-feed/internal/ingest"
	"github.com/qepting91/reddit-video-feed/internal/storage"
)

func main() {
	// 1. Setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Categories (built-in, optionally overridden from CSV)
	registry, err := buildRegistry(cfg)
	if err != nil {
		logger.Error("Failed to load categories", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Client (Using Factory)
	client, err := collector.NewCollector(cfg)
	if err != nil {
		logger.Error("Failed to initialize collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", cfg.CollectorMode, "categories", registry.Categories())

	// 4. Journal writer
	journal := make(chan domain.VideoRecord, 100)
	var writerWg sync.WaitGroup
	writer := &storage.WriterService{FilePath: cfg.DataFile, Logger: logger}
	writerWg.Add(1)
	go writer.Start(&writerWg, journal)

	// 5. HTTP surface, one engine per feed session
	newEngine := func(category string) *feed.Engine {
		return feed.NewEngine(client, registry, category, feed.Options{
			MaxRetries:     cfg.MaxRetries,
			RequestTimeout: cfg.RequestTimeout,
			Rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
			Logger:         logger,
		})
	}
	srv := dashboard.NewServer(registry, newEngine, journal, cfg.DataFile, cfg.SessionTTL, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting feed server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "err", err)
			os.Exit(1)
		}
	}()

	// 6. Graceful Shutdown (also stops the idle-session sweeper)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go srv.RunSweeper(ctx, time.Minute)
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown incomplete", "err", err)
	}
	close(journal)
	writerWg.Wait()
	logger.Info("Feed server stopped. Journal flushed.")
}

func buildRegistry(cfg config.Config) (*feed.Registry, error) {
	registry := feed.DefaultRegistry()
	if cfg.CategoriesFile == "" {
		return registry.WithOverrides(nil, cfg.DefaultCategory)
	}
	overrides, err := ingest.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}
	return registry.WithOverrides(overrides, cfg.DefaultCategory)
}
