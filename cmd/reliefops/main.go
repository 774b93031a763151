package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rajasatyajit/ReliefOps/config"
	"github.com/rajasatyajit/ReliefOps/internal/api"
	"github.com/rajasatyajit/ReliefOps/internal/classifier"
	"github.com/rajasatyajit/ReliefOps/internal/database"
	"github.com/rajasatyajit/ReliefOps/internal/dedupe"
	"github.com/rajasatyajit/ReliefOps/internal/geocoder"
	"github.com/rajasatyajit/ReliefOps/internal/location"
	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/metrics"
	middlewares "github.com/rajasatyajit/ReliefOps/internal/middleware"
	"github.com/rajasatyajit/ReliefOps/internal/pipeline"
	"github.com/rajasatyajit/ReliefOps/internal/relief"
	"github.com/rajasatyajit/ReliefOps/internal/store"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting ReliefOps application",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Initialize metrics
	if cfg.Metrics.Enabled {
		metrics.Init()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close(ctx)

	// Initialize store
	eventStore := store.New(db)
	if pg, ok := eventStore.(*store.PostgresStore); ok {
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate database schema", "error", err)
		}
	}

	// Geocoding with a Redis cache when available
	geo := newGeocoder(cfg)

	// Deduplication over the geocoder-backed location logic
	matcher := location.NewMatcher(geo)
	selector := location.NewSelector(geo)
	dedup := dedupe.New(cfg.Dedupe, matcher, selector)

	// Relief allocation
	reliefManager := relief.NewManager(cfg.Relief)

	// Ingest pipeline over the configured report feeds
	var sources []pipeline.Source
	if len(cfg.Pipeline.FeedURLs) > 0 {
		sources = append(sources, pipeline.NewFeedSource("report feed", cfg.Pipeline.FeedURLs))
	}
	reportPipeline := pipeline.New(eventStore, classifier.New(), dedup, cfg.Pipeline, sources...)

	if len(sources) > 0 {
		go func() {
			if err := reportPipeline.Run(ctx); err != nil {
				logger.Error("Pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("No report feeds configured; pipeline idle")
	}

	// Setup HTTP server
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Logging)
	r.Use(middlewares.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.ReadTimeout))
	r.Use(middlewares.Security)
	r.Use(middlewares.APIKeyAuth(cfg.Auth))

	// Initialize API handlers
	apiHandler := api.NewHandler(eventStore, dedup, reliefManager, Version, BuildTime, GitCommit)
	apiHandler.RegisterRoutes(r)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// newGeocoder builds the geocoder with the best available cache: Redis
// when configured, in-process memory otherwise.
func newGeocoder(cfg *config.Config) *geocoder.Geocoder {
	client := geocoder.NewClient(cfg.Geocode)

	if cfg.Redis.URL != "" {
		cache, err := geocoder.NewRedisCache(cfg.Redis.URL, cfg.Geocode.CacheTTL)
		if err != nil {
			logger.Warn("Redis cache unavailable, using in-memory geocode cache", "error", err)
		} else {
			logger.Info("Using Redis geocode cache")
			return geocoder.New(client, cache)
		}
	}

	return geocoder.New(client, geocoder.NewMemoryCache())
}

func startMetricsServer(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", "address", addr, "path", path)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}
