package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.etcd.io/bbolt"

	"github.com/DavideLaterza81/ItalianTV/internal/adapter/driven"
	"github.com/DavideLaterza81/ItalianTV/internal/adapter/driver"
	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/catalog"
	"github.com/DavideLaterza81/ItalianTV/internal/config"
	port "github.com/DavideLaterza81/ItalianTV/internal/port/driven"
	"github.com/DavideLaterza81/ItalianTV/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Create structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting italiantv",
		"address", cfg.HTTP.Address,
		"port", cfg.HTTP.Port,
		"db_path", cfg.DB.Path,
		"log_level", cfg.Log.Level,
		"admin_enabled", cfg.Admin.Secret != "",
		"ticker_configured", cfg.News.TickerURL != "",
		"assistant_configured", cfg.Assistant.BaseURL != "",
	)

	// Open BoltDB
	db, err := bbolt.Open(cfg.DB.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	// Create driven adapters (repository and external services)
	catalogRepo, err := driven.NewCatalogBoltDBRepository(db)
	if err != nil {
		log.Fatalf("failed to create catalog repository: %v", err)
	}

	newsFetcher := driven.NewNewsRSSFetcher(nil)
	recommendClient := driven.NewRecommendHTTPClient(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, nil)

	// Create application services
	catalogService := application.NewCatalogService(
		catalogRepo,
		catalog.NewReconciler(catalog.Canonical(), logger),
		logger,
	)
	if err := catalogService.Initialize(context.Background()); err != nil {
		log.Fatalf("failed to initialize catalog: %v", err)
	}

	embedPlayer := driven.NewEmbedStreamPlayer()
	playbackService := application.NewPlaybackService(catalogService, map[stream.Kind]port.StreamPlayer{
		stream.KindHLS:      driven.NewHLSStreamPlayer(nil, logger),
		stream.KindYouTube:  embedPlayer,
		stream.KindWebEmbed: embedPlayer,
	}, logger)

	newsService := application.NewNewsService(newsFetcher, cfg.News.TickerURL, cfg.News.CacheTTL, logger)
	assistantService := application.NewAssistantService(recommendClient, catalogService, logger)
	healthService := application.NewHealthService(catalogRepo)

	// Create HTTP handlers
	catalogHandler := driver.NewCatalogHTTPHandler(catalogService)
	playbackHandler := driver.NewPlaybackHTTPHandler(playbackService)
	newsHandler := driver.NewNewsHTTPHandler(newsService, catalogService)
	assistantHandler := driver.NewAssistantHTTPHandler(assistantService)
	adminHandler := driver.NewAdminHTTPHandler(catalogService, cfg.Admin.Secret)
	healthHandler := driver.NewHealthHTTPHandler(healthService)

	// Root router: API routes, metrics, SPA for everything else
	mux := http.NewServeMux()
	mux.Handle("/api/channels", catalogHandler)
	mux.Handle("/api/channels/", catalogHandler)
	mux.Handle("/api/playback", playbackHandler)
	mux.Handle("/api/playback/", playbackHandler)
	mux.Handle("/api/news", newsHandler)
	mux.Handle("/api/news/", newsHandler)
	mux.Handle("/api/assistant", assistantHandler)
	mux.Handle("/api/admin/", adminHandler)
	mux.Handle("/api/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", newSPAHandler())

	// Create HTTP server
	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	playbackService.CloseAll()

	logger.Info("server stopped")
}
