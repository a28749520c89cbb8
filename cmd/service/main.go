// cmd/service/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jahphetB/github-activity-analytics/internal/analytics"
	"github.com/jahphetB/github-activity-analytics/internal/api"
	"github.com/jahphetB/github-activity-analytics/internal/config"
	"github.com/jahphetB/github-activity-analytics/internal/database"
	"github.com/jahphetB/github-activity-analytics/internal/github"
	"github.com/jahphetB/github-activity-analytics/internal/ingest"
	"github.com/jahphetB/github-activity-analytics/internal/manage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := initTracing(ctx, cfg.OTLPEndpoint, cfg.OTELServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Failed to flush traces", "error", err)
		}
	}()

	// 4. Initialize database connection and run migrations
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	if err := database.Migrate(cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	// 5. Initialize application components
	store := database.NewStore(dbpool)
	ghClient, err := newGithubClient(cfg, logger)
	if err != nil {
		return err
	}
	ingester := ingest.NewIngester(store, ghClient, logger,
		ingest.WithMetrics(ingest.NewMetrics(prometheus.DefaultRegisterer)),
		ingest.WithDBTimeout(cfg.DBTimeout),
	)
	analyticsSvc := analytics.NewService(store, analytics.WithDBTimeout(cfg.DBTimeout))
	manager := manage.NewManager(store, logger, cfg.DBTimeout)

	h := api.NewHandler(ingester, analyticsSvc, manager, store, logger)
	router := api.NewRouter(h, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		RequestTimeout:     cfg.RequestTimeout,
		Registerer:         prometheus.DefaultRegisterer,
		Gatherer:           prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Serve until a shutdown signal arrives
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received. Draining connections.")
	}

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func newGithubClient(cfg *config.Config, logger *slog.Logger) (*github.Client, error) {
	client := github.NewClient(cfg.GithubToken, logger, github.WithTimeout(cfg.UpstreamTimeout))
	if cfg.GithubAPIURL != "" {
		if err := client.SetBaseURL(cfg.GithubAPIURL); err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL: %w", err)
		}
	}
	return client, nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
