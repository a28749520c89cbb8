// cmd/ingest/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jahphetB/github-activity-analytics/internal/config"
	"github.com/jahphetB/github-activity-analytics/internal/database"
	"github.com/jahphetB/github-activity-analytics/internal/github"
	"github.com/jahphetB/github-activity-analytics/internal/ingest"
)

// Usage: ingest [-per-page N] [-max-pages N] [-concurrency N] [owner/name ...]
// Repositories default to INGEST_REPOS.
func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)

	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	perPage := fs.Int("per-page", cfg.IngestPerPage, "commits requested per upstream page (1-100)")
	maxPages := fs.Int("max-pages", cfg.IngestMaxPages, "maximum commit pages fetched per repository (1-100)")
	concurrency := fs.Int("concurrency", cfg.IngestConcurrency, "repositories ingested in parallel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	repos := fs.Args()
	if len(repos) == 0 {
		repos = cfg.IngestRepos
	}
	if len(repos) == 0 {
		return errors.New("no repositories given: pass owner/name arguments or set INGEST_REPOS")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()

	if err := database.Migrate(cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	client := github.NewClient(cfg.GithubToken, logger, github.WithTimeout(cfg.UpstreamTimeout))
	if cfg.GithubAPIURL != "" {
		if err := client.SetBaseURL(cfg.GithubAPIURL); err != nil {
			return fmt.Errorf("invalid GITHUB_API_URL: %w", err)
		}
	}
	ingester := ingest.NewIngester(database.NewStore(dbpool), client, logger, ingest.WithDBTimeout(cfg.DBTimeout))

	var failed int
	for _, out := range ingester.IngestAll(ctx, repos, *perPage, *maxPages, *concurrency) {
		if out.Err != nil {
			failed++
			continue
		}
		logger.Info("Repository ingested",
			"repo", out.Result.Repo,
			"commits_fetched", out.Result.CommitsFetched,
			"commits_inserted", out.Result.CommitsInserted,
			"pages_fetched", out.Result.PagesFetched,
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d repositories failed", failed, len(repos))
	}
	return nil
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
