// internal/ingest/ingest.go
package ingest

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jahphetB/github-activity-analytics/internal/database"
	"github.com/jahphetB/github-activity-analytics/internal/model"
	"github.com/jahphetB/github-activity-analytics/internal/validation"
)

const (
	tracerName = "github.com/jahphetB/github-activity-analytics/internal/ingest"

	DefaultPerPage  = 30
	DefaultMaxPages = 1

	defaultDBTimeout = 10 * time.Second
)

// Source is the upstream the ingester reads from.
type Source interface {
	GetRepository(ctx context.Context, repo model.FullName) (*model.Repository, error)
	CommitPages(ctx context.Context, repo model.FullName, perPage, maxPages int) iter.Seq2[model.CommitPage, error]
}

// Request identifies the repository to ingest and how much history to page through.
type Request struct {
	FullName string `json:"full_name" validate:"required,fullname"`
	PerPage  int    `json:"per_page" validate:"gte=1,lte=100"`
	MaxPages int    `json:"max_pages" validate:"gte=1,lte=100"`
}

// Result summarises one ingestion run. CommitsFetched counts every well formed
// commit processed, including ones that were already stored.
type Result struct {
	Repo            string    `json:"repo"`
	RepoID          int64     `json:"repo_id"`
	CommitsFetched  int       `json:"commits_fetched"`
	CommitsInserted int       `json:"commits_inserted"`
	CommitsSkipped  int       `json:"commits_skipped"`
	PagesFetched    int       `json:"pages_fetched"`
	PerPage         int       `json:"per_page"`
	MaxPages        int       `json:"max_pages"`
	LastIngestedAt  time.Time `json:"last_ingested_at"`
}

// Ingester orchestrates the fetching and storing of one repository's data.
type Ingester struct {
	store     database.Store
	source    Source
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	now       func() time.Time
	dbTimeout time.Duration
}

// Option configures an Ingester.
type Option func(*Ingester)

func WithMetrics(m *Metrics) Option {
	return func(i *Ingester) { i.metrics = m }
}

// WithDBTimeout bounds every database unit of work.
func WithDBTimeout(d time.Duration) Option {
	return func(i *Ingester) {
		if d > 0 {
			i.dbTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(i *Ingester) { i.now = now }
}

// NewIngester creates a new Ingester instance.
func NewIngester(store database.Store, source Source, logger *slog.Logger, opts ...Option) *Ingester {
	i := &Ingester{
		store:     store,
		source:    source,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		dbTimeout: defaultDBTimeout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest refreshes the repository metadata and stores its commit history page
// by page. It is safe to re-run: commits are inserted only once and the
// repository row is overwritten with the latest upstream values.
func (i *Ingester) Ingest(ctx context.Context, req Request) (*Result, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	fullName, err := model.ParseFullName(req.FullName)
	if err != nil {
		return nil, err
	}

	ctx, span := i.tracer.Start(ctx, "ingest.repository", trace.WithAttributes(
		attribute.String("repo.full_name", fullName.String()),
		attribute.Int("ingest.per_page", req.PerPage),
		attribute.Int("ingest.max_pages", req.MaxPages),
	))
	defer span.End()

	start := time.Now()
	res, err := i.ingest(ctx, fullName, req)
	i.metrics.observeRun(err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("repo.id", res.RepoID),
		attribute.Int("ingest.commits_fetched", res.CommitsFetched),
		attribute.Int("ingest.commits_inserted", res.CommitsInserted),
	)
	return res, nil
}

func (i *Ingester) ingest(ctx context.Context, fullName model.FullName, req Request) (*Result, error) {
	logger := i.logger.With("repo", fullName.String())
	logger.Info("Ingesting repository", "per_page", req.PerPage, "max_pages", req.MaxPages)

	ghRepo, err := i.source.GetRepository(ctx, fullName)
	if err != nil {
		return nil, err
	}

	dbRepo, err := i.upsertRepository(ctx, ghRepo)
	if err != nil {
		return nil, err
	}
	logger = logger.With("repo_id", dbRepo.ID)

	res := &Result{
		Repo:     dbRepo.FullName,
		RepoID:   dbRepo.ID,
		PerPage:  req.PerPage,
		MaxPages: req.MaxPages,
	}

	for page, err := range i.source.CommitPages(ctx, fullName, req.PerPage, req.MaxPages) {
		if err != nil {
			return nil, err
		}
		inserted, err := i.storePage(ctx, dbRepo.ID, page)
		if err != nil {
			return nil, fmt.Errorf("store commits page %d of %s: %w", page.Number, dbRepo.FullName, err)
		}

		res.PagesFetched++
		res.CommitsFetched += len(page.Commits)
		res.CommitsInserted += inserted
		res.CommitsSkipped += page.Skipped
		logger.Debug("Stored commits page", "page", page.Number, "commits", len(page.Commits), "inserted", inserted, "skipped", page.Skipped)
	}

	lastIngestedAt, err := i.touch(ctx, dbRepo.ID)
	if err != nil {
		return nil, err
	}
	res.LastIngestedAt = lastIngestedAt

	logger.Info("Repository ingested",
		"pages", res.PagesFetched,
		"commits_fetched", res.CommitsFetched,
		"commits_inserted", res.CommitsInserted,
		"commits_skipped", res.CommitsSkipped,
	)
	return res, nil
}

// upsertRepository creates or refreshes the repository row. A stored row that
// still holds the full name under an older upstream id (the repository was
// deleted and recreated, or renamed away) is renamed out of the way first.
func (i *Ingester) upsertRepository(ctx context.Context, repo *model.Repository) (database.Repo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.dbTimeout)
	defer cancel()

	var dbRepo database.Repo
	err := i.store.ExecTx(ctx, func(q database.Querier) error {
		released, err := q.ReleaseRepoFullName(ctx, database.ReleaseRepoFullNameParams{FullName: repo.FullName, ID: repo.ID})
		if err != nil {
			return fmt.Errorf("release full name: %w", err)
		}
		if released > 0 {
			i.logger.Warn("Renamed stale repository holding the same full name", "repo", repo.FullName, "repo_id", repo.ID)
		}
		dbRepo, err = q.UpsertRepo(ctx, upsertRepoParams(repo))
		return err
	})
	if err != nil {
		return database.Repo{}, fmt.Errorf("upsert repository %s: %w", repo.FullName, err)
	}
	return dbRepo, nil
}

// storePage writes one page in its own transaction: linked users first since
// commits reference them, then the commits. It returns the number of commits
// that were not stored before.
func (i *Ingester) storePage(ctx context.Context, repoID int64, page model.CommitPage) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, i.dbTimeout)
	defer cancel()

	ingestedAt := database.Timestamptz(i.now())
	var inserted int
	err := i.store.ExecTx(ctx, func(q database.Querier) error {
		inserted = 0
		for _, u := range page.Users() {
			// Logins are unique but can be reused upstream by a new account.
			if _, err := q.ReleaseUserLogin(ctx, database.ReleaseUserLoginParams{Login: u.Login, ID: u.ID}); err != nil {
				return fmt.Errorf("release login %s: %w", u.Login, err)
			}
			if err := q.UpsertUser(ctx, upsertUserParams(u, ingestedAt)); err != nil {
				return fmt.Errorf("upsert user %s: %w", u.Login, err)
			}
		}
		for _, c := range page.Commits {
			n, err := q.InsertCommit(ctx, insertCommitParams(repoID, c, ingestedAt))
			if err != nil {
				return fmt.Errorf("insert commit %s: %w", c.SHA, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	i.metrics.observePage(len(page.Commits), inserted, page.Skipped)
	return inserted, nil
}

// touch stamps last_ingested_at; the stored value never moves backwards.
func (i *Ingester) touch(ctx context.Context, repoID int64) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, i.dbTimeout)
	defer cancel()

	ts, err := i.store.TouchRepoIngestedAt(ctx, database.TouchRepoIngestedAtParams{
		IngestedAt: database.Timestamptz(i.now()),
		ID:         repoID,
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("update last_ingested_at: %w", err)
	}
	return ts.Time.UTC(), nil
}

func upsertRepoParams(r *model.Repository) database.UpsertRepoParams {
	return database.UpsertRepoParams{
		ID:            r.ID,
		FullName:      r.FullName,
		OwnerLogin:    r.OwnerLogin,
		Name:          r.Name,
		IsFork:        r.IsFork,
		Stars:         int32(r.Stars),
		Forks:         int32(r.Forks),
		OpenIssues:    int32(r.OpenIssues),
		DefaultBranch: database.Text(r.DefaultBranch),
		CreatedAt:     database.TimestamptzPtr(r.CreatedAt),
		UpdatedAt:     database.TimestamptzPtr(r.UpdatedAt),
		PushedAt:      database.TimestamptzPtr(r.PushedAt),
	}
}

func upsertUserParams(u model.User, ingestedAt pgtype.Timestamptz) database.UpsertUserParams {
	return database.UpsertUserParams{
		ID:             u.ID,
		Login:          u.Login,
		Type:           database.Text(u.Type),
		SiteAdmin:      database.Bool(u.SiteAdmin),
		LastIngestedAt: ingestedAt,
	}
}

func insertCommitParams(repoID int64, c model.Commit, ingestedAt pgtype.Timestamptz) database.InsertCommitParams {
	return database.InsertCommitParams{
		Sha:             c.SHA,
		RepoID:          repoID,
		AuthorUserID:    database.Int8(c.Author.UserID()),
		CommitterUserID: database.Int8(c.Committer.UserID()),
		AuthorName:      database.Text(c.Author.Name),
		AuthorEmail:     database.Text(c.Author.Email),
		CommitterName:   database.Text(c.Committer.Name),
		CommitterEmail:  database.Text(c.Committer.Email),
		Message:         database.Text(c.Message),
		CommittedAt:     database.Timestamptz(c.CommittedAt),
		Url:             database.Text(c.URL),
		IngestedAt:      ingestedAt,
	}
}
