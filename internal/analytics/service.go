// internal/analytics/service.go

// Package analytics answers the read-only dashboard queries over stored
// repositories and commits. Aggregates only cover active repositories unless
// a method says otherwise. Days are UTC calendar days.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jahphetB/github-activity-analytics/internal/database"
	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/validation"
)

const (
	DefaultDays              = 30
	DefaultListLimit         = 50
	DefaultTopLimit          = 10
	defaultDBTimeout         = 10 * time.Second
	summaryShortWindowDays   = 7
	summaryDefaultWindowDays = 30
)

// Service runs the analytics queries.
type Service struct {
	q         database.Querier
	now       func() time.Time
	dbTimeout time.Duration
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDBTimeout bounds each call's database work.
func WithDBTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dbTimeout = d
		}
	}
}

func NewService(q database.Querier, opts ...Option) *Service {
	s := &Service{q: q, now: time.Now, dbTimeout: defaultDBTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the dashboard KPIs. The independent queries run concurrently.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	now := s.now()
	since7d := database.Timestamptz(now.AddDate(0, 0, -summaryShortWindowDays))
	since30d := database.Timestamptz(now.AddDate(0, 0, -summaryDefaultWindowDays))

	var (
		sum   Summary
		days  []database.ActiveDailyCommitCountsRow
		top   []database.TopActiveReposSinceRow
		g, gc = errgroup.WithContext(ctx)
	)

	g.Go(func() (err error) {
		sum.Totals.Repos, err = s.q.CountActiveRepos(gc)
		return wrap("count active repos", err)
	})
	g.Go(func() (err error) {
		sum.Totals.Commits, err = s.q.CountCommits(gc)
		return wrap("count commits", err)
	})
	g.Go(func() (err error) {
		sum.Totals.Commits7d, err = s.q.CountActiveCommitsSince(gc, since7d)
		return wrap("count commits 7d", err)
	})
	g.Go(func() (err error) {
		sum.Totals.Commits30d, err = s.q.CountActiveCommitsSince(gc, since30d)
		return wrap("count commits 30d", err)
	})
	g.Go(func() error {
		ts, err := s.q.MaxActiveLastIngestedAt(gc)
		sum.LastIngestedAt = database.TimePtr(ts)
		return wrap("last ingested at", err)
	})
	g.Go(func() (err error) {
		top, err = s.q.TopActiveReposSince(gc, database.TopActiveReposSinceParams{CommittedAt: since30d, Limit: 1})
		return wrap("top repo 30d", err)
	})
	g.Go(func() (err error) {
		days, err = s.q.ActiveDailyCommitCounts(gc, since30d)
		return wrap("daily commit counts 30d", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(top) > 0 {
		sum.TopRepo30d = &RepoCount{FullName: top[0].FullName, CommitCount: top[0].CommitCount}
	}
	// Ties keep the earliest day.
	for _, d := range days {
		if sum.MostActiveDay30d == nil || d.CommitCount > sum.MostActiveDay30d.CommitCount {
			sum.MostActiveDay30d = &DayCount{Day: dayKey(d.Day), CommitCount: d.CommitCount}
		}
	}
	return &sum, nil
}

// Timeseries returns days+1 zero-filled daily commit counts ending today. With
// a full name the series covers that repository regardless of its active flag;
// otherwise it covers all active repositories.
func (s *Service) Timeseries(ctx context.Context, p TimeseriesParams) (*Timeseries, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	start := seriesStart(s.now(), p.Days)
	counts := make(map[string]int64)
	res := &Timeseries{Days: p.Days}

	if p.FullName == "" {
		rows, err := s.q.ActiveDailyCommitCounts(ctx, database.Timestamptz(start))
		if err != nil {
			return nil, fmt.Errorf("daily commit counts: %w", err)
		}
		for _, r := range rows {
			counts[dayKey(r.Day)] = r.CommitCount
		}
		res.Scope = Scope{ActiveOnly: true}
	} else {
		repo, err := s.repo(ctx, p.FullName)
		if err != nil {
			return nil, err
		}
		if counts, err = s.repoDailyCounts(ctx, repo.ID, start); err != nil {
			return nil, err
		}
		res.Scope = Scope{Repo: &repo.FullName}
	}

	res.Series = fillDays(start, p.Days, counts)
	return res, nil
}

// ListRepos lists every stored repository, active or paused, matching the
// optional case-insensitive search with its commit count over the window.
// Pinned repositories come first.
func (s *Service) ListRepos(ctx context.Context, p ListReposParams) (*RepoListing, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	rows, err := s.q.ListRepoActivity(ctx, database.ListRepoActivityParams{
		Since:    database.Timestamptz(s.now().AddDate(0, 0, -p.Days)),
		Search:   escapeLike(p.Search),
		RowLimit: int32(p.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	res := &RepoListing{Days: p.Days, Limit: p.Limit, Results: make([]RepoRow, 0, len(rows))}
	if p.Search != "" {
		res.Search = &p.Search
	}
	for _, r := range rows {
		res.Results = append(res.Results, RepoRow{
			FullName:       r.FullName,
			Stars:          r.Stars,
			Forks:          r.Forks,
			OpenIssues:     r.OpenIssues,
			PushedAt:       database.TimePtr(r.PushedAt),
			LastIngestedAt: database.TimePtr(r.LastIngestedAt),
			CommitCount:    r.CommitCount,
			IsActive:       r.IsActive,
			IsPinned:       r.IsPinned,
		})
	}
	return res, nil
}

// TopRepos ranks active repositories by commit count over the window.
func (s *Service) TopRepos(ctx context.Context, p TopReposParams) (*TopRepos, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	rows, err := s.q.TopActiveReposSince(ctx, database.TopActiveReposSinceParams{
		CommittedAt: database.Timestamptz(s.now().AddDate(0, 0, -p.Days)),
		Limit:       int32(p.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("top repositories: %w", err)
	}

	res := &TopRepos{Days: p.Days, Limit: p.Limit, Results: make([]RepoCount, 0, len(rows))}
	for _, r := range rows {
		res.Results = append(res.Results, RepoCount{FullName: r.FullName, CommitCount: r.CommitCount})
	}
	return res, nil
}

// RepoActivity returns the zero-filled daily commit counts of one repository.
func (s *Service) RepoActivity(ctx context.Context, p RepoActivityParams) (*RepoActivity, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	repo, err := s.repo(ctx, p.FullName)
	if err != nil {
		return nil, err
	}
	start := seriesStart(s.now(), p.Days)
	counts, err := s.repoDailyCounts(ctx, repo.ID, start)
	if err != nil {
		return nil, err
	}
	return &RepoActivity{Repo: repo.FullName, Days: p.Days, Series: fillDays(start, p.Days, counts)}, nil
}

// Contributors ranks the authors of a repository's commits over the window.
// An author is named by the linked account login, else the raw author name.
func (s *Service) Contributors(ctx context.Context, p ContributorsParams) (*Contributors, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	repo, err := s.repo(ctx, p.FullName)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.TopContributors(ctx, database.TopContributorsParams{
		RepoID:      repo.ID,
		CommittedAt: database.Timestamptz(s.now().AddDate(0, 0, -p.Days)),
		Limit:       int32(p.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("top contributors of %s: %w", repo.FullName, err)
	}

	res := &Contributors{Repo: repo.FullName, Days: p.Days, Limit: p.Limit, Results: make([]ContributorCount, 0, len(rows))}
	for _, r := range rows {
		res.Results = append(res.Results, ContributorCount{Contributor: r.Contributor, CommitCount: r.CommitCount})
	}
	return res, nil
}

// RepoCommits lists a repository's stored commits, newest first.
func (s *Service) RepoCommits(ctx context.Context, p RepoCommitsParams) (*RepoCommits, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	repo, err := s.repo(ctx, p.FullName)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.ListCommitsByRepo(ctx, database.ListCommitsByRepoParams{RepoID: repo.ID, Limit: int32(p.Limit)})
	if err != nil {
		return nil, fmt.Errorf("list commits of %s: %w", repo.FullName, err)
	}

	res := &RepoCommits{Repo: repo.FullName, Limit: p.Limit, Results: make([]CommitRow, 0, len(rows))}
	for _, c := range rows {
		row := CommitRow{
			SHA:            c.Sha,
			Message:        c.Message.String,
			AuthorName:     c.AuthorName.String,
			AuthorEmail:    c.AuthorEmail.String,
			CommitterName:  c.CommitterName.String,
			CommitterEmail: c.CommitterEmail.String,
			CommittedAt:    c.CommittedAt.Time.UTC(),
			URL:            c.Url.String,
		}
		if c.AuthorUserID.Valid {
			id := c.AuthorUserID.Int64
			row.AuthorUserID = &id
		}
		res.Results = append(res.Results, row)
	}
	return res, nil
}

func (s *Service) repo(ctx context.Context, fullName string) (database.Repo, error) {
	repo, err := s.q.GetRepoByFullName(ctx, fullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Repo{}, &custom_errors.RepoNotFoundError{FullName: fullName}
	}
	if err != nil {
		return database.Repo{}, fmt.Errorf("get repository %s: %w", fullName, err)
	}
	return repo, nil
}

func (s *Service) repoDailyCounts(ctx context.Context, repoID int64, start time.Time) (map[string]int64, error) {
	rows, err := s.q.RepoDailyCommitCounts(ctx, database.RepoDailyCommitCountsParams{
		RepoID:      repoID,
		CommittedAt: database.Timestamptz(start),
	})
	if err != nil {
		return nil, fmt.Errorf("daily commit counts of repo %d: %w", repoID, err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[dayKey(r.Day)] = r.CommitCount
	}
	return counts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
