// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/model"
)

const (
	defaultTimeout = 30 * time.Second

	// MaxPerPage is the largest page size the GitHub API honours.
	MaxPerPage = 100
)

var errIncompleteRepository = errors.New("repository payload has no id or full_name")

// Client is a wrapper around the go-github client. Every outbound call runs
// through a circuit breaker and its own timeout; nothing is retried.
type Client struct {
	gh      *github.Client
	breaker *gobreaker.CircuitBreaker[*github.Response]
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every single upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates and configures a new Client instance.
// An empty token yields an unauthenticated client.
func NewClient(token string, logger *slog.Logger, opts ...Option) *Client {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(context.Background(), ts)
	}

	c := &Client{
		gh:      github.NewClient(tc),
		timeout: defaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(logger)
	return c
}

// SetBaseURL points the client at another API root, e.g. GitHub Enterprise
// or a test server.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse github api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("github api url %q must be absolute", raw)
	}
	c.gh.BaseURL = u
	return nil
}

// GetRepository fetches repository details and translates them to our internal model.
func (c *Client) GetRepository(ctx context.Context, repo model.FullName) (*model.Repository, error) {
	var ghRepo *github.Repository
	resp, err := c.do(ctx, func(ctx context.Context) (*github.Response, error) {
		r, resp, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
		ghRepo = r
		return resp, err
	})
	if err != nil {
		if statusOf(resp, err) == http.StatusNotFound {
			return nil, &custom_errors.RepoNotFoundError{FullName: repo.String(), Upstream: true}
		}
		return nil, fetchError(repo, resp, err)
	}
	if ghRepo.GetID() == 0 || ghRepo.GetFullName() == "" {
		return nil, fetchError(repo, resp, errIncompleteRepository)
	}
	return toInternalRepository(ghRepo), nil
}

// CommitPages lazily fetches commit history newest first. The sequence ends
// after a page shorter than perPage, after maxPages pages, or after yielding
// an error.
func (c *Client) CommitPages(ctx context.Context, repo model.FullName, perPage, maxPages int) iter.Seq2[model.CommitPage, error] {
	return func(yield func(model.CommitPage, error) bool) {
		for page := 1; page <= maxPages; page++ {
			c.logger.Debug("Fetching commits page", "repo", repo.String(), "page", page, "per_page", perPage)

			raw, err := c.listCommits(ctx, repo, page, perPage)
			if err != nil {
				yield(model.CommitPage{Number: page}, err)
				return
			}
			if !yield(c.toCommitPage(repo, page, raw), nil) {
				return
			}
			if len(raw) < perPage {
				return
			}
		}
	}
}

func (c *Client) listCommits(ctx context.Context, repo model.FullName, page, perPage int) ([]*github.RepositoryCommit, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}

	var commits []*github.RepositoryCommit
	resp, err := c.do(ctx, func(ctx context.Context) (*github.Response, error) {
		cs, resp, err := c.gh.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		commits = cs
		return resp, err
	})
	if err != nil {
		switch statusOf(resp, err) {
		case http.StatusConflict:
			// GitHub answers 409 for a repository without any commits.
			return nil, nil
		case http.StatusNotFound:
			return nil, &custom_errors.RepoNotFoundError{FullName: repo.String(), Upstream: true}
		}
		return nil, fetchError(repo, resp, err)
	}
	return commits, nil
}

// do runs one upstream request under the per-request timeout and the breaker.
func (c *Client) do(ctx context.Context, fn func(context.Context) (*github.Response, error)) (*github.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.breaker.Execute(func() (*github.Response, error) {
		return fn(ctx)
	})
}

func (c *Client) toCommitPage(repo model.FullName, number int, raw []*github.RepositoryCommit) model.CommitPage {
	page := model.CommitPage{Number: number, Fetched: len(raw)}
	for _, rc := range raw {
		commit, reason := toInternalCommit(rc)
		if reason != "" {
			page.Skipped++
			c.logger.Debug("Skipping malformed commit record", "repo", repo.String(), "page", number, "sha", rc.GetSHA(), "reason", reason)
			continue
		}
		page.Commits = append(page.Commits, commit)
	}
	return page
}

func statusOf(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}

func fetchError(repo model.FullName, resp *github.Response, err error) error {
	return &custom_errors.UpstreamFetchError{
		FullName: repo.String(),
		Status:   statusOf(resp, err),
		Err:      err,
	}
}
