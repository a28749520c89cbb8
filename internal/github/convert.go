// internal/github/convert.go
package github

import (
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/jahphetB/github-activity-analytics/internal/model"
)

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) *model.Repository {
	return &model.Repository{
		ID:            r.GetID(),
		FullName:      r.GetFullName(),
		OwnerLogin:    r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		IsFork:        r.GetFork(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		CreatedAt:     timePtr(r.CreatedAt),
		UpdatedAt:     timePtr(r.UpdatedAt),
		PushedAt:      timePtr(r.PushedAt),
	}
}

// toInternalCommit translates a github.RepositoryCommit object to our
// internal model.Commit. A non-empty reason means the record must be skipped.
func toInternalCommit(c *github.RepositoryCommit) (model.Commit, string) {
	if c.GetSHA() == "" {
		return model.Commit{}, "missing sha"
	}
	if c.Commit == nil {
		return model.Commit{}, "missing commit payload"
	}
	committedAt := c.GetCommit().GetCommitter().GetDate()
	if committedAt.IsZero() {
		return model.Commit{}, "missing committer date"
	}

	author := c.GetCommit().GetAuthor()
	committer := c.GetCommit().GetCommitter()

	url := c.GetHTMLURL()
	if url == "" {
		url = c.GetURL()
	}

	return model.Commit{
		SHA:         c.GetSHA(),
		Author:      toIdentity(c.Author, author.GetName(), author.GetEmail()),
		Committer:   toIdentity(c.Committer, committer.GetName(), committer.GetEmail()),
		Message:     c.GetCommit().GetMessage(),
		CommittedAt: committedAt.UTC(),
		URL:         url,
	}, ""
}

// toIdentity links the git signature to a GitHub account when the API
// resolved one.
func toIdentity(u *github.User, name, email string) model.Identity {
	if u == nil || u.GetID() == 0 || u.GetLogin() == "" {
		return model.Unlinked(name, email)
	}
	return model.Linked(model.User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		Type:      u.GetType(),
		SiteAdmin: u.GetSiteAdmin(),
	}, name, email)
}

func timePtr(ts *github.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.UTC()
	return &t
}
