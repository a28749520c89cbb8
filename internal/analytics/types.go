// internal/analytics/types.go
package analytics

import "time"

// Request parameters. Field names double as the query parameter names
// reported in validation errors.

type TimeseriesParams struct {
	Days     int    `query:"days" validate:"gte=1,lte=365"`
	FullName string `query:"full_name" validate:"omitempty,fullname"`
}

type ListReposParams struct {
	Search string `query:"search" validate:"max=200"`
	Days   int    `query:"days" validate:"gte=1,lte=365"`
	Limit  int    `query:"limit" validate:"gte=1,lte=200"`
}

type TopReposParams struct {
	Days  int `query:"days" validate:"gte=1,lte=365"`
	Limit int `query:"limit" validate:"gte=1,lte=100"`
}

type RepoActivityParams struct {
	FullName string `query:"full_name" validate:"required,fullname"`
	Days     int    `query:"days" validate:"gte=1,lte=365"`
}

type ContributorsParams struct {
	FullName string `query:"full_name" validate:"required,fullname"`
	Days     int    `query:"days" validate:"gte=1,lte=365"`
	Limit    int    `query:"limit" validate:"gte=1,lte=100"`
}

type RepoCommitsParams struct {
	FullName string `query:"full_name" validate:"required,fullname"`
	Limit    int    `query:"limit" validate:"gte=1,lte=200"`
}

// Responses.

type Totals struct {
	Repos      int64 `json:"repos"`
	Commits    int64 `json:"commits"`
	Commits7d  int64 `json:"commits_7d"`
	Commits30d int64 `json:"commits_30d"`
}

type RepoCount struct {
	FullName    string `json:"full_name"`
	CommitCount int64  `json:"commit_count"`
}

// DayCount is the number of commits on one UTC calendar day (YYYY-MM-DD).
type DayCount struct {
	Day         string `json:"day"`
	CommitCount int64  `json:"commit_count"`
}

// Summary holds the dashboard KPIs. Totals.Commits counts every stored
// commit; the windowed counts only cover active repositories.
type Summary struct {
	Totals           Totals     `json:"totals"`
	LastIngestedAt   *time.Time `json:"last_ingested_at"`
	TopRepo30d       *RepoCount `json:"top_repo_30d"`
	MostActiveDay30d *DayCount  `json:"most_active_day_30d"`
}

type Scope struct {
	Repo       *string `json:"repo"`
	ActiveOnly bool    `json:"active_only"`
}

type Timeseries struct {
	Scope  Scope      `json:"scope"`
	Days   int        `json:"days"`
	Series []DayCount `json:"series"`
}

type RepoRow struct {
	FullName       string     `json:"full_name"`
	Stars          int32      `json:"stars"`
	Forks          int32      `json:"forks"`
	OpenIssues     int32      `json:"open_issues"`
	PushedAt       *time.Time `json:"pushed_at"`
	LastIngestedAt *time.Time `json:"last_ingested_at"`
	CommitCount    int64      `json:"commit_count"`
	IsActive       bool       `json:"is_active"`
	IsPinned       bool       `json:"is_pinned"`
}

type RepoListing struct {
	Days    int       `json:"days"`
	Limit   int       `json:"limit"`
	Search  *string   `json:"search"`
	Results []RepoRow `json:"results"`
}

type TopRepos struct {
	Days    int         `json:"days"`
	Limit   int         `json:"limit"`
	Results []RepoCount `json:"results"`
}

type RepoActivity struct {
	Repo   string     `json:"repo"`
	Days   int        `json:"days"`
	Series []DayCount `json:"series"`
}

type ContributorCount struct {
	Contributor string `json:"contributor"`
	CommitCount int64  `json:"commit_count"`
}

type Contributors struct {
	Repo    string             `json:"repo"`
	Days    int                `json:"days"`
	Limit   int                `json:"limit"`
	Results []ContributorCount `json:"results"`
}

type CommitRow struct {
	SHA            string    `json:"sha"`
	Message        string    `json:"message"`
	AuthorName     string    `json:"author_name"`
	AuthorEmail    string    `json:"author_email"`
	AuthorUserID   *int64    `json:"author_user_id"`
	CommitterName  string    `json:"committer_name"`
	CommitterEmail string    `json:"committer_email"`
	CommittedAt    time.Time `json:"committed_at"`
	URL            string    `json:"url"`
}

type RepoCommits struct {
	Repo    string      `json:"repo"`
	Limit   int         `json:"limit"`
	Results []CommitRow `json:"results"`
}
