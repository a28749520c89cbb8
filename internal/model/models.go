// internal/model/models.go
package model

import (
	"regexp"
	"strings"
	"time"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
)

// FullName is the 'owner/name' identifier of a repository.
type FullName struct {
	Owner string
	Name  string
}

func (f FullName) String() string {
	return f.Owner + "/" + f.Name
}

// GitHub's character sets for account and repository names. Both segments
// end up unescaped in upstream URL paths.
var (
	ownerPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,39}$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// ParseFullName splits an 'owner/name' string. Surrounding whitespace is ignored.
func ParseFullName(s string) (FullName, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || !ownerPattern.MatchString(parts[0]) || !namePattern.MatchString(parts[1]) {
		return FullName{}, &custom_errors.ErrInvalidRepoFormat{Repo: s}
	}
	if parts[1] == "." || parts[1] == ".." {
		return FullName{}, &custom_errors.ErrInvalidRepoFormat{Repo: s}
	}
	return FullName{Owner: parts[0], Name: parts[1]}, nil
}

// Repository represents the metadata of a GitHub repository.
type Repository struct {
	ID             int64
	FullName       string
	OwnerLogin     string
	Name           string
	IsFork         bool
	Stars          int
	Forks          int
	OpenIssues     int
	DefaultBranch  string
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
	PushedAt       *time.Time
	IsActive       bool
	IsPinned       bool
	LastIngestedAt *time.Time
}

// User is a GitHub account linked to a commit as author or committer.
type User struct {
	ID        int64
	Login     string
	Type      string
	SiteAdmin bool
}

type IdentityKind int

const (
	// IdentityUnlinked carries only the free-text git signature.
	IdentityUnlinked IdentityKind = iota
	// IdentityLinked also references a GitHub account.
	IdentityLinked
)

// Identity is the author or committer of a commit. The git signature (Name,
// Email) is always kept; User is only meaningful when Kind is IdentityLinked.
type Identity struct {
	Kind  IdentityKind
	User  User
	Name  string
	Email string
}

// Linked builds an identity that references a GitHub account.
func Linked(u User, name, email string) Identity {
	return Identity{Kind: IdentityLinked, User: u, Name: name, Email: email}
}

// Unlinked builds an identity from the git signature alone.
func Unlinked(name, email string) Identity {
	return Identity{Kind: IdentityUnlinked, Name: name, Email: email}
}

// UserID returns the linked account ID, if any.
func (i Identity) UserID() (int64, bool) {
	if i.Kind != IdentityLinked {
		return 0, false
	}
	return i.User.ID, true
}

// DisplayName is the account login when linked, else the raw signature name.
func (i Identity) DisplayName() string {
	if i.Kind == IdentityLinked && i.User.Login != "" {
		return i.User.Login
	}
	return i.Name
}

// Commit is an immutable entry of a repository's history.
type Commit struct {
	SHA         string
	RepoID      int64
	Author      Identity
	Committer   Identity
	Message     string
	CommittedAt time.Time
	URL         string
}

// CommitPage is one page of commit history as returned by the upstream API.
// Fetched counts every raw record on the page, including Skipped ones.
type CommitPage struct {
	Number  int
	Commits []Commit
	Fetched int
	Skipped int
}

// Users returns the distinct linked accounts referenced by the page, in
// first-seen order.
func (p CommitPage) Users() []User {
	seen := make(map[int64]struct{})
	var users []User
	for _, c := range p.Commits {
		for _, id := range []Identity{c.Author, c.Committer} {
			if id.Kind != IdentityLinked {
				continue
			}
			if _, ok := seen[id.User.ID]; ok {
				continue
			}
			seen[id.User.ID] = struct{}{}
			users = append(users, id.User)
		}
	}
	return users
}
