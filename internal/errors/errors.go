// internal/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// ErrInvalidRepoFormat is returned when a repository string is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// UpstreamFetchError is returned when the GitHub API is unreachable or answers
// with a non-success status. Status is zero when no HTTP response was received.
type UpstreamFetchError struct {
	FullName string
	Status   int
	Err      error
}

func (e *UpstreamFetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream fetch for %s failed: %v", e.FullName, e.Err)
	}
	return fmt.Sprintf("upstream fetch for %s failed with status %d: %v", e.FullName, e.Status, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// RepoNotFoundError is returned when a repository does not exist upstream
// (Upstream == true) or is not stored locally.
type RepoNotFoundError struct {
	FullName string
	Upstream bool
}

func (e *RepoNotFoundError) Error() string {
	if e.Upstream {
		return fmt.Sprintf("repository %s not found upstream", e.FullName)
	}
	return fmt.Sprintf("repository %s not found", e.FullName)
}

// ValidationError reports a malformed request parameter. It is raised before
// any upstream or database I/O happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HTTPStatus maps an upstream status to the status code surfaced to API callers.
func (e *UpstreamFetchError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
