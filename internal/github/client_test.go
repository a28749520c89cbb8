// internal/github/client_test.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/model"
)

var testRepo = model.FullName{Owner: "test", Name: "repo"}

// setupTestClient creates a httptest server and a github client pointing to it.
func setupTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// We can pass an empty token because we are not authenticating to the real GitHub.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient("", logger, opts...)
	require.NoError(t, client.SetBaseURL(server.URL))

	return client, server
}

// commitJSON renders one commits API record. An empty date omits the committer date.
func commitJSON(sha, date string, authorID int64) string {
	author := "null"
	if authorID != 0 {
		author = fmt.Sprintf(`{"id": %d, "login": "user%d", "type": "User", "site_admin": false}`, authorID, authorID)
	}
	committer := `{"name": "GitHub", "email": "noreply@github.com"}`
	if date != "" {
		committer = fmt.Sprintf(`{"name": "GitHub", "email": "noreply@github.com", "date": %q}`, date)
	}
	return fmt.Sprintf(`{
		"sha": %q,
		"html_url": "https://github.com/test/repo/commit/%s",
		"author": %s,
		"committer": null,
		"commit": {
			"author": {"name": "Dev %s", "email": "dev@example.com", "date": %q},
			"committer": %s,
			"message": "change %s"
		}
	}`, sha, sha, author, sha, "2024-01-01T00:00:00Z", committer, sha)
}

func commitsPage(n, offset int) string {
	records := make([]string, n)
	for i := range records {
		records[i] = commitJSON(fmt.Sprintf("sha%d", offset+i), "2024-01-02T12:00:00Z", 0)
	}
	return "[" + strings.Join(records, ",") + "]"
}

func TestClient_GetRepository(t *testing.T) {
	t.Run("maps repository metadata", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			assert.Equal(t, "/repos/test/repo", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"id": 1296269, "full_name": "test/repo", "name": "repo", "owner": {"login": "test"},
				"fork": true, "stargazers_count": 80, "forks_count": 9, "open_issues_count": 3,
				"default_branch": "main", "created_at": "2011-01-26T19:01:12Z",
				"updated_at": "2011-01-26T19:14:43Z", "pushed_at": "2011-01-26T19:06:43Z"
			}`)
		})
		client, _ := setupTestClient(t, handler)

		repo, err := client.GetRepository(context.Background(), testRepo)

		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
		assert.Equal(t, int64(1296269), repo.ID)
		assert.Equal(t, "test/repo", repo.FullName)
		assert.Equal(t, "test", repo.OwnerLogin)
		assert.True(t, repo.IsFork)
		assert.Equal(t, 80, repo.Stars)
		assert.Equal(t, 9, repo.Forks)
		assert.Equal(t, 3, repo.OpenIssues)
		assert.Equal(t, "main", repo.DefaultBranch)
		require.NotNil(t, repo.PushedAt)
		assert.Equal(t, time.Date(2011, 1, 26, 19, 6, 43, 0, time.UTC), *repo.PushedAt)
	})

	t.Run("returns RepoNotFoundError on 404", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"message": "Not Found"}`)
		})
		client, _ := setupTestClient(t, handler)

		_, err := client.GetRepository(context.Background(), testRepo)

		var notFound *custom_errors.RepoNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.True(t, notFound.Upstream)
		assert.Equal(t, "test/repo", notFound.FullName)
	})

	t.Run("rejects a repository payload without identity", func(t *testing.T) {
		for _, body := range []string{
			`{"current_user_url": "https://api.github.com/user"}`,
			`{"id": 0, "full_name": "test/repo"}`,
			`{"id": 1296269, "full_name": ""}`,
		} {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, body)
			})
			client, _ := setupTestClient(t, handler)

			repo, err := client.GetRepository(context.Background(), testRepo)

			assert.Nil(t, repo, body)
			var fetchErr *custom_errors.UpstreamFetchError
			require.ErrorAs(t, err, &fetchErr, body)
			assert.Equal(t, http.StatusOK, fetchErr.Status)
			assert.Equal(t, http.StatusBadGateway, fetchErr.HTTPStatus())
			assert.ErrorIs(t, err, errIncompleteRepository)
		}
	})

	t.Run("does not retry on server error", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.WriteHeader(http.StatusInternalServerError)
		})
		client, _ := setupTestClient(t, handler)

		_, err := client.GetRepository(context.Background(), testRepo)

		var fetchErr *custom_errors.UpstreamFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
		assert.Equal(t, "test/repo", fetchErr.FullName)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
	})

	t.Run("times out a hanging request", func(t *testing.T) {
		release := make(chan struct{})
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		client, _ := setupTestClient(t, handler, WithTimeout(50*time.Millisecond))
		defer close(release)

		_, err := client.GetRepository(context.Background(), testRepo)

		var fetchErr *custom_errors.UpstreamFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 0, fetchErr.Status)
	})

	t.Run("opens the circuit after consecutive failures", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.WriteHeader(http.StatusBadGateway)
		})
		client, _ := setupTestClient(t, handler)

		for i := 0; i < 5; i++ {
			_, err := client.GetRepository(context.Background(), testRepo)
			require.Error(t, err)
		}
		_, err := client.GetRepository(context.Background(), testRepo)

		var fetchErr *custom_errors.UpstreamFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 0, fetchErr.Status)
		assert.Equal(t, int32(5), atomic.LoadInt32(&requestCount), "open circuit must not reach the server")
	})
}

func TestClient_CommitPages(t *testing.T) {
	collect := func(t *testing.T, client *Client, perPage, maxPages int) ([]model.CommitPage, error) {
		t.Helper()
		var pages []model.CommitPage
		for page, err := range client.CommitPages(context.Background(), testRepo, perPage, maxPages) {
			if err != nil {
				return pages, err
			}
			pages = append(pages, page)
		}
		return pages, nil
	}

	t.Run("stops after a short page", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			assert.Equal(t, "/repos/test/repo/commits", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("per_page"))
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page == 1 {
				fmt.Fprint(w, commitsPage(2, 0))
				return
			}
			fmt.Fprint(w, commitsPage(1, 2))
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 2, 10)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 1, pages[0].Number)
		assert.Len(t, pages[0].Commits, 2)
		assert.Len(t, pages[1].Commits, 1)
		assert.Equal(t, "sha2", pages[1].Commits[0].SHA)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
	})

	t.Run("stops at the page ceiling", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			fmt.Fprint(w, commitsPage(3, 0))
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 3, 2)

		require.NoError(t, err)
		assert.Len(t, pages, 2)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
	})

	t.Run("skips malformed records without aborting the page", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "["+
				commitJSON("good", "2024-01-02T12:00:00Z", 10)+","+
				commitJSON("nodate", "", 0)+","+
				`{"sha": "", "commit": {"committer": {"date": "2024-01-02T12:00:00Z"}}}`+
				"]")
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 30, 1)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 3, pages[0].Fetched)
		assert.Equal(t, 2, pages[0].Skipped)
		require.Len(t, pages[0].Commits, 1)

		c := pages[0].Commits[0]
		assert.Equal(t, "good", c.SHA)
		assert.Equal(t, time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), c.CommittedAt)
		assert.Equal(t, "https://github.com/test/repo/commit/good", c.URL)
		assert.Equal(t, "change good", c.Message)
	})

	t.Run("maps linked and unlinked identities", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "["+commitJSON("linked", "2024-01-02T12:00:00Z", 10)+"]")
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 30, 1)

		require.NoError(t, err)
		c := pages[0].Commits[0]
		assert.Equal(t, model.IdentityLinked, c.Author.Kind)
		assert.Equal(t, model.User{ID: 10, Login: "user10", Type: "User"}, c.Author.User)
		assert.Equal(t, "Dev linked", c.Author.Name)
		assert.Equal(t, model.IdentityUnlinked, c.Committer.Kind)
		assert.Equal(t, "GitHub", c.Committer.Name)
		assert.Equal(t, "noreply@github.com", c.Committer.Email)
	})

	t.Run("treats an empty repository as no history", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprintln(w, `{"message": "Git Repository is empty."}`)
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 30, 5)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Empty(t, pages[0].Commits)
	})

	t.Run("yields an upstream error and stops", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&requestCount, 1) == 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, commitsPage(2, 0))
		})
		client, _ := setupTestClient(t, handler)

		pages, err := collect(t, client, 2, 5)

		assert.Len(t, pages, 1)
		var fetchErr *custom_errors.UpstreamFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
	})
}
