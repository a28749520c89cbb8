// internal/api/handler_test.go
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahphetB/github-activity-analytics/internal/analytics"
	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/ingest"
	"github.com/jahphetB/github-activity-analytics/internal/manage"
)

type fakeIngester struct {
	got ingest.Request
	res *ingest.Result
	err error
}

func (f *fakeIngester) Ingest(_ context.Context, req ingest.Request) (*ingest.Result, error) {
	f.got = req
	return f.res, f.err
}

type fakeAnalytics struct {
	err error

	timeseries   analytics.TimeseriesParams
	listRepos    analytics.ListReposParams
	topRepos     analytics.TopReposParams
	activity     analytics.RepoActivityParams
	contributors analytics.ContributorsParams
	commits      analytics.RepoCommitsParams
}

func (f *fakeAnalytics) Summary(context.Context) (*analytics.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &analytics.Summary{Totals: analytics.Totals{Repos: 1, Commits: 30, Commits7d: 2, Commits30d: 12}}, nil
}

func (f *fakeAnalytics) Timeseries(_ context.Context, p analytics.TimeseriesParams) (*analytics.Timeseries, error) {
	f.timeseries = p
	if f.err != nil {
		return nil, f.err
	}
	return &analytics.Timeseries{Days: p.Days, Scope: analytics.Scope{ActiveOnly: true}}, nil
}

func (f *fakeAnalytics) ListRepos(_ context.Context, p analytics.ListReposParams) (*analytics.RepoListing, error) {
	f.listRepos = p
	return &analytics.RepoListing{Days: p.Days, Limit: p.Limit, Results: []analytics.RepoRow{}}, f.err
}

func (f *fakeAnalytics) TopRepos(_ context.Context, p analytics.TopReposParams) (*analytics.TopRepos, error) {
	f.topRepos = p
	return &analytics.TopRepos{Days: p.Days, Limit: p.Limit}, f.err
}

func (f *fakeAnalytics) RepoActivity(_ context.Context, p analytics.RepoActivityParams) (*analytics.RepoActivity, error) {
	f.activity = p
	if f.err != nil {
		return nil, f.err
	}
	return &analytics.RepoActivity{Repo: p.FullName, Days: p.Days}, nil
}

func (f *fakeAnalytics) Contributors(_ context.Context, p analytics.ContributorsParams) (*analytics.Contributors, error) {
	f.contributors = p
	if f.err != nil {
		return nil, f.err
	}
	return &analytics.Contributors{Repo: p.FullName, Days: p.Days, Limit: p.Limit, Results: []analytics.ContributorCount{
		{Contributor: "alice", CommitCount: 2},
	}}, nil
}

func (f *fakeAnalytics) RepoCommits(_ context.Context, p analytics.RepoCommitsParams) (*analytics.RepoCommits, error) {
	f.commits = p
	return &analytics.RepoCommits{Repo: p.FullName, Limit: p.Limit}, f.err
}

type fakeManager struct {
	fullName string
	flag     bool
	err      error
}

func (f *fakeManager) SetPinned(_ context.Context, fullName string, pinned bool) (*manage.Flags, error) {
	f.fullName, f.flag = fullName, pinned
	if f.err != nil {
		return nil, f.err
	}
	return &manage.Flags{FullName: fullName, IsActive: true, IsPinned: pinned}, nil
}

func (f *fakeManager) SetActive(_ context.Context, fullName string, active bool) (*manage.Flags, error) {
	f.fullName, f.flag = fullName, active
	if f.err != nil {
		return nil, f.err
	}
	return &manage.Flags{FullName: fullName, IsActive: active}, nil
}

func (f *fakeManager) Delete(_ context.Context, fullName string) (*manage.Deleted, error) {
	f.fullName = fullName
	if f.err != nil {
		return nil, f.err
	}
	return &manage.Deleted{ID: 7, FullName: fullName, CommitsDeleted: 3}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) (int32, error) { return 1, f.err }

type testServer struct {
	router    http.Handler
	ingester  *fakeIngester
	analytics *fakeAnalytics
	manager   *fakeManager
	registry  *prometheus.Registry
}

func newTestServer(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	ts := &testServer{
		ingester:  &fakeIngester{},
		analytics: &fakeAnalytics{},
		manager:   &fakeManager{},
		registry:  prometheus.NewRegistry(),
	}
	cfg.Registerer = ts.registry
	cfg.Gatherer = ts.registry
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(ts.ingester, ts.analytics, ts.manager, fakePinger{}, logger)
	ts.router = NewRouter(h, cfg)
	return ts
}

func (ts *testServer) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealthCheck(t *testing.T) {
	t.Run("reports the database round trip", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","db":1}`, rec.Body.String())
	})

	t.Run("reports an unreachable database", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		h := NewHandler(&fakeIngester{}, &fakeAnalytics{}, &fakeManager{}, fakePinger{err: errors.New("down")}, logger)
		router := NewRouter(h, RouterConfig{Registerer: prometheus.NewRegistry()})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestIngestRepo(t *testing.T) {
	t.Run("applies defaults and query parameters", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})
		ts.ingester.res = &ingest.Result{Repo: "octocat/Hello-World", RepoID: 1296269, CommitsFetched: 30, PerPage: 30, MaxPages: 1}

		rec := ts.do(http.MethodPost, "/ingest/repo?full_name=octocat/Hello-World", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ingest.Request{FullName: "octocat/Hello-World", PerPage: 30, MaxPages: 1}, ts.ingester.got)
		body := decode(t, rec)
		assert.Equal(t, "octocat/Hello-World", body["repo"])
		assert.Equal(t, float64(1296269), body["repo_id"])
		assert.Equal(t, float64(30), body["commits_fetched"])
		assert.Equal(t, float64(30), body["per_page"])
		assert.Equal(t, float64(1), body["max_pages"])
	})

	t.Run("accepts a JSON body", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})
		ts.ingester.res = &ingest.Result{}

		rec := ts.do(http.MethodPost, "/ingest/repo?max_pages=3", strings.NewReader(`{"full_name":"golang/go","per_page":100}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ingest.Request{FullName: "golang/go", PerPage: 100, MaxPages: 3}, ts.ingester.got)
	})

	t.Run("rejects a non integer page size", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodPost, "/ingest/repo?full_name=golang/go&per_page=lots", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "per_page: must be an integer", decode(t, rec)["error"])
		assert.Empty(t, ts.ingester.got.FullName)
	})

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		upstreamStatus any
	}{
		{"validation error", &custom_errors.ValidationError{Field: "full_name", Message: "must be in 'owner/name' format"}, http.StatusBadRequest, nil},
		{"missing upstream", &custom_errors.RepoNotFoundError{FullName: "nobody/nothing", Upstream: true}, http.StatusNotFound, nil},
		{"upstream failure", &custom_errors.UpstreamFetchError{FullName: "golang/go", Status: 500, Err: errors.New("boom")}, http.StatusBadGateway, float64(500)},
		{"upstream unreachable", &custom_errors.UpstreamFetchError{FullName: "golang/go", Err: errors.New("circuit breaker is open")}, http.StatusServiceUnavailable, nil},
		{"unexpected failure", errors.New("pool closed"), http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run("maps "+tt.name, func(t *testing.T) {
			ts := newTestServer(t, RouterConfig{})
			ts.ingester.err = tt.err

			rec := ts.do(http.MethodPost, "/ingest/repo?full_name=golang/go", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.upstreamStatus, body["upstream_status"])
		})
	}

	t.Run("hides internal error details", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})
		ts.ingester.err = errors.New("password authentication failed for user postgres")

		rec := ts.do(http.MethodPost, "/ingest/repo?full_name=golang/go", nil)

		assert.Equal(t, "Internal server error", decode(t, rec)["error"])
	})

	t.Run("rate limits per client", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})
		ts.ingester.res = &ingest.Result{}

		first := ts.do(http.MethodPost, "/ingest/repo?full_name=golang/go", nil)
		second := ts.do(http.MethodPost, "/ingest/repo?full_name=golang/go", nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}

func TestAnalyticsRoutes(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/api/summary", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"totals": {"repos": 1, "commits": 30, "commits_7d": 2, "commits_30d": 12},
			"last_ingested_at": null,
			"top_repo_30d": null,
			"most_active_day_30d": null
		}`, rec.Body.String())
	})

	t.Run("timeseries defaults and scope", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/api/timeseries", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.TimeseriesParams{Days: 30}, ts.analytics.timeseries)

		rec = ts.do(http.MethodGet, "/api/timeseries?days=7&full_name=golang/go", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.TimeseriesParams{Days: 7, FullName: "golang/go"}, ts.analytics.timeseries)
	})

	t.Run("repo listing", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/api/repos?search=go&days=90", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.ListReposParams{Search: "go", Days: 90, Limit: 50}, ts.analytics.listRepos)
	})

	t.Run("top repos", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/repos/top?days=365&limit=5", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.TopReposParams{Days: 365, Limit: 5}, ts.analytics.topRepos)
	})

	t.Run("repo activity", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/repos/fastapi/fastapi/activity?days=365", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.RepoActivityParams{FullName: "fastapi/fastapi", Days: 365}, ts.analytics.activity)
	})

	t.Run("contributors", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/repos/fastapi/fastapi/contributors?days=365&limit=10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.ContributorsParams{FullName: "fastapi/fastapi", Days: 365, Limit: 10}, ts.analytics.contributors)
		assert.JSONEq(t, `{"repo":"fastapi/fastapi","days":365,"limit":10,"results":[{"contributor":"alice","commit_count":2}]}`, rec.Body.String())
	})

	t.Run("commits", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodGet, "/repos/fastapi/fastapi/commits", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, analytics.RepoCommitsParams{FullName: "fastapi/fastapi", Limit: 50}, ts.analytics.commits)
	})

	t.Run("unknown repository", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})
		ts.analytics.err = &custom_errors.RepoNotFoundError{FullName: "nobody/nothing"}

		rec := ts.do(http.MethodGet, "/repos/nobody/nothing/activity", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "repository nobody/nothing not found", decode(t, rec)["error"])
	})
}

func TestManagementRoutes(t *testing.T) {
	t.Run("pin", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodPatch, "/api/repos/golang/go/pin?is_pinned=true", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "golang/go", ts.manager.fullName)
		assert.True(t, ts.manager.flag)
		assert.JSONEq(t, `{"updated":{"full_name":"golang/go","is_active":true,"is_pinned":true}}`, rec.Body.String())
	})

	t.Run("pin requires the flag", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodPatch, "/api/repos/golang/go/pin", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, ts.manager.fullName)
	})

	t.Run("active rejects a non boolean", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodPatch, "/api/repos/golang/go/active?is_active=maybe", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pause", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodPatch, "/api/repos/golang/go/active?is_active=false", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, ts.manager.flag)
	})

	t.Run("delete", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})

		rec := ts.do(http.MethodDelete, "/api/repos/golang/go", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deleted":{"id":7,"full_name":"golang/go","commits_deleted":3}}`, rec.Body.String())
	})

	t.Run("delete unknown repository", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{})
		ts.manager.err = &custom_errors.RepoNotFoundError{FullName: "nobody/nothing"}

		rec := ts.do(http.MethodDelete, "/api/repos/nobody/nothing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, RouterConfig{CORSAllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/repos/golang/go/pin", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, RouterConfig{})
	ts.analytics.err = &custom_errors.RepoNotFoundError{FullName: "nobody/nothing"}

	ts.do(http.MethodGet, "/repos/nobody/nothing/activity", nil)
	rec := ts.do(http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `analytics_http_requests_total{method="GET",route="/repos/{owner}/{name}/activity",status_class="4xx"} 1`)

	metrics, err := ts.registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, metrics)
	count, err := testutil.GatherAndCount(ts.registry, "analytics_http_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
