// internal/api/handler.go
package api

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/jahphetB/github-activity-analytics/internal/analytics"
	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/ingest"
	"github.com/jahphetB/github-activity-analytics/internal/manage"
)

type Ingester interface {
	Ingest(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

type Analytics interface {
	Summary(ctx context.Context) (*analytics.Summary, error)
	Timeseries(ctx context.Context, p analytics.TimeseriesParams) (*analytics.Timeseries, error)
	ListRepos(ctx context.Context, p analytics.ListReposParams) (*analytics.RepoListing, error)
	TopRepos(ctx context.Context, p analytics.TopReposParams) (*analytics.TopRepos, error)
	RepoActivity(ctx context.Context, p analytics.RepoActivityParams) (*analytics.RepoActivity, error)
	Contributors(ctx context.Context, p analytics.ContributorsParams) (*analytics.Contributors, error)
	RepoCommits(ctx context.Context, p analytics.RepoCommitsParams) (*analytics.RepoCommits, error)
}

type Manager interface {
	SetPinned(ctx context.Context, fullName string, pinned bool) (*manage.Flags, error)
	SetActive(ctx context.Context, fullName string, active bool) (*manage.Flags, error)
	Delete(ctx context.Context, fullName string) (*manage.Deleted, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) (int32, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	ingester  Ingester
	analytics Analytics
	manager   Manager
	db        Pinger
	logger    *slog.Logger
}

func NewHandler(ingester Ingester, analytics Analytics, manager Manager, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		ingester:  ingester,
		analytics: analytics,
		manager:   manager,
		db:        db,
		logger:    logger,
	}
}

// healthCheck reports ok once the database answers.
// GET /health
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	value, err := h.db.Ping(r.Context())
	if err != nil {
		h.logger.Error("Health check failed", "error", err)
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "db": nil})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"status": "ok", "db": value})
}

// ingestRepo fetches a repository and its commits from GitHub and stores them.
// Parameters come from a JSON body, the query string, or both; the query string wins.
// POST /ingest/repo
func (h *Handler) ingestRepo(w http.ResponseWriter, r *http.Request) {
	req := ingest.Request{PerPage: ingest.DefaultPerPage, MaxPages: ingest.DefaultMaxPages}

	if r.ContentLength != 0 && isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	}

	q := r.URL.Query()
	if v := q.Get("full_name"); v != "" {
		req.FullName = v
	}
	var err error
	if req.PerPage, err = queryInt(r, "per_page", req.PerPage); err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	if req.MaxPages, err = queryInt(r, "max_pages", req.MaxPages); err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.ingester.Ingest(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /api/summary
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.analytics.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /api/timeseries?days=N&full_name=owner/name
func (h *Handler) getTimeseries(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultDays)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.Timeseries(r.Context(), analytics.TimeseriesParams{
		Days:     days,
		FullName: r.URL.Query().Get("full_name"),
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /api/repos?search=&days=N&limit=N
func (h *Handler) listRepos(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultDays)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", analytics.DefaultListLimit)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.ListRepos(r.Context(), analytics.ListReposParams{
		Search: r.URL.Query().Get("search"),
		Days:   days,
		Limit:  limit,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// PATCH /api/repos/{owner}/{name}/pin?is_pinned=true|false
func (h *Handler) setPinned(w http.ResponseWriter, r *http.Request) {
	pinned, err := queryBool(r, "is_pinned")
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.manager.SetPinned(r.Context(), fullNameParam(r), pinned)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"updated": res})
}

// PATCH /api/repos/{owner}/{name}/active?is_active=true|false
func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, "is_active")
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.manager.SetActive(r.Context(), fullNameParam(r), active)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"updated": res})
}

// DELETE /api/repos/{owner}/{name}
func (h *Handler) deleteRepo(w http.ResponseWriter, r *http.Request) {
	res, err := h.manager.Delete(r.Context(), fullNameParam(r))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"deleted": res})
}

// GET /repos/top?days=N&limit=N
func (h *Handler) getTopRepos(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultDays)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", analytics.DefaultTopLimit)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.TopRepos(r.Context(), analytics.TopReposParams{Days: days, Limit: limit})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /repos/{owner}/{name}/activity?days=N
func (h *Handler) getRepoActivity(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultDays)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.RepoActivity(r.Context(), analytics.RepoActivityParams{FullName: fullNameParam(r), Days: days})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /repos/{owner}/{name}/contributors?days=N&limit=N
func (h *Handler) getContributors(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultDays)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", analytics.DefaultTopLimit)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.Contributors(r.Context(), analytics.ContributorsParams{FullName: fullNameParam(r), Days: days, Limit: limit})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// GET /repos/{owner}/{name}/commits?limit=N
func (h *Handler) getCommits(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", analytics.DefaultListLimit)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	res, err := h.analytics.RepoCommits(r.Context(), analytics.RepoCommitsParams{FullName: fullNameParam(r), Limit: limit})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func fullNameParam(r *http.Request) string {
	return chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &custom_errors.ValidationError{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

// queryBool reads a required boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, &custom_errors.ValidationError{Field: name, Message: "is required"}
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &custom_errors.ValidationError{Field: name, Message: "must be true or false"}
	}
	return v, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
