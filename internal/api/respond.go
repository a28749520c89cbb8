// internal/api/respond.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
)

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus *int   `json:"upstream_status,omitempty"`
}

// respondWithJSON writes payload as a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses. Errors
// outside it are logged and reported as a generic 500.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		validationErr *custom_errors.ValidationError
		formatErr     *custom_errors.ErrInvalidRepoFormat
		notFoundErr   *custom_errors.RepoNotFoundError
		upstreamErr   *custom_errors.UpstreamFetchError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &upstreamErr):
		logger.Warn("Upstream fetch failed", "path", r.URL.Path, "repo", upstreamErr.FullName, "upstream_status", upstreamErr.Status, "error", upstreamErr.Err)
		resp := errorResponse{Error: upstreamErr.Error()}
		if upstreamErr.Status != 0 {
			resp.UpstreamStatus = &upstreamErr.Status
		}
		respondWithJSON(w, upstreamErr.HTTPStatus(), resp)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Request timed out", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		logger.Error("Request failed", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
