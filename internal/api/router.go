// internal/api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig carries the transport settings of the HTTP surface.
type RouterConfig struct {
	CORSAllowedOrigins []string
	// RateLimitRequests per RateLimitWindow and client IP on the ingest
	// endpoint. Zero disables the limit.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	Registerer        prometheus.Registerer
	Gatherer          prometheus.Gatherer
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	metrics := newHTTPMetrics(cfg.Registerer)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(metrics.middleware)
	r.Use(tracingMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", h.healthCheck)
	r.Handle("/metrics", metricsHandler(cfg.Gatherer))

	r.With(rateLimit(cfg)).Post("/ingest/repo", h.ingestRepo)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.getSummary)
		r.Get("/timeseries", h.getTimeseries)
		r.Get("/repos", h.listRepos)
		r.Patch("/repos/{owner}/{name}/pin", h.setPinned)
		r.Patch("/repos/{owner}/{name}/active", h.setActive)
		r.Delete("/repos/{owner}/{name}", h.deleteRepo)
	})

	r.Route("/repos", func(r chi.Router) {
		r.Get("/top", h.getTopRepos)
		r.Get("/{owner}/{name}/activity", h.getRepoActivity)
		r.Get("/{owner}/{name}/contributors", h.getContributors)
		r.Get("/{owner}/{name}/commits", h.getCommits)
	})

	return r
}

func rateLimit(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondWithError(w, http.StatusTooManyRequests, "Too many ingestion requests, retry later")
		}),
	)
}
