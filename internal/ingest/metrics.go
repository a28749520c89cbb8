// internal/ingest/metrics.go
package ingest

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
)

const (
	metricsNamespace = "analytics"
	metricsSubsystem = "ingest"
)

// Metrics counts ingestion runs and the commits they process. A nil *Metrics
// records nothing.
type Metrics struct {
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	commitsTotal *prometheus.CounterVec
}

// NewMetrics creates the ingestion collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Total number of repository ingestion runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Repository ingestion latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		commitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits_total",
			Help:      "Commit records processed by ingestion, by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.runsTotal, m.runDuration, m.commitsTotal)
	}
	return m
}

func (m *Metrics) observeRun(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(runOutcome(err)).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observePage(processed, inserted, skipped int) {
	if m == nil {
		return
	}
	m.commitsTotal.WithLabelValues("inserted").Add(float64(inserted))
	m.commitsTotal.WithLabelValues("duplicate").Add(float64(processed - inserted))
	m.commitsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

func runOutcome(err error) string {
	var (
		notFound *custom_errors.RepoNotFoundError
		upstream *custom_errors.UpstreamFetchError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "error"
	}
}
