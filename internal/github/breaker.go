// internal/github/breaker.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sony/gobreaker/v2"
)

const breakerName = "github-api"

// newBreaker opens after 5 consecutive upstream failures and tries again
// after 30 seconds. Client errors such as 404 do not count as failures.
func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker[*github.Response] {
	return gobreaker.NewCircuitBreaker[*github.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isBreakerSuccess,
	})
}

func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return false
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode < http.StatusInternalServerError
	}
	return false
}
