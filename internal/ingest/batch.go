// internal/ingest/batch.go
package ingest

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of ingesting one repository of a batch. Exactly one
// of Result and Err is set.
type Outcome struct {
	FullName string
	Result   *Result
	Err      error
}

// IngestAll ingests the repositories concurrently, at most concurrency at a
// time. A failed repository is logged and reported in its Outcome without
// stopping the rest of the batch. Outcomes keep the order of repos.
func (i *Ingester) IngestAll(ctx context.Context, repos []string, perPage, maxPages, concurrency int) []Outcome {
	if concurrency < 1 {
		concurrency = 1
	}
	i.logger.Info("Starting ingestion batch", "repos", len(repos), "concurrency", concurrency)

	outcomes := make([]Outcome, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for idx, name := range repos {
		g.Go(func() error {
			out := &outcomes[idx]
			out.FullName = name
			if err := gctx.Err(); err != nil {
				out.Err = err
				return nil
			}

			out.Result, out.Err = i.Ingest(gctx, Request{FullName: name, PerPage: perPage, MaxPages: maxPages})
			if out.Err != nil && !errors.Is(out.Err, context.Canceled) {
				i.logger.Error("Failed to ingest repository", "repo", name, "error", out.Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
		}
	}
	i.logger.Info("Ingestion batch finished", "repos", len(repos), "failed", failed)
	return outcomes
}
