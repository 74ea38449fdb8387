// Package batch solves many queries concurrently while keeping results in
// input order.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/oakmoor/destrier/internal/query"
	"github.com/oakmoor/destrier/pkg/pathfind"
)

// Result pairs a query with its shortest path.
type Result struct {
	Query query.Query
	Path  pathfind.Path
}

// Runner solves query batches with a bounded number of workers.
type Runner struct {
	jobs int
}

// NewRunner returns a Runner that solves at most jobs queries at once.
// Values below 1 are treated as 1.
func NewRunner(jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{jobs: jobs}
}

// Solve computes the shortest path for every query. Results come back in
// the same order as the queries regardless of which worker finished first.
// The first failure cancels the remaining work and is returned with the
// failing query named.
func (r *Runner) Solve(ctx context.Context, queries []query.Query) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	results := make([]Result, len(queries))
	for i, q := range queries {
		i, q := i, q // per-iteration copies; required under the go 1.21 language version
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			path, err := pathfind.Shortest(q.Start, q.Goal)
			if err != nil {
				return fmt.Errorf("query %q: %w", q.String(), err)
			}
			results[i] = Result{Query: q, Path: path}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
