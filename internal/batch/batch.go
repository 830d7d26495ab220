// Package batch fans a list of queries out over concurrent resolvers and
// reassembles the results in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/omnisearch/omnisearch/internal/resolve"
)

// DefaultConcurrency bounds simultaneous query resolutions when no explicit
// cap is configured. A zero or negative cap never means unlimited.
const DefaultConcurrency = 8

var (
	// ErrNoQueries rejects an empty input list.
	ErrNoQueries = errors.New("at least one query is required")
	// ErrEmptyQuery rejects blank query strings.
	ErrEmptyQuery = errors.New("query must not be empty")
)

// ResultBatch is the ordered output, one record per input query.
type ResultBatch []resolve.QueryResult

// QueryResolver produces one record for one query. resolve.Resolver is the
// production implementation.
type QueryResolver interface {
	Resolve(ctx context.Context, query string) resolve.QueryResult
}

// Orchestrator validates a query batch and runs it on a bounded worker pool.
type Orchestrator struct {
	Resolver QueryResolver
	// Concurrency caps in-flight resolutions. Zero means DefaultConcurrency.
	Concurrency int
}

// Run resolves all queries concurrently and returns results in input order
// regardless of completion order. Output length always equals input length;
// malformed input is the only error, surfaced before any network activity.
func (o *Orchestrator) Run(ctx context.Context, queries []string) (ResultBatch, error) {
	if len(queries) == 0 {
		return nil, ErrNoQueries
	}
	for i, q := range queries {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: index %d", ErrEmptyQuery, i)
		}
	}

	size := o.Concurrency
	if size <= 0 {
		size = DefaultConcurrency
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	defer pool.Release()

	out := make(ResultBatch, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		i, q := i, q
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			out[i] = o.Resolver.Resolve(ctx, q)
		}); err != nil {
			// Submission only fails when the pool is released; resolve
			// inline so the position is never missing from the batch.
			out[i] = o.Resolver.Resolve(ctx, q)
			wg.Done()
		}
	}
	wg.Wait()

	log.Info().Int("queries", len(queries)).Int("concurrency", size).Msg("batch resolved")
	return out, nil
}
