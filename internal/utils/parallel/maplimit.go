// Package parallel provides order-preserving helpers for bounded concurrent work.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidLimit is returned when MapLimit is called with a limit below 1.
var ErrInvalidLimit = errors.New("parallel: limit must be at least 1")

// MapLimit applies fn to every element of items with at most limit calls in flight,
// and returns the results in the same order as items regardless of completion order.
//
// Workers share a single cursor: each one claims the next unclaimed index, runs fn on
// it and writes into the result slot at that index. When limit exceeds len(items) only
// len(items) workers are started.
//
// The first error returned by fn cancels the context passed to the remaining calls,
// stops further index claims and is returned (wrapped with the failing index). In that
// case the result slice is nil.
func MapLimit[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	workers := min(limit, len(items))
	var cursor atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1) - 1)
				if i >= len(items) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}

				r, err := fn(gctx, items[i])
				if err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				results[i] = r
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
