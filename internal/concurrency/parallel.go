// Package concurrency holds the bounded worker pool used for fan-out work.
package concurrency

import (
	"context"
	"sync"
)

// ParallelOptions configures a fan-out.
type ParallelOptions struct {
	// MaxWorkers caps concurrent calls; <= 0 means the default of 10.
	MaxWorkers int
}

func DefaultOptions() ParallelOptions {
	return ParallelOptions{
		MaxWorkers: 10,
	}
}

func (o ParallelOptions) workers(n int) int {
	w := o.MaxWorkers
	if w <= 0 {
		w = 10
	}
	return min(w, n)
}

type outcome[R any] struct {
	index  int
	result R
	err    error
}

// ProcessParallel calls itemFunc for every item on at most MaxWorkers
// goroutines. Results come back in input order. Items not started before
// ctx is done keep the zero result and report no error; callers that care
// check ctx.Err().
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	results := make(chan outcome[R], len(items))
	var wg sync.WaitGroup
	for w := 0; w < opts.workers(len(items)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				r, err := itemFunc(ctx, i, items[i])
				results <- outcome[R]{index: i, result: r, err: err}
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make([]R, len(items))
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.result
	}
	return out, errs
}

// ForEach is ProcessParallel for side effects only.
func ForEach[T any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) error,
) []error {
	if len(items) == 0 {
		return nil
	}
	_, errs := ProcessParallel(ctx, items, opts, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, itemFunc(ctx, i, item)
	})
	return errs
}
