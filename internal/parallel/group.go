// Package parallel runs independent geometry tasks concurrently and joins
// them at a barrier, keeping results in deterministic task order.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// ForEach runs fn for every index in [0, n) across a bounded set of
// workers and waits for all of them. The returned slice holds each task's
// error at its own index, so one failing task never disturbs the others.
//
// Tasks must not share mutable state; determinism comes from each task
// writing only to its own slot. If ctx is already canceled when a task
// would start, the task is skipped and its slot records the context error.
func ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	if n <= 0 {
		return nil
	}

	errs := make([]error, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return errs
}
