// Package batch fans per-tile work out across a worker pool.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/ndavid/robosat.pink/tile"
)

// Run calls fn for every tile in the worklist using the given number of
// workers, or one per CPU when workers < 1. The first error cancels the
// remaining work and is returned; fn must be safe to call concurrently.
func Run(ctx context.Context, workers int, worklist []tile.ID, fn func(context.Context, tile.ID) error) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tiles := make(chan tile.ID)
	go func() {
		defer close(tiles)
		for _, tileID := range worklist {
			select {
			case tiles <- tileID:
			case <-runCtx.Done():
				return
			}
		}
	}()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tileID := range tiles {
				if err := fn(runCtx, tileID); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
