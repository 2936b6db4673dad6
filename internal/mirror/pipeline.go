package mirror

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/saebasol/sunflower/internal/batch"
)

// processInJobs splits ids into chunks sized to the remote or local
// concurrency budget and runs worker across them with that many batches
// in flight at once, updating status as it goes. Batch size equals
// concurrency, per the source: each "concurrent job" is a single batch
// invocation, processed sequentially inside worker. After all batches
// complete, status is reset. An error from worker aborts outstanding
// batches and propagates.
func (e *Engine) processInJobs(ctx context.Context, ids []int64, worker func(context.Context, []int64) error, isRemote bool) error {
	size := e.cfg.LocalConcurrentSize
	if isRemote {
		size = e.cfg.RemoteConcurrentSize
	}

	chunks := batch.Split(ids, size)
	e.status.BeginRun(len(ids), len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(size)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			if err := worker(gctx, chunk); err != nil {
				return err
			}
			e.status.CompleteBatch(len(chunk))
			return nil
		})
	}

	err := g.Wait()
	e.status.Reset()
	return err
}
