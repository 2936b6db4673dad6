package mirror

import (
	"context"
	"time"

	sglog "github.com/sourcegraph/log"

	"github.com/saebasol/sunflower/internal/clock"
)

// RunMirror drives PerformMirroring on a loop, skipping an iteration
// while an integrity check is in flight, sleeping cfg.MirroringDelay
// between iterations. With cfg.RunAsOnce it performs exactly one
// iteration (skipped or not) and returns.
func (e *Engine) RunMirror(ctx context.Context) {
	e.logMirror.Info("starting mirror task", sglog.Duration("delay", e.cfg.MirroringDelay))
	for {
		if !e.status.IsCheckingIntegrity() {
			e.status.SetLastCheckedAt(clock.Now())
			if err := e.PerformMirroring(ctx); err != nil {
				e.logMirror.Error("mirror iteration failed", sglog.Error(err))
			}
		}
		if e.cfg.RunAsOnce {
			return
		}
		if !sleep(ctx, e.cfg.MirroringDelay) {
			return
		}
	}
}

// RunPartialIntegrityCheck drives PerformPartialIntegrityCheck on a
// loop, skipping an iteration while the mirror stage is in flight.
func (e *Engine) RunPartialIntegrityCheck(ctx context.Context) {
	e.logIntegrity.Info("starting partial integrity task", sglog.Duration("delay", e.cfg.IntegrityPartialCheckDelay))
	for {
		if !e.status.IsMirroring() {
			if err := e.PerformPartialIntegrityCheck(ctx); err != nil {
				e.logIntegrity.Error("partial integrity check failed", sglog.Error(err))
			}
		}
		if e.cfg.RunAsOnce {
			return
		}
		if !sleep(ctx, e.cfg.IntegrityPartialCheckDelay) {
			return
		}
	}
}

// RunFullIntegrityCheck drives PerformFullIntegrityCheck on a loop,
// skipping an iteration while the mirror stage is in flight.
func (e *Engine) RunFullIntegrityCheck(ctx context.Context) {
	e.logIntegrity.Info("starting full integrity task", sglog.Duration("delay", e.cfg.IntegrityFullCheckDelay))
	for {
		if !e.status.IsMirroring() {
			if err := e.PerformFullIntegrityCheck(ctx); err != nil {
				e.logIntegrity.Error("full integrity check failed", sglog.Error(err))
			}
		}
		if e.cfg.RunAsOnce {
			return
		}
		if !sleep(ctx, e.cfg.IntegrityFullCheckDelay) {
			return
		}
	}
}

// sleep waits for d or ctx cancellation, reporting which happened.
// Returns false when the context was cancelled, so drivers can stop
// promptly instead of sleeping out a long delay during shutdown.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
