// Package tasks implements the Task Manager: it registers the engine's
// named periodic drivers as goroutines sharing one cancellable context,
// and waits for them to exit cleanly during shutdown.
package tasks

import (
	"context"

	"golang.org/x/sync/errgroup"

	sglog "github.com/sourcegraph/log"
)

// Manager owns the lifetime of a fixed set of named, long-running
// goroutines. Grounded on the teacher's signal-driven shutdown in
// cmd/zoekt-webserver/main.go, generalized from one HTTP server to N
// named drivers via errgroup.
type Manager struct {
	g      *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	log    sglog.Logger
}

// New constructs a Manager whose goroutines run until ctx is cancelled or
// Stop is called.
func New(ctx context.Context) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	return &Manager{
		g:      g,
		ctx:    ctx,
		cancel: cancel,
		log:    sglog.Scoped("tasks", "task manager"),
	}
}

// Register starts fn in its own goroutine under name. fn must return
// promptly once its context argument is cancelled.
func (m *Manager) Register(name string, fn func(ctx context.Context)) {
	m.log.Info("registering task", sglog.String("name", name))
	m.g.Go(func() error {
		fn(m.ctx)
		m.log.Info("task stopped", sglog.String("name", name))
		return nil
	})
}

// Stop cancels every registered task's context and blocks until all of
// them have returned.
func (m *Manager) Stop() error {
	m.cancel()
	return m.g.Wait()
}
