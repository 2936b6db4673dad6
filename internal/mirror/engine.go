// Package mirror implements the Mirroring Engine: the three cooperating
// periodic tasks (mirror, partial integrity check, full integrity check),
// the difference computation, the batched concurrent fetch/store
// pipeline, the identity-preprocessing rule, and the integrity-check
// state machine.
package mirror

import (
	"context"
	"sync"
	"time"

	sglog "github.com/sourcegraph/log"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/info"
	"github.com/saebasol/sunflower/internal/status"
)

// Config holds the tunable knobs the engine is constructed with. The
// engine receives a fully-populated Config; it never loads configuration
// itself.
type Config struct {
	// IndexFiles is the remote index file list, copied verbatim into
	// status.
	IndexFiles []string

	// RemoteConcurrentSize is both the batch size and the concurrency
	// budget used against the remote index. Default 50.
	RemoteConcurrentSize int

	// LocalConcurrentSize is both the batch size and the concurrency
	// budget used against the local stores. Default 25.
	LocalConcurrentSize int

	// IntegrityPartialCheckRangeSize is reserved, mirroring the source's
	// unused configuration knob of the same name.
	IntegrityPartialCheckRangeSize int

	// MirroringDelay, IntegrityPartialCheckDelay and
	// IntegrityFullCheckDelay are the sleep durations between iterations
	// of the corresponding periodic driver.
	MirroringDelay             time.Duration
	IntegrityPartialCheckDelay time.Duration
	IntegrityFullCheckDelay    time.Duration

	// RunAsOnce, when true, makes every driver perform exactly one
	// iteration and return.
	RunAsOnce bool
}

// DefaultConfig returns a Config populated with the source's documented
// defaults.
func DefaultConfig() Config {
	return Config{
		RemoteConcurrentSize:           50,
		LocalConcurrentSize:            25,
		IntegrityPartialCheckRangeSize: 100,
	}
}

// Engine is the Mirroring Engine. It is constructed once per process with
// three repository handles and a Config, and owns the Status Record and
// the skip-list for the lifetime of the process.
type Engine struct {
	cfg Config

	remote     RemoteGalleryinfo
	relational RelationalGalleryinfo
	document   DocumentInfo

	status *status.Recorder

	skipMu sync.Mutex
	skip   map[int64]struct{}

	logMirror    sglog.Logger
	logIntegrity sglog.Logger
}

// New constructs an Engine. cfg.IndexFiles is copied into the initial
// Status Record; cfg.RemoteConcurrentSize/LocalConcurrentSize are applied
// with the package defaults when zero or negative.
func New(remote RemoteGalleryinfo, relational RelationalGalleryinfo, document DocumentInfo, cfg Config) *Engine {
	if cfg.RemoteConcurrentSize <= 0 {
		cfg.RemoteConcurrentSize = DefaultConfig().RemoteConcurrentSize
	}
	if cfg.LocalConcurrentSize <= 0 {
		cfg.LocalConcurrentSize = DefaultConfig().LocalConcurrentSize
	}

	return &Engine{
		cfg:          cfg,
		remote:       remote,
		relational:   relational,
		document:     document,
		status:       status.NewRecorder(cfg.IndexFiles),
		skip:         make(map[int64]struct{}),
		logMirror:    sglog.Scoped("mirror", "mirroring engine"),
		logIntegrity: sglog.Scoped("integrity", "integrity checker"),
	}
}

// Status returns a snapshot of the Status Record, safe for JSON
// serialization by the HTTP surface.
func (e *Engine) Status() status.Status {
	return e.status.Snapshot()
}

// Galleryinfo returns the relational store's record for id, for the HTTP
// surface's per-id lookup route. It bypasses the skip-list and the
// remote index entirely; whatever the relational store returns for a
// miss propagates unchanged.
func (e *Engine) Galleryinfo(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error) {
	return e.relational.Get(ctx, id)
}

// Info returns the document store's projection for id, for the HTTP
// surface's per-id lookup route.
func (e *Engine) Info(ctx context.Context, id int64) (info.Info, error) {
	return e.document.Get(ctx, id)
}

func (e *Engine) addToSkipList(id int64) {
	e.skipMu.Lock()
	defer e.skipMu.Unlock()
	e.skip[id] = struct{}{}
}

func (e *Engine) isSkipped(id int64) bool {
	e.skipMu.Lock()
	defer e.skipMu.Unlock()
	_, ok := e.skip[id]
	return ok
}

// clearSkipList empties the skip-list. Called only by the partial
// integrity check, on unhandled-error recovery.
func (e *Engine) clearSkipList() {
	e.skipMu.Lock()
	defer e.skipMu.Unlock()
	e.skip = make(map[int64]struct{})
}

// filterSkipped removes skip-listed ids from ids, preserving order.
func (e *Engine) filterSkipped(ids []int64) []int64 {
	e.skipMu.Lock()
	defer e.skipMu.Unlock()
	if len(e.skip) == 0 {
		return ids
	}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, skipped := e.skip[id]; !skipped {
			out = append(out, id)
		}
	}
	return out
}
