// Package status holds the mirroring engine's in-memory progress and
// mutual-exclusion flags.
package status

import "sync"

// Status is a snapshot of engine progress and mutual-exclusion flags. The
// zero value, as produced by Default, is a valid starting point.
type Status struct {
	IndexFiles             []string `json:"index_files"`
	TotalItems             int      `json:"total_items"`
	BatchTotal             int      `json:"batch_total"`
	BatchCompleted         int      `json:"batch_completed"`
	ItemsProcessed         int      `json:"items_processed"`
	IsMirroringGalleryinfo bool     `json:"is_mirroring_galleryinfo"`
	IsConvertingToInfo     bool     `json:"is_converting_to_info"`
	IsCheckingIntegrity    bool     `json:"is_checking_integrity"`
	LastCheckedAt          string   `json:"last_checked_at"`
	LastMirroredAt         string   `json:"last_mirrored_at"`
}

// Default returns a zero-valued Status.
func Default() Status {
	return Status{}
}

// reset zeroes the fields that belong to a single pipeline run.
func (s *Status) reset() {
	s.TotalItems = 0
	s.BatchTotal = 0
	s.BatchCompleted = 0
	s.ItemsProcessed = 0
}

// Recorder is the engine's single mutable Status value, guarded by one
// mutex. Per spec, no partial locking of individual fields: every
// mutation and every read takes the same lock, which is what makes
// invariant M1 (at most one phase flag set) easy to reason about.
type Recorder struct {
	mu sync.Mutex
	s  Status
}

// NewRecorder returns a Recorder seeded with the given index file names.
func NewRecorder(indexFiles []string) *Recorder {
	s := Default()
	s.IndexFiles = append([]string(nil), indexFiles...)
	return &Recorder{s: s}
}

// Snapshot returns a copy of the current status, safe to serialize or
// hand to an HTTP handler.
func (r *Recorder) Snapshot() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.s
	cp.IndexFiles = append([]string(nil), r.s.IndexFiles...)
	return cp
}

// Reset zeroes the per-run counters.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.reset()
}

// BeginRun sets the per-run totals at the start of a pipeline invocation.
func (r *Recorder) BeginRun(totalItems, batchTotal int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.TotalItems = totalItems
	r.s.BatchTotal = batchTotal
	r.s.BatchCompleted = 0
	r.s.ItemsProcessed = 0
}

// CompleteBatch records one finished batch of the given size.
func (r *Recorder) CompleteBatch(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.BatchCompleted++
	r.s.ItemsProcessed += size
}

// SetMirroringGalleryinfo sets/clears the galleryinfo-fetch phase flag.
func (r *Recorder) SetMirroringGalleryinfo(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.IsMirroringGalleryinfo = v
}

// SetConvertingToInfo sets/clears the info-derivation phase flag.
func (r *Recorder) SetConvertingToInfo(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.IsConvertingToInfo = v
}

// SetCheckingIntegrity sets/clears the integrity-check phase flag.
func (r *Recorder) SetCheckingIntegrity(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.IsCheckingIntegrity = v
}

// IsCheckingIntegrity reports the current integrity-check phase flag.
func (r *Recorder) IsCheckingIntegrity() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.IsCheckingIntegrity
}

// IsMirroring reports whether either mirror-stage phase flag is set.
func (r *Recorder) IsMirroring() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.IsMirroringGalleryinfo || r.s.IsConvertingToInfo
}

// SetLastCheckedAt records the wall time a mirror iteration started.
func (r *Recorder) SetLastCheckedAt(ts string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.LastCheckedAt = ts
}

// SetLastMirroredAt records the wall time of the last mirror iteration
// that performed local writes.
func (r *Recorder) SetLastMirroredAt(ts string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.LastMirroredAt = ts
}
