package status_test

import (
	"testing"

	"github.com/saebasol/sunflower/internal/status"
)

func TestDefault(t *testing.T) {
	s := status.Default()
	if s.TotalItems != 0 || s.BatchTotal != 0 || s.BatchCompleted != 0 || s.ItemsProcessed != 0 {
		t.Fatalf("Default() counters not zero: %+v", s)
	}
	if s.IsMirroringGalleryinfo || s.IsConvertingToInfo || s.IsCheckingIntegrity {
		t.Fatalf("Default() flags not false: %+v", s)
	}
	if s.LastCheckedAt != "" || s.LastMirroredAt != "" {
		t.Fatalf("Default() timestamps not empty: %+v", s)
	}
}

func TestRecorderBeginRunAndCompleteBatch(t *testing.T) {
	r := status.NewRecorder([]string{"file1.js", "file2.js"})
	r.BeginRun(10, 4)
	r.CompleteBatch(3)
	r.CompleteBatch(3)

	snap := r.Snapshot()
	if snap.TotalItems != 10 || snap.BatchTotal != 4 {
		t.Fatalf("unexpected run totals: %+v", snap)
	}
	if snap.BatchCompleted != 2 || snap.ItemsProcessed != 6 {
		t.Fatalf("unexpected progress: %+v", snap)
	}
	if len(snap.IndexFiles) != 2 {
		t.Fatalf("IndexFiles not seeded: %+v", snap)
	}
}

func TestRecorderReset(t *testing.T) {
	r := status.NewRecorder(nil)
	r.BeginRun(5, 2)
	r.CompleteBatch(5)
	r.Reset()

	snap := r.Snapshot()
	if snap.TotalItems != 0 || snap.BatchTotal != 0 || snap.BatchCompleted != 0 || snap.ItemsProcessed != 0 {
		t.Fatalf("Reset() left nonzero counters: %+v", snap)
	}
}

func TestRecorderMutualExclusionFlags(t *testing.T) {
	r := status.NewRecorder(nil)
	r.SetMirroringGalleryinfo(true)
	if !r.IsMirroring() {
		t.Fatalf("IsMirroring() = false, want true")
	}
	if r.IsCheckingIntegrity() {
		t.Fatalf("IsCheckingIntegrity() = true, want false")
	}
	r.SetMirroringGalleryinfo(false)
	r.SetCheckingIntegrity(true)
	if r.IsMirroring() {
		t.Fatalf("IsMirroring() = true, want false")
	}
	if !r.IsCheckingIntegrity() {
		t.Fatalf("IsCheckingIntegrity() = false, want true")
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := status.NewRecorder([]string{"a"})
	snap := r.Snapshot()
	snap.IndexFiles[0] = "mutated"
	if r.Snapshot().IndexFiles[0] != "a" {
		t.Fatalf("Snapshot() leaked a mutable reference")
	}
}
