package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/info"
)

func TestPreprocessOverridesID(t *testing.T) {
	fetch := func(context.Context, int64) (galleryinfo.Galleryinfo, error) {
		return galleryinfo.Galleryinfo{ID: 999, Title: "whatever"}, nil
	}
	got, err := preprocess(context.Background(), fetch, 12345)
	if err != nil {
		t.Fatalf("preprocess() error = %v", err)
	}
	if got.ID != 12345 {
		t.Fatalf("preprocess().ID = %d, want 12345", got.ID)
	}
}

func TestPreprocessPropagatesNotFound(t *testing.T) {
	fetch := func(context.Context, int64) (galleryinfo.Galleryinfo, error) {
		return galleryinfo.Galleryinfo{}, ErrGalleryinfoNotFound
	}
	_, err := preprocess(context.Background(), fetch, 1)
	if !errors.Is(err, ErrGalleryinfoNotFound) {
		t.Fatalf("preprocess() error = %v, want ErrGalleryinfoNotFound", err)
	}
}

func TestProcessInJobsCompletesAndResets(t *testing.T) {
	e := New(nil, nil, nil, DefaultConfig())
	ids := []int64{1, 2, 3, 4, 5}

	var processed []int64
	err := e.processInJobs(context.Background(), ids, func(_ context.Context, batch []int64) error {
		processed = append(processed, batch...)
		return nil
	}, true)
	if err != nil {
		t.Fatalf("processInJobs() error = %v", err)
	}

	snap := e.Status()
	if snap.TotalItems != 0 || snap.BatchTotal != 0 || snap.BatchCompleted != 0 || snap.ItemsProcessed != 0 {
		t.Fatalf("status not reset after run: %+v", snap)
	}
	if len(processed) != len(ids) {
		t.Fatalf("processed %d items, want %d", len(processed), len(ids))
	}
}

func TestProcessInJobsSingleBatchWhenUnderRemoteBudget(t *testing.T) {
	e := New(nil, nil, nil, DefaultConfig())
	ids := []int64{1, 2, 3, 4, 5}

	var batches [][]int64
	err := e.processInJobs(context.Background(), ids, func(_ context.Context, batch []int64) error {
		batches = append(batches, batch)
		return nil
	}, true)
	if err != nil {
		t.Fatalf("processInJobs() error = %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
}

func TestProcessInJobsTwoBatchesOverLocalBudget(t *testing.T) {
	e := New(nil, nil, nil, DefaultConfig())
	ids := make([]int64, 50)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	var batchCount int
	err := e.processInJobs(context.Background(), ids, func(_ context.Context, _ []int64) error {
		batchCount++
		return nil
	}, false)
	if err != nil {
		t.Fatalf("processInJobs() error = %v", err)
	}
	if batchCount != 2 {
		t.Fatalf("got %d batches, want 2", batchCount)
	}
}

func TestProcessInJobsPropagatesWorkerError(t *testing.T) {
	e := New(nil, nil, nil, DefaultConfig())
	boom := errors.New("boom")
	err := e.processInJobs(context.Background(), []int64{1}, func(context.Context, []int64) error {
		return boom
	}, true)
	if !errors.Is(err, boom) {
		t.Fatalf("processInJobs() error = %v, want %v", err, boom)
	}
}

func TestRunMirrorSkipsWhileIntegrityCheckRunning(t *testing.T) {
	remote := &recordingRemote{}
	e := New(remote, &noopRelational{}, &noopDocument{}, Config{RunAsOnce: true})
	e.status.SetCheckingIntegrity(true)

	e.RunMirror(context.Background())

	if remote.allIDsCalls != 0 {
		t.Fatalf("AllIDs called %d times, want 0 while integrity check is running", remote.allIDsCalls)
	}
}

func TestRunIntegrityChecksSkipWhileMirroring(t *testing.T) {
	document := &noopDocument{}
	e := New(&recordingRemote{}, &noopRelational{}, document, Config{RunAsOnce: true})
	e.status.SetMirroringGalleryinfo(true)

	e.RunPartialIntegrityCheck(context.Background())
	e.RunFullIntegrityCheck(context.Background())

	if document.allIDsCalls != 0 {
		t.Fatalf("document.AllIDs called %d times, want 0 while mirroring is in progress", document.allIDsCalls)
	}
}

type recordingRemote struct{ allIDsCalls int }

func (r *recordingRemote) Get(context.Context, int64) (galleryinfo.Galleryinfo, error) {
	return galleryinfo.Galleryinfo{}, nil
}
func (r *recordingRemote) AllIDs(context.Context) ([]int64, error) {
	r.allIDsCalls++
	return nil, nil
}

type noopRelational struct{}

func (noopRelational) Get(context.Context, int64) (galleryinfo.Galleryinfo, error) {
	return galleryinfo.Galleryinfo{}, nil
}
func (noopRelational) Add(context.Context, galleryinfo.Galleryinfo) error { return nil }
func (noopRelational) Delete(context.Context, int64) error                { return nil }
func (noopRelational) AllIDs(context.Context) ([]int64, error)            { return nil, nil }

type noopDocument struct{ allIDsCalls int }

func (d *noopDocument) Get(context.Context, int64) (info.Info, error) {
	return info.Info{}, nil
}
func (d *noopDocument) Add(context.Context, info.Info) error { return nil }
func (d *noopDocument) Delete(context.Context, int64) error { return nil }
func (d *noopDocument) AllIDs(context.Context) ([]int64, error) {
	d.allIDsCalls++
	return nil, nil
}

func TestSkipListFilterAndClear(t *testing.T) {
	e := New(nil, nil, nil, DefaultConfig())
	e.addToSkipList(2)
	e.addToSkipList(4)

	got := e.filterSkipped([]int64{1, 2, 3, 4, 5})
	want := []int64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("filterSkipped() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filterSkipped() = %v, want %v", got, want)
		}
	}

	e.clearSkipList()
	if e.isSkipped(2) {
		t.Fatalf("isSkipped(2) = true after clearSkipList()")
	}
}
