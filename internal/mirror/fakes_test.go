package mirror_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/info"
	"github.com/saebasol/sunflower/internal/mirror"
)

// fakeRemote is an in-memory RemoteGalleryinfo.
type fakeRemote struct {
	mu      sync.Mutex
	records map[int64]galleryinfo.Galleryinfo
	// misrouteIDs maps a requested id to a different id: Get(requested)
	// returns the record at misrouteIDs[requested] but claims its own id
	// field is whatever is stored there, simulating the upstream quirk.
	misrouteIDs map[int64]int64
	notFound    map[int64]bool
	getCalls    []int64
}

func newFakeRemote(records ...galleryinfo.Galleryinfo) *fakeRemote {
	m := &fakeRemote{records: map[int64]galleryinfo.Galleryinfo{}, misrouteIDs: map[int64]int64{}, notFound: map[int64]bool{}}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (f *fakeRemote) Get(_ context.Context, id int64) (galleryinfo.Galleryinfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	if f.notFound[id] {
		return galleryinfo.Galleryinfo{}, mirror.ErrGalleryinfoNotFound
	}
	lookup := id
	if mis, ok := f.misrouteIDs[id]; ok {
		lookup = mis
	}
	g, ok := f.records[lookup]
	if !ok {
		return galleryinfo.Galleryinfo{}, mirror.ErrGalleryinfoNotFound
	}
	return g, nil
}

func (f *fakeRemote) AllIDs(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// fakeRelational is an in-memory RelationalGalleryinfo.
type fakeRelational struct {
	mu         sync.Mutex
	records    map[int64]galleryinfo.Galleryinfo
	addCalls   []int64
	deleteCall []int64
	failGet    error
}

func newFakeRelational(records ...galleryinfo.Galleryinfo) *fakeRelational {
	m := &fakeRelational{records: map[int64]galleryinfo.Galleryinfo{}}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (f *fakeRelational) Get(_ context.Context, id int64) (galleryinfo.Galleryinfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return galleryinfo.Galleryinfo{}, f.failGet
	}
	g, ok := f.records[id]
	if !ok {
		return galleryinfo.Galleryinfo{}, errors.New("not found")
	}
	return g, nil
}

func (f *fakeRelational) Add(_ context.Context, g galleryinfo.Galleryinfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, g.ID)
	f.records[g.ID] = g
	return nil
}

func (f *fakeRelational) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCall = append(f.deleteCall, id)
	delete(f.records, id)
	return nil
}

func (f *fakeRelational) AllIDs(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// fakeDocument is an in-memory DocumentInfo.
type fakeDocument struct {
	mu         sync.Mutex
	records    map[int64]info.Info
	addCalls   []int64
	deleteCall []int64
}

func newFakeDocument(records ...info.Info) *fakeDocument {
	m := &fakeDocument{records: map[int64]info.Info{}}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (f *fakeDocument) Get(_ context.Context, id int64) (info.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.records[id]
	if !ok {
		return info.Info{}, errors.New("not found")
	}
	return i, nil
}

func (f *fakeDocument) Add(_ context.Context, i info.Info) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, i.ID)
	f.records[i.ID] = i
	return nil
}

func (f *fakeDocument) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCall = append(f.deleteCall, id)
	delete(f.records, id)
	return nil
}

func (f *fakeDocument) AllIDs(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
