package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/remote"
)

func TestClientGetOK(t *testing.T) {
	want := galleryinfo.Galleryinfo{ID: 42, Title: "hello"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/galleries/42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	root, _ := url.Parse(srv.URL)
	c := remote.New(root, nil)

	got, err := c.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != want.ID || got.Title != want.Title {
		t.Fatalf("Get() = %+v, want %+v", got, want)
	}
}

func TestClientGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	root, _ := url.Parse(srv.URL)
	c := remote.New(root, nil)

	_, err := c.Get(context.Background(), 1)
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientAllIDsFromLocalFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.idx")
	p2 := filepath.Join(dir, "b.idx")
	if err := os.WriteFile(p1, []byte("1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p2, []byte("3\n4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root, _ := url.Parse("http://unused.invalid")
	c := remote.New(root, []string{p1, p2})

	ids, err := c.AllIDs(context.Background())
	if err != nil {
		t.Fatalf("AllIDs() error = %v", err)
	}
	want := []int64{1, 2, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("AllIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("AllIDs() = %v, want %v", ids, want)
		}
	}
}

func TestClientAllIDsPropagatesMissingFileError(t *testing.T) {
	root, _ := url.Parse("http://unused.invalid")
	c := remote.New(root, []string{"/nonexistent/path.idx"})

	if _, err := c.AllIDs(context.Background()); err == nil {
		t.Fatalf("AllIDs() error = nil, want error for missing file")
	}
}
