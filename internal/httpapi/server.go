// Package httpapi is the mirroring daemon's HTTP surface: status JSON, a
// static dashboard, a liveness probe, and the debug mux (pprof/metrics)
// grounded on the teacher's debugserver package.
package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/saebasol/sunflower/debugserver"
	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/info"
	"github.com/saebasol/sunflower/internal/status"
	"github.com/saebasol/sunflower/internal/storage/postgres"
	"github.com/saebasol/sunflower/internal/storage/redisdoc"
)

//go:embed index.html
var dashboardFS embed.FS

// Engine is the subset of *mirror.Engine the HTTP surface depends on.
type Engine interface {
	Status() status.Status
	Galleryinfo(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error)
	Info(ctx context.Context, id int64) (info.Info, error)
}

// NewMux builds the daemon's HTTP handler: the public status/dashboard
// routes plus the debug mux, sharing one *http.ServeMux as the teacher's
// web.NewMux + debugserver.AddHandlers do.
func NewMux(engine Engine, enablePprof bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(engine.Status())
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/galleryinfo/", func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r.URL.Path, "/galleryinfo/")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g, err := engine.Galleryinfo(r.Context(), id)
		if err != nil {
			if IsNotFound(err, postgres.ErrNotFound) {
				WriteNotFound(w, err)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(g)
	})

	mux.HandleFunc("/info/", func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r.URL.Path, "/info/")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		i, err := engine.Info(r.Context(), id)
		if err != nil {
			if IsNotFound(err, redisdoc.ErrNotFound) {
				WriteNotFound(w, err)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(i)
	})

	mux.Handle("/", http.FileServer(http.FS(dashboardFS)))

	debugserver.AddHandlers(mux, enablePprof)

	return mux
}

// idFromPath parses the trailing path segment after prefix as an id.
func idFromPath(path, prefix string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(path, prefix), 10, 64)
}

// WriteNotFound writes the spec's `404 {"message": "..."}` body for a
// galleryinfo/info lookup that came back not-found.
func WriteNotFound(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

// IsNotFound reports whether err is one of the store-level not-found
// sentinels the HTTP surface translates to a 404.
func IsNotFound(err error, sentinels ...error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
