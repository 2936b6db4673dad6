package mirror

import (
	"context"

	"github.com/saebasol/sunflower/internal/galleryinfo"
	"github.com/saebasol/sunflower/internal/info"
)

// RemoteGalleryinfo is the upstream gallery index the engine mirrors
// from. Get returns ErrGalleryinfoNotFound when the upstream has no
// record for id.
type RemoteGalleryinfo interface {
	Get(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error)
	AllIDs(ctx context.Context) ([]int64, error)
}

// RelationalGalleryinfo is the local store of full Galleryinfo records.
type RelationalGalleryinfo interface {
	Get(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error)
	Add(ctx context.Context, g galleryinfo.Galleryinfo) error
	Delete(ctx context.Context, id int64) error
	AllIDs(ctx context.Context) ([]int64, error)
}

// DocumentInfo is the local store of derived Info projections.
type DocumentInfo interface {
	Get(ctx context.Context, id int64) (info.Info, error)
	Add(ctx context.Context, i info.Info) error
	Delete(ctx context.Context, id int64) error
	AllIDs(ctx context.Context) ([]int64, error)
}
