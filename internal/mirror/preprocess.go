package mirror

import (
	"context"

	"github.com/saebasol/sunflower/internal/galleryinfo"
)

// preprocess wraps a remote galleryinfo fetch so the returned record's ID
// is forced to the requested id, defending against an upstream quirk
// where a fetch for id A returns a record whose id is B. The mirror must
// store records keyed by the identifier requested by the local index, not
// the id upstream claims, or the two identifier spaces diverge and the
// difference computer never converges.
//
// If fetch reports ErrGalleryinfoNotFound, that propagates unchanged.
func preprocess(ctx context.Context, fetch func(context.Context, int64) (galleryinfo.Galleryinfo, error), requestedID int64) (galleryinfo.Galleryinfo, error) {
	g, err := fetch(ctx, requestedID)
	if err != nil {
		return galleryinfo.Galleryinfo{}, err
	}
	g.ID = requestedID
	return g, nil
}
