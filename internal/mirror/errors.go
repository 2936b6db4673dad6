package mirror

import "errors"

// ErrGalleryinfoNotFound is the sentinel the remote index repository
// returns when it has no record for a requested id. The integrity
// checker treats it specially (skip-list); the mirror pipeline lets it
// propagate.
var ErrGalleryinfoNotFound = errors.New("galleryinfo: not found")
