// Package galleryinfo defines the full upstream gallery record mirrored
// into the relational store.
package galleryinfo

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// File describes a single page of a gallery.
type File struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Galleryinfo is the authoritative record for one gallery identifier, as
// advertised by the remote index. It is opaque to the mirroring engine
// beyond its ID, its structural equality, and its derivation into an Info.
type Galleryinfo struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Language string    `json:"language"`
	Tags     []string  `json:"tags"`
	Files    []File    `json:"files"`
	Date     time.Time `json:"date"`
}

// Equal reports whether g and other are structurally identical. The
// integrity checker uses this, and only this, to decide whether local
// data has drifted from upstream.
func (g Galleryinfo) Equal(other Galleryinfo) bool {
	if g.ID != other.ID || g.Title != other.Title || g.Type != other.Type ||
		g.Language != other.Language || !g.Date.Equal(other.Date) {
		return false
	}
	if len(g.Tags) != len(other.Tags) {
		return false
	}
	for i := range g.Tags {
		if g.Tags[i] != other.Tags[i] {
			return false
		}
	}
	if len(g.Files) != len(other.Files) {
		return false
	}
	for i := range g.Files {
		if g.Files[i] != other.Files[i] {
			return false
		}
	}
	return true
}

// Diff renders a human-readable structural diff from local to remote, for
// the integrity checker's warning log. The diff is never consumed
// programmatically, only logged.
func Diff(remote, local Galleryinfo) string {
	return cmp.Diff(local, remote)
}
