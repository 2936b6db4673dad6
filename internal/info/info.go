// Package info defines the document-store projection derived from a
// Galleryinfo.
package info

import "github.com/saebasol/sunflower/internal/galleryinfo"

// Info is a read-optimized projection of a Galleryinfo, stored in the
// document store for search-optimized reads.
type Info struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Language     string   `json:"language"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// FromGalleryinfo deterministically derives an Info from a Galleryinfo.
func FromGalleryinfo(g galleryinfo.Galleryinfo) Info {
	thumb := ""
	if len(g.Files) > 0 {
		thumb = g.Files[0].URL
	}
	return Info{
		ID:           g.ID,
		Title:        g.Title,
		Type:         g.Type,
		Language:     g.Language,
		Tags:         append([]string(nil), g.Tags...),
		ThumbnailURL: thumb,
	}
}
