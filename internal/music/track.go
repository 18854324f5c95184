// Package music defines the track and profile types shared by the catalog
// adapters and the recommendation resolver.
package music

import (
	"context"
	"errors"
)

// Sentinel errors returned by catalog adapters.
var (
	// ErrRateLimited is returned when the catalog rejects a request with HTTP 429.
	ErrRateLimited = errors.New("music service rate limited")

	// ErrUnauthorized is returned when catalog credentials are rejected.
	ErrUnauthorized = errors.New("music service rejected credentials")
)

// Track is a recommended song normalised into the shape sent to the browser.
// AlbumImage and PreviewURL are nil when the catalog has no value.
type Track struct {
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	AlbumImage  *string  `json:"album_image"`
	PreviewURL  *string  `json:"preview_url"`
	ExternalURL string   `json:"external_url"`
}

// Valid reports whether the track carries the required name and external link.
func (t Track) Valid() bool {
	return t.Name != "" && t.ExternalURL != ""
}

// Catalog searches a third-party music catalog.
type Catalog interface {
	// SearchTracks returns at most limit tracks matching the free-text query.
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)
	// Name identifies the catalog in logs and health output.
	Name() string
}

// Recommender is implemented by catalogs that can seed recommendations from
// a mood profile instead of a keyword search.
type Recommender interface {
	RecommendTracks(ctx context.Context, profile Profile, limit int) ([]Track, error)
}

// Normalize drops tracks without a name or link, replaces nil artist lists and
// truncates the result to limit entries. It always returns a non-nil slice.
func Normalize(tracks []Track, limit int) []Track {
	out := make([]Track, 0, min(len(tracks), max(limit, 0)))
	for _, t := range tracks {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !t.Valid() {
			continue
		}
		if t.Artists == nil {
			t.Artists = []string{}
		}
		out = append(out, t)
	}
	return out
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
