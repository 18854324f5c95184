package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/justestif/go-moodtunes/internal/music"
)

// maxLimit is the largest page size accepted by the search and
// recommendations endpoints.
const maxLimit = 50

// SearchTracks searches the catalog for tracks matching query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]music.Track, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, c.requestOptions(limit)...)
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", mapError(err))
	}
	if result.Tracks == nil {
		return []music.Track{}, nil
	}

	tracks := make([]music.Track, 0, len(result.Tracks.Tracks))
	for _, ft := range result.Tracks.Tracks {
		tracks = append(tracks, convertTrack(ft.SimpleTrack, ft.Album))
	}
	return tracks, nil
}

// RecommendTracks asks for tracks seeded by the profile genres and tuned to
// its target audio attributes.
func (c *Client) RecommendTracks(ctx context.Context, profile music.Profile, limit int) ([]music.Track, error) {
	// The endpoint accepts at most five seeds.
	genres := profile.Genres
	if len(genres) > 5 {
		genres = genres[:5]
	}

	attrs := spotify.NewTrackAttributes().
		TargetDanceability(profile.Danceability).
		TargetEnergy(profile.Energy).
		TargetValence(profile.Valence)
	if profile.MinTempo > 0 {
		attrs = attrs.MinTempo(profile.MinTempo)
	}
	if profile.MaxTempo > 0 {
		attrs = attrs.MaxTempo(profile.MaxTempo)
	}

	recs, err := c.api.GetRecommendations(ctx, spotify.Seeds{Genres: genres}, attrs, c.requestOptions(limit)...)
	if err != nil {
		return nil, fmt.Errorf("getting recommendations: %w", mapError(err))
	}

	tracks := make([]music.Track, 0, len(recs.Tracks))
	for _, st := range recs.Tracks {
		tracks = append(tracks, convertTrack(st, st.Album))
	}
	return tracks, nil
}

func (c *Client) requestOptions(limit int) []spotify.RequestOption {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	opts := []spotify.RequestOption{spotify.Limit(limit)}
	if c.market != "" {
		opts = append(opts, spotify.Market(c.market))
	}
	return opts
}

// convertTrack converts a Spotify track into a music.Track. The first album
// image is the largest.
func convertTrack(t spotify.SimpleTrack, album spotify.SimpleAlbum) music.Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	var image *string
	if len(album.Images) > 0 {
		image = music.StringPtr(album.Images[0].URL)
	}

	return music.Track{
		Name:        t.Name,
		Artists:     artists,
		Album:       album.Name,
		AlbumImage:  image,
		PreviewURL:  music.StringPtr(t.PreviewURL),
		ExternalURL: t.ExternalURLs["spotify"],
	}
}

// mapError translates API status codes into music sentinel errors.
func mapError(err error) error {
	status := 0
	var apiErr spotify.Error
	var apiErrPtr *spotify.Error
	var tokenErr *oauth2.RetrieveError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.As(err, &apiErrPtr):
		status = apiErrPtr.Status
	case errors.As(err, &tokenErr) && tokenErr.Response != nil:
		status = tokenErr.Response.StatusCode
	case strings.Contains(err.Error(), fmt.Sprintf("HTTP %d", http.StatusTooManyRequests)):
		status = http.StatusTooManyRequests
	}

	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", music.ErrRateLimited, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", music.ErrUnauthorized, err)
	default:
		return err
	}
}
