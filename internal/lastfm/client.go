package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/justestif/go-moodtunes/internal/music"
)

const (
	baseURL   = "https://ws.audioscrobbler.com/2.0/"
	userAgent = "moodtunes/1.0"
	name      = "lastfm"
)

// Last.fm API error codes.
const (
	errCodeInvalidParams = 6
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

// ErrInvalidParams is returned when Last.fm rejects the request parameters.
var ErrInvalidParams = errors.New("invalid parameters")

// Client is a Last.fm API client. It implements music.Catalog and
// music.Recommender.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Last.fm API client from the provided configuration.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Name identifies the catalog.
func (c *Client) Name() string { return name }

// SearchTracks searches tracks by name. Last.fm has no preview audio, so
// PreviewURL is always nil.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]music.Track, error) {
	params := url.Values{
		"method": {"track.search"},
		"track":  {query},
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}

	var resp trackSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing track search response: %w", err)
	}

	tracks := make([]music.Track, 0, len(resp.Results.TrackMatches.Track))
	for _, t := range resp.Results.TrackMatches.Track {
		tracks = append(tracks, convertTrack(t.Name, t.Artist, t.URL, t.Image))
	}
	return tracks, nil
}

// RecommendTracks returns the top tracks for the profile's first genre tag.
func (c *Client) RecommendTracks(ctx context.Context, profile music.Profile, limit int) ([]music.Track, error) {
	tag := strings.TrimSpace(profile.Keywords)
	if len(profile.Genres) > 0 {
		tag = profile.Genres[0]
	}

	params := url.Values{
		"method": {"tag.getTopTracks"},
		"tag":    {tag},
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks for tag %q: %w", tag, err)
	}

	var resp tagTopTracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing tag top tracks response: %w", err)
	}

	tracks := make([]music.Track, 0, len(resp.Tracks.Track))
	for _, t := range resp.Tracks.Track {
		tracks = append(tracks, convertTrack(t.Name, t.Artist.Name, t.URL, t.Image))
	}
	return tracks, nil
}

func convertTrack(title, artist, link string, images []image) music.Track {
	artists := []string{}
	if artist != "" {
		artists = append(artists, artist)
	}
	return music.Track{
		Name:        title,
		Artists:     artists,
		AlbumImage:  largestImage(images),
		ExternalURL: link,
	}
}

// largestImage returns the last non-empty image URL. Last.fm lists sizes in
// ascending order.
func largestImage(images []image) *string {
	for i := len(images) - 1; i >= 0; i-- {
		if images[i].URL != "" {
			return music.StringPtr(images[i].URL)
		}
	}
	return nil
}

// doRequest performs a single GET request. Rate limiting is reported as
// music.ErrRateLimited and is not retried.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("format", "json")
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	// Check for API error in response
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, music.ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, music.ErrUnauthorized
		case errCodeInvalidParams:
			return nil, fmt.Errorf("%w: %s", ErrInvalidParams, apiErr.Message)
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, music.ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
