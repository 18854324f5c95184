// Package lastfm provides a music catalog backed by the Last.fm API.
package lastfm

import (
	"errors"
	"time"
)

// ErrMissingAPIKey is returned when LASTFM_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing LASTFM_API_KEY environment variable")

// Config holds Last.fm API configuration.
type Config struct {
	APIKey string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Validate returns ErrMissingAPIKey if no API key is set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
