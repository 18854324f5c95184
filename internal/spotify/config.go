package spotify

import (
	"errors"
	"time"
)

// ErrMissingCredentials is returned when the client id or secret is empty.
var ErrMissingCredentials = errors.New("missing SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET")

// Config holds Spotify API configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	// Market is an optional ISO 3166-1 alpha-2 country code.
	Market string
	// Timeout bounds each HTTP request, including token requests.
	Timeout time.Duration
	// TokenURL overrides the accounts service token endpoint.
	TokenURL string
}

// Validate checks that credentials are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}
