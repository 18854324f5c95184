// Package spotify provides a music catalog backed by the Spotify Web API.
package spotify

import (
	"context"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const name = "spotify"

// Client wraps the Spotify API client and implements music.Catalog and
// music.Recommender.
type Client struct {
	api    *spotify.Client
	market string
}

// Option configures a Client.
type Option func(*Client)

// WithMarket restricts results to tracks playable in an ISO 3166-1 market.
func WithMarket(market string) Option {
	return func(c *Client) {
		c.market = market
	}
}

// New creates a Client from an already authenticated API client.
func New(api *spotify.Client, opts ...Option) *Client {
	c := &Client{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client that authenticates with the client
// credentials flow. Tokens are fetched lazily and refreshed as needed.
func NewFromConfig(ctx context.Context, cfg *Config, apiOpts ...spotify.ClientOption) *Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// Token requests use the same timeout as API requests.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	httpClient := cc.Client(ctx)
	httpClient.Timeout = timeout

	return New(spotify.New(httpClient, apiOpts...), WithMarket(cfg.Market))
}

// Name identifies the catalog.
func (c *Client) Name() string { return name }
