// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/justestif/go-moodtunes/internal/lastfm"
	"github.com/justestif/go-moodtunes/internal/spotify"
)

// Music providers.
const (
	ProviderSpotify = "spotify"
	ProviderLastFM  = "lastfm"
)

// Sentinel errors.
var (
	// ErrMissingCredentials is returned when the selected music provider has
	// no credentials configured.
	ErrMissingCredentials = errors.New("missing music provider credentials")

	// ErrUnknownProvider is returned for an unsupported MUSIC_PROVIDER.
	ErrUnknownProvider = errors.New("unknown music provider")
)

// Config holds the application configuration.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	// Music catalog
	MusicProvider       string
	Spotify             spotify.Config
	UseRecommendations  bool
	LastFM              lastfm.Config
	RecommendationLimit int
	SearchLimit         int

	// Emotion classifiers; empty URLs disable them.
	FaceAPIURL   string
	FaceDetector string
	TextAPIURL   string
	TextAPIToken string
	TextModel    string

	UpstreamTimeout time.Duration
	MaxUploadBytes  int64

	// Observability
	SentryDSN         string
	SentryEnvironment string
}

// Load reads a .env file if present and then the environment.
func Load() (*Config, error) {
	// A missing .env file is fine: the environment may be set directly.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables and validates it.
func FromEnv() (*Config, error) {
	timeout, err := getDuration("UPSTREAM_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	recLimit, err := getInt("RECOMMENDATION_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	searchLimit, err := getInt("SEARCH_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	maxUploadMB, err := getInt("MAX_UPLOAD_MB", 20)
	if err != nil {
		return nil, err
	}
	useRecs, err := getBool("SPOTIFY_USE_RECOMMENDATIONS", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", "127.0.0.1:5000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		MusicProvider: strings.ToLower(getEnv("MUSIC_PROVIDER", ProviderSpotify)),
		Spotify: spotify.Config{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Market:       os.Getenv("SPOTIFY_MARKET"),
			Timeout:      timeout,
		},
		UseRecommendations: useRecs,
		LastFM: lastfm.Config{
			APIKey:  os.Getenv("LASTFM_API_KEY"),
			Timeout: timeout,
		},
		RecommendationLimit: recLimit,
		SearchLimit:         searchLimit,
		FaceAPIURL:          os.Getenv("FACE_API_URL"),
		FaceDetector:        getEnv("FACE_DETECTOR", "retinaface"),
		TextAPIURL:          os.Getenv("TEXT_API_URL"),
		TextAPIToken:        os.Getenv("TEXT_API_TOKEN"),
		TextModel:           os.Getenv("TEXT_MODEL"),
		UpstreamTimeout:     timeout,
		MaxUploadBytes:      int64(maxUploadMB) << 20,
		SentryDSN:           os.Getenv("SENTRY_DSN"),
		SentryEnvironment:   getEnv("SENTRY_ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected music provider is usable.
func (c *Config) Validate() error {
	switch c.MusicProvider {
	case ProviderSpotify:
		if err := c.Spotify.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrMissingCredentials, err)
		}
	case ProviderLastFM:
		if err := c.LastFM.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrMissingCredentials, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.MusicProvider)
	}
	if c.RecommendationLimit <= 0 || c.SearchLimit <= 0 {
		return errors.New("track limits must be positive")
	}
	return nil
}

// TextClassifierEnabled reports whether a text model is configured. The
// hosted inference API needs a token; a custom URL may not.
func (c *Config) TextClassifierEnabled() bool {
	return c.TextAPIToken != "" || c.TextAPIURL != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
