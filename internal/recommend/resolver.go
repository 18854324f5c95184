package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/music"
)

// DefaultLimit is the number of tracks requested when no limit is configured.
const DefaultLimit = 20

// Sentinel errors.
var (
	// ErrMusicService wraps every catalog failure. Use errors.Is with
	// music.ErrRateLimited to detect throttling.
	ErrMusicService = errors.New("music service unavailable")

	// ErrEmptyQuery is returned by Search for a blank query.
	ErrEmptyQuery = errors.New("empty search query")
)

// Recommendation is the music chosen for a detected emotion.
type Recommendation struct {
	Emotion emotion.Label
	Profile music.Profile
	Query   string
	Tracks  []music.Track
	// Seeded reports whether the tracks came from seeded recommendations
	// rather than a keyword search.
	Seeded bool
}

// Mood returns the human-readable mood name of the recommendation.
func (r Recommendation) Mood() string {
	return r.Profile.MoodName()
}

// Resolver turns emotions and free-text queries into track lists.
type Resolver struct {
	catalog            music.Catalog
	logger             *zap.Logger
	recommendLimit     int
	searchLimit        int
	useRecommendations bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecommendationLimit sets how many tracks are returned for an emotion.
func WithRecommendationLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.recommendLimit = n
		}
	}
}

// WithSearchLimit sets how many tracks are returned for a free-text search.
func WithSearchLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.searchLimit = n
		}
	}
}

// WithSeededRecommendations enables seeded recommendations for catalogs
// implementing music.Recommender.
func WithSeededRecommendations(enabled bool) Option {
	return func(r *Resolver) {
		r.useRecommendations = enabled
	}
}

// NewResolver creates a Resolver backed by catalog.
func NewResolver(catalog music.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:        catalog,
		logger:         zap.NewNop(),
		recommendLimit: DefaultLimit,
		searchLimit:    DefaultLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CatalogName returns the name of the underlying catalog.
func (r *Resolver) CatalogName() string {
	return r.catalog.Name()
}

// Recommend returns tracks for the given emotion. Seeded recommendations are
// tried first when enabled; if they fail, the profile keywords are searched
// instead. Only a failed search is reported as an error.
func (r *Resolver) Recommend(ctx context.Context, l emotion.Label) (Recommendation, error) {
	l = emotion.NormalizeLabel(string(l))
	profile := ProfileFor(l)
	rec := Recommendation{
		Emotion: l,
		Profile: profile,
		Query:   profile.Keywords,
	}

	if seeder, ok := r.catalog.(music.Recommender); ok && r.useRecommendations {
		tracks, err := seeder.RecommendTracks(ctx, profile, r.recommendLimit)
		if err == nil {
			rec.Tracks = music.Normalize(tracks, r.recommendLimit)
			rec.Seeded = true
			r.logger.Info("seeded recommendations",
				zap.String("emotion", string(l)),
				zap.String("catalog", r.catalog.Name()),
				zap.Int("tracks", len(rec.Tracks)),
			)
			return rec, nil
		}
		r.logger.Warn("seeded recommendations failed, searching instead",
			zap.String("emotion", string(l)),
			zap.String("catalog", r.catalog.Name()),
			zap.Error(err),
		)
	}

	tracks, err := r.search(ctx, profile.Keywords, r.recommendLimit)
	if err != nil {
		return Recommendation{}, err
	}
	rec.Tracks = tracks
	return rec, nil
}

// Search returns tracks for a user-supplied query, passed to the catalog
// unchanged apart from surrounding whitespace.
func (r *Resolver) Search(ctx context.Context, query string) ([]music.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return r.search(ctx, query, r.searchLimit)
}

func (r *Resolver) search(ctx context.Context, query string, limit int) ([]music.Track, error) {
	tracks, err := r.catalog.SearchTracks(ctx, query, limit)
	if err != nil {
		r.logger.Error("catalog search failed",
			zap.String("query", query),
			zap.String("catalog", r.catalog.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrMusicService, err)
	}

	out := music.Normalize(tracks, limit)
	r.logger.Info("catalog search",
		zap.String("query", query),
		zap.String("catalog", r.catalog.Name()),
		zap.Int("tracks", len(out)),
	)
	return out, nil
}
