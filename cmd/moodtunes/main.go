// Command moodtunes runs the MoodTunes web application.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/justestif/go-moodtunes/internal/config"
	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/emotion/deepface"
	"github.com/justestif/go-moodtunes/internal/emotion/huggingface"
	"github.com/justestif/go-moodtunes/internal/lastfm"
	"github.com/justestif/go-moodtunes/internal/logging"
	"github.com/justestif/go-moodtunes/internal/music"
	"github.com/justestif/go-moodtunes/internal/recommend"
	"github.com/justestif/go-moodtunes/internal/spotify"
	"github.com/justestif/go-moodtunes/internal/web"
	webfs "github.com/justestif/go-moodtunes/web"
)

const sentryFlushTimeout = 2 * time.Second

// version is set via ldflags during build.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     "moodtunes@" + version,
		}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	upstream := &http.Client{Timeout: cfg.UpstreamTimeout}

	var opts []emotion.Option
	opts = append(opts,
		emotion.WithLogger(logger.Named("emotion")),
		emotion.WithMaxFileSize(cfg.MaxUploadBytes),
	)
	if cfg.FaceAPIURL != "" {
		opts = append(opts, emotion.WithImageClassifier(deepface.NewClient(cfg.FaceAPIURL,
			deepface.WithDetector(cfg.FaceDetector),
			deepface.WithHTTPClient(upstream),
		)))
	} else {
		logger.Warn("FACE_API_URL not set, image analysis will use the neutral fallback")
	}
	if cfg.TextClassifierEnabled() {
		opts = append(opts, emotion.WithTextClassifier(huggingface.NewClient(cfg.TextAPIToken,
			huggingface.WithBaseURL(cfg.TextAPIURL),
			huggingface.WithModel(cfg.TextModel),
			huggingface.WithHTTPClient(upstream),
		)))
	} else {
		logger.Warn("text classifier not configured, text analysis will use keywords")
	}
	analyzer := emotion.NewService(opts...)

	catalog := newCatalog(cfg)
	resolver := recommend.NewResolver(catalog,
		recommend.WithLogger(logger.Named("recommend")),
		recommend.WithRecommendationLimit(cfg.RecommendationLimit),
		recommend.WithSearchLimit(cfg.SearchLimit),
		recommend.WithSeededRecommendations(cfg.UseRecommendations),
	)

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.HTTPAddr,
		TemplatesFS: templates,
		StaticFS:    static,
		Analyzer:    analyzer,
		Resolver:    resolver,
		Logger:      logger.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	st := analyzer.Status()
	logger.Info("moodtunes configured",
		zap.String("version", version),
		zap.String("music_service", catalog.Name()),
		zap.String("facial_classifier", st.FacialClassifier),
		zap.String("text_classifier", st.TextClassifier),
	)

	return server.Run()
}

func newCatalog(cfg *config.Config) music.Catalog {
	if cfg.MusicProvider == config.ProviderLastFM {
		return lastfm.NewClient(&cfg.LastFM)
	}
	return spotify.NewFromConfig(context.Background(), &cfg.Spotify)
}
