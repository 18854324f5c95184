package web

import (
	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/music"
	"github.com/justestif/go-moodtunes/internal/recommend"
)

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	FacialClassifier string
	TextClassifier   string
	MusicService     string
	MaxUploadMB      int64
}

// AnalysisView is rendered by the "analysis" partial.
type AnalysisView struct {
	Emotion         string
	Confidence      float64
	Breakdown       []emotion.Score
	Method          string
	Note            string
	Mood            string
	MoodDescription string
	Energy          float64
	Valence         float64
	TracksView
}

// SearchView is rendered by the "search" partial.
type SearchView struct {
	Query string
	TracksView
}

// TracksView is rendered by the "tracks" partial.
type TracksView struct {
	Tracks []music.Track
	// LinkLabel is the call to action on each track card.
	LinkLabel string
	// EmptyMessage is shown when there are no tracks.
	EmptyMessage string
}

// ErrorView is rendered by the "error" partial.
type ErrorView struct {
	Message string
}

func newAnalysisView(r emotion.Result, rec recommend.Recommendation, catalog string) AnalysisView {
	return AnalysisView{
		Emotion:         string(r.Emotion),
		Confidence:      r.Confidence,
		Breakdown:       emotion.SortedScores(r.AllEmotions),
		Method:          r.Method,
		Note:            r.Note,
		Mood:            rec.Mood(),
		MoodDescription: rec.Profile.MoodDescription(),
		Energy:          rec.Profile.Energy,
		Valence:         rec.Profile.Valence,
		TracksView: TracksView{
			Tracks:       rec.Tracks,
			LinkLabel:    linkLabel(catalog),
			EmptyMessage: "No recommendations found for this mood. Try again or search for something specific.",
		},
	}
}

func newSearchView(query string, tracks []music.Track, catalog string) SearchView {
	return SearchView{
		Query: query,
		TracksView: TracksView{
			Tracks:       tracks,
			LinkLabel:    linkLabel(catalog),
			EmptyMessage: "No tracks found for “" + query + "”.",
		},
	}
}

func linkLabel(catalog string) string {
	switch catalog {
	case "lastfm":
		return "Open in Last.fm"
	case "spotify":
		return "Open in Spotify"
	default:
		return "Open"
	}
}
