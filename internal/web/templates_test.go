package web

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/music"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{73.2, "73.2%"},
		{10.1, "10.1%"},
		{100, "100.0%"},
		{0, "0.0%"},
		{33.333, "33.3%"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.in); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPartialUnknown(t *testing.T) {
	tmpl, err := NewTemplates(fstest.MapFS{
		"partials/error.html": {Data: []byte(`{{define "error"}}<p>{{.Message}}</p>{{end}}`)},
	})
	if err != nil {
		t.Fatalf("NewTemplates() error = %v", err)
	}

	var sb strings.Builder
	if err := tmpl.RenderPartial(&sb, "missing", nil); err == nil {
		t.Error("RenderPartial() error = nil, want error for unknown partial")
	}

	sb.Reset()
	if err := tmpl.RenderPartial(&sb, "error", ErrorView{Message: "a < b"}); err != nil {
		t.Fatalf("RenderPartial() error = %v", err)
	}
	if got := sb.String(); got != "<p>a &lt; b</p>" {
		t.Errorf("RenderPartial() = %q", got)
	}
}

func TestTracksPartialWithPreview(t *testing.T) {
	tmpl := mustLoadTemplates(t)
	preview := "https://p.scdn.co/mp3-preview/abc"
	art := "https://i.scdn.co/image/abc"

	var sb strings.Builder
	err := tmpl.RenderPartial(&sb, "tracks", TracksView{
		Tracks: []music.Track{{
			Name:        "Song",
			Artists:     []string{"A", "B"},
			Album:       "LP",
			AlbumImage:  &art,
			PreviewURL:  &preview,
			ExternalURL: "https://open.spotify.com/track/abc",
		}},
		LinkLabel: "Open in Spotify",
	})
	if err != nil {
		t.Fatalf("RenderPartial() error = %v", err)
	}

	out := sb.String()
	for _, want := range []string{`<audio`, preview, art, "A, B", "Open in Spotify"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "No preview") {
		t.Error("output shows No preview badge for a track with a preview")
	}
}

func TestAnalysisPartialWithoutBreakdown(t *testing.T) {
	tmpl := mustLoadTemplates(t)

	var sb strings.Builder
	err := tmpl.RenderPartial(&sb, "analysis", AnalysisView{
		Emotion:    string(emotion.Sad),
		Confidence: 1,
		Breakdown:  emotion.SortedScores(nil),
		Method:     emotion.MethodLexicon,
		Mood:       "Reflective & Melancholy",
		TracksView: TracksView{EmptyMessage: "No recommendations"},
	})
	if err != nil {
		t.Fatalf("RenderPartial() error = %v", err)
	}

	out := sb.String()
	if strings.Contains(out, "breakdown-row") {
		t.Error("rendered breakdown rows for an empty distribution")
	}
	if !strings.Contains(out, "No recommendations") {
		t.Error("missing empty state")
	}
	if !strings.Contains(out, "Reflective &amp; Melancholy") {
		t.Error("missing escaped mood name")
	}
}
