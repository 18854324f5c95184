// Package recommend maps detected emotions to music and fetches tracks from
// the configured catalog.
package recommend

import (
	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/music"
)

// profiles is the emotion to music mapping. Every label in emotion.Labels
// has an entry.
var profiles = map[emotion.Label]music.Profile{
	emotion.Happy: {
		Genres:       []string{"pop", "dance", "electronic"},
		Keywords:     "happy upbeat pop dance",
		Danceability: 0.8,
		Energy:       0.8,
		Valence:      0.9,
		MinTempo:     120,
	},
	emotion.Sad: {
		Genres:       []string{"acoustic", "sad", "piano"},
		Keywords:     "sad acoustic emotional",
		Danceability: 0.3,
		Energy:       0.3,
		Valence:      0.2,
		MaxTempo:     100,
	},
	emotion.Angry: {
		Genres:       []string{"rock", "metal", "hard-rock"},
		Keywords:     "angry rock metal aggressive",
		Danceability: 0.6,
		Energy:       0.9,
		Valence:      0.3,
		MinTempo:     140,
	},
	emotion.Surprise: {
		Genres:       []string{"indie", "alternative", "experimental"},
		Keywords:     "surprising experimental indie",
		Danceability: 0.7,
		Energy:       0.7,
		Valence:      0.7,
	},
	emotion.Fear: {
		Genres:       []string{"ambient", "soundtrack", "classical"},
		Keywords:     "scary ambient cinematic",
		Danceability: 0.2,
		Energy:       0.3,
		Valence:      0.3,
	},
	emotion.Disgust: {
		Genres:       []string{"industrial", "experimental", "noise"},
		Keywords:     "industrial experimental noise",
		Danceability: 0.4,
		Energy:       0.6,
		Valence:      0.3,
	},
	emotion.Neutral: {
		Genres:       []string{"chill", "ambient", "indie"},
		Keywords:     "chill ambient lo-fi",
		Danceability: 0.5,
		Energy:       0.5,
		Valence:      0.5,
	},
}

// ProfileFor returns the music profile for a label. Unrecognised labels get
// the neutral profile.
func ProfileFor(l emotion.Label) music.Profile {
	p, ok := profiles[emotion.NormalizeLabel(string(l))]
	if !ok {
		p = profiles[emotion.Neutral]
	}
	// Copy genres so callers cannot mutate the table.
	p.Genres = append([]string(nil), p.Genres...)
	return p
}

// QueryFor returns the catalog search query for a label.
func QueryFor(l emotion.Label) string {
	return ProfileFor(l).Keywords
}
