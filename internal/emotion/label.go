// Package emotion infers an emotion label from images and text. Model
// inference is delegated to external classifiers; this package validates
// input, normalises classifier output into the closed label set and falls
// back to simple heuristics when a classifier is unavailable.
package emotion

import (
	"sort"
	"strings"
)

// Label is one of the closed set of emotions understood by the recommender.
type Label string

// Recognised labels.
const (
	Angry    Label = "angry"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"
)

// Labels lists every recognised label in a stable order.
var Labels = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// synonyms maps classifier-specific names onto the closed set.
var synonyms = map[string]Label{
	"angry":     Angry,
	"anger":     Angry,
	"mad":       Angry,
	"disgust":   Disgust,
	"disgusted": Disgust,
	"fear":      Fear,
	"fearful":   Fear,
	"scared":    Fear,
	"happy":     Happy,
	"happiness": Happy,
	"joy":       Happy,
	"sad":       Sad,
	"sadness":   Sad,
	"surprise":  Surprise,
	"surprised": Surprise,
	"neutral":   Neutral,
	"calm":      Neutral,
}

// ParseLabel maps a raw classifier label onto the closed set.
// The second return value is false when the label is not recognised.
func ParseLabel(raw string) (Label, bool) {
	l, ok := synonyms[strings.ToLower(strings.TrimSpace(raw))]
	return l, ok
}

// NormalizeLabel is ParseLabel with unrecognised labels mapped to Neutral.
func NormalizeLabel(raw string) Label {
	if l, ok := ParseLabel(raw); ok {
		return l
	}
	return Neutral
}

// Score is a single entry of an emotion distribution.
type Score struct {
	Label   Label
	Percent float64
}

// SortedScores returns the distribution ordered by descending score, with
// ties broken alphabetically.
func SortedScores(scores map[Label]float64) []Score {
	out := make([]Score, 0, len(scores))
	for l, p := range scores {
		out = append(out, Score{Label: l, Percent: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return out[i].Label < out[j].Label
	})
	return out
}
