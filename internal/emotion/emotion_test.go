package emotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw    string
		want   Label
		wantOK bool
	}{
		{"happy", Happy, true},
		{"Joy", Happy, true},
		{" anger ", Angry, true},
		{"sadness", Sad, true},
		{"fearful", Fear, true},
		{"surprised", Surprise, true},
		{"disgusted", Disgust, true},
		{"calm", Neutral, true},
		{"bored", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLabel(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeLabelUnknownIsNeutral(t *testing.T) {
	assert.Equal(t, Neutral, NormalizeLabel("contempt"))
	assert.Equal(t, Sad, NormalizeLabel("SAD"))
}

func TestSortedScores(t *testing.T) {
	got := SortedScores(map[Label]float64{
		Sad:   10.1,
		Happy: 73.2,
		Angry: 10.1,
	})

	assert.Equal(t, []Score{
		{Label: Happy, Percent: 73.2},
		{Label: Angry, Percent: 10.1},
		{Label: Sad, Percent: 10.1},
	}, got)
}

func TestFallback(t *testing.T) {
	r := Fallback("because")

	assert.Equal(t, Neutral, r.Emotion)
	assert.Equal(t, 0.5, r.Confidence)
	assert.Equal(t, MethodFallback, r.Method)
	assert.Equal(t, "because", r.Note)
	assert.Len(t, r.AllEmotions, len(Labels))
	assert.Equal(t, 100.0, r.AllEmotions[Neutral])
	assert.Equal(t, 0.0, r.AllEmotions[Happy])
}

func TestResultNormalize(t *testing.T) {
	r := Result{
		Emotion:    "joy",
		Confidence: 1.7,
		AllEmotions: map[Label]float64{
			"joy":      80,
			"happy":    60,
			"sadness":  5,
			"contempt": 15,
			"fear":     math.NaN(),
		},
		Method: "huggingface",
	}.Normalize()

	assert.Equal(t, Happy, r.Emotion)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, map[Label]float64{Happy: 80, Sad: 5}, r.AllEmotions)
	assert.Equal(t, "huggingface", r.Method)
}

func TestResultNormalizeUnknownLabel(t *testing.T) {
	r := Result{Emotion: "contempt", Confidence: -0.2}.Normalize()

	assert.Equal(t, Neutral, r.Emotion)
	assert.Equal(t, 0.0, r.Confidence)
	assert.Equal(t, MethodFallback, r.Method)
	assert.Nil(t, r.AllEmotions)
}
