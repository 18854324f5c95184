package emotion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceStatus(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		st := NewService().Status()
		assert.Equal(t, Unavailable, st.FacialClassifier)
		assert.Equal(t, Unavailable, st.TextClassifier)
		assert.False(t, st.Healthy())
	})

	t.Run("both configured", func(t *testing.T) {
		svc := NewService(
			WithImageClassifier(&stubImageClassifier{}),
			WithTextClassifier(&stubTextClassifier{}),
		)
		st := svc.Status()
		assert.Equal(t, "stub-face", st.FacialClassifier)
		assert.Equal(t, "stub-text", st.TextClassifier)
		assert.True(t, st.Healthy())
	})
}

func TestAnalyzeUpload(t *testing.T) {
	faces := &stubImageClassifier{result: Result{
		Emotion:     "HAPPY",
		Confidence:  0.9,
		AllEmotions: map[Label]float64{Happy: 90, Sad: 10},
		Method:      "stub",
	}}
	svc := NewService(WithImageClassifier(faces))

	got, err := svc.AnalyzeUpload(context.Background(), "me.png", pngBytes(t, 1500, 300))
	require.NoError(t, err)

	assert.Equal(t, Happy, got.Emotion)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	assert.Equal(t, "stub", got.Method)
	require.NotEmpty(t, faces.got, "classifier should receive the encoded image")
	assert.Equal(t, &ImageInfo{Width: 1500, Height: 300, Format: "png", SizeBytes: len(pngBytes(t, 1500, 300))}, got.Image)
}

func TestAnalyzeUploadInvalid(t *testing.T) {
	faces := &stubImageClassifier{}
	svc := NewService(WithImageClassifier(faces))

	_, err := svc.AnalyzeUpload(context.Background(), "me.png", pngBytes(t, 40, 40))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidImage))
	assert.Nil(t, faces.got, "classifier must not be called for invalid images")
}

func TestAnalyzeUploadMaxFileSize(t *testing.T) {
	svc := NewService(WithMaxFileSize(64))

	_, err := svc.AnalyzeUpload(context.Background(), "me.png", pngBytes(t, 200, 200))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
	assert.Equal(t, int64(64), svc.MaxFileSize())
}

func TestAnalyzeFrameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		faces    ImageClassifier
		wantNote string
	}{
		{"no classifier", nil, "Facial classifier not configured"},
		{"no face", &stubImageClassifier{err: ErrNoFace}, "No faces detected. Try using a higher resolution image."},
		{"wrapped no face", &stubImageClassifier{err: fmt.Errorf("deepface: %w", ErrNoFace)}, "No faces detected."},
		{"classifier down", &stubImageClassifier{err: errors.New("connection refused")}, "Facial classifier unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.faces != nil {
				opts = append(opts, WithImageClassifier(tt.faces))
			}
			svc := NewService(opts...)

			got, err := svc.AnalyzeFrame(context.Background(), jpegDataURL(t, 160, 120))
			require.NoError(t, err)

			assert.Equal(t, Neutral, got.Emotion)
			assert.Equal(t, 0.5, got.Confidence)
			assert.Equal(t, MethodFallback, got.Method)
			assert.Equal(t, 100.0, got.AllEmotions[Neutral])
			assert.Contains(t, got.Note, tt.wantNote)
		})
	}
}

func TestAnalyzeFrameInvalid(t *testing.T) {
	_, err := NewService().AnalyzeFrame(context.Background(), "garbage")

	var ie *ImageError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "Invalid image data", ie.Msg)
}

func TestAnalyzeText(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := NewService().AnalyzeText(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("direct word skips classifier", func(t *testing.T) {
		text := &stubTextClassifier{}
		got, err := NewService(WithTextClassifier(text)).AnalyzeText(context.Background(), "Sad!")
		require.NoError(t, err)

		assert.Equal(t, Sad, got.Emotion)
		assert.Equal(t, MethodLexicon, got.Method)
		assert.Equal(t, 0, text.calls)
	})

	t.Run("classifier result", func(t *testing.T) {
		text := &stubTextClassifier{result: Result{
			Emotion:     "joy",
			Confidence:  0.82,
			AllEmotions: map[Label]float64{"joy": 82, Sad: 18},
			Method:      "stub",
		}}
		got, err := NewService(WithTextClassifier(text)).AnalyzeText(context.Background(), "what a lovely afternoon")
		require.NoError(t, err)

		assert.Equal(t, Happy, got.Emotion)
		assert.Equal(t, 82.0, got.AllEmotions[Happy])
		assert.Equal(t, 1, text.calls)
	})

	t.Run("classifier failure uses keywords", func(t *testing.T) {
		text := &stubTextClassifier{err: errors.New("503")}
		got, err := NewService(WithTextClassifier(text)).AnalyzeText(context.Background(), "I am so happy and excited today")
		require.NoError(t, err)

		assert.Equal(t, Happy, got.Emotion)
		assert.Equal(t, MethodFallback, got.Method)
		assert.Equal(t, "Text classifier unavailable", got.Note)
	})

	t.Run("no classifier uses keywords", func(t *testing.T) {
		got, err := NewService().AnalyzeText(context.Background(), "the weather is fine")
		require.NoError(t, err)

		assert.Equal(t, Neutral, got.Emotion)
		assert.Equal(t, "Text classifier not configured", got.Note)
	})
}
