package emotion

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 80, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func jpegDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// stubImageClassifier records the image it receives and returns a canned result.
type stubImageClassifier struct {
	result Result
	err    error
	got    []byte
}

func (s *stubImageClassifier) ClassifyImage(_ context.Context, data []byte) (Result, error) {
	s.got = data
	return s.result, s.err
}

func (s *stubImageClassifier) Name() string { return "stub-face" }

type stubTextClassifier struct {
	result Result
	err    error
	calls  int
}

func (s *stubTextClassifier) ClassifyText(context.Context, string) (Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubTextClassifier) Name() string { return "stub-text" }
