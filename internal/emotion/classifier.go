package emotion

import (
	"context"
	"errors"
)

// Classifier errors.
var (
	// ErrNoFace is returned by image classifiers when no face was detected.
	ErrNoFace = errors.New("no face detected")

	// ErrEmptyText is returned when text analysis is requested for blank input.
	ErrEmptyText = errors.New("empty text provided")
)

// ImageClassifier detects the dominant facial emotion in a JPEG image.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, jpeg []byte) (Result, error)
	Name() string
}

// TextClassifier detects the dominant emotion expressed in text.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (Result, error)
	Name() string
}
