package emotion

import (
	"context"
	"errors"
	"image"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Unavailable is reported by Status for classifiers that are not configured.
const Unavailable = "unavailable"

// Service runs emotion analysis for uploads, webcam frames and text.
// Classifier failures never surface as errors: the result falls back to a
// heuristic and Result.Method reports which path produced it.
type Service struct {
	faces       ImageClassifier
	text        TextClassifier
	logger      *zap.Logger
	maxFileSize int64
}

// Option configures a Service.
type Option func(*Service)

// WithImageClassifier sets the facial emotion classifier.
func WithImageClassifier(c ImageClassifier) Option {
	return func(s *Service) {
		s.faces = c
	}
}

// WithTextClassifier sets the text emotion classifier.
func WithTextClassifier(c TextClassifier) Option {
	return func(s *Service) {
		s.text = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxFileSize sets the maximum accepted image size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// NewService creates a Service. Without classifiers every analysis uses the
// fallback heuristics.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:      zap.NewNop(),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxFileSize returns the maximum accepted image size in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// Status reports which classifiers are configured.
type Status struct {
	FacialClassifier string
	TextClassifier   string
}

// Healthy reports whether both classifiers are configured.
func (st Status) Healthy() bool {
	return st.FacialClassifier != Unavailable && st.TextClassifier != Unavailable
}

// Status returns the configured classifier names.
func (s *Service) Status() Status {
	st := Status{FacialClassifier: Unavailable, TextClassifier: Unavailable}
	if s.faces != nil {
		st.FacialClassifier = s.faces.Name()
	}
	if s.text != nil {
		st.TextClassifier = s.text.Name()
	}
	return st
}

// AnalyzeUpload validates an uploaded image and detects the facial emotion.
// Validation failures are returned as *ImageError.
func (s *Service) AnalyzeUpload(ctx context.Context, filename string, data []byte) (Result, error) {
	img, info, err := DecodeUpload(filename, data, s.maxFileSize)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("image validated",
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.String("format", info.Format),
		zap.Int("bytes", info.SizeBytes),
	)
	r := s.classifyImage(ctx, img, UploadMaxSide)
	r.Image = &info
	return r, nil
}

// AnalyzeFrame decodes a webcam frame data URL and detects the facial emotion.
func (s *Service) AnalyzeFrame(ctx context.Context, dataURL string) (Result, error) {
	img, info, err := DecodeDataURL(dataURL, s.maxFileSize)
	if err != nil {
		return Result{}, err
	}
	r := s.classifyImage(ctx, img, FrameMaxSide)
	r.Image = &info
	return r, nil
}

// AnalyzeText detects the emotion expressed in text. A single word naming an
// emotion is matched directly; otherwise the text classifier is used, with
// keyword scoring as the fallback.
func (s *Service) AnalyzeText(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}

	if l, ok := MatchDirect(text); ok {
		return LexiconResult(l), nil
	}

	if s.text == nil {
		r := AnalyzeKeywords(text)
		r.Note = "Text classifier not configured"
		return r, nil
	}

	id := uuid.NewString()
	r, err := s.text.ClassifyText(ctx, text)
	if err != nil {
		s.logger.Warn("text classifier failed, using keywords",
			zap.String("analysis_id", id),
			zap.String("classifier", s.text.Name()),
			zap.Error(err),
		)
		r = AnalyzeKeywords(text)
		r.Note = "Text classifier unavailable"
		return r, nil
	}

	r = r.Normalize()
	s.logger.Info("text emotion detected",
		zap.String("analysis_id", id),
		zap.String("emotion", string(r.Emotion)),
		zap.Float64("confidence", r.Confidence),
	)
	return r, nil
}

func (s *Service) classifyImage(ctx context.Context, img image.Image, maxSide int) Result {
	if s.faces == nil {
		return Fallback("Facial classifier not configured")
	}

	id := uuid.NewString()
	jpeg, err := EncodeForClassifier(img, maxSide)
	if err != nil {
		s.logger.Error("preparing image failed", zap.String("analysis_id", id), zap.Error(err))
		return Fallback("Image preprocessing failed")
	}

	r, err := s.faces.ClassifyImage(ctx, jpeg)
	switch {
	case errors.Is(err, ErrNoFace):
		b := img.Bounds()
		s.logger.Info("no face detected", zap.String("analysis_id", id))
		return Fallback("No faces detected. " + faceSuggestion(b.Dx(), b.Dy()))
	case err != nil:
		s.logger.Warn("facial classifier failed, using fallback",
			zap.String("analysis_id", id),
			zap.String("classifier", s.faces.Name()),
			zap.Error(err),
		)
		return Fallback("Facial classifier unavailable")
	}

	r = r.Normalize()
	s.logger.Info("facial emotion detected",
		zap.String("analysis_id", id),
		zap.String("emotion", string(r.Emotion)),
		zap.Float64("confidence", r.Confidence),
	)
	return r
}
