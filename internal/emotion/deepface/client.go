// Package deepface classifies facial emotions through a DeepFace REST service.
package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/justestif/go-moodtunes/internal/emotion"
)

const (
	// DefaultDetector is the face detector tried first.
	DefaultDetector = "retinaface"

	// secondaryDetector is used, without enforced detection, when the
	// primary detector finds no face.
	secondaryDetector = "opencv"

	name = "deepface"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// errNoFace is the internal signal that a detector pass found nothing.
var errNoFace = errors.New("face could not be detected")

// Client calls a DeepFace-compatible API.
type Client struct {
	baseURL    string
	detector   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithDetector sets the primary detector backend.
func WithDetector(d string) Option {
	return func(c *Client) {
		if d != "" {
			c.detector = d
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		detector: DefaultDetector,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the classifier in results and health reports.
func (c *Client) Name() string { return name }

// ClassifyImage detects the dominant emotion of the first face in a JPEG.
// It returns emotion.ErrNoFace when neither detector finds a face.
func (c *Client) ClassifyImage(ctx context.Context, jpeg []byte) (emotion.Result, error) {
	img := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)

	face, err := c.analyze(ctx, analyzeRequest{
		Img:              img,
		Actions:          []string{"emotion"},
		DetectorBackend:  c.detector,
		EnforceDetection: true,
	})
	if errors.Is(err, errNoFace) && c.detector != secondaryDetector {
		face, err = c.analyze(ctx, analyzeRequest{
			Img:              img,
			Actions:          []string{"emotion"},
			DetectorBackend:  secondaryDetector,
			EnforceDetection: false,
		})
	}
	if errors.Is(err, errNoFace) {
		return emotion.Result{}, emotion.ErrNoFace
	}
	if err != nil {
		return emotion.Result{}, err
	}

	return toResult(face), nil
}

func (c *Client) analyze(ctx context.Context, body analyzeRequest) (faceResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return faceResult{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return faceResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return faceResult{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return faceResult{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(data)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if resp.StatusCode == http.StatusBadRequest && isNoFace(msg) {
			return faceResult{}, errNoFace
		}
		return faceResult{}, fmt.Errorf("deepface returned %d: %s", resp.StatusCode, msg)
	}

	var out analyzeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return faceResult{}, fmt.Errorf("parsing analyze response: %w", err)
	}
	if len(out.Results) == 0 {
		return faceResult{}, errNoFace
	}
	return out.Results[0], nil
}

func isNoFace(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "face could not be detected") ||
		strings.Contains(msg, "no face")
}

// toResult converts a DeepFace face analysis into an emotion.Result.
// DeepFace scores are percentages.
func toResult(f faceResult) emotion.Result {
	scores := make(map[emotion.Label]float64, len(f.Emotion))
	for label, score := range f.Emotion {
		scores[emotion.Label(label)] = score
	}

	confidence := f.Emotion[f.DominantEmotion] / 100
	return emotion.Result{
		Emotion:     emotion.Label(f.DominantEmotion),
		Confidence:  confidence,
		AllEmotions: scores,
		Method:      name,
	}.Normalize()
}
