// Package huggingface classifies text emotions with a model served by the
// Hugging Face inference API.
package huggingface

import (
	"bytes"
	"context"
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
	// DefaultBaseURL is the hosted inference endpoint.
	DefaultBaseURL = "https://router.huggingface.co/hf-inference"

	// DefaultModel is a seven-label English emotion classifier.
	DefaultModel = "j-hartmann/emotion-english-distilroberta-base"

	name = "huggingface"
)

// Sentinel errors.
var (
	// ErrUnauthorized is returned when the API token is rejected.
	ErrUnauthorized = errors.New("inference API rejected token")

	// ErrEmptyResponse is returned when the model returns no labels.
	ErrEmptyResponse = errors.New("inference API returned no labels")
)

// Client calls the inference API for a single text classification model.
type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the inference endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel sets the model id.
func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
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

// NewClient creates an inference client authenticated with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		token:   token,
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

// ClassifyText returns the highest scoring label for text along with the
// full distribution as percentages.
func (c *Client) ClassifyText(ctx context.Context, text string) (emotion.Result, error) {
	if strings.TrimSpace(text) == "" {
		return emotion.Result{}, emotion.ErrEmptyText
	}

	payload, err := json.Marshal(inferenceRequest{
		Inputs:     text,
		Parameters: &parameters{TopK: len(emotion.Labels)},
	})
	if err != nil {
		return emotion.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	reqURL := c.baseURL + "/models/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return emotion.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return emotion.Result{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return emotion.Result{}, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return emotion.Result{}, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return emotion.Result{}, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return emotion.Result{}, fmt.Errorf("inference API returned %d", resp.StatusCode)
	}

	scores, err := parseScores(body)
	if err != nil {
		return emotion.Result{}, err
	}
	return toResult(scores)
}

// parseScores accepts both the nested ([[...]]) and flat ([...]) response
// shapes returned by text-classification models.
func parseScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrEmptyResponse
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("parsing inference response: %w", err)
	}
	return flat, nil
}

func toResult(scores []labelScore) (emotion.Result, error) {
	if len(scores) == 0 {
		return emotion.Result{}, ErrEmptyResponse
	}

	all := make(map[emotion.Label]float64, len(scores))
	best := scores[0]
	for _, s := range scores {
		all[emotion.Label(strings.ToLower(s.Label))] = s.Score * 100
		if s.Score > best.Score {
			best = s
		}
	}

	return emotion.Result{
		Emotion:     emotion.Label(best.Label),
		Confidence:  best.Score,
		AllEmotions: all,
		Method:      name,
	}.Normalize(), nil
}
