package deepface

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justestif/go-moodtunes/internal/emotion"
)

func faceResponse(dominant string, scores map[string]float64) analyzeResponse {
	return analyzeResponse{Results: []faceResult{{
		DominantEmotion: dominant,
		Emotion:         scores,
		Region:          region{X: 10, Y: 10, W: 120, H: 120},
	}}}
}

func TestClassifyImage(t *testing.T) {
	var got analyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(faceResponse("happy", map[string]float64{
			"happy": 73.2, "neutral": 10.1, "sad": 16.7,
		}))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	result, err := client.ClassifyImage(context.Background(), []byte{0xff, 0xd8, 0xff})
	if err != nil {
		t.Fatalf("ClassifyImage() error = %v", err)
	}

	if got.DetectorBackend != DefaultDetector || !got.EnforceDetection {
		t.Errorf("first pass = %q enforce=%v, want %q enforced", got.DetectorBackend, got.EnforceDetection, DefaultDetector)
	}
	if !strings.HasPrefix(got.Img, "data:image/jpeg;base64,") {
		t.Errorf("img = %q, want jpeg data URL", got.Img)
	}
	if result.Emotion != emotion.Happy {
		t.Errorf("Emotion = %q, want happy", result.Emotion)
	}
	if math.Abs(result.Confidence-0.732) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.732", result.Confidence)
	}
	if result.AllEmotions[emotion.Neutral] != 10.1 {
		t.Errorf("AllEmotions[neutral] = %v, want 10.1", result.AllEmotions[emotion.Neutral])
	}
	if result.Method != "deepface" {
		t.Errorf("Method = %q, want deepface", result.Method)
	}
}

func TestClassifyImageSecondaryDetector(t *testing.T) {
	tests := []struct {
		name         string
		secondary    func(w http.ResponseWriter)
		wantEmotion  emotion.Label
		wantErr      error
		wantRequests int
	}{
		{
			name: "secondary finds a face",
			secondary: func(w http.ResponseWriter) {
				json.NewEncoder(w).Encode(faceResponse("sad", map[string]float64{"sad": 60, "neutral": 40}))
			},
			wantEmotion:  emotion.Sad,
			wantRequests: 2,
		},
		{
			name: "secondary returns no results",
			secondary: func(w http.ResponseWriter) {
				json.NewEncoder(w).Encode(analyzeResponse{})
			},
			wantErr:      emotion.ErrNoFace,
			wantRequests: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detectors []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req analyzeRequest
				json.NewDecoder(r.Body).Decode(&req)
				detectors = append(detectors, req.DetectorBackend)

				if req.EnforceDetection {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte(`{"error":"Exception while analyzing: Face could not be detected in numpy array."}`))
					return
				}
				tt.secondary(w)
			}))
			defer server.Close()

			result, err := NewClient(server.URL).ClassifyImage(context.Background(), []byte("jpeg"))

			if len(detectors) != tt.wantRequests {
				t.Fatalf("requests = %d, want %d", len(detectors), tt.wantRequests)
			}
			if detectors[1] != "opencv" {
				t.Errorf("second detector = %q, want opencv", detectors[1])
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClassifyImage() error = %v", err)
			}
			if result.Emotion != tt.wantEmotion {
				t.Errorf("Emotion = %q, want %q", result.Emotion, tt.wantEmotion)
			}
		})
	}
}

func TestClassifyImageServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).ClassifyImage(context.Background(), []byte("jpeg"))

	if err == nil || errors.Is(err, emotion.ErrNoFace) {
		t.Fatalf("error = %v, want upstream error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", calls)
	}
}

func TestWithDetector(t *testing.T) {
	var detectors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		json.NewDecoder(r.Body).Decode(&req)
		detectors = append(detectors, req.DetectorBackend)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Face could not be detected"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, WithDetector("opencv")).ClassifyImage(context.Background(), []byte("jpeg"))

	if !errors.Is(err, emotion.ErrNoFace) {
		t.Fatalf("error = %v, want ErrNoFace", err)
	}
	if len(detectors) != 1 {
		t.Errorf("detectors = %v, want a single opencv pass", detectors)
	}
}
