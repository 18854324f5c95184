package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/justestif/go-moodtunes/internal/emotion"
	"github.com/justestif/go-moodtunes/internal/music"
	"github.com/justestif/go-moodtunes/internal/recommend"
)

// maxJSONBody bounds text and search request bodies.
const maxJSONBody = 1 << 20

// Analyzer detects emotions from uploads, webcam frames and text.
type Analyzer interface {
	AnalyzeUpload(ctx context.Context, filename string, data []byte) (emotion.Result, error)
	AnalyzeFrame(ctx context.Context, dataURL string) (emotion.Result, error)
	AnalyzeText(ctx context.Context, text string) (emotion.Result, error)
	Status() emotion.Status
	MaxFileSize() int64
}

// Resolver fetches music for emotions and free-text queries.
type Resolver interface {
	Recommend(ctx context.Context, l emotion.Label) (recommend.Recommendation, error)
	Search(ctx context.Context, query string) ([]music.Track, error)
	CatalogName() string
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	analyzer  Analyzer
	resolver  Resolver
	templates *Templates
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(analyzer Analyzer, resolver Resolver, templates *Templates, logger *zap.Logger) *Handlers {
	return &Handlers{
		analyzer:  analyzer,
		resolver:  resolver,
		templates: templates,
		logger:    logger,
	}
}

// analysisResponse is the JSON body of the analyze endpoints.
type analysisResponse struct {
	Emotion     string             `json:"emotion"`
	Confidence  float64            `json:"confidence"`
	AllEmotions map[string]float64 `json:"all_emotions,omitempty"`
	Method      string             `json:"method"`
	Mood        string             `json:"mood"`
	Note        string             `json:"note,omitempty"`
	ImageInfo   *emotion.ImageInfo `json:"image_info,omitempty"`
	Tracks      []music.Track      `json:"tracks"`
}

type searchResponse struct {
	SearchQuery string        `json:"search_query"`
	Tracks      []music.Track `json:"tracks"`
}

type errorResponse struct {
	Error        string                `json:"error"`
	Requirements *emotion.Requirements `json:"requirements,omitempty"`
}

type healthResponse struct {
	Status           string `json:"status"`
	FacialClassifier string `json:"facial_classifier"`
	TextClassifier   string `json:"text_classifier"`
	MusicService     string `json:"music_service"`

	ImageRequirements emotion.Requirements `json:"image_requirements"`
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	st := h.analyzer.Status()
	data := HomePageData{
		PageData: PageData{
			Title:       "MoodTunes",
			CurrentPath: r.URL.Path,
		},
		FacialClassifier: st.FacialClassifier,
		TextClassifier:   st.TextClassifier,
		MusicService:     h.resolver.CatalogName(),
		MaxUploadMB:      h.analyzer.MaxFileSize() >> 20,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.logger.Error("rendering home page", zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Health reports classifier and catalog availability (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	st := h.analyzer.Status()
	status := "healthy"
	if !st.Healthy() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           status,
		FacialClassifier: st.FacialClassifier,
		TextClassifier:   st.TextClassifier,
		MusicService:     h.resolver.CatalogName(),

		ImageRequirements: emotion.ImageRequirements(h.analyzer.MaxFileSize()),
	})
}

// AnalyzeImage handles an uploaded image (POST /analyze_image, multipart
// field "image").
func (h *Handlers) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	// Allow for multipart overhead on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.analyzer.MaxFileSize()+maxJSONBody)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, &emotion.ImageError{Msg: "Image file too large. Maximum size is " +
				emotion.ImageRequirements(h.analyzer.MaxFileSize()).MaxFileSize + "."})
			return
		}
		h.writeError(w, r, badRequest("No image provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, r, badRequest("Could not read uploaded file"))
		return
	}

	result, err := h.analyzer.AnalyzeUpload(r.Context(), header.Filename, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondAnalysis(w, r, result)
}

// AnalyzeWebcam handles a captured webcam frame (POST /analyze_webcam).
func (h *Handlers) AnalyzeWebcam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	// Base64 inflates the frame by a third.
	if err := decodeJSON(w, r, &req, h.analyzer.MaxFileSize()*4/3+maxJSONBody); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Image == "" {
		h.writeError(w, r, badRequest("No image data provided"))
		return
	}

	result, err := h.analyzer.AnalyzeFrame(r.Context(), req.Image)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondAnalysis(w, r, result)
}

// AnalyzeText handles free text (POST /analyze_text).
func (h *Handlers) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := decodeJSON(w, r, &req, maxJSONBody); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Text == nil {
		h.writeError(w, r, badRequest("No text provided"))
		return
	}

	result, err := h.analyzer.AnalyzeText(r.Context(), *req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondAnalysis(w, r, result)
}

// SearchMusic handles a free-text music search (POST /search_music).
func (h *Handlers) SearchMusic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query *string `json:"query"`
	}
	if err := decodeJSON(w, r, &req, maxJSONBody); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Query == nil {
		h.writeError(w, r, badRequest("No search query provided"))
		return
	}

	query := strings.TrimSpace(*req.Query)
	tracks, err := h.resolver.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if wantsHTML(r) {
		h.renderPartial(w, r, http.StatusOK, "search", newSearchView(query, tracks, h.resolver.CatalogName()))
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{SearchQuery: query, Tracks: tracks})
}

// respondAnalysis fetches music for the detected emotion and writes the
// combined response.
func (h *Handlers) respondAnalysis(w http.ResponseWriter, r *http.Request, result emotion.Result) {
	rec, err := h.resolver.Recommend(r.Context(), result.Emotion)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if wantsHTML(r) {
		h.renderPartial(w, r, http.StatusOK, "analysis", newAnalysisView(result, rec, h.resolver.CatalogName()))
		return
	}

	var all map[string]float64
	if result.AllEmotions != nil {
		all = make(map[string]float64, len(result.AllEmotions))
		for l, score := range result.AllEmotions {
			all[string(l)] = score
		}
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		Emotion:     string(result.Emotion),
		Confidence:  result.Confidence,
		AllEmotions: all,
		Method:      result.Method,
		Mood:        rec.Mood(),
		Note:        result.Note,
		ImageInfo:   result.Image,
		Tracks:      rec.Tracks,
	})
}

// requestError is a client error with a message safe to show to the user.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, msg: msg}
}

// writeError maps err to a status code and user-facing message.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: "Internal server error"}
	status := http.StatusInternalServerError

	var reqErr *requestError
	var imgErr *emotion.ImageError
	switch {
	case errors.As(err, &reqErr):
		status, resp.Error = reqErr.status, reqErr.msg
	case errors.As(err, &imgErr):
		req := emotion.ImageRequirements(h.analyzer.MaxFileSize())
		status, resp.Error, resp.Requirements = http.StatusBadRequest, imgErr.Msg, &req
	case errors.Is(err, emotion.ErrEmptyText):
		status, resp.Error = http.StatusBadRequest, "Empty text provided"
	case errors.Is(err, recommend.ErrEmptyQuery):
		status, resp.Error = http.StatusBadRequest, "Empty search query"
	case errors.Is(err, music.ErrRateLimited):
		status, resp.Error = http.StatusServiceUnavailable, "Music service rate limited"
	case errors.Is(err, recommend.ErrMusicService):
		status, resp.Error = http.StatusBadGateway, "Music service unavailable"
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
		captureException(r.Context(), err)
	} else {
		h.logger.Info("request rejected", fields...)
	}

	if wantsHTML(r) {
		h.renderPartial(w, r, status, "error", ErrorView{Message: resp.Error})
		return
	}
	writeJSON(w, status, resp)
}

func (h *Handlers) renderPartial(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf strings.Builder
	if err := h.templates.RenderPartial(&buf, name, data); err != nil {
		h.logger.Error("rendering partial",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("partial", name),
			zap.Error(err),
		)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

// captureException reports err to the request's Sentry hub, if any.
func captureException(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &requestError{status: http.StatusRequestEntityTooLarge, msg: "Request body too large"}
		}
		return badRequest("Invalid JSON body")
	}
	return nil
}

// wantsHTML reports whether the client asked for a rendered fragment.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
