package emotion

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"math"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Image limits.
const (
	DefaultMaxFileSize = 20 << 20
	MinDimension       = 100
	MaxDimension       = 5000

	// UploadMaxSide and FrameMaxSide bound the long side of images sent to
	// the facial classifier.
	UploadMaxSide = 1000
	FrameMaxSide  = 800

	jpegQuality = 85
)

// allowedExtensions lists the accepted upload file extensions.
var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"bmp": true, "webp": true, "tiff": true, "tif": true,
}

// ErrInvalidImage is wrapped by every ImageError.
var ErrInvalidImage = errors.New("invalid image")

// ImageError is a user-input error with a message safe to show to the user.
type ImageError struct {
	Msg string
}

func (e *ImageError) Error() string { return e.Msg }

func (e *ImageError) Unwrap() error { return ErrInvalidImage }

func imageErrorf(format string, args ...any) error {
	return &ImageError{Msg: fmt.Sprintf(format, args...)}
}

// Requirements describes the accepted uploads; it is returned with image
// validation errors.
type Requirements struct {
	MinSize     string `json:"min_size"`
	MaxSize     string `json:"max_size"`
	MaxFileSize string `json:"max_file_size"`
	Formats     string `json:"formats"`
	Recommended string `json:"recommended"`
}

// ImageRequirements returns the upload requirements for the given file size limit.
func ImageRequirements(maxFileSize int64) Requirements {
	return Requirements{
		MinSize:     fmt.Sprintf("%dx%d pixels", MinDimension, MinDimension),
		MaxSize:     fmt.Sprintf("%dx%d pixels", MaxDimension, MaxDimension),
		MaxFileSize: fmt.Sprintf("%dMB", maxFileSize>>20),
		Formats:     "JPG, JPEG, PNG, GIF, BMP, WEBP, TIFF",
		Recommended: "Clear front-facing face, good lighting, 300x300+ pixels",
	}
}

// ImageInfo describes a decoded image.
type ImageInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int    `json:"file_size_bytes"`
}

// DecodeUpload validates and decodes an uploaded image file.
func DecodeUpload(filename string, data []byte, maxFileSize int64) (image.Image, ImageInfo, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ImageInfo{}, imageErrorf("No image selected")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtensions[ext] {
		return nil, ImageInfo{}, imageErrorf("Invalid file type (.%s). Supported formats: JPG, PNG, GIF, BMP, WEBP, TIFF.", ext)
	}

	if len(data) == 0 {
		return nil, ImageInfo{}, imageErrorf("Image file is empty")
	}
	if int64(len(data)) > maxFileSize {
		return nil, ImageInfo{}, imageErrorf("Image file too large (%.1fMB). Maximum size is %dMB.",
			float64(len(data))/(1<<20), maxFileSize>>20)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, imageErrorf("Cannot read image file (unsupported format or corrupt file)")
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, ImageInfo{}, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, imageErrorf("Cannot read image file (unsupported format or corrupt file)")
	}

	return img, ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: len(data),
	}, nil
}

// DecodeDataURL decodes a base64 data URL such as a webcam frame
// ("data:image/jpeg;base64,...").
func DecodeDataURL(dataURL string, maxFileSize int64) (image.Image, ImageInfo, error) {
	_, encoded, ok := strings.Cut(dataURL, ",")
	if !ok || encoded == "" {
		return nil, ImageInfo{}, imageErrorf("Invalid image data")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ImageInfo{}, imageErrorf("Invalid image data")
	}
	if int64(len(data)) > maxFileSize {
		return nil, ImageInfo{}, imageErrorf("Image data too large. Maximum size is %dMB.", maxFileSize>>20)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, imageErrorf("Could not decode image data")
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, ImageInfo{}, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, imageErrorf("Could not decode image data")
	}

	return img, ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: len(data),
	}, nil
}

func checkDimensions(w, h int) error {
	if w < MinDimension || h < MinDimension {
		return imageErrorf("Image too small (%dx%d). Minimum size is %dx%d pixels.", w, h, MinDimension, MinDimension)
	}
	if w > MaxDimension || h > MaxDimension {
		return imageErrorf("Image too large (%dx%d). Maximum size is %dx%d pixels.", w, h, MaxDimension, MaxDimension)
	}
	return nil
}

// EncodeForClassifier downscales img so its long side is at most maxSide
// and encodes it as JPEG.
func EncodeForClassifier(img image.Image, maxSide int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Downscale(img, maxSide), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale returns img resized so its long side is at most maxSide,
// preserving aspect ratio. Smaller images are returned unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := max(w, h)
	if maxSide <= 0 || long <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(long)
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// faceSuggestion gives a hint for images in which no face was found.
func faceSuggestion(w, h int) string {
	var hints []string
	if w < 300 || h < 300 {
		hints = append(hints, "Try using a higher resolution image.")
	}
	if w > 2000 || h > 2000 {
		hints = append(hints, "Very large image, consider resizing.")
	}
	if len(hints) == 0 {
		return "Ensure the face is clearly visible, well-lit, and facing forward."
	}
	return strings.Join(hints, " ")
}
