// Package imgproc normalizes user-supplied images into size-bounded JPEG
// representations, emitted as raw bytes for storage uploads or as data URLs
// for inline embedding.
package imgproc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// Preset names a compression configuration. Presets exist as named values
// instead of inline numbers so the heuristics in PresetFor stay auditable.
type Preset struct {
	Name      string
	MaxWidth  int
	MaxHeight int
	Quality   int
}

var (
	// PresetGeneral covers ordinary photo attachments.
	PresetGeneral = Preset{Name: "general", MaxWidth: 1920, MaxHeight: 1920, Quality: 85}
	// PresetReceipt is stricter: receipts are text documents that survive
	// aggressive compression and carry a lower size ceiling.
	PresetReceipt = Preset{Name: "receipt", MaxWidth: 1280, MaxHeight: 1280, Quality: 70}
	// PresetMessenger targets images already recompressed by a messaging
	// app; squeezing them further loses nothing visible.
	PresetMessenger = Preset{Name: "messenger", MaxWidth: 1024, MaxHeight: 1024, Quality: 60}
)

// PresetFor classifies a source file by upload category and filename.
// Telegram saves chat photos under a "photo_" prefix, which marks them as
// already low quality.
func PresetFor(filename, category string) Preset {
	if category == "receipt" {
		return PresetReceipt
	}
	if strings.HasPrefix(strings.ToLower(filename), "photo_") {
		return PresetMessenger
	}
	return PresetGeneral
}

// FitDimensions scales (w, h) down to fit within (maxW, maxH) preserving
// aspect ratio. Images already within bounds keep their dimensions.
func FitDimensions(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return int(math.Round(float64(w) * scale)), int(math.Round(float64(h) * scale))
}

// Resize decodes an image, bounds both dimensions by maxDimension and
// re-encodes as JPEG at the given quality, returning a data URL.
func Resize(r io.Reader, maxDimension, quality int) (string, error) {
	data, err := encodeBounded(r, maxDimension, maxDimension, quality)
	if err != nil {
		return "", err
	}
	return DataURL("image/jpeg", data), nil
}

// Compress is the preset-driven variant of Resize with independent width and
// height caps.
func Compress(r io.Reader, p Preset) (string, error) {
	data, err := CompressBytes(r, p)
	if err != nil {
		return "", err
	}
	return DataURL("image/jpeg", data), nil
}

// CompressBytes re-encodes an image per the preset and returns raw JPEG
// bytes, for callers that upload rather than embed.
func CompressBytes(r io.Reader, p Preset) ([]byte, error) {
	return encodeBounded(r, p.MaxWidth, p.MaxHeight, p.Quality)
}

func encodeBounded(r io.Reader, maxW, maxH, quality int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := FitDimensions(bounds.Dx(), bounds.Dy(), maxW, maxH)
	if w != bounds.Dx() || h != bounds.Dy() {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL wraps bytes in a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURL reports whether s is an inline data URL rather than a remote
// location.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL returns the mime type and raw bytes of a data URL.
func DecodeDataURL(s string) (string, []byte, error) {
	if !IsDataURL(s) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	rest := strings.TrimPrefix(s, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("data URL is not base64-encoded")
	}
	mimeType := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return mimeType, data, nil
}
