package imgproc_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smeta-backend/internal/imgproc"
)

// testImage encodes a solid PNG of the given size.
func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"wide landscape", 4000, 2000, 1920, 1920, 1920, 960},
		{"tall portrait", 1000, 3000, 640, 1920, 640, 1920},
		{"already within bounds", 800, 600, 1920, 1920, 800, 600},
		{"exact fit untouched", 1920, 1920, 1920, 1920, 1920, 1920},
		{"square downscale", 3000, 3000, 1024, 1024, 1024, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := imgproc.FitDimensions(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPresetFor(t *testing.T) {
	assert.Equal(t, imgproc.PresetReceipt, imgproc.PresetFor("check.jpg", "receipt"))
	assert.Equal(t, imgproc.PresetMessenger, imgproc.PresetFor("photo_2024-03-01.jpg", "general"))
	assert.Equal(t, imgproc.PresetMessenger, imgproc.PresetFor("PHOTO_123.JPG", "general"))
	assert.Equal(t, imgproc.PresetGeneral, imgproc.PresetFor("IMG_0042.HEIC", "general"))
	// category wins over the filename heuristic
	assert.Equal(t, imgproc.PresetReceipt, imgproc.PresetFor("photo_receipt.jpg", "receipt"))
}

func TestCompressBytes_DownscalesAndReencodes(t *testing.T) {
	src := testImage(t, 200, 100)

	out, err := imgproc.CompressBytes(bytes.NewReader(src), imgproc.Preset{
		Name: "tiny", MaxWidth: 50, MaxHeight: 50, Quality: 80,
	})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestCompressBytes_KeepsSmallImages(t *testing.T) {
	src := testImage(t, 40, 30)

	out, err := imgproc.CompressBytes(bytes.NewReader(src), imgproc.PresetGeneral)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestCompressBytes_RejectsGarbage(t *testing.T) {
	_, err := imgproc.CompressBytes(strings.NewReader("not an image"), imgproc.PresetGeneral)
	assert.Error(t, err)
}

func TestResize_ReturnsDataURL(t *testing.T) {
	src := testImage(t, 100, 80)

	url, err := imgproc.Resize(bytes.NewReader(src), 64, 70)
	require.NoError(t, err)

	assert.True(t, imgproc.IsDataURL(url))

	mimeType, data, err := imgproc.DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 51, cfg.Height)
}

func TestDecodeDataURL_Errors(t *testing.T) {
	_, _, err := imgproc.DecodeDataURL("https://example.com/a.jpg")
	assert.Error(t, err)

	_, _, err = imgproc.DecodeDataURL("data:image/jpeg,raw-not-base64")
	assert.Error(t, err)
}
