package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessEncodesWebP(t *testing.T) {
	processor := NewThumbnailProcessor(400, 80)

	out, err := processor.Process(pngBytes(t, 200, 100), 100)
	require.NoError(t, err)

	require.Greater(t, len(out), 12)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))
}

func TestProcessClampsWidth(t *testing.T) {
	processor := NewThumbnailProcessor(50, 80)

	for _, width := range []int{0, -10, 5000} {
		out, err := processor.Process(pngBytes(t, 200, 100), width)
		require.NoError(t, err, "width %d", width)
		assert.NotEmpty(t, out)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	processor := NewThumbnailProcessor(400, 80)

	_, err := processor.Process(nil, 100)
	assert.Error(t, err)

	_, err = processor.Process([]byte("not an image"), 100)
	assert.Error(t, err)
}
