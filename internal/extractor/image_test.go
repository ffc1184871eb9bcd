package extractor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayscalePNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "color.png")
	dst := filepath.Join(dir, "gray.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: 200, B: 50, A: 255})
		}
	}
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	require.NoError(t, grayscalePNG(src, dst))

	out, err := os.Open(dst)
	require.NoError(t, err)
	defer out.Close()

	decoded, format, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	_, isGray := decoded.(*image.Gray)
	assert.True(t, isGray, "expected 8-bit grayscale output, got %T", decoded)
}

func TestGrayscalePNG_BadInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notanimage.png")
	require.NoError(t, os.WriteFile(src, []byte("plain text"), 0o644))

	err := grayscalePNG(src, filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}
