package extractor

import (
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/jpeg" // register JPEG decoding for uploaded .jpg statements
)

// grayscalePNG decodes a PNG or JPEG image, converts it to grayscale and
// writes the result as PNG at dstPath.
func grayscalePNG(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating grayscale image: %w", err)
	}
	defer dst.Close()

	if err := png.Encode(dst, gray); err != nil {
		return fmt.Errorf("encoding grayscale image: %w", err)
	}
	return nil
}
