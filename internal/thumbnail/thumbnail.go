package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/Brownie44l1/facerec/internal/logger"
)

type Size struct {
	Width  int
	Height int
}

func Square(side int) Size {
	return Size{Width: side, Height: side}
}

func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid thumbnail size %s", s)
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Resize scales img to exactly size, ignoring the aspect ratio.
// Nearest neighbour is used so no smoothing is applied. Pixels keep
// their non-premultiplied channel values.
func Resize(img image.Image, size Size) *image.NRGBA {
	return imaging.Resize(img, size.Width, size.Height, imaging.NearestNeighbor)
}

// Grayscale replaces every pixel with the truncated average of its
// non-premultiplied red, green and blue channels. The result is opaque.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
		return color.NRGBA{R: v, G: v, B: v, A: 0xff}
	})
}

// Prepare produces the thumbnail that is sent for prediction.
func Prepare(img image.Image, size Size) (*image.NRGBA, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image is empty")
	}

	gray := Grayscale(Resize(img, size))

	if logger.IsLogLevel(logger.DEBUG) {
		logger.Debug.Printf("Prepared thumbnail %s from %dx%d", size, bounds.Dx(), bounds.Dy())
	}
	return gray, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteTemp stores img as a PNG in a temporary file. The returned
// cleanup removes the file.
func WriteTemp(img image.Image) (string, func(), error) {
	file, err := os.CreateTemp("", "facerec-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := file.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn.Printf("Could not remove temp file %s: %v", path, err)
		}
	}

	if err := EncodePNG(file, img); err != nil {
		file.Close()
		cleanup()
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	return path, cleanup, nil
}

func SavePNG(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
