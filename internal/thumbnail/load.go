package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/Brownie44l1/facerec/internal/logger"
)

// EXIF orientation values, see the TIFF 6.0 / EXIF 2.2 tables.
const (
	orientationNormal     = 1
	orientationFlipH      = 2
	orientationRotate180  = 3
	orientationFlipV      = 4
	orientationTranspose  = 5
	orientationRotate270  = 6
	orientationTransverse = 7
	orientationRotate90   = 8
)

// Load decodes an image and turns it upright according to its EXIF
// orientation, if any.
func Load(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	orientation := readOrientation(data)
	if orientation != orientationNormal {
		logger.Debug.Printf("Applying EXIF orientation %d", orientation)
	}
	return orient(img, orientation), nil
}

func LoadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

func readOrientation(data []byte) int {
	decoded, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return orientationNormal
	}
	tag, err := decoded.Get(exif.Orientation)
	if err != nil {
		return orientationNormal
	}
	value, err := tag.Int(0)
	if err != nil {
		return orientationNormal
	}
	return value
}

func orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case orientationFlipH:
		return imaging.FlipH(img)
	case orientationRotate180:
		return imaging.Rotate180(img)
	case orientationFlipV:
		return imaging.FlipV(img)
	case orientationTranspose:
		return imaging.Transpose(img)
	case orientationRotate270:
		return imaging.Rotate270(img)
	case orientationTransverse:
		return imaging.Transverse(img)
	case orientationRotate90:
		return imaging.Rotate90(img)
	}
	return img
}
