// Raster validation shared by the loader and the engine
package core

import (
	"errors"
	"fmt"
	"image"
	"reflect"
)

// MaxDimension bounds either side of an accepted photo
const MaxDimension = 16384

// ErrNoImage is returned when an operation needs a raster and has none
var ErrNoImage = errors.New("no image")

// ImageMetadata contains image information
type ImageMetadata struct {
	Width  int
	Height int
	Format string
}

// Metadata describes img; format is the decoder name, if known
func Metadata(img image.Image, format string) ImageMetadata {
	if img == nil {
		return ImageMetadata{Format: format}
	}
	b := img.Bounds()
	return ImageMetadata{Width: b.Dx(), Height: b.Dy(), Format: format}
}

// ValidateImage validates a raster for basic requirements
func ValidateImage(img image.Image) error {
	if Absent(img) {
		return ErrNoImage
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", b.Dx(), b.Dy())
	}

	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", b.Dx(), b.Dy(), MaxDimension)
	}

	return nil
}

// Absent reports whether img is nil or a nil pointer wrapped in the interface
func Absent(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
