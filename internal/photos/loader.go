// Photo decoding for picked files
package photos

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"instafilter/internal/core"
)

// ErrUnsupportedFormat is returned for files the loader will not decode
var ErrUnsupportedFormat = errors.New("unsupported image format")

var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// SupportedExtensions returns the file extensions the picker should offer
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// Loader decodes photos into rasters
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads and decodes the photo at path
func (l *Loader) Load(path string) (image.Image, error) {
	l.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image: %s", path)
	}

	return l.finish(mat, path)
}

// Decode decodes a photo from r; name is used for format checks and logging
func (l *Loader) Decode(r io.Reader, name string) (image.Image, error) {
	l.logger.WithField("name", name).Debug("Decoding image")

	if !IsSupported(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read %s: %w", name, core.ErrNoImage)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("invalid or corrupted image file: %s", name)
	}

	return l.finish(mat, name)
}

func (l *Loader) finish(mat gocv.Mat, name string) (image.Image, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}
	if err := core.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("invalid image %s: %w", name, err)
	}

	md := core.Metadata(img, formatOf(name))
	l.logger.WithFields(logrus.Fields{
		"name":   name,
		"width":  md.Width,
		"height": md.Height,
		"format": md.Format,
	}).Info("Image loaded successfully")

	return img, nil
}

// IsSupported reports whether the extension of name is one the loader decodes
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

func formatOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
