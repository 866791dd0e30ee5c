package filters

import (
	"errors"
	"image"
)

// ErrEmptySource is returned by filters given a nil or zero-sized image
var ErrEmptySource = errors.New("source image is empty")

// Filter is a single configured invocation of an image filter.
// Parameters that are never set keep the filter's own defaults.
type Filter interface {
	SetValue(p Parameter, v float64)
	Apply(src image.Image) (image.Image, error)
}

// Backend maps a filter kind to a fresh Filter
type Backend interface {
	Filter(kind Kind) (Filter, bool)
}

// Registry is a Backend built from a dispatch table of constructors
type Registry map[Kind]func() Filter

// Filter returns a new filter for kind
func (r Registry) Filter(kind Kind) (Filter, bool) {
	newFilter, ok := r[kind]
	if !ok {
		return nil, false
	}
	return newFilter(), true
}

// ValidateSource checks that img has a drawable area
func ValidateSource(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptySource
	}
	return nil
}
