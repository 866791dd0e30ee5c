// Filter engine: current filter, parameters and source, and the recompute step
package core

import (
	"image"

	"github.com/sirupsen/logrus"

	"instafilter/internal/filters"
)

// Engine holds the selected filter and slider values and produces the output
// image for the current source. It is owned by the UI goroutine and is not
// safe for concurrent use.
type Engine struct {
	backend filters.Backend
	logger  *logrus.Logger

	kind   filters.Kind
	params filters.Parameters
	source image.Image
	output image.Image
}

func NewEngine(backend filters.Backend, logger *logrus.Logger) *Engine {
	return &Engine{
		backend: backend,
		logger:  logger,
		kind:    filters.DefaultKind,
		params:  filters.DefaultParameters(),
	}
}

// SetSource replaces the source image and recomputes. A nil image, including
// a typed nil pointer, clears the source and the output.
func (e *Engine) SetSource(img image.Image) image.Image {
	if Absent(img) {
		img = nil
	}
	e.source = img
	if img != nil {
		b := img.Bounds()
		e.logger.WithFields(logrus.Fields{
			"width":  b.Dx(),
			"height": b.Dy(),
		}).Debug("ENGINE: Source image set")
	}
	return e.Recompute()
}

// SetFilter selects kind and recomputes
func (e *Engine) SetFilter(kind filters.Kind) image.Image {
	e.logger.WithFields(logrus.Fields{
		"old_filter": e.kind.String(),
		"new_filter": kind.String(),
	}).Debug("ENGINE: Filter changed")
	e.kind = kind
	return e.Recompute()
}

// SetParameters replaces all slider values and recomputes
func (e *Engine) SetParameters(params filters.Parameters) image.Image {
	e.params = params.Clamp()
	return e.Recompute()
}

// SetParameter replaces a single slider value and recomputes
func (e *Engine) SetParameter(p filters.Parameter, v float64) image.Image {
	e.params = e.params.With(p, v)
	return e.Recompute()
}

// Recompute runs the current filter over the current source. Only the
// parameters the filter consumes are forwarded; the rest are left unset so
// the filter's own defaults apply. The result replaces the previous output,
// and is nil when there is no source or the filter produced nothing.
func (e *Engine) Recompute() image.Image {
	e.output = nil

	if e.source == nil {
		return nil
	}

	filter, ok := e.backend.Filter(e.kind)
	if !ok {
		e.logger.WithField("filter", e.kind.String()).Warn("ENGINE: No implementation for filter")
		return nil
	}

	applied := logrus.Fields{"filter": e.kind.String()}
	for _, p := range filters.ApplicableParameters(e.kind).List() {
		v := e.params.Get(p)
		filter.SetValue(p, v)
		applied[p.String()] = v
	}

	out, err := filter.Apply(e.source)
	if err != nil {
		e.logger.WithFields(applied).WithError(err).Warn("ENGINE: Filter produced no output")
		return nil
	}
	if out == nil {
		e.logger.WithFields(applied).Warn("ENGINE: Filter produced no output")
		return nil
	}

	e.logger.WithFields(applied).Debug("ENGINE: Output recomputed")
	e.output = out
	return out
}

// Output returns the last recomputed image, or nil
func (e *Engine) Output() image.Image {
	return e.output
}

// CanSave reports whether there is an output image to save
func (e *Engine) CanSave() bool {
	return e.output != nil
}

func (e *Engine) HasSource() bool {
	return e.source != nil
}

func (e *Engine) Source() image.Image {
	return e.source
}

func (e *Engine) Kind() filters.Kind {
	return e.kind
}

func (e *Engine) Parameters() filters.Parameters {
	return e.params
}
