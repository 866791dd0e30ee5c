//go:build matprofile

package cvfilter

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"

	"instafilter/internal/filters"
)

// Run with -tags matprofile to track native Mat allocations.
func TestFiltersReleaseEveryMat(t *testing.T) {
	backend := NewBackend()
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	src := gradient(16, 12)

	for _, kind := range filters.AllKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			before := gocv.MatProfile.Count()

			f, _ := backend.Filter(kind)
			_, err := f.Apply(empty)
			assert.ErrorIs(t, err, filters.ErrEmptySource)

			_, err = f.Apply(src)
			assert.NoError(t, err)

			assert.Equal(t, before, gocv.MatProfile.Count())
		})
	}
}
