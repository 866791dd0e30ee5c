package filters

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicableParameters(t *testing.T) {
	tests := []struct {
		kind Kind
		want []Parameter
	}{
		{Crystallize, []Parameter{Radius}},
		{Edges, []Parameter{Intensity}},
		{GaussianBlur, []Parameter{Radius}},
		{Pixellate, []Parameter{Scale}},
		{SepiaTone, []Parameter{Intensity}},
		{UnsharpMask, []Parameter{Intensity, Radius}},
		{Vignette, []Parameter{Intensity, Radius}},
		{ComicEffect, nil},
		{PhotoEffectChrome, nil},
		{ColorInvert, nil},
	}

	require.Len(t, tests, len(AllKinds()))
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ApplicableParameters(tt.kind).List())
		})
	}
}

func TestApplicableParametersUnknownKind(t *testing.T) {
	assert.True(t, ApplicableParameters(Kind(99)).Empty())
	assert.False(t, ApplicableParameters(SepiaTone).Has(Parameter(7)))
}

func TestKindNamesRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range AllKinds() {
		name := k.String()
		require.NotEqual(t, "Unknown", name)
		require.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		parsed, ok := ParseKind(name)
		require.True(t, ok, name)
		assert.Equal(t, k, parsed)
	}
}

func TestParseKindAliases(t *testing.T) {
	for _, name := range []string{"sepia_tone", "SEPIA-TONE", " SepiaTone "} {
		k, ok := ParseKind(name)
		require.True(t, ok, name)
		assert.Equal(t, SepiaTone, k)
	}

	_, ok := ParseKind("")
	assert.False(t, ok)
	_, ok = ParseKind("posterize")
	assert.False(t, ok)
}

func TestAllKindsMenuOrder(t *testing.T) {
	kinds := AllKinds()
	require.Len(t, kinds, 10)
	assert.Equal(t, Crystallize, kinds[0])
	assert.Equal(t, ColorInvert, kinds[len(kinds)-1])
	assert.Equal(t, "Photo Effect Chrome", kinds[8].String())
}

func TestParametersClamp(t *testing.T) {
	p := Parameters{Intensity: 1.7, Radius: -4, Scale: 51}.Clamp()
	assert.Equal(t, Parameters{Intensity: 1, Radius: 0, Scale: 50}, p)

	p = DefaultParameters().With(Radius, 250)
	assert.Equal(t, 200.0, p.Radius)
	assert.Equal(t, 0.5, p.Get(Intensity))
	assert.Equal(t, 25.0, p.Get(Scale))
}

func TestParameterBounds(t *testing.T) {
	lo, hi := Intensity.Bounds()
	assert.Equal(t, [2]float64{0, 1}, [2]float64{lo, hi})
	lo, hi = Radius.Bounds()
	assert.Equal(t, [2]float64{0, 200}, [2]float64{lo, hi})
	lo, hi = Scale.Bounds()
	assert.Equal(t, [2]float64{0, 50}, [2]float64{lo, hi})
}

type nopFilter struct{}

func (nopFilter) SetValue(Parameter, float64) {}

func (nopFilter) Apply(src image.Image) (image.Image, error) { return src, ValidateSource(src) }

func TestRegistry(t *testing.T) {
	r := Registry{ColorInvert: func() Filter { return nopFilter{} }}

	f, ok := r.Filter(ColorInvert)
	require.True(t, ok)
	require.NotNil(t, f)

	_, ok = r.Filter(Edges)
	assert.False(t, ok)
}

func TestValidateSource(t *testing.T) {
	assert.ErrorIs(t, ValidateSource(nil), ErrEmptySource)
	assert.ErrorIs(t, ValidateSource(image.NewRGBA(image.Rect(0, 0, 0, 3))), ErrEmptySource)
	assert.NoError(t, ValidateSource(image.NewRGBA(image.Rect(0, 0, 2, 2))))
}
