// Filter catalog: the closed set of filters and the parameters each consumes
package filters

import (
	"strings"
)

// Kind identifies one of the selectable filters
type Kind int

const (
	Crystallize Kind = iota
	Edges
	GaussianBlur
	Pixellate
	SepiaTone
	UnsharpMask
	Vignette
	ComicEffect
	PhotoEffectChrome
	ColorInvert
)

// DefaultKind is the filter selected at startup
const DefaultKind = SepiaTone

var kindNames = []string{
	Crystallize:       "Crystallize",
	Edges:             "Edges",
	GaussianBlur:      "Gaussian Blur",
	Pixellate:         "Pixellate",
	SepiaTone:         "Sepia Tone",
	UnsharpMask:       "Unsharp Mask",
	Vignette:          "Vignette",
	ComicEffect:       "Comic Effect",
	PhotoEffectChrome: "Photo Effect Chrome",
	ColorInvert:       "Color Invert",
}

// String returns the display name used in the filter menu
func (k Kind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is a member of the catalog
func (k Kind) Valid() bool {
	return k >= Crystallize && k <= ColorInvert
}

// AllKinds returns every filter in menu order
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

// ParseKind resolves a display name or identifier such as "sepia_tone"
func ParseKind(name string) (Kind, bool) {
	want := normalizeName(name)
	if want == "" {
		return 0, false
	}
	for k, n := range kindNames {
		if normalizeName(n) == want {
			return Kind(k), true
		}
	}
	return 0, false
}

func normalizeName(name string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// ParamSet is the subset of parameters a filter consumes
type ParamSet uint8

// Has reports whether p is in the set
func (s ParamSet) Has(p Parameter) bool {
	return p.Valid() && s&p.bit() != 0
}

// Empty reports whether the set has no members
func (s ParamSet) Empty() bool {
	return s == 0
}

// List returns the members in Intensity, Radius, Scale order
func (s ParamSet) List() []Parameter {
	var out []Parameter
	for _, p := range AllParameters() {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func setOf(params ...Parameter) ParamSet {
	var s ParamSet
	for _, p := range params {
		s |= p.bit()
	}
	return s
}

var applicability = map[Kind]ParamSet{
	Crystallize:       setOf(Radius),
	Edges:             setOf(Intensity),
	GaussianBlur:      setOf(Radius),
	Pixellate:         setOf(Scale),
	SepiaTone:         setOf(Intensity),
	UnsharpMask:       setOf(Intensity, Radius),
	Vignette:          setOf(Intensity, Radius),
	ComicEffect:       setOf(),
	PhotoEffectChrome: setOf(),
	ColorInvert:       setOf(),
}

// ApplicableParameters returns the parameters kind consumes. Unknown kinds consume none.
func ApplicableParameters(kind Kind) ParamSet {
	return applicability[kind]
}
