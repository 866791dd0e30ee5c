package filters

import "fmt"

// Parameter names one of the numeric knobs a filter may consume
type Parameter int

const (
	Intensity Parameter = iota
	Radius
	Scale
)

type paramInfo struct {
	name       string
	min, max   float64
	defaultVal float64
}

var paramInfos = []paramInfo{
	Intensity: {name: "Intensity", min: 0, max: 1, defaultVal: 0.5},
	Radius:    {name: "Radius", min: 0, max: 200, defaultVal: 100},
	Scale:     {name: "Scale", min: 0, max: 50, defaultVal: 25},
}

func (p Parameter) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return paramInfos[p].name
}

// Valid reports whether p is one of the three known parameters
func (p Parameter) Valid() bool {
	return p >= Intensity && p <= Scale
}

func (p Parameter) bit() ParamSet {
	if !p.Valid() {
		return 0
	}
	return 1 << uint(p)
}

// Bounds returns the inclusive slider range of p
func (p Parameter) Bounds() (lo, hi float64) {
	if !p.Valid() {
		return 0, 0
	}
	return paramInfos[p].min, paramInfos[p].max
}

// Clamp forces v into the bounds of p
func (p Parameter) Clamp(v float64) float64 {
	lo, hi := p.Bounds()
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AllParameters returns the parameters in slider order
func AllParameters() []Parameter {
	return []Parameter{Intensity, Radius, Scale}
}

// Parameters holds the current slider values
type Parameters struct {
	Intensity float64
	Radius    float64
	Scale     float64
}

// DefaultParameters returns the startup slider values
func DefaultParameters() Parameters {
	return Parameters{
		Intensity: paramInfos[Intensity].defaultVal,
		Radius:    paramInfos[Radius].defaultVal,
		Scale:     paramInfos[Scale].defaultVal,
	}
}

// Get returns the value for p
func (ps Parameters) Get(p Parameter) float64 {
	switch p {
	case Intensity:
		return ps.Intensity
	case Radius:
		return ps.Radius
	case Scale:
		return ps.Scale
	}
	return 0
}

// With returns a copy with p set to v, clamped to its bounds
func (ps Parameters) With(p Parameter, v float64) Parameters {
	v = p.Clamp(v)
	switch p {
	case Intensity:
		ps.Intensity = v
	case Radius:
		ps.Radius = v
	case Scale:
		ps.Scale = v
	}
	return ps
}

// Clamp returns a copy with every value inside its bounds
func (ps Parameters) Clamp() Parameters {
	return Parameters{
		Intensity: Intensity.Clamp(ps.Intensity),
		Radius:    Radius.Clamp(ps.Radius),
		Scale:     Scale.Clamp(ps.Scale),
	}
}
