package collector

import (
	"strconv"

	"github.com/crimson-sun/airq/internal/feature"
)

// Bounds describes the range of a slider.
type Bounds struct {
	Min  float64
	Max  float64
	Step float64
}

// Slider constrains every feature to [0, 2*default], starting at the default.
// It never reports field errors.
type Slider struct {
	reg *feature.Registry
}

// NewSlider creates a slider collector over reg.
func NewSlider(reg *feature.Registry) *Slider {
	return &Slider{reg: reg}
}

// Registry returns the schema the slider collects.
func (s *Slider) Registry() *feature.Registry {
	return s.reg
}

// Initial returns each slider's starting position, which is the default.
func (s *Slider) Initial() map[string]string {
	return initial(s.reg)
}

// Bounds returns the range for f.
func (s *Slider) Bounds(f feature.Feature) Bounds {
	hi := 2 * f.Default
	if hi < 0 {
		hi = 0
	}
	step := hi / 1000
	if step == 0 {
		step = 0.01
	}
	return Bounds{Min: 0, Max: hi, Step: step}
}

// Collect reads each feature from raw. Missing or unparsable values fall back
// to the default; out-of-range values are clamped.
func (s *Slider) Collect(raw map[string]string) (feature.Vector, []FieldError) {
	features := s.reg.Features()
	vec := make(feature.Vector, len(features))
	for i, f := range features {
		b := s.Bounds(f)
		v := f.Default
		if in, ok := raw[f.Name]; ok {
			if parsed, err := strconv.ParseFloat(normalize(in), 64); err == nil {
				v = parsed
			}
		}
		vec[i] = clamp(v, b.Min, b.Max)
	}
	return vec, nil
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
