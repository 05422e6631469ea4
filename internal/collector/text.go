package collector

import (
	"errors"
	"math"
	"strconv"

	"github.com/crimson-sun/airq/internal/feature"
)

var errNotFinite = errors.New("value is not a finite number")

// Text accepts free-form numbers. Each field is parsed independently; a bad
// field is reported and replaced by its default.
type Text struct {
	reg *feature.Registry
}

// NewText creates a free-text collector over reg.
func NewText(reg *feature.Registry) *Text {
	return &Text{reg: reg}
}

// Registry returns the schema the collector reads.
func (c *Text) Registry() *feature.Registry {
	return c.reg
}

// Initial returns the pre-filled text of every field, keyed by feature name.
func (c *Text) Initial() map[string]string {
	return initial(c.reg)
}

// Collect parses every feature in raw. A feature absent from raw takes its
// default without an error, matching an untouched pre-filled field.
func (c *Text) Collect(raw map[string]string) (feature.Vector, []FieldError) {
	features := c.reg.Features()
	vec := make(feature.Vector, len(features))
	var errs []FieldError
	for i, f := range features {
		in, ok := raw[f.Name]
		if !ok {
			vec[i] = f.Default
			continue
		}
		v, err := ParseValue(in)
		if err != nil {
			errs = append(errs, FieldError{Feature: f.Name, Input: in, Default: f.Default, Err: err})
			vec[i] = f.Default
			continue
		}
		vec[i] = v
	}
	return vec, errs
}

// ParseValue parses a single field. NaN and infinities are rejected.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(normalize(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
