// Package feature defines the input schema shared by the collectors and the
// inference engine. The order of the registry is the column order the
// scaler and classifier artifacts were trained on.
package feature

import (
	"fmt"
	"strconv"
)

// Feature is a single input dimension and its default (training mean) value.
type Feature struct {
	Name    string
	Default float64
}

// Vector holds one value per registered feature, in registry order.
type Vector []float64

// Registry is an ordered, immutable list of features.
type Registry struct {
	features []Feature
	index    map[string]int
}

// NewRegistry builds a registry from features in column order.
// Names must be unique and non-empty.
func NewRegistry(features []Feature) (*Registry, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("feature: registry is empty")
	}
	r := &Registry{
		features: make([]Feature, len(features)),
		index:    make(map[string]int, len(features)),
	}
	copy(r.features, features)
	for i, f := range features {
		if f.Name == "" {
			return nil, fmt.Errorf("feature: empty name at position %d", i)
		}
		if _, dup := r.index[f.Name]; dup {
			return nil, fmt.Errorf("feature: duplicate name %q", f.Name)
		}
		r.index[f.Name] = i
	}
	return r, nil
}

// Default returns the air-quality registry the bundled artifacts expect.
func Default() *Registry {
	r, err := NewRegistry(defaultFeatures)
	if err != nil {
		panic(err)
	}
	return r
}

// Features returns a copy of the registered features in order.
func (r *Registry) Features() []Feature {
	out := make([]Feature, len(r.features))
	copy(out, r.features)
	return out
}

// Names returns the feature names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.features))
	for i, f := range r.features {
		names[i] = f.Name
	}
	return names
}

// Defaults returns a vector populated with every feature's default value.
func (r *Registry) Defaults() Vector {
	v := make(Vector, len(r.features))
	for i, f := range r.features {
		v[i] = f.Default
	}
	return v
}

// Len returns the number of features.
func (r *Registry) Len() int {
	return len(r.features)
}

// Index returns the column of the named feature.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// FormatValue renders a value the way input fields are pre-filled.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
