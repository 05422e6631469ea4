// Package scaler loads exported feature scalers and applies their transform.
package scaler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind identifies the scaling formula.
type Kind string

const (
	// MinMax computes x*scale + min (sklearn MinMaxScaler).
	MinMax Kind = "minmax"
	// Standard computes (x - mean) / scale (sklearn StandardScaler).
	Standard Kind = "standard"
)

// File is the on-disk form of a scaler. JSON documents are accepted as well
// since they are valid YAML.
//
// A minmax scaler needs either min and scale (sklearn min_ and scale_) or
// data_min and data_max, with optional feature_range.
type File struct {
	Kind         Kind      `yaml:"kind"`
	FeatureNames []string  `yaml:"feature_names"`
	Min          []float64 `yaml:"min"`
	Scale        []float64 `yaml:"scale"`
	DataMin      []float64 `yaml:"data_min"`
	DataMax      []float64 `yaml:"data_max"`
	FeatureRange []float64 `yaml:"feature_range"`
	Mean         []float64 `yaml:"mean"`
}

// Scaler is an immutable per-column transform.
type Scaler struct {
	kind   Kind
	names  []string
	offset []float64 // min for MinMax, mean for Standard
	scale  []float64
}

// Load reads a scaler from path.
func Load(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scaler: parse %s: %w", path, err)
	}
	s, err := FromFile(f)
	if err != nil {
		return nil, fmt.Errorf("scaler: %s: %w", path, err)
	}
	return s, nil
}

// FromFile validates f and builds a Scaler.
func FromFile(f File) (*Scaler, error) {
	switch f.Kind {
	case MinMax, "":
		return minMaxFromFile(f)
	case Standard:
		return standardFromFile(f)
	default:
		return nil, fmt.Errorf("unknown kind %q", f.Kind)
	}
}

func minMaxFromFile(f File) (*Scaler, error) {
	mins, scale := f.Min, f.Scale
	if len(mins) == 0 && len(scale) == 0 {
		if len(f.DataMin) == 0 || len(f.DataMin) != len(f.DataMax) {
			return nil, fmt.Errorf("minmax: need min/scale or data_min/data_max of equal length")
		}
		lo, hi := 0.0, 1.0
		if len(f.FeatureRange) != 0 {
			if len(f.FeatureRange) != 2 {
				return nil, fmt.Errorf("minmax: feature_range needs 2 values, got %d", len(f.FeatureRange))
			}
			lo, hi = f.FeatureRange[0], f.FeatureRange[1]
		}
		if lo >= hi {
			return nil, fmt.Errorf("minmax: invalid feature_range [%v, %v]", lo, hi)
		}
		mins = make([]float64, len(f.DataMin))
		scale = make([]float64, len(f.DataMin))
		for i := range f.DataMin {
			span := f.DataMax[i] - f.DataMin[i]
			if span == 0 {
				span = 1
			}
			scale[i] = (hi - lo) / span
			mins[i] = lo - f.DataMin[i]*scale[i]
		}
	}
	if len(mins) == 0 || len(mins) != len(scale) {
		return nil, fmt.Errorf("minmax: min has %d columns, scale has %d", len(mins), len(scale))
	}
	if err := checkNames(f.FeatureNames, len(mins)); err != nil {
		return nil, err
	}
	return &Scaler{kind: MinMax, names: f.FeatureNames, offset: mins, scale: scale}, nil
}

func standardFromFile(f File) (*Scaler, error) {
	if len(f.Mean) == 0 || len(f.Mean) != len(f.Scale) {
		return nil, fmt.Errorf("standard: mean has %d columns, scale has %d", len(f.Mean), len(f.Scale))
	}
	scale := make([]float64, len(f.Scale))
	for i, v := range f.Scale {
		if v == 0 {
			v = 1
		}
		scale[i] = v
	}
	if err := checkNames(f.FeatureNames, len(f.Mean)); err != nil {
		return nil, err
	}
	return &Scaler{kind: Standard, names: f.FeatureNames, offset: f.Mean, scale: scale}, nil
}

func checkNames(names []string, n int) error {
	if len(names) != 0 && len(names) != n {
		return fmt.Errorf("feature_names has %d entries, parameters have %d columns", len(names), n)
	}
	return nil
}

// Kind returns the scaling formula.
func (s *Scaler) Kind() Kind {
	return s.kind
}

// NumFeatures returns the number of columns the scaler was fit on.
func (s *Scaler) NumFeatures() int {
	return len(s.scale)
}

// FeatureNames returns the training column names, if recorded.
func (s *Scaler) FeatureNames() []string {
	return s.names
}

// Transform scales every row. Values are not clipped to the trained range.
func (s *Scaler) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for r, row := range x {
		if len(row) != len(s.scale) {
			return nil, fmt.Errorf("scaler: row %d has %d columns, want %d", r, len(row), len(s.scale))
		}
		scaled := make([]float64, len(row))
		for i, v := range row {
			switch s.kind {
			case Standard:
				scaled[i] = (v - s.offset[i]) / s.scale[i]
			default:
				scaled[i] = v*s.scale[i] + s.offset[i]
			}
		}
		out[r] = scaled
	}
	return out, nil
}
