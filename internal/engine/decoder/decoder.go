// Package decoder maps predicted class indices back to category labels.
package decoder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a label decoder: the encoder's classes in
// index order (sklearn LabelEncoder.classes_).
type File struct {
	Classes []string `yaml:"classes"`
}

// Decoder is an immutable index → label table.
type Decoder struct {
	classes []string
}

// New creates a Decoder over classes. Labels must be unique.
func New(classes []string) (*Decoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("decoder: no classes")
	}
	seen := make(map[string]bool, len(classes))
	for _, c := range classes {
		if seen[c] {
			return nil, fmt.Errorf("decoder: duplicate class %q", c)
		}
		seen[c] = true
	}
	cp := make([]string, len(classes))
	copy(cp, classes)
	return &Decoder{classes: cp}, nil
}

// Load reads a decoder from a YAML or JSON file.
func Load(path string) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoder: parse %s: %w", path, err)
	}
	return New(f.Classes)
}

// Classes returns the labels in index order.
func (d *Decoder) Classes() []string {
	out := make([]string, len(d.classes))
	copy(out, d.classes)
	return out
}

// Decode is the inverse transform. An index outside the known classes is an
// error, not a guess.
func (d *Decoder) Decode(classes []int64) ([]string, error) {
	out := make([]string, len(classes))
	for i, c := range classes {
		if c < 0 || c >= int64(len(d.classes)) {
			return nil, fmt.Errorf("decoder: class %d out of range [0, %d)", c, len(d.classes))
		}
		out[i] = d.classes[c]
	}
	return out, nil
}
