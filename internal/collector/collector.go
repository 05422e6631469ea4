// Package collector turns raw form values into a feature vector.
package collector

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/airq/internal/feature"
)

// FieldError records a value that could not be parsed. The default for the
// feature was used in its place.
type FieldError struct {
	Feature string  `json:"feature"`
	Input   string  `json:"input"`
	Default float64 `json:"default"`
	Err     error   `json:"-"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("collector: %s: invalid value %q: %v", e.Feature, e.Input, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// Collector produces one value per registered feature, in registry order.
// The returned vector is always fully populated.
type Collector interface {
	Collect(raw map[string]string) (feature.Vector, []FieldError)
	// Initial returns the text each field starts with, keyed by feature name.
	Initial() map[string]string
	Registry() *feature.Registry
}

// Kind names a collector variant.
type Kind string

const (
	KindSlider Kind = "slider"
	KindText   Kind = "text"
)

// New returns the collector for kind.
func New(kind Kind, reg *feature.Registry) (Collector, error) {
	switch kind {
	case KindSlider:
		return NewSlider(reg), nil
	case KindText:
		return NewText(reg), nil
	default:
		return nil, fmt.Errorf("collector: unknown kind %q", kind)
	}
}

func initial(reg *feature.Registry) map[string]string {
	m := make(map[string]string, reg.Len())
	for _, f := range reg.Features() {
		m[f.Name] = feature.FormatValue(f.Default)
	}
	return m
}

// NFKC leaves U+2212 MINUS SIGN alone, so it is mapped by hand.
var minusSign = strings.NewReplacer("\u2212", "-")

// normalize folds compatibility characters (full-width digits and signs),
// turns U+2212 into an ASCII hyphen-minus and trims surrounding space.
func normalize(s string) string {
	return strings.TrimSpace(minusSign.Replace(norm.NFKC.String(s)))
}
