package output

import (
	"time"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/model"
)

// Verbosity controls how much of a result is written.
type Verbosity int

const (
	// Minimal writes the category and its styling.
	Minimal Verbosity = iota
	// Standard adds the advice text and field errors.
	Standard
	// Full adds the input values and raw class index.
	Full
)

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
// Anything else is Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// Record is the serialized form of a result.
type Record struct {
	Timestamp      time.Time              `json:"timestamp"`
	Category       string                 `json:"category"`
	Color          string                 `json:"color"`
	Emoji          string                 `json:"emoji"`
	Recommendation string                 `json:"recommendation,omitempty"`
	Improvement    string                 `json:"improvement,omitempty"`
	FieldErrors    []collector.FieldError `json:"field_errors,omitempty"`
	Class          *int64                 `json:"class,omitempty"`
	Values         []model.Value          `json:"values,omitempty"`
}

// FormatResult flattens r into a Record, dropping fields by verbosity.
func FormatResult(r model.Result, verbosity Verbosity) Record {
	rec := Record{
		Timestamp: r.Timestamp,
		Category:  r.View.Category,
		Color:     r.View.Color,
		Emoji:     r.View.Emoji,
	}
	if verbosity >= Standard {
		rec.Recommendation = r.View.Recommendation
		rec.Improvement = r.View.Improvement
		rec.FieldErrors = r.FieldErrors
	}
	if verbosity == Full {
		class := r.Class
		rec.Class = &class
		rec.Values = r.Values
	}
	return rec
}
