package airq

import "time"

// Result is a rendered prediction.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Result struct {
	Category       string       `json:"category"`               // Good, Moderate, Poor, Hazardous or a model-specific label
	Color          string       `json:"color"`                  // "#RRGGBB"
	Emoji          string       `json:"emoji"`                  // rendered with the category
	Recommendation string       `json:"recommendation"`         // localized advice
	Improvement    string       `json:"improvement,omitempty"`  // empty for Good
	Known          bool         `json:"known"`                  // false when the fallback presentation was used
	Values         []Value      `json:"values"`                 // in feature order, as fed to the model
	FieldErrors    []FieldError `json:"field_errors,omitempty"` // inputs replaced by their default
	Timestamp      time.Time    `json:"timestamp"`              // when the prediction ran
}

// Value is one feature as used for the prediction.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FieldError reports a string value that could not be parsed; the default
// was used instead.
type FieldError struct {
	Feature string  `json:"feature"`
	Input   string  `json:"input"`
	Default float64 `json:"default"`
}

// Feature is a model input with its default value.
type Feature struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
}
