package model

import (
	"time"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/presentation"
)

// Value is one named input as it was fed to the classifier.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is the outcome of one form submission: the values used, any fields
// that fell back to their default, and the rendered category.
type Result struct {
	Timestamp   time.Time
	Class       int64
	Values      []Value
	FieldErrors []collector.FieldError
	View        presentation.View
}

// Category returns the decoded label.
func (r Result) Category() string {
	return r.View.Category
}
