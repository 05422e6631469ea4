package presentation

import (
	"golang.org/x/text/message"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/i18n"
)

// View is the rendered result for one category.
type View struct {
	Category       string `json:"category"`
	Color          string `json:"color"`
	Emoji          string `json:"emoji"`
	Recommendation string `json:"recommendation"`
	Improvement    string `json:"improvement,omitempty"`
	Known          bool   `json:"known"`
}

// HasImprovement reports whether an improvement section should be shown.
func (v View) HasImprovement() bool {
	return v.Improvement != ""
}

// Renderer turns category labels into localized views.
type Renderer struct {
	table   Table
	printer *message.Printer
}

// NewRenderer creates a Renderer over table. A nil printer renders English.
func NewRenderer(table Table, p *message.Printer) *Renderer {
	if p == nil {
		p = i18n.English()
	}
	return &Renderer{table: table, printer: p}
}

// Render never fails: unknown labels get the fallback styling and the
// generic recommendation.
func (r *Renderer) Render(category string) View {
	e, known := r.table.Lookup(category)

	rec := e.Recommendation
	if rec == "" {
		rec = NoRecommendation
	}

	v := View{
		Category:       category,
		Color:          e.Color,
		Emoji:          e.Emoji,
		Recommendation: r.printer.Sprintf(rec),
		Known:          known,
	}
	if e.Improvement != "" {
		v.Improvement = r.printer.Sprintf(e.Improvement)
	}
	return v
}

// Printer returns the printer used for translation.
func (r *Renderer) Printer() *message.Printer {
	return r.printer
}

// FieldErrorText is the inline warning for a field that fell back to its
// default.
func FieldErrorText(p *message.Printer, fe collector.FieldError) string {
	return p.Sprintf("Invalid value %q for %s, using default %s.", fe.Input, fe.Feature, feature.FormatValue(fe.Default))
}
