// Package terminal renders results as a colored card for interactive shells.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/crimson-sun/airq/internal/model"
	"github.com/crimson-sun/airq/internal/presentation"
)

// Output writes one styled card per result.
type Output struct {
	w       io.Writer
	printer *message.Printer
	width   int
}

// New creates an Output on os.Stdout.
func New(p *message.Printer) *Output {
	return NewWriter(os.Stdout, p)
}

// NewWriter creates an Output on w. Headings are translated with p.
func NewWriter(w io.Writer, p *message.Printer) *Output {
	return &Output{w: w, printer: p, width: 60}
}

func (o *Output) Write(_ context.Context, r model.Result) error {
	if _, err := fmt.Fprintln(o.w, Card(r, o.printer, o.width)); err != nil {
		return fmt.Errorf("terminal output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}

// Card renders the category banner followed by warnings and advice.
func Card(r model.Result, p *message.Printer, width int) string {
	v := r.View
	bg := lipgloss.Color(v.Color)

	banner := lipgloss.NewStyle().
		Background(bg).
		Foreground(contrast(v.Color)).
		Bold(true).
		Padding(1, 2).
		Width(width).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%s %s", v.Category, v.Emoji))

	var b strings.Builder
	b.WriteString(banner)

	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	for _, fe := range r.FieldErrors {
		b.WriteString("\n")
		b.WriteString(warn.Render("⚠ " + presentation.FieldErrorText(p, fe)))
	}

	heading := lipgloss.NewStyle().Bold(true).Underline(true)
	body := lipgloss.NewStyle().Width(width)

	b.WriteString("\n\n")
	b.WriteString(heading.Render(p.Sprintf("Recommendation")))
	b.WriteString("\n")
	b.WriteString(body.Render(v.Recommendation))

	if v.HasImprovement() {
		b.WriteString("\n\n")
		b.WriteString(heading.Render(p.Sprintf("How to improve")))
		b.WriteString("\n")
		b.WriteString(body.Render(v.Improvement))
	}
	return b.String()
}

// contrast picks black or white text for a "#RRGGBB" background.
func contrast(hex string) lipgloss.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return lipgloss.Color("#000000")
	}
	// ITU-R BT.601 luma.
	if 299*r+587*g+114*b > 128*1000 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}
