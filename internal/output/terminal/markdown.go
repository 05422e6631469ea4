package terminal

import "github.com/charmbracelet/glamour"

// Markdown renders md for the terminal, wrapped at width. On any renderer
// error the source text is returned unchanged.
func Markdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
