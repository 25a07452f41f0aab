// ABOUTME: lipgloss styles for the input line, bound to the output the program writes to
// ABOUTME: The renderer detects the colour profile from that output, so non-TTY output stays plain

package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// placeholderColor is ANSI bright black, the usual "dark grey".
const placeholderColor = lipgloss.Color("8")

// Styles holds the styles used when drawing.
type Styles struct {
	Placeholder lipgloss.Style
}

// NewStyles builds Styles for output written to out. The background is
// declared dark up front so lipgloss never sends OSC colour queries into a
// raw-mode session.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	r.SetHasDarkBackground(true)
	return stylesFor(r)
}

func stylesFor(r *lipgloss.Renderer) Styles {
	return Styles{
		Placeholder: r.NewStyle().Foreground(placeholderColor),
	}
}
