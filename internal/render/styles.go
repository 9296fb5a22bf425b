package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to a renderer so colour is only emitted when the target
// writer is a terminal.
type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	detail  lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		label:   r.NewStyle().Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// pad renders s with style and pads the result to width runes.
func pad(style lipgloss.Style, s string, width int) string {
	return style.Width(width).Render(s)
}

func maxWidth(items []string) int {
	w := 0
	for _, s := range items {
		if n := lipgloss.Width(s); n > w {
			w = n
		}
	}
	return w
}
