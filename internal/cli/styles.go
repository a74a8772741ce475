package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	colorHeader  = lipgloss.Color("#5a8c6a")
	colorChanged = lipgloss.Color("#8fc279")
	colorMuted   = lipgloss.Color("#9ba8c0")
	colorError   = lipgloss.Color("#d75f5f")
)

// styles renders through a renderer bound to the output writer, so plain
// writers (files, pipes, test buffers) get no escape sequences.
type styles struct {
	header  lipgloss.Style
	changed lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	title   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(colorHeader),
		changed: r.NewStyle().Foreground(colorChanged),
		muted:   r.NewStyle().Foreground(colorMuted),
		errText: r.NewStyle().Bold(true).Foreground(colorError),
		title:   r.NewStyle().Bold(true),
	}
}

// pad right-fills s to width display cells
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// columnWidth returns the widest display width among values
func columnWidth(header string, values []string) int {
	width := runewidth.StringWidth(header)
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > width {
			width = w
		}
	}
	return width
}
