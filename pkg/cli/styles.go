package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the output styles for one writer. Colors are dropped automatically
// when the writer is not a terminal.
type styles struct {
	title   lipgloss.Style
	path    lipgloss.Style
	hint    lipgloss.Style
	errorS  lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D4AA")),
		path:    r.NewStyle().Bold(true),
		hint:    r.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		errorS:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#00D4AA")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}
