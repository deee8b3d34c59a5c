package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"site-admin/internal/theme"
)

func tableStyles(t *theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(t.SelectedFg)).
		Background(lipgloss.Color(t.SelectedBg)).
		Bold(true)
	return s
}

// skeleton is the placeholder shown in every cell while a page loads
func skeleton(width int) string {
	if width < 2 {
		width = 2
	}
	out := make([]rune, width-1)
	for i := range out {
		out[i] = '░'
	}
	return string(out)
}
