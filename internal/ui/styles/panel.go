package styles

import "github.com/charmbracelet/lipgloss"

var panelStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(defaultTheme.Primary).
	Padding(0, 1)

// PanelStyle returns the bordered style of the help panel.
func PanelStyle() lipgloss.Style {
	return panelStyle
}
