package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/scrub/internal/ui/styles"
)

// Rows besides the frame: title, slider and status. Help follows them.
const chromeRows = 3

// frameTop is the 0-based row the frame area starts on.
const frameTop = 1

// helpPanelFrame is the horizontal border and padding of the help panel.
const helpPanelFrame = 4

// relayout sizes the slider, help and frame area to the terminal and shows
// the current frame again when the area changed.
func (m *Model) relayout() {
	m.slider.SetWidth(m.width)
	m.help.Width = max(m.width-helpPanelFrame, 0)
	m.help.ShowAll = m.showHelp

	if m.frames.SetSize(m.width, m.frameHeight()) {
		m.shown = nil
	}
	m.refreshFrame()
}

// helpView renders the one-line key hints, or the full key list in a
// bordered panel while help is toggled on.
func (m Model) helpView() string {
	if !m.showHelp {
		return m.help.View(m.keys)
	}
	panel := styles.PanelStyle()
	return panel.Width(max(m.width-2, 0)).Render(m.help.View(m.keys))
}

func (m Model) frameHeight() int {
	return max(m.height-chromeRows-lipgloss.Height(m.helpView()), 0)
}

// sliderRow is the 0-based screen row of the slider.
func (m Model) sliderRow() int {
	return frameTop + m.frameHeight()
}
