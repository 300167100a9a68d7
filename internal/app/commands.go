package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameTickCmd returns a command that sends FrameTickMsg after one frame
// period.
func FrameTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}
