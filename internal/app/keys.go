package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/scrub/internal/scrub"
)

// handleKey routes a key press through the controller and applies the
// command's effects on the interface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	cmd, err := m.ctrl.OnKey(msg.String())
	if err != nil {
		return m.fail(err)
	}

	switch cmd.Kind {
	case scrub.CommandQuit:
		return m.quit()

	case scrub.CommandHelp:
		m.showHelp = !m.showHelp
		m.relayout()

	case scrub.CommandPrintTimestamp:
		line := fmt.Sprintf("frame %s  %s", humanize.Comma(int64(m.ctrl.Index())), cmd.Timestamp)
		m.printed = append(m.printed, line)
		m.setStatus(line, statusInfo)
		m.log.WithFields(logrus.Fields{
			"frame":     m.ctrl.Index(),
			"timestamp": cmd.Timestamp.String(),
		}).Info("timestamp")

	case scrub.CommandUnknown:
		m.setStatus(fmt.Sprintf("unbound key %q (? for help)", cmd.Key), statusWarning)

	case scrub.CommandIgnore, scrub.CommandTogglePause, scrub.CommandStepForward,
		scrub.CommandStepBackward, scrub.CommandNudge, scrub.CommandJump:
	}

	m.refreshFrame()
	return m, nil
}

// handleMouse turns left-button presses and drags on the slider row into
// slider moves. They reach the controller as user changes.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v, ok := m.slider.ValueAt(msg.X)
		if msg.Y != m.sliderRow() || !ok {
			return m, nil
		}
		m.dragging = true
		m.slider.SetValue(v)

	case msg.Action == tea.MouseActionMotion && m.dragging:
		start, width := m.slider.BarSpan()
		if width == 0 {
			return m, nil
		}
		x := min(max(msg.X, start), start+width-1)
		if v, ok := m.slider.ValueAt(x); ok && v != m.slider.Value() {
			m.slider.SetValue(v)
		}

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}

	return m, nil
}
