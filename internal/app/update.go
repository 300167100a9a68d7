package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Update handles messages and returns updated model and commands. The
// resulting playback state is published for remote controls.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if nm, ok := next.(Model); ok {
		nm.publish()
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case FrameTickMsg:
		return m.handleFrameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case RemoteMsg:
		return m.handleRemote(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.relayout()
	return m, nil
}

// handleFrameTick runs one loop iteration and schedules the next.
func (m Model) handleFrameTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if _, err := m.ctrl.Tick(); err != nil {
		return m.fail(err)
	}
	m.refreshFrame()
	return m, FrameTickCmd(m.ctrl.TickInterval())
}

// handleRemote applies a media-control request. Seeks move the slider as a
// user change and commit through the debouncer.
func (m Model) handleRemote(msg RemoteMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg.Kind {
	case RemotePlayPause:
		m.ctrl.SetPaused(!m.ctrl.Paused())
	case RemotePause:
		m.ctrl.SetPaused(true)
	case RemotePlay:
		m.ctrl.SetPaused(false)
	case RemoteSeek:
		m.ctrl.SeekBy(msg.Offset)
	case RemoteSetPosition:
		m.ctrl.SeekTo(msg.Offset)
	}

	m.log.WithFields(logrus.Fields{
		"kind":   msg.Kind,
		"offset": msg.Offset,
	}).Debug("remote command")
	return m, nil
}

// fail records a fatal error and quits.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.log.WithError(err).Error("playback stopped")
	m.err = err
	return m.quit()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.frameCmd = m.frames.Clear()
	m.ctrl.Close()
	return m, tea.Quit
}

// refreshFrame hands the controller's current frame to the renderer when it
// changed.
func (m *Model) refreshFrame() {
	f := m.ctrl.Frame()
	if f == nil || f == m.shown || !m.frames.HasArea() {
		return
	}
	if err := m.frames.Show(f.Image); err != nil {
		m.log.WithError(err).WithField("frame", f.Index).Warn("frame not displayed")
		m.setStatus(formatShowError(err), statusError)
		return
	}
	m.frameCmd = m.frames.TakePending()
	m.shown = f
}
