package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/scrub/internal/errmsg"
	"github.com/llehouerou/scrub/internal/ui/styles"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarning
	statusError
)

func (m *Model) setStatus(text string, kind statusKind) {
	m.status = text
	m.statusKind = kind
}

func formatShowError(err error) string {
	return errmsg.Format(errmsg.OpShowFrame, err)
}

// View renders the application UI. Frame storage commands go first, the
// placement last so the image lands over the drawn placeholder.
func (m Model) View() string {
	if m.quitting {
		return m.frameCmd
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	rows := []string{m.renderTitle()}
	if m.frameHeight() > 0 {
		rows = append(rows, m.frames.Placeholder())
	}
	rows = append(rows,
		m.slider.View(!m.ctrl.Paused()),
		m.renderStatus(),
		m.helpView(),
	)

	view := enforceHeight(strings.Join(rows, "\n"), m.height)
	return m.frameCmd + view + m.frames.Placement(frameTop+1, 1)
}

func (m Model) renderTitle() string {
	return styles.T().S().Title.Render(ansi.Truncate(m.title, m.width, "…"))
}

func (m Model) renderStatus() string {
	s := styles.T().S()

	var right string
	if m.ctrl.SeekPending() {
		right = s.Muted.Render("seeking")
	}

	room := max(m.width-lipgloss.Width(right)-1, 0)
	text := ansi.Truncate(m.status, room, "…")
	switch m.statusKind {
	case statusWarning:
		text = s.Warning.Render(text)
	case statusError:
		text = s.Error.Render(text)
	default:
		text = s.Timestamp.Render(text)
	}

	if right == "" {
		return text
	}
	gap := max(m.width-lipgloss.Width(text)-lipgloss.Width(right), 1)
	return text + strings.Repeat(" ", gap) + right
}

// enforceHeight ensures the view has exactly targetHeight lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")

	if len(lines) < targetHeight {
		lines = append(lines, make([]string, targetHeight-len(lines))...)
	} else if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}

	return strings.Join(lines, "\n")
}
