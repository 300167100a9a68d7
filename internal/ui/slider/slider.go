// Package slider provides the position slider shown under the video frame.
//
// The slider is a single row laid out as
//
//	▶  1,234  ▓▓▓▓▓▓░░░░░░░░  9,999
//
// with the status glyph, the current value, the bar and the maximum. It holds
// an integer in [Min, Max] and notifies a single callback on every SetValue,
// whether the caller is the user (mouse) or the program.
package slider

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/llehouerou/scrub/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"

	statusPlaying = "▶"
	statusPaused  = "⏸"

	gap = "  "

	// minBarWidth is the narrowest bar worth drawing.
	minBarWidth = 3
)

// Model is a horizontal integer slider.
type Model struct {
	lower, upper int
	value        int
	width        int
	onChange     func(int)
}

// New creates a slider over [lower, upper]. An inverted range collapses to
// lower.
func New(lower, upper int) *Model {
	return &Model{
		lower: lower,
		upper: max(upper, lower),
		value: lower,
	}
}

// Min returns the lowest value.
func (m *Model) Min() int { return m.lower }

// Max returns the highest value.
func (m *Model) Max() int { return m.upper }

// Value returns the current value.
func (m *Model) Value() int { return m.value }

// SetValue clamps v into range, stores it and invokes the change callback
// synchronously. The callback fires even when the value is unchanged.
func (m *Model) SetValue(v int) {
	m.value = lo.Clamp(v, m.lower, m.upper)
	if m.onChange != nil {
		m.onChange(m.value)
	}
}

// OnChange registers the change callback, replacing any previous one.
func (m *Model) OnChange(fn func(int)) {
	m.onChange = fn
}

// SetWidth sets the rendered width in cells.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 0)
}

// Width returns the rendered width in cells.
func (m *Model) Width() int { return m.width }

// View renders the slider row.
func (m *Model) View(playing bool) string {
	t := styles.T()
	s := t.S()

	status := s.Paused.Render(statusPaused)
	if playing {
		status = s.Playing.Render(statusPlaying)
	}

	left, right := m.labels()
	barWidth, _ := m.barGeometry()
	if barWidth < minBarWidth {
		// Too narrow for a bar, just show the numbers
		return status + gap + left + s.Muted.Render(" / ") + right
	}

	filled := min(int(float64(barWidth)*m.ratio()), barWidth)
	bar := styles.GradientRun(filledBlock, filled, t.Primary, t.Secondary) +
		s.SliderEmpty.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + gap + s.Base.Render(left) + gap + bar + gap + s.Muted.Render(right)
}

// ValueAt maps a column of the rendered row to a slider value. It reports
// false when x is not on the bar.
func (m *Model) ValueAt(x int) (int, bool) {
	barWidth, start := m.barGeometry()
	if barWidth < minBarWidth || x < start || x >= start+barWidth {
		return 0, false
	}
	if m.upper == m.lower {
		return m.lower, true
	}
	ratio := float64(x-start) / float64(barWidth-1)
	return m.lower + int(math.Round(ratio*float64(m.upper-m.lower))), true
}

// BarSpan returns the first column of the bar and its width in cells. The
// width is zero when the slider is too narrow to draw a bar.
func (m *Model) BarSpan() (start, width int) {
	width, start = m.barGeometry()
	if width < minBarWidth {
		return start, 0
	}
	return start, width
}

func (m *Model) ratio() float64 {
	if m.upper == m.lower {
		return 0
	}
	return float64(m.value-m.lower) / float64(m.upper-m.lower)
}

// labels returns the current and maximum values, padded to the same width so
// the bar does not shift while the value changes.
func (m *Model) labels() (string, string) {
	right := humanize.Comma(int64(m.upper))
	left := humanize.Comma(int64(m.value))
	w := max(lipgloss.Width(right), lipgloss.Width(humanize.Comma(int64(m.lower))))
	return padLeft(left, w), padLeft(right, w)
}

// barGeometry returns the bar width and the column it starts at.
func (m *Model) barGeometry() (width, start int) {
	left, right := m.labels()
	start = lipgloss.Width(statusPlaying) + len(gap) + lipgloss.Width(left) + len(gap)
	fixed := start + len(gap) + lipgloss.Width(right)
	return m.width - fixed, start
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
