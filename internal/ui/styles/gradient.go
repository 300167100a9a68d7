package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackGray stands in for colors without a fixed RGB value, such as ANSI
// palette indexes.
var fallbackGray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// GradientRun renders n copies of cell blended from one color to the other.
// It draws the filled part of the slider.
func GradientRun(cell string, n int, from, to lipgloss.Color) string {
	if n <= 0 {
		return ""
	}
	return gradient(strings.Repeat(cell, n), from, to)
}

// gradient colors each grapheme of text along an HCL ramp.
func gradient(text string, from, to lipgloss.Color) string {
	var cells []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cells = append(cells, gr.Str())
	}

	colors := ramp(len(cells), toColorful(from), toColorful(to))

	var b strings.Builder
	for i, cell := range cells {
		fg := lipgloss.Color(colors[i].Hex())
		b.WriteString(lipgloss.NewStyle().Foreground(fg).Render(cell))
	}
	return b.String()
}

// ramp returns n colors from a to b inclusive. A single color is a.
func ramp(n int, a, b colorful.Color) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		if n == 1 {
			out[i] = a
			continue
		}
		out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackGray
	}
	return col
}
