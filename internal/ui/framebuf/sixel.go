package framebuf

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Place output unique so Bubble Tea's diff renderer
// never skips re-sending the sixel data when only the status rows changed.
var placeCounter atomic.Uint64

// SixelProtocol implements Protocol with Sixel graphics. Sixel has no
// terminal-side image store, so encoded images are cached here and sent in
// full on every Place.
type SixelProtocol struct {
	images map[uint32]string
	cellW  int
	cellH  int
}

// NewSixelProtocol creates a SixelProtocol sized to the terminal's cell
// pixel dimensions.
func NewSixelProtocol() *SixelProtocol {
	cellW, cellH := getCellSize()
	return &SixelProtocol{
		images: make(map[uint32]string),
		cellW:  cellW,
		cellH:  cellH,
	}
}

func (s *SixelProtocol) Name() string { return ProtocolSixel }

func (s *SixelProtocol) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}
	s.images[id] = buf.String()
	return "", nil
}

func (s *SixelProtocol) Place(id uint32, row, col, _, _ int) string {
	data, ok := s.images[id]
	if !ok {
		return ""
	}

	// the no-op SGR carries the counter
	seq := placeCounter.Add(1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

func (s *SixelProtocol) Delete(id uint32) string {
	delete(s.images, id)
	return ""
}

func (s *SixelProtocol) Placeholder(_ uint32, width, height int) string {
	return BlankPlaceholder(width, height)
}

// TargetPixelSize leaves one row of margin so an image touching the bottom
// of the screen does not scroll the terminal.
func (s *SixelProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return widthCells * s.cellW, max(heightCells-1, 1) * s.cellH
}
