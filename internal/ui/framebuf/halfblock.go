package framebuf

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const upperHalf = "▀"

// HalfBlockProtocol implements Protocol with text: each cell shows two
// vertically stacked pixels, the upper one as the foreground of "▀" and the
// lower one as its background.
type HalfBlockProtocol struct {
	images map[uint32]halfBlockImage
}

type halfBlockImage struct {
	lines []string
	cols  int
}

// NewHalfBlockProtocol creates a HalfBlockProtocol.
func NewHalfBlockProtocol() *HalfBlockProtocol {
	return &HalfBlockProtocol{images: make(map[uint32]halfBlockImage)}
}

func (h *HalfBlockProtocol) Name() string { return ProtocolHalfBlock }

func (h *HalfBlockProtocol) Prepare(img image.Image, id uint32) (string, error) {
	h.images[id] = encodeHalfBlocks(img)
	return "", nil
}

// Place is a no-op: the art is part of the placeholder text.
func (h *HalfBlockProtocol) Place(uint32, int, int, int, int) string { return "" }

func (h *HalfBlockProtocol) Delete(id uint32) string {
	delete(h.images, id)
	return ""
}

// Placeholder returns the block art centered in width x height cells.
func (h *HalfBlockProtocol) Placeholder(id uint32, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	art, ok := h.images[id]
	if !ok {
		return BlankPlaceholder(width, height)
	}

	indent := strings.Repeat(" ", max((width-art.cols)/2, 0))
	lines := make([]string, 0, len(art.lines))
	for _, l := range art.lines {
		lines = append(lines, indent+l+strings.Repeat(" ", max(width-art.cols-len(indent), 0)))
	}
	return padBlock(lines, width, height)
}

func (h *HalfBlockProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return widthCells, heightCells * 2
}

func encodeHalfBlocks(img image.Image) halfBlockImage {
	b := img.Bounds()
	art := halfBlockImage{cols: b.Dx()}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			top, _ := colorful.MakeColor(img.At(x, y))
			tr, tg, tb := top.RGB255()
			if y+1 < b.Max.Y {
				bottom, _ := colorful.MakeColor(img.At(x, y+1))
				br, bg, bb := bottom.RGB255()
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s", tr, tg, tb, br, bg, bb, upperHalf)
			} else {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m%s", tr, tg, tb, upperHalf)
			}
		}
		sb.WriteString("\x1b[0m")
		art.lines = append(art.lines, sb.String())
	}
	return art
}

// padBlock pads lines with blank rows to height and truncates beyond it.
func padBlock(lines []string, width, height int) string {
	blank := strings.Repeat(" ", width)
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = lines[i]
		} else {
			out[i] = blank
		}
	}
	return strings.Join(out, "\n")
}
