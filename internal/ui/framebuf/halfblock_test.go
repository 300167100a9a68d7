package framebuf

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/llehouerou/scrub/internal/ui/testutil"
)

func TestEncodeHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{G: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(0, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	art := encodeHalfBlocks(img)

	if art.cols != 2 {
		t.Errorf("cols = %d, want 2", art.cols)
	}
	if len(art.lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(art.lines))
	}
	first := art.lines[0]
	for _, want := range []string{
		"\x1b[38;2;255;0;0m\x1b[48;2;0;255;0m▀",
		"\x1b[38;2;0;0;255m\x1b[48;2;255;255;255m▀",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("first line should contain %q", want)
		}
	}
	if !strings.Contains(art.lines[1], "\x1b[38;2;10;20;30m\x1b[49m▀") {
		t.Error("odd last row should use the default background")
	}
}

func TestHalfBlockProtocol_Placeholder(t *testing.T) {
	p := NewHalfBlockProtocol()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	if _, err := p.Prepare(img, 1); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	out := p.Placeholder(1, 6, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	plain := testutil.StripANSI(lines[0])
	if plain != "  ▀▀  " {
		t.Errorf("first line = %q, want the art centered", plain)
	}
	for i, l := range lines {
		if w := testutil.MeasureWidth(l); w != 6 {
			t.Errorf("line %d width = %d, want 6", i, w)
		}
	}

	p.Delete(1)
	if testutil.StripANSI(p.Placeholder(1, 6, 3)) != BlankPlaceholder(6, 3) {
		t.Error("deleted image should leave a blank placeholder")
	}
}

func TestHalfBlockProtocol_TargetPixelSize(t *testing.T) {
	w, h := NewHalfBlockProtocol().TargetPixelSize(80, 20)
	if w != 80 || h != 40 {
		t.Errorf("TargetPixelSize() = %dx%d, want 80x40", w, h)
	}
}
