package framebuf

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/nfnt/resize"
)

var nextImageID atomic.Uint32

// Renderer shows one frame at a time in a fixed cell area.
//
// Show fits a frame to the area and queues the terminal commands that store
// it; the display layer writes TakePending once, draws Placeholder in the
// layout, then appends Placement to position the image over it.
type Renderer struct {
	proto Protocol

	// area in cells
	width  int
	height int

	// current image and the cells it covers
	imageID uint32
	cols    int
	rows    int

	pending string
}

// NewRenderer creates a renderer drawing with proto.
func NewRenderer(proto Protocol) *Renderer {
	return &Renderer{proto: proto}
}

// SetSize sets the display area in terminal cells. It reports whether the
// size changed, in which case the current frame must be shown again.
func (r *Renderer) SetSize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if r.width == width && r.height == height {
		return false
	}
	r.width, r.height = width, height
	return true
}

// HasArea reports whether the display area is non-empty.
func (r *Renderer) HasArea() bool { return r.width > 0 && r.height > 0 }

// Size returns the display area in cells.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Show fits img into the area, keeping its aspect ratio, and replaces the
// current image. On error the current image stays.
func (r *Renderer) Show(img image.Image) error {
	if img == nil || r.width == 0 || r.height == 0 {
		return nil
	}

	pw, ph := r.proto.TargetPixelSize(r.width, r.height)
	fitted := resize.Thumbnail(uint(max(pw, 1)), uint(max(ph, 1)), img, resize.Bilinear) //nolint:gosec // small positive dimensions

	id := nextImageID.Add(1)
	cmd, err := r.proto.Prepare(fitted, id)
	if err != nil {
		return fmt.Errorf("prepare frame: %w", err)
	}

	// transmit the new image before freeing the old one so the area never
	// goes blank
	r.pending += cmd
	if r.imageID > 0 {
		r.pending += r.proto.Delete(r.imageID)
	}

	b := fitted.Bounds()
	r.imageID = id
	r.cols = min(ceilDiv(b.Dx()*r.width, pw), r.width)
	r.rows = min(ceilDiv(b.Dy()*r.height, ph), r.height)
	return nil
}

// HasImage reports whether a frame is shown.
func (r *Renderer) HasImage() bool { return r.imageID > 0 }

// ImageSize returns the cells covered by the current image.
func (r *Renderer) ImageSize() (cols, rows int) { return r.cols, r.rows }

// TakePending returns the queued terminal commands and clears them.
func (r *Renderer) TakePending() string {
	p := r.pending
	r.pending = ""
	return p
}

// Placeholder returns the layout text for the display area.
func (r *Renderer) Placeholder() string {
	return r.proto.Placeholder(r.imageID, r.width, r.height)
}

// Placement returns the command positioning the current image in an area
// whose top-left cell is the 1-based (row, col). The image is centered
// horizontally.
func (r *Renderer) Placement(row, col int) string {
	if r.imageID == 0 {
		return ""
	}
	col += (r.width - r.cols) / 2
	return r.proto.Place(r.imageID, row, col, r.cols, r.rows)
}

// Clear frees the current image and returns the command removing it.
func (r *Renderer) Clear() string {
	if r.imageID == 0 {
		return ""
	}
	cmd := r.proto.Delete(r.imageID)
	r.imageID, r.cols, r.rows = 0, 0, 0
	r.pending = ""
	return cmd
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
