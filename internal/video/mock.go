package video

import (
	"fmt"
	"image"
)

// Mock is a synthetic in-memory Source for tests. Each frame is a 2x1 image
// whose first pixel encodes the frame index (see MockFrameIndex).
type Mock struct {
	frames int
	fps    float64
	pos    int

	readErrs     map[int]error
	failAll      error
	emptyPastEnd bool
	reads        []int
	seeks        []int
	closed       bool
}

// NewMock creates a mock source with the given frame count and rate.
func NewMock(frames int, fps float64) *Mock {
	return &Mock{
		frames:   frames,
		fps:      fps,
		readErrs: make(map[int]error),
	}
}

func (m *Mock) FrameCount() int    { return m.frames }
func (m *Mock) FrameRate() float64 { return m.fps }
func (m *Mock) Position() int      { return m.pos }

func (m *Mock) SetPosition(index int) {
	m.seeks = append(m.seeks, index)
	m.pos = index
}

func (m *Mock) ReadNext() (*Frame, error) {
	if m.closed {
		return nil, ErrClosed
	}
	idx := m.pos
	m.reads = append(m.reads, idx)

	if m.failAll != nil {
		return nil, m.failAll
	}
	if err, ok := m.readErrs[idx]; ok {
		return nil, err
	}
	if idx < 0 || idx >= m.frames {
		if m.emptyPastEnd {
			// Decoders that report success on a seek past the end still
			// hand back nothing.
			return nil, fmt.Errorf("%w: empty frame at %d", ErrNoFrame, idx)
		}
		return nil, fmt.Errorf("%w: position %d out of range", ErrNoFrame, idx)
	}

	m.pos++
	return &Frame{Index: idx, Image: mockImage(idx)}, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

// SetReadError makes reads of frame index fail with err.
func (m *Mock) SetReadError(index int, err error) { m.readErrs[index] = err }

// FailReads makes every read fail with err; nil restores normal reads.
func (m *Mock) FailReads(err error) { m.failAll = err }

// SetEmptyPastEnd emulates a decoder whose seeks past the end succeed but
// whose next read is empty.
func (m *Mock) SetEmptyPastEnd(v bool) { m.emptyPastEnd = v }

// Reads returns the indices of every read attempt in order.
func (m *Mock) Reads() []int { return m.reads }

// Seeks returns every SetPosition argument in order.
func (m *Mock) Seeks() []int { return m.seeks }

// Closed reports whether Close was called.
func (m *Mock) Closed() bool { return m.closed }

// ResetCalls clears the recorded reads and seeks.
func (m *Mock) ResetCalls() {
	m.reads = nil
	m.seeks = nil
}

func mockImage(index int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Pix[0] = byte(index)
	img.Pix[1] = byte(index >> 8)
	img.Pix[2] = byte(index >> 16)
	img.Pix[3] = 0xff
	return img
}

// MockFrameIndex decodes the index a Mock stored in f's pixels.
// It returns -1 for a nil frame.
func MockFrameIndex(f *Frame) int {
	if f == nil || f.Image == nil || len(f.Image.Pix) < 3 {
		return -1
	}
	p := f.Image.Pix
	return int(p[0]) | int(p[1])<<8 | int(p[2])<<16
}

// Verify Mock implements Source at compile time.
var _ Source = (*Mock)(nil)
