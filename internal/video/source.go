// Package video provides frame sources for the scrubber: an ffmpeg-backed
// decoder for real files and a synthetic mock for tests.
package video

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrNoFrame is returned when a read does not produce a frame
	// (end of stream, truncated container, seek past the last frame).
	ErrNoFrame = errors.New("video: no frame")

	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("video: ffmpeg not found in PATH")

	// ErrClosed is returned when a closed source is used.
	ErrClosed = errors.New("video: source closed")
)

// Frame is one decoded picture. Image is owned by the caller after ReadNext.
type Frame struct {
	Index int
	Image *image.RGBA
}

// Source is the frame source contract the playback controller drives.
// Implementations are not safe for concurrent use.
type Source interface {
	// FrameCount returns the total number of frames, always >= 1 for an open source.
	FrameCount() int

	// FrameRate returns frames per second.
	FrameRate() float64

	// Position returns the index of the frame the next ReadNext returns.
	Position() int

	// SetPosition moves the read cursor so the next ReadNext returns frame index.
	SetPosition(index int)

	// ReadNext decodes the frame at Position and advances the cursor by one.
	ReadNext() (*Frame, error)

	// Close releases decoder resources.
	Close() error
}

// OpenError reports a file that is missing or cannot be opened as video.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open video %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
