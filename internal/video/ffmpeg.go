package video

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultDecodeWidth is the pixel width frames are scaled to inside ffmpeg.
	DefaultDecodeWidth = 640

	// DefaultFrameRate is used when the container does not report one.
	DefaultFrameRate = 25.0

	stderrLimit = 4096
)

// Options configures Open.
type Options struct {
	// FFmpegPath overrides ffmpeg lookup. Empty means PATH and common locations.
	FFmpegPath string

	// DecodeWidth is the output width of decoded frames. Zero means DefaultDecodeWidth.
	DecodeWidth int

	// Log receives decoder lifecycle messages. Nil discards them.
	Log *logrus.Entry
}

// FFmpegSource decodes frames through an ffmpeg child process writing raw
// RGBA to a pipe. The process is started at the current position on the
// first read and restarted after every seek.
type FFmpegSource struct {
	path       string
	ffmpegPath string
	info       Info
	width      int
	height     int
	log        *logrus.Entry

	pos    int
	closed bool

	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr *limitedBuffer
}

// Open probes path and prepares a decoder. Failures are *OpenError.
func Open(path string, opts Options) (*FFmpegSource, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if !st.Mode().IsRegular() {
		return nil, &OpenError{Path: path, Err: errors.New("not a regular file")}
	}

	ffmpegPath, err := findFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	info, err := Probe(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.Frames < 1 {
		return nil, &OpenError{Path: path, Err: errors.New("no video frames")}
	}
	if info.FrameRate <= 0 {
		info.FrameRate = DefaultFrameRate
	}

	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	w, h := decodeSize(info.Width, info.Height, opts.DecodeWidth)

	log.WithFields(logrus.Fields{
		"path":   path,
		"frames": info.Frames,
		"fps":    info.FrameRate,
		"count":  info.FrameCountSource,
		"decode": fmt.Sprintf("%dx%d", w, h),
	}).Info("video opened")

	return &FFmpegSource{
		path:       path,
		ffmpegPath: ffmpegPath,
		info:       info,
		width:      w,
		height:     h,
		log:        log,
	}, nil
}

// Info returns the probe result.
func (s *FFmpegSource) Info() Info { return s.info }

// FrameCount implements Source.
func (s *FFmpegSource) FrameCount() int { return s.info.Frames }

// FrameRate implements Source.
func (s *FFmpegSource) FrameRate() float64 { return s.info.FrameRate }

// Position implements Source.
func (s *FFmpegSource) Position() int { return s.pos }

// SetPosition implements Source. The pipe is only torn down when the position
// actually changes, so sequential reads after a no-op seek stay cheap.
func (s *FFmpegSource) SetPosition(index int) {
	index = lo.Clamp(index, 0, s.info.Frames)
	if index == s.pos {
		return
	}
	s.stop()
	s.pos = index
}

// ReadNext implements Source.
func (s *FFmpegSource) ReadNext() (*Frame, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.pos >= s.info.Frames {
		return nil, fmt.Errorf("%w: position %d is past the last frame", ErrNoFrame, s.pos)
	}

	if s.reader == nil {
		if err := s.start(); err != nil {
			return nil, err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if _, err := io.ReadFull(s.reader, img.Pix); err != nil {
		tail := s.stderr.String()
		s.stop()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: frame %d: %s", ErrNoFrame, s.pos, strings.TrimSpace(tail))
		}
		return nil, fmt.Errorf("read frame %d: %w", s.pos, err)
	}

	f := &Frame{Index: s.pos, Image: img}
	s.pos++
	return f, nil
}

// Close implements Source.
func (s *FFmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.stop()
	s.closed = true
	return nil
}

func (s *FFmpegSource) start() error {
	args := decodeArgs(s.path, s.pos, s.info.FrameRate, s.width, s.height)

	cmd := exec.Command(s.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	s.stderr = &limitedBuffer{limit: stderrLimit}
	cmd.Stderr = s.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.log.WithField("position", s.pos).Debug("decoder started")

	s.cmd = cmd
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, s.width*s.height*4)
	return nil
}

func (s *FFmpegSource) stop() {
	if s.cmd == nil {
		return
	}
	_ = s.stdout.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()

	s.log.WithField("position", s.pos).Debug("decoder stopped")

	s.cmd = nil
	s.stdout = nil
	s.reader = nil
}

// decodeArgs builds the ffmpeg command line for decoding from frame pos.
// The seek target sits half a frame before the wanted frame so that rounding
// in the timestamp never drops it. Frames pass through as decoded: without
// passthrough the rawvideo muxer resamples to a constant rate, duplicating or
// dropping frames on variable-rate input.
func decodeArgs(path string, pos int, fps float64, width, height int) []string {
	seek := max((float64(pos)-0.5)/fps, 0)
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-ss", strconv.FormatFloat(seek, 'f', 6, 64),
		"-i", path,
		"-an", "-sn",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-fps_mode", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	}
}

// decodeSize returns the output frame size for a source of srcW x srcH
// scaled to width, keeping aspect and an even height.
func decodeSize(srcW, srcH, width int) (w, h int) {
	if width <= 0 {
		width = DefaultDecodeWidth
	}
	if srcW <= 0 || srcH <= 0 {
		return width, (width * 9 / 16) &^ 1
	}
	if srcW < width {
		width = srcW
	}
	h = max((width*srcH/srcW)&^1, 2)
	return width, h
}

// findFFmpeg searches for ffmpeg in PATH and common locations.
// A non-empty custom path is used as-is when it exists.
func findFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// limitedBuffer keeps the last limit bytes written to it. ffmpeg's stderr is
// copied in by an exec goroutine, so access is locked.
type limitedBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(p)
	b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *limitedBuffer) String() string {
	if b == nil {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Verify FFmpegSource implements Source at compile time.
var _ Source = (*FFmpegSource)(nil)
