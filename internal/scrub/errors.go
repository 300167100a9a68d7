package scrub

import "fmt"

// ReadError is a fatal failure of a frame read during a seek, a step or
// sequential playback. It carries the controller's state at the time.
type ReadError struct {
	Op        string // "seek", "step", "play" or "prime"
	Index     int    // current frame index
	Target    int    // frame that was being read
	Total     int
	Loop      int // tick counter
	SourcePos int // position reported by the source after the failure
	Err       error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: read frame %d failed (index %d/%d, loop %d, source position %d): %v",
		e.Op, e.Target, e.Index, e.Total, e.Loop, e.SourcePos, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// InconsistentStateError reports a controller that is paused without a cached
// frame to redisplay.
type InconsistentStateError struct {
	Index int
	Loop  int
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("paused at frame %d with no cached frame (loop %d)", e.Index, e.Loop)
}
