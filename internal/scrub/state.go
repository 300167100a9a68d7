// Package scrub implements the frame-accurate playback controller and the
// seek debouncer that coalesces slider drags.
package scrub

// State is the controller's playback state.
//
// The state machine has two states:
//
//	┌──────────┐  toggle pause   ┌──────────┐
//	│  Playing │ ───────────────▶│  Paused  │
//	└──────────┘ ◀───────────────└──────────┘
//	     │        toggle pause        ▲
//	     │                            │
//	     └────────────────────────────┘
//	        slider drag, step forward,
//	        step backward
//
// Slider drags, committed seeks and frame steps always land in Paused.
// Quit ends the loop from either state.
type State int

const (
	Playing State = iota
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}
