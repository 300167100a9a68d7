// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionIgnore Action = "ignore"

	// Playback actions
	ActionTogglePause  Action = "toggle_pause"
	ActionStepForward  Action = "step_forward"
	ActionStepBackward Action = "step_backward"
	ActionTimestamp    Action = "timestamp"

	// Slider actions (treated as user drags of the position slider)
	ActionNudgeForward Action = "nudge_forward"
	ActionNudgeBack    Action = "nudge_back"
	ActionFirstFrame   Action = "first_frame"
	ActionLastFrame    Action = "last_frame"
)

// Actions lists every bindable action, in help order.
var Actions = []Action{
	ActionTogglePause,
	ActionStepForward,
	ActionStepBackward,
	ActionNudgeForward,
	ActionNudgeBack,
	ActionFirstFrame,
	ActionLastFrame,
	ActionTimestamp,
	ActionHelp,
	ActionQuit,
	ActionIgnore,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
