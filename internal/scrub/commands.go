package scrub

import (
	"fmt"

	"github.com/llehouerou/scrub/internal/video"
)

// CommandKind is the outcome of a key press.
type CommandKind int

const (
	CommandIgnore CommandKind = iota
	CommandUnknown
	CommandTogglePause
	CommandQuit
	CommandStepForward
	CommandStepBackward
	CommandPrintTimestamp
	CommandNudge
	CommandJump
	CommandHelp
)

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case CommandIgnore:
		return "Ignore"
	case CommandUnknown:
		return "Unknown"
	case CommandTogglePause:
		return "TogglePause"
	case CommandQuit:
		return "Quit"
	case CommandStepForward:
		return "StepForward"
	case CommandStepBackward:
		return "StepBackward"
	case CommandPrintTimestamp:
		return "PrintTimestamp"
	case CommandNudge:
		return "Nudge"
	case CommandJump:
		return "Jump"
	case CommandHelp:
		return "Help"
	default:
		return "Invalid"
	}
}

// Command is returned by Controller.OnKey.
type Command struct {
	Kind CommandKind

	// Key is the key code that produced the command.
	Key string

	// Delta is the slider movement in frames for CommandNudge.
	Delta int

	// Target is the slider destination for CommandJump.
	Target int

	// Timestamp is the position of the current frame for CommandPrintTimestamp.
	Timestamp Timestamp
}

func (c Command) String() string {
	switch c.Kind {
	case CommandUnknown:
		return fmt.Sprintf("Unknown(%q)", c.Key)
	case CommandNudge:
		return fmt.Sprintf("Nudge(%+d)", c.Delta)
	case CommandJump:
		return fmt.Sprintf("Jump(%d)", c.Target)
	case CommandPrintTimestamp:
		return fmt.Sprintf("PrintTimestamp(%s)", c.Timestamp)
	default:
		return c.Kind.String()
	}
}

// ActionKind tells the display loop what a tick produced.
type ActionKind int

const (
	// ActionHold redisplays the cached frame without touching the source.
	ActionHold ActionKind = iota
	// ActionShow displays a newly read sequential frame.
	ActionShow
	// ActionSeek displays the frame a committed user seek landed on.
	ActionSeek
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionHold:
		return "Hold"
	case ActionShow:
		return "Show"
	case ActionSeek:
		return "Seek"
	default:
		return "Unknown"
	}
}

// Action is the display decision of one Tick.
type Action struct {
	Kind  ActionKind
	Frame *video.Frame
	Index int
}
