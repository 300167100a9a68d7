package app

import "time"

// FrameTickMsg drives one iteration of the playback loop.
type FrameTickMsg time.Time

// RemoteKind identifies a playback request from outside the terminal.
type RemoteKind int

const (
	RemotePlayPause RemoteKind = iota
	RemotePause
	RemotePlay
	RemoteSeek        // relative, by Offset
	RemoteSetPosition // absolute, at Offset
)

// RemoteMsg carries a media-control request, such as a desktop media key,
// into the display loop.
type RemoteMsg struct {
	Kind   RemoteKind
	Offset time.Duration
}
