// Package mpris exposes the scrubber on the D-Bus session bus as an MPRIS
// media player, so desktop media keys and applets can pause, resume and seek.
// It is a no-op outside Linux.
package mpris

import "time"

// Player is the running scrubber as seen from D-Bus. Every method is called
// from D-Bus goroutines and must be safe for concurrent use.
type Player interface {
	PlayPause()
	Pause()
	Play()

	// Seek moves by offset of video time; SetPosition moves to pos.
	Seek(offset time.Duration)
	SetPosition(pos time.Duration)

	// Status returns the latest published playback state.
	Status() Status
}

// Status is a snapshot of the playback state.
type Status struct {
	Playing  bool
	Position time.Duration
	Length   time.Duration
	Title    string
	Path     string
}
