package app

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/scrub/internal/mpris"
)

var _ mpris.Player = (*Remote)(nil)

// Remote controls a running model from other goroutines. Requests are sent
// as RemoteMsg; status is the snapshot published after the last update.
type Remote struct {
	send   func(tea.Msg)
	status *atomic.Pointer[mpris.Status]
}

// Remote returns a controller delivering requests through send, usually
// tea.Program.Send.
func (m Model) Remote(send func(tea.Msg)) *Remote {
	return &Remote{send: send, status: m.playback}
}

func (r *Remote) PlayPause() { r.send(RemoteMsg{Kind: RemotePlayPause}) }
func (r *Remote) Pause()     { r.send(RemoteMsg{Kind: RemotePause}) }
func (r *Remote) Play()      { r.send(RemoteMsg{Kind: RemotePlay}) }

func (r *Remote) Seek(offset time.Duration) {
	r.send(RemoteMsg{Kind: RemoteSeek, Offset: offset})
}

func (r *Remote) SetPosition(pos time.Duration) {
	r.send(RemoteMsg{Kind: RemoteSetPosition, Offset: pos})
}

// Status returns the latest published playback state.
func (r *Remote) Status() mpris.Status {
	if s := r.status.Load(); s != nil {
		return *s
	}
	return mpris.Status{}
}
