// Package app is the bubbletea model of the scrubber. It drives the playback
// controller from frame ticks, key presses and mouse drags, and lays out the
// title, the frame, the slider, the status line and the help.
package app

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/scrub/internal/keymap"
	"github.com/llehouerou/scrub/internal/logging"
	"github.com/llehouerou/scrub/internal/mpris"
	"github.com/llehouerou/scrub/internal/scrub"
	"github.com/llehouerou/scrub/internal/ui/framebuf"
	"github.com/llehouerou/scrub/internal/ui/slider"
	"github.com/llehouerou/scrub/internal/video"
)

// Options configures New. The zero value is usable.
type Options struct {
	// Title is shown on the first row, usually the file name and probe
	// summary.
	Title string

	// Path identifies the video to remote controls.
	Path string

	// Bindings defaults to keymap.Bindings.
	Bindings []keymap.Binding

	// Protocol draws frames. Nil means half blocks.
	Protocol framebuf.Protocol

	// NudgeFrames, SeekDelay, Schedule and Now are passed to the controller.
	NudgeFrames int
	SeekDelay   time.Duration
	Schedule    scrub.Scheduler
	Now         func() time.Time

	Log *logrus.Entry
}

// Model is the application state.
type Model struct {
	ctrl   *scrub.Controller
	slider *slider.Model
	frames *framebuf.Renderer
	help   help.Model
	keys   keymap.Help
	log    *logrus.Entry
	title  string
	path   string

	// playback is shared by every copy of the model and read by Remote.
	playback *atomic.Pointer[mpris.Status]

	width    int
	height   int
	showHelp bool
	dragging bool

	status     string
	statusKind statusKind
	printed    []string

	// shown is the frame the renderer holds; frameCmd carries the terminal
	// commands that store it, re-sent with every view until it changes.
	shown    *video.Frame
	frameCmd string

	err      error
	quitting bool
}

// New creates the model for an open source. It reads the first frame.
func New(src video.Source, opts Options) (Model, error) {
	bindings := opts.Bindings
	if bindings == nil {
		bindings = keymap.Bindings
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	proto := opts.Protocol
	if proto == nil {
		proto = framebuf.NewHalfBlockProtocol()
	}

	sl := slider.New(0, max(src.FrameCount(), 1)-1)
	ctrl, err := scrub.New(src, sl, scrub.Options{
		Keys:        keymap.NewResolver(bindings),
		SeekDelay:   opts.SeekDelay,
		Schedule:    opts.Schedule,
		Now:         opts.Now,
		NudgeFrames: opts.NudgeFrames,
		Log:         log,
	})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctrl:     ctrl,
		slider:   sl,
		frames:   framebuf.NewRenderer(proto),
		help:     help.New(),
		keys:     keymap.NewHelp(bindings),
		log:      log,
		title:    opts.Title,
		path:     opts.Path,
		playback: new(atomic.Pointer[mpris.Status]),
	}
	m.publish()
	return m, nil
}

// publish stores the playback state read by Remote.
func (m Model) publish() {
	m.playback.Store(&mpris.Status{
		Playing:  !m.ctrl.Paused() && !m.quitting,
		Position: m.ctrl.Timestamp().Duration(),
		Length:   scrub.TimestampAt(m.ctrl.Total(), m.ctrl.FrameRate()).Duration(),
		Title:    m.title,
		Path:     m.path,
	})
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return FrameTickCmd(m.ctrl.TickInterval())
}

// Err returns the fatal error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Printed returns every timestamp line printed during the session.
func (m Model) Printed() []string { return m.printed }

// Controller exposes the playback controller.
func (m Model) Controller() *scrub.Controller { return m.ctrl }

// Close stops pending seeks. The source stays open.
func (m Model) Close() { m.ctrl.Close() }
