package scrub

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/scrub/internal/keymap"
	"github.com/llehouerou/scrub/internal/video"
)

// Widget is the position slider the controller keeps in sync.
// OnChange registers the callback invoked whenever the value changes,
// including changes made through SetValue.
type Widget interface {
	Value() int
	SetValue(v int)
	OnChange(fn func(v int))
}

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Keys resolves key codes. Nil means keymap.Default().
	Keys *keymap.Resolver

	// SeekDelay is the debounce delay. Zero means DefaultSeekDelay.
	SeekDelay time.Duration

	// Schedule runs debounce checks. Nil means time.AfterFunc.
	Schedule Scheduler

	// Now is the clock for debounce timestamps. Nil means time.Now.
	Now func() time.Time

	// NudgeFrames is the slider movement of a nudge key. Zero means one
	// second of video.
	NudgeFrames int

	// Log receives diagnostics. Nil discards them.
	Log *logrus.Entry
}

// Controller owns the playback state of one open video and decides, for every
// loop tick and every input event, what to show next.
//
// All methods except the debouncer's scheduled checks run on the display
// loop goroutine. The frame source and the widget are only touched there.
type Controller struct {
	src    video.Source
	widget Widget
	keys   *keymap.Resolver
	log    *logrus.Entry
	now    func() time.Time

	total int
	fps   float64
	nudge int

	index     int
	paused    bool
	lastFrame *video.Frame
	loops     int

	// guard is set while the controller writes the widget so the echo
	// of its own write is not taken for a user drag. Consumed once.
	guard bool

	debouncer *Debouncer
	sliderPos atomic.Int64
	shown     atomic.Int64
}

// New creates a controller for an open source, reads the first frame and
// syncs the widget to it. The controller registers itself as the widget's
// change callback. The source and widget stay owned by the caller.
func New(src video.Source, widget Widget, opts Options) (*Controller, error) {
	c := &Controller{
		src:    src,
		widget: widget,
		keys:   opts.Keys,
		log:    opts.Log,
		now:    opts.Now,
		total:  max(src.FrameCount(), 1),
		fps:    src.FrameRate(),
		nudge:  opts.NudgeFrames,
	}
	if c.keys == nil {
		c.keys = keymap.Default()
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.fps <= 0 {
		c.fps = video.DefaultFrameRate
	}
	if c.nudge <= 0 {
		c.nudge = max(int(math.Round(c.fps)), 1)
	}

	c.debouncer = NewDebouncer(opts.SeekDelay, opts.Schedule,
		func() int { return int(c.sliderPos.Load()) },
		func() int { return int(c.shown.Load()) },
	)
	c.debouncer.clock = c.now

	widget.OnChange(c.OnUserSliderChange)

	if err := c.seekAndRead("prime", 0); err != nil {
		return nil, err
	}
	c.syncWidget()

	return c, nil
}

// Tick advances the loop by one iteration:
//
//  1. a committed user seek is performed and shown, nothing else happens;
//  2. when playing, the next sequential frame is read unless the last frame
//     is already on screen, and the widget is resynced;
//  3. when paused, the cached frame is redisplayed.
//
// Errors are fatal for the loop.
func (c *Controller) Tick() (Action, error) {
	c.loops++

	if c.debouncer.Consume() {
		target := c.normalize(c.widget.Value())
		c.paused = true
		if err := c.seekAndRead("seek", target); err != nil {
			return Action{}, err
		}
		d := c.debouncer
		c.log.WithFields(logrus.Fields{
			"frame":      c.index,
			"loop":       c.loops,
			"slider":     d.LastValue(),
			"generation": d.Generation(),
			"settled":    c.now().Sub(d.LastNotify()),
			"delay":      d.Delay(),
		}).Debug("user seek committed")
		return Action{Kind: ActionSeek, Frame: c.lastFrame, Index: c.index}, nil
	}

	if !c.paused {
		kind := ActionHold
		if c.index < c.total-1 {
			f, err := c.src.ReadNext()
			if err != nil {
				return Action{}, c.readError("play", c.index+1, err)
			}
			c.setFrame(f)
			kind = ActionShow
		}
		c.syncWidget()
		return Action{Kind: kind, Frame: c.lastFrame, Index: c.index}, nil
	}

	if c.lastFrame == nil {
		err := &InconsistentStateError{Index: c.index, Loop: c.loops}
		c.log.WithError(err).Error("inconsistent controller state")
		return Action{}, err
	}
	return Action{Kind: ActionHold, Frame: c.lastFrame, Index: c.index}, nil
}

// OnKey maps a key code to a command and applies its immediate effects.
// An empty key is the "no key" sentinel and is ignored.
func (c *Controller) OnKey(key string) (Command, error) {
	cmd := Command{Kind: c.resolve(key), Key: key}

	switch cmd.Kind {
	case CommandTogglePause:
		c.paused = !c.paused
	case CommandStepForward:
		return cmd, c.step(+1)
	case CommandStepBackward:
		return cmd, c.step(-1)
	case CommandPrintTimestamp:
		cmd.Timestamp = c.Timestamp()
	case CommandNudge:
		cmd.Delta = c.nudge
		if c.keys.Resolve(key) == keymap.ActionNudgeBack {
			cmd.Delta = -c.nudge
		}
		c.moveSlider(c.widget.Value() + cmd.Delta)
	case CommandJump:
		if c.keys.Resolve(key) == keymap.ActionLastFrame {
			cmd.Target = c.total - 1
		}
		c.moveSlider(cmd.Target)
	case CommandUnknown:
		c.log.WithField("key", key).Warn("unknown key")
	case CommandIgnore, CommandQuit, CommandHelp:
	}

	return cmd, nil
}

func (c *Controller) resolve(key string) CommandKind {
	if key == "" {
		return CommandIgnore
	}
	switch c.keys.Resolve(key) {
	case keymap.ActionTogglePause:
		return CommandTogglePause
	case keymap.ActionQuit:
		return CommandQuit
	case keymap.ActionStepForward:
		return CommandStepForward
	case keymap.ActionStepBackward:
		return CommandStepBackward
	case keymap.ActionTimestamp:
		return CommandPrintTimestamp
	case keymap.ActionNudgeForward, keymap.ActionNudgeBack:
		return CommandNudge
	case keymap.ActionFirstFrame, keymap.ActionLastFrame:
		return CommandJump
	case keymap.ActionHelp:
		return CommandHelp
	case keymap.ActionIgnore:
		return CommandIgnore
	default:
		return CommandUnknown
	}
}

// OnUserSliderChange receives every change notification of the widget.
// The first notification after a controller write is its own echo and is
// dropped; anything else is a user drag, which pauses playback and feeds the
// debouncer.
func (c *Controller) OnUserSliderChange(raw int) {
	c.sliderPos.Store(int64(raw))
	if c.guard {
		c.guard = false
		return
	}
	c.paused = true
	c.debouncer.Notify(raw, c.now())
}

// SetPaused pauses or resumes playback. Resuming at the last frame holds it.
func (c *Controller) SetPaused(paused bool) {
	c.paused = paused
}

// SeekBy moves the slider by offset of video time as a user change, so the
// seek commits through the debouncer like a drag.
func (c *Controller) SeekBy(offset time.Duration) {
	c.moveSlider(c.widget.Value() + c.framesIn(offset))
}

// SeekTo moves the slider to the frame shown at pos as a user change.
func (c *Controller) SeekTo(pos time.Duration) {
	c.moveSlider(c.framesIn(pos))
}

func (c *Controller) framesIn(d time.Duration) int {
	return int(math.Round(d.Seconds() * c.fps))
}

// step moves one frame in dir, pausing playback. Stepping past either end
// only pauses.
func (c *Controller) step(dir int) error {
	c.paused = true
	target := c.index + dir
	if target < 0 || target >= c.total {
		return nil
	}
	if err := c.seekAndRead("step", target); err != nil {
		return err
	}
	c.syncWidget()
	return nil
}

// moveSlider writes the widget as if the user had dragged it there: no guard,
// so the change notification reaches the debouncer.
func (c *Controller) moveSlider(v int) {
	c.widget.SetValue(c.normalize(v))
}

// syncWidget writes the current index to the widget under the anti-feedback
// guard.
func (c *Controller) syncWidget() {
	c.guard = true
	c.widget.SetValue(c.index)
}

func (c *Controller) seekAndRead(op string, target int) error {
	c.src.SetPosition(target)
	f, err := c.src.ReadNext()
	if err != nil {
		return c.readError(op, target, err)
	}
	c.setFrame(f)
	return nil
}

func (c *Controller) setFrame(f *video.Frame) {
	c.lastFrame = f
	c.index = c.normalize(c.src.Position() - 1)
	c.shown.Store(int64(c.index))
}

func (c *Controller) readError(op string, target int, err error) error {
	re := &ReadError{
		Op:        op,
		Index:     c.index,
		Target:    target,
		Total:     c.total,
		Loop:      c.loops,
		SourcePos: c.src.Position(),
		Err:       err,
	}
	c.log.WithFields(logrus.Fields{
		"op":         op,
		"index":      re.Index,
		"target":     target,
		"total":      re.Total,
		"loop":       re.Loop,
		"source_pos": re.SourcePos,
	}).WithError(err).Error("frame read failed")
	return re
}

func (c *Controller) normalize(i int) int {
	return lo.Clamp(i, 0, c.total-1)
}

// Close cancels any scheduled seek. The source and widget are not released.
func (c *Controller) Close() {
	c.debouncer.Cancel()
}

// Index returns the index of the frame on screen.
func (c *Controller) Index() int { return c.index }

// Total returns the frame count.
func (c *Controller) Total() int { return c.total }

// FrameRate returns frames per second.
func (c *Controller) FrameRate() float64 { return c.fps }

// Paused reports whether playback is paused.
func (c *Controller) Paused() bool { return c.paused }

// State returns Playing or Paused.
func (c *Controller) State() State {
	if c.paused {
		return Paused
	}
	return Playing
}

// Frame returns the cached frame on screen.
func (c *Controller) Frame() *video.Frame { return c.lastFrame }

// Loops returns the number of ticks so far.
func (c *Controller) Loops() int { return c.loops }

// Timestamp returns the presentation time of the current frame.
func (c *Controller) Timestamp() Timestamp { return TimestampAt(c.index, c.fps) }

// SeekPending reports whether a committed seek waits for the next tick.
func (c *Controller) SeekPending() bool { return c.debouncer.Pending() }

// Debouncer exposes the seek debouncer for diagnostics.
func (c *Controller) Debouncer() *Debouncer { return c.debouncer }

// TickInterval is the bounded wait between ticks, one frame period.
func (c *Controller) TickInterval() time.Duration {
	return max(time.Duration(float64(time.Second)/c.fps), time.Millisecond)
}
