package scrub

import (
	"sync/atomic"
	"time"
)

// DefaultSeekDelay is how long the slider must rest before a drag commits.
const DefaultSeekDelay = 50 * time.Millisecond

// Scheduler runs f once after d on another goroutine. time.AfterFunc is the
// production scheduler; tests substitute a manual one.
type Scheduler func(d time.Duration, f func())

// AfterFunc is the default Scheduler.
func AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of slider changes into a single pending seek.
//
// Every Notify bumps a generation counter and schedules a check tagged with
// it. A check whose tag is no longer the latest generation does nothing, so
// only the last notification of a burst can commit. Committing only sets an
// atomic flag; the display loop consumes it and performs the seek itself.
type Debouncer struct {
	delay    time.Duration
	schedule Scheduler
	clock    func() time.Time

	// live and shown are read from the timer goroutine and must be safe
	// for concurrent use.
	live  func() int
	shown func() int

	gen        atomic.Uint64
	pending    atomic.Bool
	lastValue  atomic.Int64
	lastNotify atomic.Int64
	commits    atomic.Uint64
}

// NewDebouncer creates a debouncer. live returns the current slider position
// and shown the frame index on screen; both are called from the scheduler's
// goroutine. Zero delay means DefaultSeekDelay and a nil schedule AfterFunc.
func NewDebouncer(delay time.Duration, schedule Scheduler, live, shown func() int) *Debouncer {
	if delay <= 0 {
		delay = DefaultSeekDelay
	}
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Debouncer{
		delay:    delay,
		schedule: schedule,
		clock:    time.Now,
		live:     live,
		shown:    shown,
	}
}

// Delay returns the debounce delay.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Notify records a slider change at now and schedules its check for
// now + delay.
func (d *Debouncer) Notify(value int, now time.Time) {
	d.lastValue.Store(int64(value))
	d.lastNotify.Store(now.UnixNano())
	token := d.gen.Add(1)

	wait := max(now.Add(d.delay).Sub(d.clock()), 0)
	d.schedule(wait, func() { d.check(token) })
}

func (d *Debouncer) check(token uint64) {
	if d.gen.Load() != token {
		return
	}
	if d.live() == d.shown() {
		return
	}
	d.commits.Add(1)
	d.pending.Store(true)
}

// Pending reports whether a seek is waiting for the display loop.
func (d *Debouncer) Pending() bool { return d.pending.Load() }

// Consume clears the pending flag and reports whether it was set. A check
// committing after Consume sets the flag again for the next tick.
func (d *Debouncer) Consume() bool { return d.pending.CompareAndSwap(true, false) }

// Cancel invalidates every scheduled check and drops any pending seek.
func (d *Debouncer) Cancel() {
	d.gen.Add(1)
	d.pending.Store(false)
}

// Generation returns the latest notification token.
func (d *Debouncer) Generation() uint64 { return d.gen.Load() }

// Commits returns how many checks have set the pending flag.
func (d *Debouncer) Commits() uint64 { return d.commits.Load() }

// LastValue returns the value passed to the latest Notify.
func (d *Debouncer) LastValue() int { return int(d.lastValue.Load()) }

// LastNotify returns the time passed to the latest Notify, or the zero time.
func (d *Debouncer) LastNotify() time.Time {
	ns := d.lastNotify.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
