package window

import (
	"errors"
	"time"
)

// TimerFunc is a periodic callback. dt is the time since it last fired,
// or since the loop started for the first call.
type TimerFunc func(dt time.Duration)

var errNilTimerFunc = errors.New("window: nil timer func")

// Timer is the handle of a registered callback.
type Timer struct {
	id    uint64
	fn    TimerFunc
	delay time.Duration
	reg   *timerRegistry
}

// Func returns the registered callback unchanged.
func (t *Timer) Func() TimerFunc { return t.fn }

func (t *Timer) Delay() time.Duration { return t.delay }

// LastFired returns the loop time of the last call, 0 before the first one.
// ok is false once the timer is cancelled.
func (t *Timer) LastFired() (at time.Duration, ok bool) {
	i := t.reg.index(t.id)
	if i < 0 {
		return 0, false
	}
	return t.reg.dates[i], true
}

// Cancel unregisters the timer. It reports whether the timer was still
// registered.
func (t *Timer) Cancel() bool {
	return t.reg.remove(t.id)
}

// timerRegistry keeps callbacks and their last-fired dates in parallel,
// in registration order.
type timerRegistry struct {
	nextID uint64
	stack  []*Timer
	dates  []time.Duration
}

func (r *timerRegistry) add(delay time.Duration, fn TimerFunc) *Timer {
	r.nextID++
	t := &Timer{id: r.nextID, fn: fn, delay: delay, reg: r}
	r.stack = append(r.stack, t)
	r.dates = append(r.dates, 0)
	return t
}

func (r *timerRegistry) index(id uint64) int {
	for i, t := range r.stack {
		if t.id == id {
			return i
		}
	}
	return -1
}

func (r *timerRegistry) remove(id uint64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.stack = append(r.stack[:i], r.stack[i+1:]...)
	r.dates = append(r.dates[:i], r.dates[i+1:]...)
	return true
}

// fire calls every timer whose delay has elapsed at now, in registration
// order. Callbacks may register or cancel timers; firing ends early once
// stopped reports true.
func (r *timerRegistry) fire(now time.Duration, stopped func() bool) int {
	var due []*Timer
	for i, t := range r.stack {
		if now-r.dates[i] >= t.delay {
			due = append(due, t)
		}
	}
	fired := 0
	for _, t := range due {
		if stopped() {
			break
		}
		i := r.index(t.id)
		if i < 0 {
			continue
		}
		dt := now - r.dates[i]
		r.dates[i] = now
		t.fn(dt)
		fired++
	}
	return fired
}

// RegisterTimer arranges for fn to be called about every delay by the loop
// driving the window. Timers are considered in registration order.
// Registering on a closed window fails with ErrClosed.
func (w *Window) RegisterTimer(delay time.Duration, fn TimerFunc) (*Timer, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if delay < 0 {
		return nil, ErrNegativeDelay
	}
	if fn == nil {
		return nil, errNilTimerFunc
	}
	return w.timers.add(delay, fn), nil
}

// Timers returns the registered timers in registration order.
func (w *Window) Timers() []*Timer {
	return append([]*Timer(nil), w.timers.stack...)
}

// FireTimers runs every due timer given the loop time now and returns how
// many fired. Nothing fires once the window is closed.
func (w *Window) FireTimers(now time.Duration) int {
	if w.closed {
		return 0
	}
	return w.timers.fire(now, w.Closed)
}
