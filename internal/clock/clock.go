// Package clock paces the application loop and measures its frame rate.
package clock

import "time"

// fpsWindow is how many recent frame intervals FPS averages over.
const fpsWindow = 60

// Clock measures frames. It is driven from the loop goroutine only.
type Clock struct {
	now   func() time.Time
	sleep func(time.Duration)

	framerate int
	start     time.Time
	last      time.Time
	started   bool

	intervals [fpsWindow]time.Duration
	count     int
	next      int
	sum       time.Duration
}

// New returns a clock targeting framerate frames per second; 0 means
// unlimited.
func New(framerate int) *Clock {
	return NewWithSource(framerate, time.Now, time.Sleep)
}

// NewWithSource is New with an explicit time source, for tests.
func NewWithSource(framerate int, now func() time.Time, sleep func(time.Duration)) *Clock {
	if framerate < 0 {
		framerate = 0
	}
	return &Clock{now: now, sleep: sleep, framerate: framerate}
}

// Tick marks the start of a frame and returns the time since the previous
// one. The first tick starts the clock and returns 0.
func (c *Clock) Tick() time.Duration {
	t := c.now()
	if !c.started {
		c.start, c.last, c.started = t, t, true
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t

	if c.count == fpsWindow {
		c.sum -= c.intervals[c.next]
	} else {
		c.count++
	}
	c.intervals[c.next] = dt
	c.sum += dt
	c.next = (c.next + 1) % fpsWindow
	return dt
}

// Elapsed is the time since the first tick.
func (c *Clock) Elapsed() time.Duration {
	if !c.started {
		return 0
	}
	return c.now().Sub(c.start)
}

// FPS is the mean frame rate over the last ticks, 0 before two ticks.
func (c *Clock) FPS() float64 {
	if c.count == 0 || c.sum <= 0 {
		return 0
	}
	return float64(c.count) / c.sum.Seconds()
}

func (c *Clock) Framerate() int { return c.framerate }

// Wait sleeps until the next frame is due under the target framerate.
func (c *Clock) Wait() {
	if c.framerate == 0 || !c.started {
		return
	}
	period := time.Second / time.Duration(c.framerate)
	if rest := period - c.now().Sub(c.last); rest > 0 {
		c.sleep(rest)
	}
}
