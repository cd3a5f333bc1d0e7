package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t     time.Time
	slept []time.Duration
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func (f *fakeTime) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.advance(d)
}

func newFake(framerate int) (*Clock, *fakeTime) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	return NewWithSource(framerate, ft.now, ft.sleep), ft
}

func TestTick(t *testing.T) {
	c, ft := newFake(0)
	assert.Zero(t, c.Elapsed())
	assert.Zero(t, c.Tick())
	ft.advance(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, c.Tick())
	ft.advance(30 * time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, c.Tick())
	assert.Equal(t, 50*time.Millisecond, c.Elapsed())
}

func TestFPS(t *testing.T) {
	c, ft := newFake(0)
	assert.Zero(t, c.FPS())
	c.Tick()
	assert.Zero(t, c.FPS())
	for i := 0; i < 10; i++ {
		ft.advance(10 * time.Millisecond)
		c.Tick()
	}
	assert.InDelta(t, 100, c.FPS(), 1e-6)
}

func TestFPS_SlidingWindow(t *testing.T) {
	c, ft := newFake(0)
	c.Tick()
	for i := 0; i < fpsWindow; i++ {
		ft.advance(100 * time.Millisecond)
		c.Tick()
	}
	assert.InDelta(t, 10, c.FPS(), 1e-6)
	for i := 0; i < fpsWindow; i++ {
		ft.advance(20 * time.Millisecond)
		c.Tick()
	}
	assert.InDelta(t, 50, c.FPS(), 1e-6)
}

func TestWait(t *testing.T) {
	c, ft := newFake(50)
	c.Wait()
	assert.Empty(t, ft.slept)

	c.Tick()
	ft.advance(5 * time.Millisecond)
	c.Wait()
	assert.Equal(t, []time.Duration{15 * time.Millisecond}, ft.slept)

	c.Tick()
	ft.advance(25 * time.Millisecond)
	c.Wait()
	assert.Len(t, ft.slept, 1)
}

func TestWait_Unlimited(t *testing.T) {
	c, ft := newFake(0)
	c.Tick()
	c.Wait()
	assert.Empty(t, ft.slept)
	assert.Zero(t, c.Framerate())
	assert.Zero(t, NewWithSource(-5, ft.now, ft.sleep).Framerate())
}
