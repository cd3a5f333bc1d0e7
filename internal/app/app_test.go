package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/glwin/internal/clock"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

// scriptBackend closes itself after a number of polls.
type scriptBackend struct {
	polls   int
	openFor int
	calls   []string
	swapErr error
}

func (b *scriptBackend) Name() string { return "script" }

func (b *scriptBackend) Poll(d window.Dispatcher) bool {
	b.polls++
	if b.polls == 2 {
		d.DispatchKeyPress(window.KeyEscape, 0)
	}
	return b.polls <= b.openFor
}

func (b *scriptBackend) Show() error     { b.calls = append(b.calls, "show"); return nil }
func (b *scriptBackend) Activate() error { b.calls = append(b.calls, "activate"); return nil }

func (b *scriptBackend) Swap() error {
	b.calls = append(b.calls, "swap")
	return b.swapErr
}

// bare implements nothing but a name.
type bare struct{}

func (bare) Name() string { return "bare" }

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time          { return f.t }
func (f *fakeTime) sleep(d time.Duration)   { f.t = f.t.Add(d) }
func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func fakeClock(framerate int) *clock.Clock {
	ft := &fakeTime{t: time.Unix(0, 0)}
	return clock.NewWithSource(framerate, ft.now, ft.sleep)
}

func newWindow(t *testing.T, b window.Backend) *window.Window {
	t.Helper()
	opts := window.DefaultOptions()
	opts.Logger = slog.New(slog.DiscardHandler)
	w, err := window.New(b, config.Default(), opts)
	require.NoError(t, err)
	return w
}

func TestRun_NoWindows(t *testing.T) {
	assert.ErrorIs(t, Run(context.Background(), Options{}), ErrNoWindows)
}

func TestRun_UntilClosed(t *testing.T) {
	b := &scriptBackend{openFor: 3}
	w := newWindow(t, b)

	var events []string
	w.PushHandler(&window.Handler{
		OnInit:     func() { events = append(events, "init") },
		OnShow:     func() { events = append(events, "show") },
		OnKeyPress: func(k window.Key, _ window.Modifiers) { events = append(events, "key "+k.String()) },
		OnDraw:     func(time.Duration) { events = append(events, "draw") },
		OnIdle:     func(time.Duration) { events = append(events, "idle") },
		OnClose:    func() { events = append(events, "close") },
	})

	err := Run(context.Background(), Options{Clock: fakeClock(60), Logger: slog.New(slog.DiscardHandler)}, w)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"init", "show",
		"draw", "idle",
		"key escape", "draw", "idle",
		"draw", "idle",
		"close",
	}, events)
	assert.Equal(t, []string{
		"activate", "show",
		"activate", "swap",
		"activate", "swap",
		"activate", "swap",
	}, b.calls)
	assert.True(t, w.Closed())
	assert.Greater(t, w.FPS(), 0.0)
}

func TestRun_FiresTimers(t *testing.T) {
	b := &scriptBackend{openFor: 10}
	w := newWindow(t, b)
	var fired []time.Duration
	_, err := w.RegisterTimer(50*time.Millisecond, func(dt time.Duration) { fired = append(fired, dt) })
	require.NoError(t, err)

	// 20 fps: frames at 50ms, 100ms, ...
	require.NoError(t, Run(context.Background(), Options{Clock: fakeClock(20)}, w))
	assert.NotEmpty(t, fired)
	for _, dt := range fired {
		assert.GreaterOrEqual(t, dt, 50*time.Millisecond)
	}
}

func TestRun_Duration(t *testing.T) {
	w := newWindow(t, bare{})
	closed := false
	w.PushHandler(&window.Handler{OnClose: func() { closed = true }})

	err := Run(context.Background(), Options{Clock: fakeClock(10), Duration: 300 * time.Millisecond}, w)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.True(t, w.Closed())
}

func TestRun_ContextCancelled(t *testing.T) {
	w := newWindow(t, bare{})
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	w.PushHandler(&window.Handler{OnDraw: func(time.Duration) {
		frames++
		if frames == 3 {
			cancel()
		}
	}})

	err := Run(ctx, Options{Clock: fakeClock(0)}, w)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, frames)
}

func TestRun_CloseFromHandler(t *testing.T) {
	w := newWindow(t, bare{})
	w.PushHandler(&window.Handler{OnDraw: func(time.Duration) { w.DispatchClose() }})
	require.NoError(t, Run(context.Background(), Options{Clock: fakeClock(0)}, w))
	assert.True(t, w.Closed())
}

func TestRun_SwapError(t *testing.T) {
	errSwap := errors.New("swap failed")
	b := &scriptBackend{openFor: 5, swapErr: errSwap}
	w := newWindow(t, b)
	err := Run(context.Background(), Options{Clock: fakeClock(0)}, w)
	assert.ErrorIs(t, err, errSwap)
}

func TestRun_MultipleWindows(t *testing.T) {
	short := &scriptBackend{openFor: 1}
	long := &scriptBackend{openFor: 3}
	a, b := newWindow(t, short), newWindow(t, long)

	drawsA, drawsB := 0, 0
	a.PushHandler(&window.Handler{OnDraw: func(time.Duration) { drawsA++ }})
	b.PushHandler(&window.Handler{OnDraw: func(time.Duration) { drawsB++ }})

	require.NoError(t, Run(context.Background(), Options{Clock: fakeClock(0)}, a, b))
	assert.Equal(t, 1, drawsA)
	assert.Equal(t, 3, drawsB)
}

// contextBackend owns one GL context. Activate makes it current in a slot
// shared by every backend of a test.
type contextBackend struct {
	name     string
	current  *string
	polls    int
	openFor  int
	resizeAt int
	gl       *contextGL
}

func newContextBackend(name string, current *string, openFor, resizeAt int) *contextBackend {
	return &contextBackend{
		name:     name,
		current:  current,
		openFor:  openFor,
		resizeAt: resizeAt,
		gl:       &contextGL{current: current},
	}
}

func (b *contextBackend) Name() string           { return b.name }
func (b *contextBackend) Activate() error        { *b.current = b.name; return nil }
func (b *contextBackend) GL() (gl.OpenGL, error) { return b.gl, nil }

func (b *contextBackend) Poll(d window.Dispatcher) bool {
	b.polls++
	if b.polls == b.resizeAt {
		d.DispatchResize(640, 480)
	}
	return b.polls <= b.openFor
}

// contextGL records which context was current for every Viewport call.
type contextGL struct {
	current   *string
	viewports []string
}

func (g *contextGL) ClearColor(r, gr, b, a float32) {}
func (g *contextGL) Clear(mask uint32)              {}
func (g *contextGL) GetString(name uint32) string   { return "" }
func (g *contextGL) Viewport(x, y, width, height int32) {
	g.viewports = append(g.viewports, *g.current)
}

func TestRun_ViewportUsesOwnContext(t *testing.T) {
	var current string
	a := newContextBackend("A", &current, 4, 3)
	b := newContextBackend("B", &current, 4, 0)
	wa, wb := newWindow(t, a), newWindow(t, b)

	require.NoError(t, Run(context.Background(), Options{Clock: fakeClock(0)}, wa, wb))

	// Initial viewport on the first frame, then the resize from A's third poll.
	assert.Equal(t, []string{"A", "A"}, a.gl.viewports)
	assert.Equal(t, []string{"B"}, b.gl.viewports)
	assert.Equal(t, 640, wa.Width())
}
