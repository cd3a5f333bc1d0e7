package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/glwin/internal/config"
)

func TestHandlers_OrderAndRemoval(t *testing.T) {
	w, _, err := newTestWindow(bareBackend{"bare"}, config.Default())
	require.NoError(t, err)

	var got []string
	first := &Handler{OnInit: func() { got = append(got, "first") }}
	second := &Handler{OnInit: func() { got = append(got, "second") }}
	w.PushHandler(first)
	w.PushHandler(second)
	w.PushHandler(nil)
	w.PushHandler(&Handler{})

	w.DispatchInit()
	assert.Equal(t, []string{"first", "second"}, got)

	assert.True(t, w.RemoveHandler(first))
	assert.False(t, w.RemoveHandler(first))
	got = nil
	w.DispatchInit()
	assert.Equal(t, []string{"second"}, got)
}

func TestHandlers_Keyboard(t *testing.T) {
	w, _, err := newTestWindow(bareBackend{"bare"}, config.Default())
	require.NoError(t, err)

	var events []string
	w.PushHandler(&Handler{
		OnKeyPress:   func(k Key, m Modifiers) { events = append(events, "press "+k.String()+" "+m.String()) },
		OnKeyRelease: func(k Key, m Modifiers) { events = append(events, "release "+k.String()) },
		OnCharacter:  func(text string) { events = append(events, "char "+text) },
	})
	w.DispatchKeyPress(Key('a'), ModShift|ModControl)
	w.DispatchCharacter("A")
	w.DispatchCharacter("")
	w.DispatchKeyRelease(KeyEscape, 0)

	assert.Equal(t, []string{"press a shift+control", "char A", "release escape"}, events)
}

func TestHandlers_MouseStateAndDrag(t *testing.T) {
	w, _, err := newTestWindow(bareBackend{"bare"}, config.Default())
	require.NoError(t, err)

	var events []string
	var drag [5]int
	w.PushHandler(&Handler{
		OnMousePress:   func(x, y int, b Button) { events = append(events, "press "+b.String()) },
		OnMouseRelease: func(x, y int, b Button) { events = append(events, "release "+b.String()) },
		OnMouseMotion:  func(x, y, dx, dy int) { events = append(events, "motion") },
		OnMouseDrag: func(x, y, dx, dy int, b Button) {
			events = append(events, "drag")
			drag = [5]int{x, y, dx, dy, int(b)}
		},
		OnMouseScroll: func(dx, dy float64) { events = append(events, "scroll") },
	})

	w.MoveMouse(10, 10)
	w.DispatchMousePress(10, 10, ButtonLeft)
	w.DispatchMousePress(10, 10, ButtonRight)
	x, y, b := w.Mouse()
	assert.Equal(t, [3]int{10, 10, int(ButtonLeft | ButtonRight)}, [3]int{x, y, int(b)})

	w.MoveMouse(15, 8)
	assert.Equal(t, [5]int{15, 8, 5, -2, int(ButtonLeft | ButtonRight)}, drag)

	w.DispatchMouseRelease(15, 8, ButtonLeft)
	w.DispatchMouseRelease(15, 8, ButtonRight)
	_, _, b = w.Mouse()
	assert.Equal(t, ButtonNone, b)

	w.DispatchMouseMotion(20, 20, 5, 12)
	w.DispatchMouseScroll(0, -1)

	assert.Equal(t, []string{
		"motion", "press left", "press right", "drag",
		"release left", "release right", "motion", "scroll",
	}, events)
}

func TestHandlers_Lifecycle(t *testing.T) {
	b := newFullBackend()
	w, _, err := newTestWindow(b, config.Default())
	require.NoError(t, err)

	var events []string
	var draws, idles []time.Duration
	w.PushHandler(&Handler{
		OnShow:   func() { events = append(events, "show") },
		OnHide:   func() { events = append(events, "hide") },
		OnClose:  func() { events = append(events, "close") },
		OnResize: func(width, height int) { events = append(events, "resize") },
		OnDraw:   func(dt time.Duration) { draws = append(draws, dt) },
		OnIdle:   func(dt time.Duration) { idles = append(idles, dt) },
	})

	require.NoError(t, w.Hide())
	require.NoError(t, w.Show())
	w.DispatchResize(800, 600)
	w.DispatchDraw(16 * time.Millisecond)
	w.DispatchIdle(time.Millisecond)
	w.DispatchClose()
	w.DispatchClose()

	assert.Equal(t, []string{"hide", "show", "resize", "close"}, events)
	assert.Equal(t, []time.Duration{16 * time.Millisecond}, draws)
	assert.Equal(t, []time.Duration{time.Millisecond}, idles)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Empty(t, b.gl.calls)

	w.UpdateViewport()
	assert.Equal(t, []glCall{{"Viewport", []any{int32(0), int32(0), int32(800), int32(600)}}}, b.gl.calls)
}

func TestHandlers_ResizeHonoursAspect(t *testing.T) {
	b := newFullBackend()
	opts := DefaultOptions()
	opts.Aspect = 1
	w, err := New(b, config.Default(), opts)
	require.NoError(t, err)

	w.DispatchResize(400, 200)
	w.UpdateViewport()
	assert.Equal(t, []glCall{{"Viewport", []any{int32(100), int32(0), int32(200), int32(200)}}}, b.gl.calls)
}

func TestUpdateViewport_OnlyWhenResized(t *testing.T) {
	b := newFullBackend()
	w, _, err := newTestWindow(b, config.Default())
	require.NoError(t, err)

	// The first update sets the initial viewport.
	w.UpdateViewport()
	w.UpdateViewport()
	require.Len(t, b.gl.calls, 1)

	w.DispatchResize(300, 100)
	w.DispatchResize(320, 240)
	w.UpdateViewport()
	require.Len(t, b.gl.calls, 2)
	assert.Equal(t, glCall{"Viewport", []any{int32(0), int32(0), int32(320), int32(240)}}, b.gl.calls[1])

	require.NoError(t, w.SetSize(64, 32))
	w.UpdateViewport()
	assert.Equal(t, glCall{"Viewport", []any{int32(0), int32(0), int32(64), int32(32)}}, b.gl.calls[2])
}

func TestUpdateViewport_Scale(t *testing.T) {
	b := newFullBackend()
	b.scale = 2
	opts := DefaultOptions()
	opts.Aspect = 1
	w, err := New(b, config.Default(), opts)
	require.NoError(t, err)
	assert.Equal(t, float32(2), w.Scale())

	w.DispatchResize(400, 200)
	w.UpdateViewport()
	assert.Equal(t, []glCall{{"Viewport", []any{int32(200), int32(0), int32(400), int32(400)}}}, b.gl.calls)
	assert.Equal(t, 400, w.Width())
}

func TestHandlers_PushDuringDispatch(t *testing.T) {
	w, _, err := newTestWindow(bareBackend{"bare"}, config.Default())
	require.NoError(t, err)

	n := 0
	late := &Handler{OnInit: func() { n += 10 }}
	w.PushHandler(&Handler{OnInit: func() {
		n++
		w.PushHandler(late)
	}})
	w.DispatchInit()
	assert.Equal(t, 1, n)
}
