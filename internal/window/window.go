// Package window is a platform independent OpenGL window.
//
// The content area of a window is filled entirely with an OpenGL viewport.
// A Window keeps the attributes of the native window and forwards every
// platform operation to its Backend. Operations a backend cannot perform
// are logged and otherwise ignored, so partially capable backends degrade
// instead of failing.
//
// A Window is driven by a single event loop on the thread that owns its GL
// context. It does no locking; calling into the same window from several
// goroutines is not supported.
package window

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
)

// Clock reports the measured frame rate of the loop driving a window.
type Clock interface {
	FPS() float64
}

type Window struct {
	Viewport

	backend Backend
	config  *config.Configuration
	share   *Window
	log     *slog.Logger
	gl      gl.OpenGL
	clock   Clock

	x, y          int
	width, height int
	title         string
	visible       bool
	fullscreen    bool
	decoration    bool
	color         [4]float32
	clearFlags    uint32

	mouseX, mouseY int
	button         Button

	handlers []*Handler
	timers   timerRegistry
	closed   bool

	// The GL viewport no longer matches the content area.
	viewportDirty bool
	clearWarned   bool
}

// New wraps backend in a Window. The configuration is read once, here, to
// decide which buffers Clear touches.
func New(backend Backend, cfg *config.Configuration, opts Options) (*Window, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	if cfg == nil {
		return nil, ErrNoConfig
	}
	opts = opts.WithDefaults()

	w := &Window{
		Viewport:   NewViewport(opts.Width, opts.Height, opts.Aspect),
		backend:    backend,
		config:     cfg,
		share:      opts.Share,
		log:        opts.Logger,
		x:          opts.X,
		y:          opts.Y,
		width:      opts.Width,
		height:     opts.Height,
		title:      opts.Title,
		visible:    opts.Visible,
		fullscreen: opts.Fullscreen,
		decoration: opts.Decoration,
		color:      opts.Color,
		clearFlags: ClearFlags(cfg),
		button:     ButtonNone,

		viewportDirty: true,
	}

	if p, ok := backend.(GLProvider); ok {
		g, err := p.GL()
		if err != nil {
			return nil, fmt.Errorf("%s backend GL: %w", backend.Name(), err)
		}
		w.gl = g
	}
	return w, nil
}

// ClearFlags returns the buffers a window built from cfg clears: always
// color, plus depth and stencil when cfg asks for them.
func ClearFlags(cfg *config.Configuration) uint32 {
	flags := uint32(gl.ColorBufferBit)
	if cfg.DepthSize != 0 {
		flags |= gl.DepthBufferBit
	}
	if cfg.StencilSize != 0 {
		flags |= gl.StencilBufferBit
	}
	return flags
}

func (w *Window) Width() int  { return w.width }
func (w *Window) Height() int { return w.height }
func (w *Window) X() int      { return w.x }
func (w *Window) Y() int      { return w.y }

func (w *Window) Title() string      { return w.title }
func (w *Window) Visible() bool      { return w.visible }
func (w *Window) IsFullscreen() bool { return w.fullscreen }
func (w *Window) Decoration() bool   { return w.decoration }
func (w *Window) Closed() bool       { return w.closed }

func (w *Window) Backend() Backend              { return w.backend }
func (w *Window) Config() *config.Configuration { return w.config }
func (w *Window) Shared() *Window               { return w.share }
func (w *Window) Logger() *slog.Logger          { return w.log }
func (w *Window) GL() gl.OpenGL                 { return w.gl }
func (w *Window) ClearMask() uint32             { return w.clearFlags }

func (w *Window) Color() [4]float32 { return w.color }

func (w *Window) SetColor(c [4]float32) { w.color = c }

// Mouse returns the last known pointer position and held buttons.
func (w *Window) Mouse() (x, y int, buttons Button) {
	return w.mouseX, w.mouseY, w.button
}

// AttachClock sets the clock FPS reads from.
func (w *Window) AttachClock(c Clock) { w.clock = c }

// FPS is the frame rate of the attached clock, or 0 without one.
func (w *Window) FPS() float64 {
	if w.clock == nil {
		return 0
	}
	return w.clock.FPS()
}

// Clear fills the buffers selected by the GL configuration, using Color for
// the color buffer. The window's context must be current. Without GL entry
// points it warns on the first call only, since it runs every frame.
func (w *Window) Clear() {
	if w.gl == nil {
		if !w.clearWarned {
			w.clearWarned = true
			w.unsupported(OpClear)
		}
		return
	}
	w.gl.ClearColor(w.color[0], w.color[1], w.color[2], w.color[3])
	w.gl.Clear(w.clearFlags)
}

// Scale is the number of framebuffer pixels per unit of Width and Height.
func (w *Window) Scale() float32 {
	if s, ok := w.backend.(Scaler); ok {
		if v := s.Scale(); v > 0 {
			return v
		}
	}
	return 1
}

// UpdateViewport applies a pending resize to the GL viewport, in framebuffer
// pixels. The window's context must be current, so the loop calls it right
// after Activate rather than from the resize event.
func (w *Window) UpdateViewport() {
	if !w.viewportDirty || w.gl == nil {
		return
	}
	w.viewportDirty = false
	x, y, width, height := w.Viewport.Extent()
	s := float64(w.Scale())
	w.gl.Viewport(toPixels(x, s), toPixels(y, s), toPixels(width, s), toPixels(height, s))
}

func toPixels(v int, scale float64) int32 {
	return int32(math.Round(float64(v) * scale))
}

func (w *Window) unsupported(op Op) {
	name := w.backend.Name()
	w.log.Warn(fmt.Sprintf("%s backend cannot %s", name, op.Action()), "backend", name, "op", string(op))
}

// Show makes the window visible.
func (w *Window) Show() error {
	b, ok := w.backend.(Shower)
	if !ok {
		w.unsupported(OpShow)
		return nil
	}
	if err := b.Show(); err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	w.DispatchShow()
	return nil
}

// Hide makes the window invisible.
func (w *Window) Hide() error {
	b, ok := w.backend.(Hider)
	if !ok {
		w.unsupported(OpHide)
		return nil
	}
	if err := b.Hide(); err != nil {
		return fmt.Errorf("hide window: %w", err)
	}
	w.DispatchHide()
	return nil
}

// Close destroys the native window. Timers stop firing once it succeeds.
func (w *Window) Close() error {
	b, ok := w.backend.(Closer)
	if !ok {
		w.unsupported(OpClose)
		return nil
	}
	if w.closed {
		return nil
	}
	if err := b.Close(); err != nil {
		return fmt.Errorf("close window: %w", err)
	}
	w.DispatchClose()
	return nil
}

func (w *Window) SetTitle(title string) error {
	b, ok := w.backend.(TitleSetter)
	if !ok {
		w.unsupported(OpSetTitle)
		return nil
	}
	if title == "" {
		title = ProgramName()
	}
	if err := b.SetTitle(title); err != nil {
		return fmt.Errorf("set window title: %w", err)
	}
	w.title = title
	return nil
}

// GetTitle asks the backend for the native title. Without backend support
// it warns and returns the stored title.
func (w *Window) GetTitle() string {
	b, ok := w.backend.(TitleGetter)
	if !ok {
		w.unsupported(OpGetTitle)
		return w.title
	}
	return b.Title()
}

func (w *Window) SetSize(width, height int) error {
	b, ok := w.backend.(Resizer)
	if !ok {
		w.unsupported(OpSetSize)
		return nil
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("set window size: negative size %dx%d", width, height)
	}
	if err := b.SetSize(width, height); err != nil {
		return fmt.Errorf("set window size: %w", err)
	}
	w.width, w.height = width, height
	w.Viewport.Resize(width, height)
	w.viewportDirty = true
	return nil
}

func (w *Window) GetSize() (width, height int) {
	b, ok := w.backend.(SizeGetter)
	if !ok {
		w.unsupported(OpGetSize)
		return w.width, w.height
	}
	return b.Size()
}

func (w *Window) SetPosition(x, y int) error {
	b, ok := w.backend.(Mover)
	if !ok {
		w.unsupported(OpSetPosition)
		return nil
	}
	if err := b.SetPosition(x, y); err != nil {
		return fmt.Errorf("set window position: %w", err)
	}
	w.x, w.y = x, y
	return nil
}

func (w *Window) GetPosition() (x, y int) {
	b, ok := w.backend.(PositionGetter)
	if !ok {
		w.unsupported(OpGetPosition)
		return w.x, w.y
	}
	return b.Position()
}

func (w *Window) SetFullscreen(fullscreen bool) error {
	b, ok := w.backend.(FullscreenSetter)
	if !ok {
		w.unsupported(OpSetFullscreen)
		return nil
	}
	if err := b.SetFullscreen(fullscreen); err != nil {
		return fmt.Errorf("set fullscreen mode: %w", err)
	}
	w.fullscreen = fullscreen
	return nil
}

func (w *Window) GetFullscreen() bool {
	b, ok := w.backend.(FullscreenGetter)
	if !ok {
		w.unsupported(OpGetFullscreen)
		return w.fullscreen
	}
	return b.Fullscreen()
}

// Swap presents the back buffer.
func (w *Window) Swap() error {
	b, ok := w.backend.(Swapper)
	if !ok {
		w.unsupported(OpSwap)
		return nil
	}
	if err := b.Swap(); err != nil {
		return fmt.Errorf("swap buffers: %w", err)
	}
	return nil
}

// Activate makes the window's context current.
func (w *Window) Activate() error {
	b, ok := w.backend.(Activator)
	if !ok {
		w.unsupported(OpActivate)
		return nil
	}
	if err := b.Activate(); err != nil {
		return fmt.Errorf("activate window: %w", err)
	}
	return nil
}

// Poll drains the backend's pending events into the window's handlers. It
// reports whether the window is still open. A backend that cannot poll is
// reported as open. When the backend reports the native window gone, its
// resources are released and OnClose runs.
func (w *Window) Poll() bool {
	if w.closed {
		return false
	}
	p, ok := w.backend.(Poller)
	if !ok {
		return true
	}
	if !p.Poll(w) {
		if c, ok := w.backend.(Closer); ok {
			if err := c.Close(); err != nil {
				w.log.Warn("release closed window", "backend", w.backend.Name(), "err", err)
			}
		}
		w.DispatchClose()
	}
	return !w.closed
}
