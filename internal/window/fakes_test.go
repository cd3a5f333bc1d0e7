package window

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
)

// recordHandler keeps every record logged through it.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		out = append(out, r.Message)
	}
	return out
}

func (h *recordHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}

type glCall struct {
	name string
	args []any
}

type fakeGL struct {
	calls []glCall
}

func (g *fakeGL) ClearColor(r, gr, b, a float32) {
	g.calls = append(g.calls, glCall{"ClearColor", []any{r, gr, b, a}})
}

func (g *fakeGL) Clear(mask uint32) {
	g.calls = append(g.calls, glCall{"Clear", []any{mask}})
}

func (g *fakeGL) Viewport(x, y, width, height int32) {
	g.calls = append(g.calls, glCall{"Viewport", []any{x, y, width, height}})
}

func (g *fakeGL) GetString(name uint32) string { return "fake" }

// bareBackend implements no capability at all.
type bareBackend struct{ name string }

func (b bareBackend) Name() string { return b.name }

var errBackend = errors.New("backend failure")

// fullBackend implements every capability and records what it was asked.
type fullBackend struct {
	gl    *fakeGL
	glErr error
	fail  bool

	calls      []string
	title      string
	w, h       int
	x, y       int
	fullscreen bool

	events []func(d Dispatcher)
	open   bool
	scale  float32
}

func newFullBackend() *fullBackend {
	return &fullBackend{gl: &fakeGL{}, open: true}
}

func (b *fullBackend) Name() string { return "full" }

func (b *fullBackend) record(op string) error {
	b.calls = append(b.calls, op)
	if b.fail {
		return errBackend
	}
	return nil
}

func (b *fullBackend) Show() error  { return b.record("show") }
func (b *fullBackend) Hide() error  { return b.record("hide") }
func (b *fullBackend) Close() error { return b.record("close") }
func (b *fullBackend) Swap() error  { return b.record("swap") }

func (b *fullBackend) Activate() error { return b.record("activate") }

func (b *fullBackend) SetTitle(title string) error {
	if err := b.record("set_title"); err != nil {
		return err
	}
	b.title = title
	return nil
}

func (b *fullBackend) Title() string { return b.title }

func (b *fullBackend) SetSize(w, h int) error {
	if err := b.record("set_size"); err != nil {
		return err
	}
	b.w, b.h = w, h
	return nil
}

func (b *fullBackend) Size() (int, int) { return b.w, b.h }

func (b *fullBackend) SetPosition(x, y int) error {
	if err := b.record("set_position"); err != nil {
		return err
	}
	b.x, b.y = x, y
	return nil
}

func (b *fullBackend) Position() (int, int) { return b.x, b.y }

func (b *fullBackend) SetFullscreen(f bool) error {
	if err := b.record("set_fullscreen"); err != nil {
		return err
	}
	b.fullscreen = f
	return nil
}

func (b *fullBackend) Fullscreen() bool { return b.fullscreen }

func (b *fullBackend) GL() (gl.OpenGL, error) {
	if b.glErr != nil {
		return nil, b.glErr
	}
	return b.gl, nil
}

func (b *fullBackend) Scale() float32 { return b.scale }

func (b *fullBackend) Poll(d Dispatcher) bool {
	for _, ev := range b.events {
		ev(d)
	}
	b.events = nil
	return b.open
}

func newTestWindow(b Backend, cfg *config.Configuration) (*Window, *recordHandler, error) {
	h := &recordHandler{}
	opts := DefaultOptions()
	opts.Title = "test"
	opts.Logger = slog.New(h)
	w, err := New(b, cfg, opts)
	return w, h, err
}
