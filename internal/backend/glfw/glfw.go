// Package glfw is a window backend built on GLFW 3.3. It supports every
// window operation, including fullscreen on the primary monitor.
//
// GLFW must be driven from the main thread: lock it in an init function of
// package main before creating windows.
package glfw

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

const Name = "glfw"

func init() {
	backend.Register(Name, func(cfg *config.Configuration, opts window.Options) (window.Backend, error) {
		return New(cfg, opts)
	})
}

// live counts open windows; GLFW is terminated with the last one.
var live int

type Backend struct {
	win   *glfw.Window
	log   *slog.Logger
	title string
	gl    gl.OpenGL

	dispatch       window.Dispatcher
	mouseX, mouseY int

	// Windowed geometry restored when leaving fullscreen.
	savedX, savedY int
	savedW, savedH int
}

func New(cfg *config.Configuration, opts window.Options) (*Backend, error) {
	opts = opts.WithDefaults()
	if live == 0 {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("glfw init: %w", err)
		}
		opts.Logger.Info("glfw initialized", "version", glfw.GetVersionString())
	}

	glfw.DefaultWindowHints()
	applyHints(cfg, opts)

	var monitor *glfw.Monitor
	width, height := max(opts.Width, 1), max(opts.Height, 1)
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor != nil {
			vm := monitor.GetVideoMode()
			width, height = vm.Width, vm.Height
		}
	}

	var share *glfw.Window
	if opts.Share != nil {
		if sb, ok := opts.Share.Backend().(*Backend); ok {
			share = sb.win
		}
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, monitor, share)
	if err != nil {
		if live == 0 {
			glfw.Terminate()
		}
		return nil, fmt.Errorf("create window: %w", err)
	}
	live++
	if monitor == nil && (opts.X != 0 || opts.Y != 0) {
		win.SetPos(opts.X, opts.Y)
	}
	win.MakeContextCurrent()

	b := &Backend{
		win:    win,
		log:    opts.Logger,
		title:  opts.Title,
		savedX: opts.X,
		savedY: opts.Y,
		savedW: max(opts.Width, 1),
		savedH: max(opts.Height, 1),
	}
	b.installCallbacks()
	return b, nil
}

func applyHints(cfg *config.Configuration, opts window.Options) {
	glfw.WindowHint(glfw.RedBits, cfg.RedSize)
	glfw.WindowHint(glfw.GreenBits, cfg.GreenSize)
	glfw.WindowHint(glfw.BlueBits, cfg.BlueSize)
	glfw.WindowHint(glfw.AlphaBits, cfg.AlphaSize)
	glfw.WindowHint(glfw.DepthBits, cfg.DepthSize)
	glfw.WindowHint(glfw.StencilBits, cfg.StencilSize)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.DoubleBuffer, boolHint(cfg.DoubleBuffer))
	glfw.WindowHint(glfw.SRGBCapable, boolHint(cfg.SRGB))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.MajorVersion)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.MinorVersion)
	switch cfg.Profile {
	case config.ProfileCore:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	case config.ProfileCompatibility:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	default:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLAnyProfile)
	}
	glfw.WindowHint(glfw.Visible, boolHint(opts.Visible))
	glfw.WindowHint(glfw.Decorated, boolHint(opts.Decoration))
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func (b *Backend) installCallbacks() {
	b.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if b.dispatch == nil {
			return
		}
		k, m := glfwKey(key), glfwMods(mods)
		if action == glfw.Release {
			b.dispatch.DispatchKeyRelease(k, m)
			return
		}
		b.dispatch.DispatchKeyPress(k, m)
	})
	b.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		if b.dispatch != nil {
			b.dispatch.DispatchCharacter(string(char))
		}
	})
	b.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if b.dispatch == nil {
			return
		}
		but := glfwButton(button)
		if action == glfw.Release {
			b.dispatch.DispatchMouseRelease(b.mouseX, b.mouseY, but)
			return
		}
		b.dispatch.DispatchMousePress(b.mouseX, b.mouseY, but)
	})
	b.win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		x, y := int(xpos), int(ypos)
		dx, dy := x-b.mouseX, y-b.mouseY
		b.mouseX, b.mouseY = x, y
		if b.dispatch != nil {
			b.dispatch.DispatchMouseMotion(x, y, dx, dy)
		}
	})
	b.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if b.dispatch != nil {
			b.dispatch.DispatchMouseScroll(xoff, yoff)
		}
	})
	// The framebuffer callback also fires when only the pixel density
	// changes, e.g. after moving to a monitor with another content scale.
	b.win.SetFramebufferSizeCallback(func(w *glfw.Window, _, _ int) {
		if b.dispatch != nil {
			b.dispatch.DispatchResize(w.GetSize())
		}
	})
}

func (b *Backend) Name() string { return Name }

// Scale is the ratio of framebuffer pixels to screen coordinates.
func (b *Backend) Scale() float32 {
	if b.win == nil {
		return 1
	}
	fbw, _ := b.win.GetFramebufferSize()
	w, _ := b.win.GetSize()
	return framebufferScale(fbw, w)
}

func (b *Backend) GL() (gl.OpenGL, error) {
	if b.gl != nil {
		return b.gl, nil
	}
	g, err := gl.Load()
	if err != nil {
		return nil, err
	}
	b.log.Info("GL context", "vendor", g.GetString(gl.Vendor), "renderer", g.GetString(gl.Renderer), "version", g.GetString(gl.Version))
	b.gl = g
	return g, nil
}

var errClosed = errors.New("glfw window is closed")

func (b *Backend) Show() error {
	if b.win == nil {
		return errClosed
	}
	b.win.Show()
	return nil
}

func (b *Backend) Hide() error {
	if b.win == nil {
		return errClosed
	}
	b.win.Hide()
	return nil
}

func (b *Backend) Close() error {
	if b.win == nil {
		return nil
	}
	b.win.Destroy()
	b.win = nil
	live--
	if live == 0 {
		glfw.Terminate()
	}
	return nil
}

func (b *Backend) SetTitle(title string) error {
	if b.win == nil {
		return errClosed
	}
	b.win.SetTitle(title)
	b.title = title
	return nil
}

func (b *Backend) Title() string { return b.title }

func (b *Backend) SetSize(width, height int) error {
	if b.win == nil {
		return errClosed
	}
	b.win.SetSize(max(width, 1), max(height, 1))
	return nil
}

func (b *Backend) Size() (int, int) {
	if b.win == nil {
		return 0, 0
	}
	return b.win.GetSize()
}

func (b *Backend) SetPosition(x, y int) error {
	if b.win == nil {
		return errClosed
	}
	b.win.SetPos(x, y)
	return nil
}

func (b *Backend) Position() (int, int) {
	if b.win == nil {
		return 0, 0
	}
	return b.win.GetPos()
}

func (b *Backend) SetFullscreen(fullscreen bool) error {
	if b.win == nil {
		return errClosed
	}
	if fullscreen == b.Fullscreen() {
		return nil
	}
	if !fullscreen {
		b.win.SetMonitor(nil, b.savedX, b.savedY, b.savedW, b.savedH, 0)
		return nil
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return errors.New("no primary monitor")
	}
	b.savedX, b.savedY = b.win.GetPos()
	b.savedW, b.savedH = b.win.GetSize()
	vm := monitor.GetVideoMode()
	b.win.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	return nil
}

func (b *Backend) Fullscreen() bool {
	return b.win != nil && b.win.GetMonitor() != nil
}

func (b *Backend) Swap() error {
	if b.win == nil {
		return errClosed
	}
	b.win.SwapBuffers()
	return nil
}

func (b *Backend) Activate() error {
	if b.win == nil {
		return errClosed
	}
	b.win.MakeContextCurrent()
	return nil
}

// Poll processes pending GLFW events for every window and reports whether
// this one should stay open.
func (b *Backend) Poll(d window.Dispatcher) bool {
	if b.win == nil {
		return false
	}
	b.dispatch = d
	glfw.PollEvents()
	return b.win != nil && !b.win.ShouldClose()
}
