package window

import "github.com/tinyrange/glwin/internal/gl"

// Backend is the platform implementation a Window drives. Only Name is
// required; everything else is an optional capability discovered with a type
// assertion. A capability the backend lacks degrades to a logged warning.
type Backend interface {
	Name() string
}

type Shower interface{ Show() error }

type Hider interface{ Hide() error }

// Closer destroys the native window and its context.
type Closer interface{ Close() error }

type TitleSetter interface{ SetTitle(title string) error }

type TitleGetter interface{ Title() string }

type Resizer interface {
	SetSize(width, height int) error
}

type SizeGetter interface {
	Size() (width, height int)
}

type Mover interface {
	SetPosition(x, y int) error
}

type PositionGetter interface {
	Position() (x, y int)
}

type FullscreenSetter interface {
	SetFullscreen(fullscreen bool) error
}

type FullscreenGetter interface {
	Fullscreen() bool
}

// Swapper presents the back buffer.
type Swapper interface{ Swap() error }

// Activator makes the window's GL context current on the calling thread and
// raises the window.
type Activator interface{ Activate() error }

// GLProvider exposes the GL entry points for the backend's context.
type GLProvider interface {
	GL() (gl.OpenGL, error)
}

// Scaler reports how many framebuffer pixels make up one unit of the sizes
// the backend reports, 2 on a Retina display. Backends without it are 1:1.
type Scaler interface {
	Scale() float32
}

// Poller drains pending native events, forwarding them to d. It returns
// false once the native window is gone.
type Poller interface {
	Poll(d Dispatcher) bool
}

// Dispatcher receives translated native events. *Window implements it.
type Dispatcher interface {
	DispatchKeyPress(symbol Key, mods Modifiers)
	DispatchKeyRelease(symbol Key, mods Modifiers)
	DispatchCharacter(text string)
	DispatchMousePress(x, y int, button Button)
	DispatchMouseRelease(x, y int, button Button)
	DispatchMouseMotion(x, y, dx, dy int)
	DispatchMouseScroll(dx, dy float64)
	DispatchShow()
	DispatchHide()
	DispatchClose()
	DispatchResize(width, height int)
}

// Op names a backend-dependent window operation.
type Op string

const (
	OpShow          Op = "show"
	OpHide          Op = "hide"
	OpClose         Op = "close"
	OpSetTitle      Op = "set_title"
	OpGetTitle      Op = "get_title"
	OpSetSize       Op = "set_size"
	OpGetSize       Op = "get_size"
	OpSetPosition   Op = "set_position"
	OpGetPosition   Op = "get_position"
	OpSetFullscreen Op = "set_fullscreen"
	OpGetFullscreen Op = "get_fullscreen"
	OpSwap          Op = "swap"
	OpActivate      Op = "activate"
	OpClear         Op = "clear"
	OpPoll          Op = "poll"
)

var opActions = map[Op]string{
	OpShow:          "show window",
	OpHide:          "hide window",
	OpClose:         "close window",
	OpSetTitle:      "set window title",
	OpGetTitle:      "get window title",
	OpSetSize:       "set window size",
	OpGetSize:       "get window size",
	OpSetPosition:   "set window position",
	OpGetPosition:   "get position",
	OpSetFullscreen: "set fullscreen mode",
	OpGetFullscreen: "get fullscreen mode",
	OpSwap:          "swap buffers",
	OpActivate:      "make window active",
	OpClear:         "clear window",
	OpPoll:          "process events",
}

// Action is the human phrase used in "<backend> backend cannot <action>".
func (op Op) Action() string {
	if a, ok := opActions[op]; ok {
		return a
	}
	return string(op)
}

// Supports reports whether b implements the capability behind op.
func Supports(b Backend, op Op) bool {
	var ok bool
	switch op {
	case OpShow:
		_, ok = b.(Shower)
	case OpHide:
		_, ok = b.(Hider)
	case OpClose:
		_, ok = b.(Closer)
	case OpSetTitle:
		_, ok = b.(TitleSetter)
	case OpGetTitle:
		_, ok = b.(TitleGetter)
	case OpSetSize:
		_, ok = b.(Resizer)
	case OpGetSize:
		_, ok = b.(SizeGetter)
	case OpSetPosition:
		_, ok = b.(Mover)
	case OpGetPosition:
		_, ok = b.(PositionGetter)
	case OpSetFullscreen:
		_, ok = b.(FullscreenSetter)
	case OpGetFullscreen:
		_, ok = b.(FullscreenGetter)
	case OpSwap:
		_, ok = b.(Swapper)
	case OpActivate:
		_, ok = b.(Activator)
	case OpClear:
		_, ok = b.(GLProvider)
	case OpPoll:
		_, ok = b.(Poller)
	}
	return ok
}
