//go:build linux

// Package x11 is a cgo-free Xlib + GLX backend loaded with purego.
package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

const Name = "x11"

func init() {
	backend.Register(Name, func(cfg *config.Configuration, opts window.Options) (window.Backend, error) {
		return New(cfg, opts)
	})
}

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxRedSize      = 8
	glxGreenSize    = 9
	glxBlueSize     = 10
	glxAlphaSize    = 11
	glxDepthSize    = 12
	glxStencilSize  = 13
	glxNone         = 0

	inputOutput = 1

	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	buttonPressMask     = 1 << 2
	buttonReleaseMask   = 1 << 3
	pointerMotionMask   = 1 << 6

	keyPress        = 2
	keyRelease      = 3
	buttonPress     = 4
	buttonRelease   = 5
	motionNotify    = 6
	destroyNotify   = 17
	configureNotify = 22
	clientMessage   = 33

	propModeReplace = 0
)

type xVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xClientMessage struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

// xKeyEvent also covers XButtonEvent: Keycode holds the button number.
type xKeyEvent struct {
	Type       int32
	Serial     uint64
	SendEvent  int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Keycode    uint32
	SameScreen int32
}

type xMotionEvent struct {
	Type       int32
	Serial     uint64
	SendEvent  int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	IsHint     byte
	SameScreen int32
}

type xConfigureEvent struct {
	Type             int32
	Serial           uint64
	SendEvent        int32
	Display          uintptr
	Event            uintptr
	Window           uintptr
	X, Y             int32
	Width, Height    int32
	BorderWidth      int32
	Above            uintptr
	OverrideRedirect int32
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

var (
	x11lib uintptr
	gllib  uintptr

	xOpenDisplay          func(*byte) uintptr
	xDefaultScreen        func(uintptr) int32
	xRootWindow           func(uintptr, int32) uintptr
	xCreateColormap       func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow         func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow            func(uintptr, uintptr) int32
	xUnmapWindow          func(uintptr, uintptr) int32
	xStoreName            func(uintptr, uintptr, *byte) int32
	xInternAtom           func(uintptr, *byte, int32) uintptr
	xSetWMProtocols       func(uintptr, uintptr, *uintptr, int32) int32
	xSelectInput          func(uintptr, uintptr, int64)
	xPending              func(uintptr) int32
	xNextEvent            func(uintptr, unsafe.Pointer)
	xGetGeometry          func(uintptr, uintptr, *uintptr, *int32, *int32, *uint32, *uint32, *uint32, *uint32) int32
	xTranslateCoordinates func(uintptr, uintptr, uintptr, int32, int32, *int32, *int32, *uintptr) int32
	xResizeWindow         func(uintptr, uintptr, uint32, uint32) int32
	xMoveWindow           func(uintptr, uintptr, int32, int32) int32
	xChangeProperty       func(uintptr, uintptr, uintptr, uintptr, int32, int32, unsafe.Pointer, int32) int32
	xLookupKeysym         func(unsafe.Pointer, int32) uint64
	xFlush                func(uintptr) int32
	xDestroyWindow        func(uintptr, uintptr) int32
	xCloseDisplay         func(uintptr) int32
	xFree                 func(unsafe.Pointer) int32

	glxChooseVisual   func(uintptr, int32, *int32) *xVisualInfo
	glxCreateContext  func(uintptr, *xVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent    func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers    func(uintptr, uintptr)
	glxDestroyContext func(uintptr, uintptr)
)

// Backend is one X11 window with its own GLX context. Fullscreen is not
// supported.
type Backend struct {
	display  uintptr
	root     uintptr
	window   uintptr
	ctx      uintptr
	wmDelete uintptr
	running  bool
	log      *slog.Logger

	title         string
	width, height int
	mouseX        int
	mouseY        int
	gl            gl.OpenGL
}

// New opens the display and creates a window and context matching cfg.
// The calling goroutine stays locked to its OS thread until Close.
func New(cfg *config.Configuration, opts window.Options) (*Backend, error) {
	opts = opts.WithDefaults()
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		return nil, errors.New("XOpenDisplay failed")
	}

	var b *Backend
	err := withVisual(dpy, xDefaultScreen(dpy), cfg, func(visual *xVisualInfo) error {
		var err error
		b, err = create(dpy, visual, cfg, opts)
		return err
	})
	if err != nil {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, err
	}

	if opts.Visible {
		xMapWindow(dpy, b.window)
		xFlush(dpy)
	}
	b.log.Info("x11 window created", "title", opts.Title, "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))
	return b, nil
}

// withVisual chooses a GLX visual matching cfg and releases it once use
// returns. Xlib owns the XVisualInfo, so it must not outlive the call.
func withVisual(dpy uintptr, screen int32, cfg *config.Configuration, use func(*xVisualInfo) error) error {
	attrs := visualAttribs(cfg)
	visual := glxChooseVisual(dpy, screen, &attrs[0])
	if visual == nil {
		return fmt.Errorf("glXChooseVisual: no visual for depth=%d stencil=%d", cfg.DepthSize, cfg.StencilSize)
	}
	defer xFree(unsafe.Pointer(visual))
	return use(visual)
}

// create makes the window and context on an open display. On error nothing
// but the display is left to release.
func create(dpy uintptr, visual *xVisualInfo, cfg *config.Configuration, opts window.Options) (*Backend, error) {
	if cfg.Samples > 0 {
		opts.Logger.Debug("x11 backend ignores multisampling", "samples", cfg.Samples)
	}
	root := xRootWindow(dpy, xDefaultScreen(dpy))
	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask | buttonPressMask | buttonReleaseMask | pointerMotionMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		int32(opts.X), int32(opts.Y),
		uint32(max(opts.Width, 1)), uint32(max(opts.Height, 1)),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		return nil, errors.New("XCreateWindow failed")
	}
	xSelectInput(dpy, win, swa.EventMask)
	xStoreName(dpy, win, cString(opts.Title))

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)

	if !opts.Decoration {
		hints := xInternAtom(dpy, cString("_MOTIF_WM_HINTS"), 0)
		// flags, functions, decorations, input mode, status
		data := [5]uint64{2, 0, 0, 0, 0}
		xChangeProperty(dpy, win, hints, hints, 32, propModeReplace, unsafe.Pointer(&data[0]), 5)
	}

	var share uintptr
	if opts.Share != nil {
		if sb, ok := opts.Share.Backend().(*Backend); ok {
			share = sb.ctx
		}
	}
	ctx := glxCreateContext(dpy, visual, share, 1)
	if ctx == 0 {
		xDestroyWindow(dpy, win)
		return nil, errors.New("glXCreateContext failed")
	}
	if glxMakeCurrent(dpy, win, ctx) == 0 {
		glxDestroyContext(dpy, ctx)
		xDestroyWindow(dpy, win)
		return nil, errors.New("glXMakeCurrent failed")
	}

	return &Backend{
		display:  dpy,
		root:     root,
		window:   win,
		ctx:      ctx,
		wmDelete: wmDelete,
		running:  true,
		log:      opts.Logger,
		title:    opts.Title,
		width:    opts.Width,
		height:   opts.Height,
	}, nil
}

func visualAttribs(cfg *config.Configuration) []int32 {
	attrs := []int32{
		glxRGBA,
		glxRedSize, int32(cfg.RedSize),
		glxGreenSize, int32(cfg.GreenSize),
		glxBlueSize, int32(cfg.BlueSize),
		glxAlphaSize, int32(cfg.AlphaSize),
		glxDepthSize, int32(cfg.DepthSize),
		glxStencilSize, int32(cfg.StencilSize),
	}
	if cfg.DoubleBuffer {
		attrs = append(attrs, glxDoubleBuffer)
	}
	return append(attrs, glxNone)
}

func (b *Backend) Name() string { return Name }

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

var errClosed = errors.New("x11 window is closed")

func (b *Backend) Show() error {
	if b.window == 0 {
		return errClosed
	}
	xMapWindow(b.display, b.window)
	xFlush(b.display)
	return nil
}

func (b *Backend) Hide() error {
	if b.window == 0 {
		return errClosed
	}
	xUnmapWindow(b.display, b.window)
	xFlush(b.display)
	return nil
}

func (b *Backend) Close() error {
	if b.ctx != 0 {
		glxMakeCurrent(b.display, 0, 0)
		glxDestroyContext(b.display, b.ctx)
		b.ctx = 0
	}
	if b.window != 0 {
		xDestroyWindow(b.display, b.window)
		b.window = 0
	}
	if b.display != 0 {
		xCloseDisplay(b.display)
		b.display = 0
		runtime.UnlockOSThread()
	}
	b.running = false
	return nil
}

func (b *Backend) SetTitle(title string) error {
	if b.window == 0 {
		return errClosed
	}
	xStoreName(b.display, b.window, cString(title))
	xFlush(b.display)
	b.title = title
	return nil
}

func (b *Backend) Title() string { return b.title }

func (b *Backend) SetSize(width, height int) error {
	if b.window == 0 {
		return errClosed
	}
	xResizeWindow(b.display, b.window, uint32(max(width, 1)), uint32(max(height, 1)))
	xFlush(b.display)
	return nil
}

func (b *Backend) Size() (int, int) {
	if b.window == 0 {
		return 0, 0
	}
	var root uintptr
	var x, y int32
	var width, height uint32
	var border, depth uint32
	if xGetGeometry(b.display, b.window, &root, &x, &y, &width, &height, &border, &depth) == 0 {
		return 0, 0
	}
	return int(width), int(height)
}

func (b *Backend) SetPosition(x, y int) error {
	if b.window == 0 {
		return errClosed
	}
	xMoveWindow(b.display, b.window, int32(x), int32(y))
	xFlush(b.display)
	return nil
}

// Position is the window origin in root window coordinates.
func (b *Backend) Position() (int, int) {
	if b.window == 0 {
		return 0, 0
	}
	var x, y int32
	var child uintptr
	if xTranslateCoordinates(b.display, b.window, b.root, 0, 0, &x, &y, &child) == 0 {
		return 0, 0
	}
	return int(x), int(y)
}

func (b *Backend) Swap() error {
	if b.display == 0 || b.window == 0 {
		return errClosed
	}
	glxSwapBuffers(b.display, b.window)
	return nil
}

func (b *Backend) Activate() error {
	if b.ctx == 0 {
		return errClosed
	}
	if glxMakeCurrent(b.display, b.window, b.ctx) == 0 {
		return errors.New("glXMakeCurrent failed")
	}
	return nil
}

// Poll translates pending X events into window events.
func (b *Backend) Poll(d window.Dispatcher) bool {
	if !b.running {
		return false
	}

	for xPending(b.display) > 0 {
		var ev [192]byte
		xNextEvent(b.display, unsafe.Pointer(&ev[0]))
		etype := *(*int32)(unsafe.Pointer(&ev[0]))
		switch etype {
		case keyPress, keyRelease:
			ke := (*xKeyEvent)(unsafe.Pointer(&ev[0]))
			key := keysymToKey(xLookupKeysym(unsafe.Pointer(ke), 0))
			mods := stateModifiers(ke.State)
			if etype == keyRelease {
				d.DispatchKeyRelease(key, mods)
				break
			}
			d.DispatchKeyPress(key, mods)
			index := int32(0)
			if mods&window.ModShift != 0 {
				index = 1
			}
			if text := keysymText(xLookupKeysym(unsafe.Pointer(ke), index)); text != "" {
				d.DispatchCharacter(text)
			}
		case buttonPress, buttonRelease:
			be := (*xKeyEvent)(unsafe.Pointer(&ev[0]))
			x, y := int(be.X), int(be.Y)
			b.mouseX, b.mouseY = x, y
			if dx, dy, ok := scrollDelta(be.Keycode); ok {
				if etype == buttonPress {
					d.DispatchMouseScroll(dx, dy)
				}
				break
			}
			button := xButton(be.Keycode)
			if etype == buttonPress {
				d.DispatchMousePress(x, y, button)
			} else {
				d.DispatchMouseRelease(x, y, button)
			}
		case motionNotify:
			me := (*xMotionEvent)(unsafe.Pointer(&ev[0]))
			x, y := int(me.X), int(me.Y)
			d.DispatchMouseMotion(x, y, x-b.mouseX, y-b.mouseY)
			b.mouseX, b.mouseY = x, y
		case configureNotify:
			ce := (*xConfigureEvent)(unsafe.Pointer(&ev[0]))
			w, h := int(ce.Width), int(ce.Height)
			if w != b.width || h != b.height {
				b.width, b.height = w, h
				d.DispatchResize(w, h)
			}
		case clientMessage:
			cm := (*xClientMessage)(unsafe.Pointer(&ev[0]))
			if cm.Format == 32 && cm.Data[0] == uint64(b.wmDelete) {
				b.running = false
			}
		case destroyNotify:
			b.running = false
		}
	}
	return b.running
}

func ensureLibs() error {
	var err error
	if x11lib == 0 {
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libX11: %w", err)
		}
		registerX11()
	}
	if gllib == 0 {
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libGL: %w", err)
		}
		registerGLX()
	}
	return nil
}

func registerX11() {
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xUnmapWindow, x11lib, "XUnmapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xGetGeometry, x11lib, "XGetGeometry")
	purego.RegisterLibFunc(&xTranslateCoordinates, x11lib, "XTranslateCoordinates")
	purego.RegisterLibFunc(&xResizeWindow, x11lib, "XResizeWindow")
	purego.RegisterLibFunc(&xMoveWindow, x11lib, "XMoveWindow")
	purego.RegisterLibFunc(&xChangeProperty, x11lib, "XChangeProperty")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	purego.RegisterLibFunc(&xFree, x11lib, "XFree")
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
