//go:build darwin

// Package cocoa is a cgo-free Cocoa + NSOpenGL backend using purego. It
// keeps control of the run loop so the app loop can drive rendering.
package cocoa

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"

	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

const Name = "cocoa"

func init() {
	backend.Register(Name, func(cfg *config.Configuration, opts window.Options) (window.Backend, error) {
		return New(cfg, opts)
	})
}

// NS geometry mirrors (keep alignment explicit).
type NSPoint struct {
	X float64
	Y float64
}

type NSSize struct {
	W float64
	H float64
}

type NSRect struct {
	Origin NSPoint
	Size   NSSize
}

const (
	nsApplicationActivationPolicyRegular = 0

	nsWindowStyleBorderless  = 0
	nsWindowStyleTitled      = 1 << 0
	nsWindowStyleClosable    = 1 << 1
	nsWindowStyleMiniaturize = 1 << 2
	nsWindowStyleResizable   = 1 << 3
	nsWindowStyleFullScreen  = 1 << 14

	nsBackingStoreBuffered = 2

	nsEventMaskAny = ^uint(0)

	nsOpenGLCPSwapInterval = 222
)

type Backend struct {
	window  objc.ID
	view    objc.ID
	ctx     objc.ID
	pool    objc.ID
	running bool
	hidden  bool
	log     *slog.Logger
	gl      gl.OpenGL

	dispatch       window.Dispatcher
	width, height  int
	scale          float32
	mouseX, mouseY int
}

var (
	initOnce sync.Once
	initErr  error
	app      objc.ID

	// Open windows by NSWindow, for routing events.
	windows = map[objc.ID]*Backend{}

	cfRunLoopRunInMode func(uintptr, float64, bool) int32
	cfDefaultMode      uintptr

	selAlloc                  objc.SEL
	selInit                   objc.SEL
	selRelease                objc.SEL
	selSharedApplication      objc.SEL
	selNextEventMatchingMask  objc.SEL
	selSetActivationPolicy    objc.SEL
	selFinishLaunching        objc.SEL
	selStringWithUTF8String   objc.SEL
	selUTF8String             objc.SEL
	selInitWithContentRect    objc.SEL
	selMakeKeyAndOrderFront   objc.SEL
	selOrderOut               objc.SEL
	selSetTitle               objc.SEL
	selTitle                  objc.SEL
	selSetAcceptsMouseMoved   objc.SEL
	selSetReleasedWhenClosed  objc.SEL
	selCenter                 objc.SEL
	selContentView            objc.SEL
	selBounds                 objc.SEL
	selFrame                  objc.SEL
	selSetContentSize         objc.SEL
	selSetFrameTopLeftPoint   objc.SEL
	selMainScreen             objc.SEL
	selStyleMask              objc.SEL
	selToggleFullScreen       objc.SEL
	selIsVisible              objc.SEL
	selIsMiniaturized         objc.SEL
	selSendEvent              objc.SEL
	selFlushBuffer            objc.SEL
	selSetView                objc.SEL
	selUpdate                 objc.SEL
	selMakeCurrentContext     objc.SEL
	selClearCurrentContext    objc.SEL
	selInitWithAttributes     objc.SEL
	selInitWithFormat         objc.SEL
	selSetValuesForParameter  objc.SEL
	selBackingScaleFactor     objc.SEL
	selSetWantsBestResolution objc.SEL

	selEventWindow      objc.SEL
	selEventType        objc.SEL
	selKeyCode          objc.SEL
	selModifierFlags    objc.SEL
	selCharacters       objc.SEL
	selCharsIgnoringMod objc.SEL
	selLocationInWindow objc.SEL
	selScrollingDeltaX  objc.SEL
	selScrollingDeltaY  objc.SEL
)

func New(cfg *config.Configuration, opts window.Options) (*Backend, error) {
	opts = opts.WithDefaults()
	runtime.LockOSThread()
	if err := ensureRuntime(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	b := &Backend{running: true, hidden: !opts.Visible, log: opts.Logger}
	if err := b.makeWindow(opts); err != nil {
		b.Close()
		return nil, err
	}

	var share objc.ID
	if opts.Share != nil {
		if sb, ok := opts.Share.Backend().(*Backend); ok {
			share = sb.ctx
		}
	}
	if err := b.makeGLContext(cfg, share); err != nil {
		b.Close()
		return nil, err
	}
	windows[b.window] = b

	if opts.Visible {
		b.window.Send(selMakeKeyAndOrderFront, objc.ID(0))
	}
	if opts.Fullscreen {
		b.window.Send(selToggleFullScreen, objc.ID(0))
	}
	b.width, b.height = b.Size()
	b.scale = b.Scale()
	opts.Logger.Info("cocoa window created", "title", opts.Title, "width", b.width, "height", b.height, "scale", b.Scale())
	return b, nil
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

// Scale is the backing scale factor (2 on Retina displays). The view asks
// for a full resolution surface, so it converts points to framebuffer
// pixels.
func (b *Backend) Scale() float32 {
	if b.window == 0 {
		return 1
	}
	return float32(objc.Send[float64](b.window, selBackingScaleFactor))
}

var errClosed = errors.New("cocoa window is closed")

func (b *Backend) Show() error {
	if b.window == 0 {
		return errClosed
	}
	b.window.Send(selMakeKeyAndOrderFront, objc.ID(0))
	b.hidden = false
	return nil
}

func (b *Backend) Hide() error {
	if b.window == 0 {
		return errClosed
	}
	b.window.Send(selOrderOut, objc.ID(0))
	b.hidden = true
	return nil
}

// Close tears down the GL context and window.
func (b *Backend) Close() error {
	if b.ctx != 0 {
		objc.ID(objc.GetClass("NSOpenGLContext")).Send(selClearCurrentContext)
		b.ctx.Send(selRelease)
		b.ctx = 0
	}
	if b.window != 0 {
		delete(windows, b.window)
		b.window.Send(selOrderOut, objc.ID(0))
		b.window.Send(selRelease)
		b.window = 0
		b.view = 0
	}
	if b.pool != 0 {
		b.pool.Send(selRelease)
		b.pool = 0
	}
	if b.running {
		b.running = false
		runtime.UnlockOSThread()
	}
	return nil
}

func (b *Backend) SetTitle(title string) error {
	if b.window == 0 {
		return errClosed
	}
	b.window.Send(selSetTitle, nsString(title))
	return nil
}

func (b *Backend) Title() string {
	if b.window == 0 {
		return ""
	}
	return goString(b.window.Send(selTitle))
}

// SetSize resizes the content area in points.
func (b *Backend) SetSize(width, height int) error {
	if b.window == 0 {
		return errClosed
	}
	b.window.Send(selSetContentSize, NSSize{W: float64(width), H: float64(height)})
	return nil
}

func (b *Backend) Size() (int, int) {
	if b.view == 0 {
		return 0, 0
	}
	bounds := objc.Send[NSRect](b.view, selBounds)
	return int(bounds.Size.W), int(bounds.Size.H)
}

// SetPosition places the top-left corner of the frame, measured from the
// top-left of the main screen.
func (b *Backend) SetPosition(x, y int) error {
	if b.window == 0 {
		return errClosed
	}
	b.window.Send(selSetFrameTopLeftPoint, NSPoint{X: float64(x), Y: screenHeight() - float64(y)})
	return nil
}

func (b *Backend) Position() (int, int) {
	if b.window == 0 {
		return 0, 0
	}
	f := objc.Send[NSRect](b.window, selFrame)
	return int(f.Origin.X), int(screenHeight() - (f.Origin.Y + f.Size.H))
}

// SetFullscreen starts the native fullscreen transition, which completes
// asynchronously.
func (b *Backend) SetFullscreen(fullscreen bool) error {
	if b.window == 0 {
		return errClosed
	}
	if fullscreen != b.Fullscreen() {
		b.window.Send(selToggleFullScreen, objc.ID(0))
	}
	return nil
}

func (b *Backend) Fullscreen() bool {
	if b.window == 0 {
		return false
	}
	return objc.Send[uint](b.window, selStyleMask)&nsWindowStyleFullScreen != 0
}

func (b *Backend) Swap() error {
	if b.ctx == 0 {
		return errClosed
	}
	b.ctx.Send(selFlushBuffer)
	return nil
}

func (b *Backend) Activate() error {
	if b.ctx == 0 {
		return errClosed
	}
	b.ctx.Send(selMakeCurrentContext)
	return nil
}

// Poll pumps the shared event queue once. Events are routed to the window
// they belong to. It reports false once the user closed the window.
func (b *Backend) Poll(d window.Dispatcher) bool {
	if !b.running || b.window == 0 {
		return false
	}
	b.dispatch = d

	// Drain one slice of the run loop without blocking and pump pending NSEvents.
	cfRunLoopRunInMode(cfDefaultMode, 0, true)
	for {
		ev := objc.Send[objc.ID](app, selNextEventMatchingMask, nsEventMaskAny, objc.ID(0), objc.ID(cfDefaultMode), true)
		if ev == 0 {
			break
		}
		if owner := windows[objc.Send[objc.ID](ev, selEventWindow)]; owner != nil {
			owner.translate(ev)
		}
		app.Send(selSendEvent, ev)
	}

	for _, w := range windows {
		w.checkResize()
	}

	// A window closed by the user is no longer visible even though it was
	// never hidden or miniaturized.
	if !b.hidden && !objc.Send[bool](b.window, selIsVisible) && !objc.Send[bool](b.window, selIsMiniaturized) {
		b.running = false
	}
	return b.running
}

func (b *Backend) translate(ev objc.ID) {
	d := b.dispatch
	if d == nil {
		return
	}
	typ := objc.Send[uint](ev, selEventType)
	switch typ {
	case evKeyDown, evKeyUp:
		key := eventKey(objc.Send[uint16](ev, selKeyCode), goString(ev.Send(selCharsIgnoringMod)))
		mods := flagsModifiers(objc.Send[uint](ev, selModifierFlags))
		if typ == evKeyUp {
			d.DispatchKeyRelease(key, mods)
			return
		}
		d.DispatchKeyPress(key, mods)
		if text := typedText(goString(ev.Send(selCharacters))); text != "" {
			d.DispatchCharacter(text)
		}
	case evMouseMoved, evLeftMouseDragged, evRightMouseDragged, evOtherMouseDragged:
		x, y := b.eventLocation(ev)
		dx, dy := x-b.mouseX, y-b.mouseY
		b.mouseX, b.mouseY = x, y
		d.DispatchMouseMotion(x, y, dx, dy)
	case evLeftMouseDown, evRightMouseDown, evOtherMouseDown:
		b.mouseX, b.mouseY = b.eventLocation(ev)
		d.DispatchMousePress(b.mouseX, b.mouseY, eventButton(typ))
	case evLeftMouseUp, evRightMouseUp, evOtherMouseUp:
		b.mouseX, b.mouseY = b.eventLocation(ev)
		d.DispatchMouseRelease(b.mouseX, b.mouseY, eventButton(typ))
	case evScrollWheel:
		d.DispatchMouseScroll(objc.Send[float64](ev, selScrollingDeltaX), objc.Send[float64](ev, selScrollingDeltaY))
	}
}

// eventLocation converts the window-relative location (origin bottom-left)
// to content coordinates with the origin at the top-left.
func (b *Backend) eventLocation(ev objc.ID) (int, int) {
	p := objc.Send[NSPoint](ev, selLocationInWindow)
	_, h := b.Size()
	return int(p.X), h - int(p.Y)
}

func (b *Backend) checkResize() {
	w, h := b.Size()
	scale := b.Scale()
	if w == b.width && h == b.height && scale == b.scale {
		return
	}
	b.width, b.height, b.scale = w, h, scale
	if b.ctx != 0 {
		b.ctx.Send(selUpdate)
	}
	if b.dispatch != nil {
		b.dispatch.DispatchResize(w, h)
	}
}

func (b *Backend) makeWindow(opts window.Options) error {
	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc)
	b.pool = pool.Send(selInit)

	frame := NSRect{
		Origin: NSPoint{X: float64(opts.X), Y: float64(opts.Y)},
		Size:   NSSize{W: float64(max(opts.Width, 1)), H: float64(max(opts.Height, 1))},
	}
	style := uint(nsWindowStyleBorderless)
	if opts.Decoration {
		style = nsWindowStyleTitled | nsWindowStyleClosable | nsWindowStyleMiniaturize | nsWindowStyleResizable
	}

	win := objc.ID(objc.GetClass("NSWindow")).Send(selAlloc)
	win = win.Send(selInitWithContentRect, frame, style, uint(nsBackingStoreBuffered), false)
	if win == 0 {
		return errors.New("failed to create nswindow")
	}
	b.window = win

	if opts.X == 0 && opts.Y == 0 {
		win.Send(selCenter)
	} else {
		b.SetPosition(opts.X, opts.Y)
	}
	win.Send(selSetAcceptsMouseMoved, 1)
	win.Send(selSetReleasedWhenClosed, 0)
	win.Send(selSetTitle, nsString(opts.Title))

	b.view = win.Send(selContentView)
	if b.view == 0 {
		return errors.New("window missing content view")
	}
	b.view.Send(selSetWantsBestResolution, true)
	return nil
}

func (b *Backend) makeGLContext(cfg *config.Configuration, share objc.ID) error {
	attrs := pixelFormatAttrs(cfg)

	pf := objc.ID(objc.GetClass("NSOpenGLPixelFormat")).Send(selAlloc)
	pf = pf.Send(selInitWithAttributes, unsafe.Pointer(&attrs[0]))
	if pf == 0 {
		return errors.New("failed to create pixel format")
	}
	defer pf.Send(selRelease)

	ctx := objc.ID(objc.GetClass("NSOpenGLContext")).Send(selAlloc)
	ctx = ctx.Send(selInitWithFormat, pf, share)
	if ctx == 0 {
		return errors.New("failed to create gl context")
	}

	ctx.Send(selSetView, b.view)
	ctx.Send(selMakeCurrentContext)

	// Enable vsync.
	swap := int32(1)
	ctx.Send(selSetValuesForParameter, unsafe.Pointer(&swap), nsOpenGLCPSwapInterval)

	b.ctx = ctx
	return nil
}

func screenHeight() float64 {
	screen := objc.ID(objc.GetClass("NSScreen")).Send(selMainScreen)
	if screen == 0 {
		return 0
	}
	return objc.Send[NSRect](screen, selFrame).Size.H
}

func ensureRuntime() error {
	initOnce.Do(func() {
		if err := loadObjc(); err != nil {
			initErr = err
			return
		}
		loadSelectors()

		app = objc.ID(objc.GetClass("NSApplication")).Send(selSharedApplication)
		if app == 0 {
			initErr = errors.New("nsapplication unavailable")
			return
		}
		app.Send(selSetActivationPolicy, nsApplicationActivationPolicyRegular)
		app.Send(selFinishLaunching)
	})
	return initErr
}

func loadObjc() error {
	if _, err := purego.Dlopen("/usr/lib/libobjc.A.dylib", purego.RTLD_GLOBAL); err != nil {
		return err
	}
	if _, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit", purego.RTLD_GLOBAL); err != nil {
		return err
	}
	cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}

	purego.RegisterLibFunc(&cfRunLoopRunInMode, cf, "CFRunLoopRunInMode")
	ptr, err := purego.Dlsym(cf, "kCFRunLoopDefaultMode")
	if err != nil {
		return err
	}
	// Dlsym returns the address of the CFStringRef variable; read its value.
	cfDefaultMode = *(*uintptr)(unsafe.Pointer(ptr))
	return nil
}

func loadSelectors() {
	selAlloc = objc.RegisterName("alloc")
	selInit = objc.RegisterName("init")
	selRelease = objc.RegisterName("release")
	selSharedApplication = objc.RegisterName("sharedApplication")
	selNextEventMatchingMask = objc.RegisterName("nextEventMatchingMask:untilDate:inMode:dequeue:")
	selSetActivationPolicy = objc.RegisterName("setActivationPolicy:")
	selFinishLaunching = objc.RegisterName("finishLaunching")
	selStringWithUTF8String = objc.RegisterName("stringWithUTF8String:")
	selUTF8String = objc.RegisterName("UTF8String")
	selInitWithContentRect = objc.RegisterName("initWithContentRect:styleMask:backing:defer:")
	selMakeKeyAndOrderFront = objc.RegisterName("makeKeyAndOrderFront:")
	selOrderOut = objc.RegisterName("orderOut:")
	selSetTitle = objc.RegisterName("setTitle:")
	selTitle = objc.RegisterName("title")
	selSetAcceptsMouseMoved = objc.RegisterName("setAcceptsMouseMovedEvents:")
	selSetReleasedWhenClosed = objc.RegisterName("setReleasedWhenClosed:")
	selCenter = objc.RegisterName("center")
	selContentView = objc.RegisterName("contentView")
	selBounds = objc.RegisterName("bounds")
	selFrame = objc.RegisterName("frame")
	selSetContentSize = objc.RegisterName("setContentSize:")
	selSetFrameTopLeftPoint = objc.RegisterName("setFrameTopLeftPoint:")
	selMainScreen = objc.RegisterName("mainScreen")
	selStyleMask = objc.RegisterName("styleMask")
	selToggleFullScreen = objc.RegisterName("toggleFullScreen:")
	selIsVisible = objc.RegisterName("isVisible")
	selIsMiniaturized = objc.RegisterName("isMiniaturized")
	selSendEvent = objc.RegisterName("sendEvent:")
	selFlushBuffer = objc.RegisterName("flushBuffer")
	selSetView = objc.RegisterName("setView:")
	selUpdate = objc.RegisterName("update")
	selMakeCurrentContext = objc.RegisterName("makeCurrentContext")
	selClearCurrentContext = objc.RegisterName("clearCurrentContext")
	selInitWithAttributes = objc.RegisterName("initWithAttributes:")
	selInitWithFormat = objc.RegisterName("initWithFormat:shareContext:")
	selSetValuesForParameter = objc.RegisterName("setValues:forParameter:")
	selBackingScaleFactor = objc.RegisterName("backingScaleFactor")
	selSetWantsBestResolution = objc.RegisterName("setWantsBestResolutionOpenGLSurface:")

	selEventWindow = objc.RegisterName("window")
	selEventType = objc.RegisterName("type")
	selKeyCode = objc.RegisterName("keyCode")
	selModifierFlags = objc.RegisterName("modifierFlags")
	selCharacters = objc.RegisterName("characters")
	selCharsIgnoringMod = objc.RegisterName("charactersIgnoringModifiers")
	selLocationInWindow = objc.RegisterName("locationInWindow")
	selScrollingDeltaX = objc.RegisterName("scrollingDeltaX")
	selScrollingDeltaY = objc.RegisterName("scrollingDeltaY")
}

func nsString(v string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, v+"\x00")
}

func goString(s objc.ID) string {
	if s == 0 {
		return ""
	}
	p := objc.Send[*byte](s, selUTF8String)
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
