//go:build windows

// Package win32 is a user32 + WGL backend bound through syscall.LazyDLL.
package win32

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

const Name = "win32"

func init() {
	backend.Register(Name, func(cfg *config.Configuration, opts window.Options) (window.Backend, error) {
		return New(cfg, opts)
	})
}

const (
	csOwnDC   = 0x0020
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	wsPopup            = 0x80000000
	wsClipSiblings     = 0x04000000
	wsClipChildren     = 0x02000000

	swHide = 0
	swShow = 5

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	wmDestroy     = 0x0002
	wmSize        = 0x0005
	wmClose       = 0x0010
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmChar        = 0x0102
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmMouseHWheel = 0x020E

	pmRemove = 0x0001

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001

	cwUseDefault = 0x80000000
)

type (
	hwnd  = syscall.Handle
	hdc   = syscall.Handle
	hglrc = syscall.Handle
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     syscall.Handle
	hIcon         syscall.Handle
	hCursor       syscall.Handle
	hbrBackground syscall.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       syscall.Handle
}

type msg struct {
	hwnd     hwnd
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	gdi32    = syscall.NewLazyDLL("gdi32.dll")
	opengl32 = syscall.NewLazyDLL("opengl32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procRegisterClassEx     = user32.NewProc("RegisterClassExW")
	procCreateWindowEx      = user32.NewProc("CreateWindowExW")
	procDefWindowProc       = user32.NewProc("DefWindowProcW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procUpdateWindow        = user32.NewProc("UpdateWindow")
	procGetClientRect       = user32.NewProc("GetClientRect")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procAdjustWindowRect    = user32.NewProc("AdjustWindowRect")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSetWindowText       = user32.NewProc("SetWindowTextW")
	procGetWindowText       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength = user32.NewProc("GetWindowTextLengthW")
	procPeekMessage         = user32.NewProc("PeekMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procWindowFromDC        = user32.NewProc("WindowFromDC")
	procLoadCursor          = user32.NewProc("LoadCursorW")
	procGetKeyState         = user32.NewProc("GetKeyState")
	procChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procGetPixelFormat      = gdi32.NewProc("GetPixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")
	procWglCreateContext    = opengl32.NewProc("wglCreateContext")
	procWglMakeCurrent      = opengl32.NewProc("wglMakeCurrent")
	procWglDeleteContext    = opengl32.NewProc("wglDeleteContext")
	procWglShareLists       = opengl32.NewProc("wglShareLists")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
	procSetLastError        = kernel32.NewProc("SetLastError")
	procGetLastError        = kernel32.NewProc("GetLastError")
)

func validateProcs() error {
	procs := []*syscall.LazyProc{
		procRegisterClassEx,
		procCreateWindowEx,
		procGetDC,
		procReleaseDC,
		procDescribePixelFormat,
		procSetPixelFormat,
		procGetPixelFormat,
		procWglCreateContext,
		procWglMakeCurrent,
		procWglDeleteContext,
	}
	for _, p := range procs {
		if err := p.Find(); err != nil {
			return fmt.Errorf("missing procedure %q: %w", p.Name, err)
		}
	}
	return nil
}

var (
	// Unique per process to avoid CS_OWNDC collisions.
	windowClassName = fmt.Sprintf("GlwinWindow_%d", os.Getpid())
	windowClass     = syscall.StringToUTF16Ptr(windowClassName)

	classOnce sync.Once
	classErr  error

	// Windows by handle, for routing messages in wndProc.
	windows = map[hwnd]*Backend{}
)

func lastError() syscall.Errno {
	e, _, _ := procGetLastError.Call()
	return syscall.Errno(e)
}

func clearLastError() {
	procSetLastError.Call(0)
}

func winErr(op string) error {
	e := lastError()
	if e == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %w", op, e)
}

type Backend struct {
	hwnd    hwnd
	hdc     hdc
	ctx     hglrc
	style   uint32
	running bool
	log     *slog.Logger
	gl      gl.OpenGL

	dispatch       window.Dispatcher
	mouseX, mouseY int
	highSurrogate  rune
}

func New(cfg *config.Configuration, opts window.Options) (*Backend, error) {
	opts = opts.WithDefaults()
	runtime.LockOSThread()

	b, err := create(cfg, opts)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return b, nil
}

func create(cfg *config.Configuration, opts window.Options) (*Backend, error) {
	if err := validateProcs(); err != nil {
		return nil, err
	}
	if unsafe.Sizeof(pixelFormatDescriptor{}) != 40 {
		return nil, fmt.Errorf("PIXELFORMATDESCRIPTOR size mismatch: got %d, want 40", unsafe.Sizeof(pixelFormatDescriptor{}))
	}
	classOnce.Do(func() { classErr = registerWindowClass() })
	if classErr != nil {
		return nil, classErr
	}
	if opts.Fullscreen {
		opts.Logger.Debug("win32 backend ignores fullscreen")
	}
	if cfg.Samples > 0 {
		opts.Logger.Debug("win32 backend ignores multisampling", "samples", cfg.Samples)
	}

	style := uint32(wsOverlappedWindow | wsClipSiblings | wsClipChildren)
	if !opts.Decoration {
		style = wsPopup | wsClipSiblings | wsClipChildren
	}

	hwd, dc, err := createWindow(opts, style)
	if err != nil {
		return nil, err
	}
	destroy := func() {
		procReleaseDC.Call(uintptr(hwd), uintptr(dc))
		procDestroyWindow.Call(uintptr(hwd))
	}

	// The DC must belong to this window.
	clearLastError()
	wfdc, _, _ := procWindowFromDC.Call(uintptr(dc))
	if hwnd(wfdc) != hwd {
		destroy()
		return nil, fmt.Errorf("HDC does not belong to HWND (WindowFromDC=%#x hwnd=%#x)", wfdc, uintptr(hwd))
	}

	if err := chooseAndSetPixelFormat(dc, pixelFormat(cfg)); err != nil {
		destroy()
		return nil, err
	}

	var share hglrc
	if opts.Share != nil {
		if sb, ok := opts.Share.Backend().(*Backend); ok {
			share = sb.ctx
		}
	}
	ctx, err := createGLContext(dc, share)
	if err != nil {
		destroy()
		return nil, err
	}

	b := &Backend{hwnd: hwd, hdc: dc, ctx: ctx, style: style, running: true, log: opts.Logger}
	windows[hwd] = b

	if opts.Visible {
		procShowWindow.Call(uintptr(hwd), swShow)
		procUpdateWindow.Call(uintptr(hwd))
	}
	opts.Logger.Info("win32 window created", "title", opts.Title, "width", opts.Width, "height", opts.Height)
	return b, nil
}

func pixelFormat(cfg *config.Configuration) pixelFormatDescriptor {
	flags := uint32(pfdDrawToWindow | pfdSupportOpenGL)
	if cfg.DoubleBuffer {
		flags |= pfdDoubleBuffer
	}
	return pixelFormatDescriptor{
		nSize:        uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:     1,
		dwFlags:      flags,
		iPixelType:   pfdTypeRGBA,
		cColorBits:   byte(cfg.RedSize + cfg.GreenSize + cfg.BlueSize),
		cRedBits:     byte(cfg.RedSize),
		cGreenBits:   byte(cfg.GreenSize),
		cBlueBits:    byte(cfg.BlueSize),
		cAlphaBits:   byte(cfg.AlphaSize),
		cDepthBits:   byte(cfg.DepthSize),
		cStencilBits: byte(cfg.StencilSize),
		iLayerType:   pfdMainPlane,
	}
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

var errClosed = errors.New("win32 window is closed")

func (b *Backend) Show() error {
	if b.hwnd == 0 {
		return errClosed
	}
	procShowWindow.Call(uintptr(b.hwnd), swShow)
	return nil
}

func (b *Backend) Hide() error {
	if b.hwnd == 0 {
		return errClosed
	}
	procShowWindow.Call(uintptr(b.hwnd), swHide)
	return nil
}

func (b *Backend) Close() error {
	if b.ctx != 0 {
		procWglMakeCurrent.Call(uintptr(b.hdc), 0)
		procWglDeleteContext.Call(uintptr(b.ctx))
		b.ctx = 0
	}
	if b.hdc != 0 && b.hwnd != 0 {
		procReleaseDC.Call(uintptr(b.hwnd), uintptr(b.hdc))
		b.hdc = 0
	}
	if b.hwnd != 0 {
		delete(windows, b.hwnd)
		procDestroyWindow.Call(uintptr(b.hwnd))
		b.hwnd = 0
		runtime.UnlockOSThread()
	}
	b.running = false
	return nil
}

func (b *Backend) SetTitle(title string) error {
	if b.hwnd == 0 {
		return errClosed
	}
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	clearLastError()
	if ret, _, _ := procSetWindowText.Call(uintptr(b.hwnd), uintptr(unsafe.Pointer(p))); ret == 0 {
		return winErr("SetWindowTextW")
	}
	return nil
}

func (b *Backend) Title() string {
	if b.hwnd == 0 {
		return ""
	}
	n, _, _ := procGetWindowTextLength.Call(uintptr(b.hwnd))
	buf := make([]uint16, n+1)
	procGetWindowText.Call(uintptr(b.hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf)
}

// SetSize resizes the client area; the frame is added around it.
func (b *Backend) SetSize(width, height int) error {
	if b.hwnd == 0 {
		return errClosed
	}
	w, h := outerSize(width, height, b.style)
	clearLastError()
	ret, _, _ := procSetWindowPos.Call(uintptr(b.hwnd), 0, 0, 0, uintptr(w), uintptr(h), swpNoMove|swpNoZOrder|swpNoActivate)
	if ret == 0 {
		return winErr("SetWindowPos")
	}
	return nil
}

func (b *Backend) Size() (int, int) {
	var r rect
	procGetClientRect.Call(uintptr(b.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.right - r.left), int(r.bottom - r.top)
}

func (b *Backend) SetPosition(x, y int) error {
	if b.hwnd == 0 {
		return errClosed
	}
	clearLastError()
	ret, _, _ := procSetWindowPos.Call(uintptr(b.hwnd), 0, uintptr(x), uintptr(y), 0, 0, swpNoSize|swpNoZOrder|swpNoActivate)
	if ret == 0 {
		return winErr("SetWindowPos")
	}
	return nil
}

func (b *Backend) Position() (int, int) {
	var r rect
	procGetWindowRect.Call(uintptr(b.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.left), int(r.top)
}

func (b *Backend) Swap() error {
	if b.hdc == 0 {
		return errClosed
	}
	procSwapBuffers.Call(uintptr(b.hdc))
	return nil
}

func (b *Backend) Activate() error {
	if b.hdc == 0 || b.ctx == 0 {
		return errClosed
	}
	clearLastError()
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(b.hdc), uintptr(b.ctx)); ret == 0 {
		return winErr("wglMakeCurrent")
	}
	return nil
}

// Poll drains the thread's message queue. Messages for every window on the
// thread are delivered through wndProc.
func (b *Backend) Poll(d window.Dispatcher) bool {
	if !b.running {
		return false
	}
	b.dispatch = d

	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret == 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	return b.running
}

// handle translates one window message. It reports whether the message was
// consumed; unconsumed messages go to DefWindowProc.
func (b *Backend) handle(message uint32, wParam, lParam uintptr) bool {
	switch message {
	case wmClose, wmDestroy:
		b.running = false
		return true
	}

	d := b.dispatch
	if d == nil {
		return false
	}
	switch message {
	case wmKeyDown, wmSysKeyDown:
		d.DispatchKeyPress(virtualKey(wParam), keyModifiers(keyState))
		return message == wmKeyDown
	case wmKeyUp, wmSysKeyUp:
		d.DispatchKeyRelease(virtualKey(wParam), keyModifiers(keyState))
		return message == wmKeyUp
	case wmChar:
		b.character(uint16(wParam))
	case wmMouseMove:
		x, y := pointFromLParam(lParam)
		dx, dy := x-b.mouseX, y-b.mouseY
		b.mouseX, b.mouseY = x, y
		d.DispatchMouseMotion(x, y, dx, dy)
	case wmLButtonDown, wmMButtonDown, wmRButtonDown:
		b.mouseX, b.mouseY = pointFromLParam(lParam)
		d.DispatchMousePress(b.mouseX, b.mouseY, messageButton(message))
	case wmLButtonUp, wmMButtonUp, wmRButtonUp:
		b.mouseX, b.mouseY = pointFromLParam(lParam)
		d.DispatchMouseRelease(b.mouseX, b.mouseY, messageButton(message))
	case wmMouseWheel:
		d.DispatchMouseScroll(0, wheelSteps(wParam))
	case wmMouseHWheel:
		d.DispatchMouseScroll(wheelSteps(wParam), 0)
	case wmSize:
		d.DispatchResize(sizeFromLParam(lParam))
	default:
		return false
	}
	return true
}

func (b *Backend) character(unit uint16) {
	r := rune(unit)
	switch {
	case utf16.IsSurrogate(r) && b.highSurrogate == 0:
		b.highSurrogate = r
		return
	case b.highSurrogate != 0:
		r = utf16.DecodeRune(b.highSurrogate, r)
		b.highSurrogate = 0
	}
	if r < 0x20 || r == 0x7f {
		return
	}
	b.dispatch.DispatchCharacter(string(r))
}

func messageButton(message uint32) window.Button {
	switch message {
	case wmLButtonDown, wmLButtonUp:
		return window.ButtonLeft
	case wmMButtonDown, wmMButtonUp:
		return window.ButtonMiddle
	case wmRButtonDown, wmRButtonUp:
		return window.ButtonRight
	}
	return window.ButtonNone
}

func keyState(vk int) int16 {
	ret, _, _ := procGetKeyState.Call(uintptr(vk))
	return int16(ret)
}

func outerSize(width, height int, style uint32) (int, int) {
	r := rect{right: int32(width), bottom: int32(height)}
	procAdjustWindowRect.Call(uintptr(unsafe.Pointer(&r)), uintptr(style), 0)
	return int(r.right - r.left), int(r.bottom - r.top)
}

func registerWindowClass() error {
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csOwnDC | csHRedraw | csVRedraw,
		lpfnWndProc:   syscall.NewCallback(wndProc),
		hInstance:     moduleHandle(),
		hCursor:       loadCursor(),
		lpszClassName: windowClass,
	}

	clearLastError()
	if ret, _, _ := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
		return winErr("RegisterClassExW")
	}
	return nil
}

func createWindow(opts window.Options, style uint32) (win hwnd, dc hdc, err error) {
	titlePtr, err := syscall.UTF16PtrFromString(opts.Title)
	if err != nil {
		return 0, 0, err
	}

	x, y := uintptr(cwUseDefault), uintptr(cwUseDefault)
	if opts.X != 0 || opts.Y != 0 {
		x, y = uintptr(opts.X), uintptr(opts.Y)
	}
	w, h := outerSize(max(opts.Width, 1), max(opts.Height, 1), style)

	clearLastError()
	ret, _, _ := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(windowClass)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(style),
		x,
		y,
		uintptr(w),
		uintptr(h),
		0,
		0,
		uintptr(moduleHandle()),
		0,
	)
	win = hwnd(ret)
	if win == 0 {
		return 0, 0, winErr("CreateWindowExW")
	}

	clearLastError()
	dcRet, _, _ := procGetDC.Call(uintptr(win))
	if dcRet == 0 {
		procDestroyWindow.Call(uintptr(win))
		return 0, 0, winErr("GetDC")
	}
	return win, hdc(dcRet), nil
}

func chooseAndSetPixelFormat(dc hdc, desired pixelFormatDescriptor) error {
	// Prefer ChoosePixelFormat, then set using the described PFD for that index.
	clearLastError()
	pf, _, _ := procChoosePixelFormat.Call(uintptr(dc), uintptr(unsafe.Pointer(&desired)))
	if pf == 0 {
		return winErr("ChoosePixelFormat")
	}

	var chosen pixelFormatDescriptor
	clearLastError()
	r, _, _ := procDescribePixelFormat.Call(uintptr(dc), pf, uintptr(unsafe.Sizeof(chosen)), uintptr(unsafe.Pointer(&chosen)))
	if r == 0 {
		return winErr("DescribePixelFormat")
	}
	if !pixelFormatSatisfies(chosen, desired) {
		return enumAndSetPixelFormat(dc, desired)
	}

	clearLastError()
	if ok, _, _ := procSetPixelFormat.Call(uintptr(dc), pf, uintptr(unsafe.Pointer(&chosen))); ok == 0 {
		return fmt.Errorf("SetPixelFormat failed for index %d: %w", pf, winErr("SetPixelFormat"))
	}

	clearLastError()
	got, _, _ := procGetPixelFormat.Call(uintptr(dc))
	if got != pf {
		return fmt.Errorf("GetPixelFormat mismatch: got=%d want=%d", got, pf)
	}
	return nil
}

func enumAndSetPixelFormat(dc hdc, desired pixelFormatDescriptor) error {
	var pfd pixelFormatDescriptor

	clearLastError()
	maxFormats, _, _ := procDescribePixelFormat.Call(uintptr(dc), 1, uintptr(unsafe.Sizeof(pfd)), uintptr(unsafe.Pointer(&pfd)))
	if maxFormats == 0 {
		return winErr("DescribePixelFormat(count)")
	}

	var chosenFormat uintptr
	var chosenPFD pixelFormatDescriptor
	for i := uintptr(1); i <= maxFormats; i++ {
		ret, _, _ := procDescribePixelFormat.Call(uintptr(dc), i, uintptr(unsafe.Sizeof(pfd)), uintptr(unsafe.Pointer(&pfd)))
		if ret == 0 || !pixelFormatSatisfies(pfd, desired) {
			continue
		}
		chosenFormat, chosenPFD = i, pfd
		break
	}
	if chosenFormat == 0 {
		return fmt.Errorf("no OpenGL pixel format with color=%d depth=%d stencil=%d",
			desired.cColorBits, desired.cDepthBits, desired.cStencilBits)
	}

	clearLastError()
	if ok, _, _ := procSetPixelFormat.Call(uintptr(dc), chosenFormat, uintptr(unsafe.Pointer(&chosenPFD))); ok == 0 {
		return winErr("SetPixelFormat(enum)")
	}
	return nil
}

func pixelFormatSatisfies(pfd, desired pixelFormatDescriptor) bool {
	return pfd.dwFlags&desired.dwFlags == desired.dwFlags &&
		pfd.iPixelType == pfdTypeRGBA &&
		pfd.iLayerType == pfdMainPlane &&
		pfd.cColorBits >= desired.cColorBits &&
		pfd.cDepthBits >= desired.cDepthBits &&
		pfd.cStencilBits >= desired.cStencilBits
}

func createGLContext(dc hdc, share hglrc) (hglrc, error) {
	clearLastError()
	ctx, _, _ := procWglCreateContext.Call(uintptr(dc))
	if ctx == 0 {
		return 0, winErr("wglCreateContext")
	}

	if share != 0 {
		clearLastError()
		if ret, _, _ := procWglShareLists.Call(uintptr(share), ctx); ret == 0 {
			procWglDeleteContext.Call(ctx)
			return 0, winErr("wglShareLists")
		}
	}

	clearLastError()
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(dc), ctx); ret == 0 {
		procWglDeleteContext.Call(ctx)
		return 0, winErr("wglMakeCurrent")
	}
	return hglrc(ctx), nil
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	if b := windows[syscall.Handle(hwnd)]; b != nil && b.handle(uint32(message), wParam, lParam) {
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
	return ret
}

func loadCursor() syscall.Handle {
	const idcArrow = 32512
	ret, _, _ := procLoadCursor.Call(0, uintptr(idcArrow))
	return syscall.Handle(ret)
}

func moduleHandle() syscall.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return syscall.Handle(h)
}
