package gl

import "unsafe"

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000

	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// StencilBufferBit is a mask used with Clear to clear the stencil buffer.
	StencilBufferBit = 0x00000400

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer returns the name of the renderer, typically the GPU.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
)

// OpenGL describes the subset of OpenGL entry points a window needs.
//
// Implementations typically wrap platform-specific GL bindings. All methods are
// expected to operate on the currently current GL context for the calling thread.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit|DepthBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// GetString returns a string describing a GL property for the current context.
	//
	// Common names are Vendor, Renderer and Version.
	// If the name is not recognized or no context is current, implementations may
	// return the empty string.
	GetString(name uint32) string
}

// MaskString renders a clear mask as a "|"-separated list of buffer names.
func MaskString(mask uint32) string {
	var s string
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if mask&ColorBufferBit != 0 {
		add("color")
	}
	if mask&DepthBufferBit != 0 {
		add("depth")
	}
	if mask&StencilBufferBit != 0 {
		add("stencil")
	}
	if s == "" {
		return "none"
	}
	return s
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
