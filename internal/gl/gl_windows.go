//go:build windows

package gl

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"
)

type openGL struct {
	clearColor *syscall.LazyProc
	clear      *syscall.LazyProc
	viewport   *syscall.LazyProc
	getString  *syscall.LazyProc
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor.Call(f32(r), f32(g), f32(b), f32(a))
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear.Call(uintptr(mask))
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport.Call(uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

func (gl *openGL) GetString(name uint32) string {
	ptr, _, _ := gl.getString.Call(uintptr(name))
	return gostring((*byte)(unsafe.Pointer(ptr)))
}

func Load() (OpenGL, error) {
	opengl32 := syscall.NewLazyDLL("opengl32.dll")
	if err := opengl32.Load(); err != nil {
		return nil, fmt.Errorf("load opengl32.dll: %w", err)
	}
	gl := &openGL{
		clearColor: opengl32.NewProc("glClearColor"),
		clear:      opengl32.NewProc("glClear"),
		viewport:   opengl32.NewProc("glViewport"),
		getString:  opengl32.NewProc("glGetString"),
	}
	return gl, nil
}

func f32(v float32) uintptr {
	return uintptr(math.Float32bits(v))
}
