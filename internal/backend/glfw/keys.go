package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/tinyrange/glwin/internal/window"
)

var specialKeys = map[glfw.Key]window.Key{
	glfw.KeySpace:     window.KeySpace,
	glfw.KeyEscape:    window.KeyEscape,
	glfw.KeyEnter:     window.KeyEnter,
	glfw.KeyKPEnter:   window.KeyEnter,
	glfw.KeyTab:       window.KeyTab,
	glfw.KeyBackspace: window.KeyBackspace,
	glfw.KeyInsert:    window.KeyInsert,
	glfw.KeyDelete:    window.KeyDelete,
	glfw.KeyRight:     window.KeyRight,
	glfw.KeyLeft:      window.KeyLeft,
	glfw.KeyDown:      window.KeyDown,
	glfw.KeyUp:        window.KeyUp,
	glfw.KeyPageUp:    window.KeyPageUp,
	glfw.KeyPageDown:  window.KeyPageDown,
	glfw.KeyHome:      window.KeyHome,
	glfw.KeyEnd:       window.KeyEnd,
}

func glfwKey(k glfw.Key) window.Key {
	if key, ok := specialKeys[k]; ok {
		return key
	}
	switch {
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return window.KeyF1 + window.Key(k-glfw.KeyF1)
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return window.Key('a' + (k - glfw.KeyA))
	case k > glfw.KeySpace && k < glfw.KeyA:
		// Digits and punctuation use their ASCII codes.
		return window.Key(k)
	}
	return window.KeyUnknown
}

func glfwMods(mod glfw.ModifierKey) window.Modifiers {
	var m window.Modifiers
	if mod&glfw.ModShift != 0 {
		m |= window.ModShift
	}
	if mod&glfw.ModControl != 0 {
		m |= window.ModControl
	}
	if mod&glfw.ModAlt != 0 {
		m |= window.ModAlt
	}
	if mod&glfw.ModSuper != 0 {
		m |= window.ModSuper
	}
	if mod&glfw.ModCapsLock != 0 {
		m |= window.ModCapsLock
	}
	return m
}

func glfwButton(b glfw.MouseButton) window.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return window.ButtonLeft
	case glfw.MouseButtonMiddle:
		return window.ButtonMiddle
	case glfw.MouseButtonRight:
		return window.ButtonRight
	}
	return window.ButtonNone
}
