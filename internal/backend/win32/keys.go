package win32

import "github.com/tinyrange/glwin/internal/window"

// Virtual-key codes from WinUser.h.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkEscape  = 0x1B
	vkSpace   = 0x20
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkInsert  = 0x2D
	vkDelete  = 0x2E
	vkLWin    = 0x5B
	vkRWin    = 0x5C
	vkF1      = 0x70
	vkF12     = 0x7B

	wheelDelta = 120
)

var specialKeys = map[uintptr]window.Key{
	vkBack:   window.KeyBackspace,
	vkTab:    window.KeyTab,
	vkReturn: window.KeyEnter,
	vkEscape: window.KeyEscape,
	vkSpace:  window.KeySpace,
	vkPrior:  window.KeyPageUp,
	vkNext:   window.KeyPageDown,
	vkEnd:    window.KeyEnd,
	vkHome:   window.KeyHome,
	vkLeft:   window.KeyLeft,
	vkUp:     window.KeyUp,
	vkRight:  window.KeyRight,
	vkDown:   window.KeyDown,
	vkInsert: window.KeyInsert,
	vkDelete: window.KeyDelete,
}

func virtualKey(vk uintptr) window.Key {
	if k, ok := specialKeys[vk]; ok {
		return k
	}
	switch {
	case vk >= vkF1 && vk <= vkF12:
		return window.KeyF1 + window.Key(vk-vkF1)
	case vk >= 'A' && vk <= 'Z':
		return window.Key(vk + 'a' - 'A')
	case vk >= '0' && vk <= '9':
		return window.Key(vk)
	}
	return window.KeyUnknown
}

// keyModifiers queries GetKeyState-style state: the high bit reports a held
// key, the low bit a toggled one.
func keyModifiers(state func(vk int) int16) window.Modifiers {
	var m window.Modifiers
	if state(vkShift) < 0 {
		m |= window.ModShift
	}
	if state(vkControl) < 0 {
		m |= window.ModControl
	}
	if state(vkMenu) < 0 {
		m |= window.ModAlt
	}
	if state(vkLWin) < 0 || state(vkRWin) < 0 {
		m |= window.ModSuper
	}
	if state(vkCapital)&1 != 0 {
		m |= window.ModCapsLock
	}
	return m
}

// Coordinates in mouse messages are signed 16-bit values packed in lParam.
func pointFromLParam(lParam uintptr) (x, y int) {
	return int(int16(lParam & 0xffff)), int(int16((lParam >> 16) & 0xffff))
}

func sizeFromLParam(lParam uintptr) (width, height int) {
	return int(lParam & 0xffff), int((lParam >> 16) & 0xffff)
}

// wheelSteps converts the wheel delta in the high word of wParam to notches.
func wheelSteps(wParam uintptr) float64 {
	return float64(int16((wParam>>16)&0xffff)) / wheelDelta
}
