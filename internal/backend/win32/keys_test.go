package win32

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyrange/glwin/internal/window"
)

func TestVirtualKey(t *testing.T) {
	assert.Equal(t, window.KeyEscape, virtualKey(vkEscape))
	assert.Equal(t, window.KeyPageDown, virtualKey(vkNext))
	assert.Equal(t, window.Key('q'), virtualKey('Q'))
	assert.Equal(t, window.Key('0'), virtualKey('0'))
	assert.Equal(t, window.KeyF12, virtualKey(vkF12))
	assert.Equal(t, window.KeyUnknown, virtualKey(vkShift))
}

func TestKeyModifiers(t *testing.T) {
	held := map[int]int16{vkShift: -128, vkRWin: -128, vkCapital: 1}
	m := keyModifiers(func(vk int) int16 { return held[vk] })
	assert.Equal(t, window.ModShift|window.ModSuper|window.ModCapsLock, m)

	assert.Equal(t, window.Modifiers(0), keyModifiers(func(int) int16 { return 0 }))
}

func TestPointFromLParam(t *testing.T) {
	x, y := pointFromLParam(uintptr(20)<<16 | 10)
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)

	// Negative coordinates occur on multi-monitor setups.
	x, y = pointFromLParam(uintptr(0xfffe)<<16 | 0xffff)
	assert.Equal(t, -1, x)
	assert.Equal(t, -2, y)
}

func TestSizeFromLParam(t *testing.T) {
	w, h := sizeFromLParam(uintptr(480)<<16 | 640)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestWheelSteps(t *testing.T) {
	assert.Equal(t, 1.0, wheelSteps(uintptr(wheelDelta)<<16))
	assert.Equal(t, -2.0, wheelSteps(uintptr(0x10000-2*wheelDelta)<<16))
}
