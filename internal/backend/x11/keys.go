package x11

import "github.com/tinyrange/glwin/internal/window"

// X modifier and keysym values from X11/X.h and X11/keysymdef.h.
const (
	shiftMask   = 1 << 0
	lockMask    = 1 << 1
	controlMask = 1 << 2
	mod1Mask    = 1 << 3
	mod4Mask    = 1 << 6

	xkEscape    = 0xff1b
	xkReturn    = 0xff0d
	xkKPEnter   = 0xff8d
	xkTab       = 0xff09
	xkBackSpace = 0xff08
	xkInsert    = 0xff63
	xkDelete    = 0xffff
	xkHome      = 0xff50
	xkLeft      = 0xff51
	xkUp        = 0xff52
	xkRight     = 0xff53
	xkDown      = 0xff54
	xkPageUp    = 0xff55
	xkPageDown  = 0xff56
	xkEnd       = 0xff57
	xkF1        = 0xffbe
	xkF12       = 0xffc9
)

var specialKeys = map[uint64]window.Key{
	xkEscape:    window.KeyEscape,
	xkReturn:    window.KeyEnter,
	xkKPEnter:   window.KeyEnter,
	xkTab:       window.KeyTab,
	xkBackSpace: window.KeyBackspace,
	xkInsert:    window.KeyInsert,
	xkDelete:    window.KeyDelete,
	xkHome:      window.KeyHome,
	xkLeft:      window.KeyLeft,
	xkUp:        window.KeyUp,
	xkRight:     window.KeyRight,
	xkDown:      window.KeyDown,
	xkPageUp:    window.KeyPageUp,
	xkPageDown:  window.KeyPageDown,
	xkEnd:       window.KeyEnd,
}

func keysymToKey(sym uint64) window.Key {
	if k, ok := specialKeys[sym]; ok {
		return k
	}
	if sym >= xkF1 && sym <= xkF12 {
		return window.KeyF1 + window.Key(sym-xkF1)
	}
	if sym >= 'A' && sym <= 'Z' {
		sym += 'a' - 'A'
	}
	if sym >= 0x20 && sym < 0x7f {
		return window.Key(sym)
	}
	return window.KeyUnknown
}

// keysymText returns the character typed by a Latin-1 keysym, if any.
func keysymText(sym uint64) string {
	if (sym >= 0x20 && sym < 0x7f) || (sym >= 0xa0 && sym <= 0xff) {
		return string(rune(sym))
	}
	return ""
}

func stateModifiers(state uint32) window.Modifiers {
	var m window.Modifiers
	if state&shiftMask != 0 {
		m |= window.ModShift
	}
	if state&lockMask != 0 {
		m |= window.ModCapsLock
	}
	if state&controlMask != 0 {
		m |= window.ModControl
	}
	if state&mod1Mask != 0 {
		m |= window.ModAlt
	}
	if state&mod4Mask != 0 {
		m |= window.ModSuper
	}
	return m
}

func xButton(n uint32) window.Button {
	switch n {
	case 1:
		return window.ButtonLeft
	case 2:
		return window.ButtonMiddle
	case 3:
		return window.ButtonRight
	}
	return window.ButtonNone
}

// scrollDelta maps the wheel pseudo-buttons 4-7 to a scroll delta.
func scrollDelta(n uint32) (dx, dy float64, ok bool) {
	switch n {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return -1, 0, true
	case 7:
		return 1, 0, true
	}
	return 0, 0, false
}
