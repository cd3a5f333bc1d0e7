package cocoa

import (
	"unicode"
	"unicode/utf8"

	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/window"
)

// NSEventType values.
const (
	evLeftMouseDown     = 1
	evLeftMouseUp       = 2
	evRightMouseDown    = 3
	evRightMouseUp      = 4
	evMouseMoved        = 5
	evLeftMouseDragged  = 6
	evRightMouseDragged = 7
	evKeyDown           = 10
	evKeyUp             = 11
	evScrollWheel       = 22
	evOtherMouseDown    = 25
	evOtherMouseUp      = 26
	evOtherMouseDragged = 27
)

// NSEventModifierFlags.
const (
	flagCapsLock = 1 << 16
	flagShift    = 1 << 17
	flagControl  = 1 << 18
	flagOption   = 1 << 19
	flagCommand  = 1 << 20
)

// NSOpenGLPixelFormatAttribute values.
const (
	pfaDoubleBuffer  = 5
	pfaColorSize     = 8
	pfaAlphaSize     = 11
	pfaDepthSize     = 12
	pfaStencilSize   = 13
	pfaSampleBuffers = 55
	pfaSamples       = 56
	pfaAccelerated   = 73
	pfaOpenGLProfile = 99
	profileLegacy    = 0x1000
	profile32Core    = 0x3200
	profile41Core    = 0x4100
	pfaNone          = 0
)

// Virtual key codes from HIToolbox/Events.h.
var specialKeys = map[uint16]window.Key{
	0x24: window.KeyEnter,
	0x4C: window.KeyEnter,
	0x30: window.KeyTab,
	0x31: window.KeySpace,
	0x33: window.KeyBackspace,
	0x35: window.KeyEscape,
	0x72: window.KeyInsert,
	0x75: window.KeyDelete,
	0x73: window.KeyHome,
	0x77: window.KeyEnd,
	0x74: window.KeyPageUp,
	0x79: window.KeyPageDown,
	0x7B: window.KeyLeft,
	0x7C: window.KeyRight,
	0x7D: window.KeyDown,
	0x7E: window.KeyUp,
	0x7A: window.KeyF1,
	0x78: window.KeyF2,
	0x63: window.KeyF3,
	0x76: window.KeyF4,
	0x60: window.KeyF5,
	0x61: window.KeyF6,
	0x62: window.KeyF7,
	0x64: window.KeyF8,
	0x65: window.KeyF9,
	0x6D: window.KeyF10,
	0x67: window.KeyF11,
	0x6F: window.KeyF12,
}

// eventKey maps a key code, falling back to the unmodified character for
// printable keys.
func eventKey(code uint16, chars string) window.Key {
	if k, ok := specialKeys[code]; ok {
		return k
	}
	r, _ := utf8.DecodeRuneInString(chars)
	r = unicode.ToLower(r)
	if r > 0x20 && r < 0x7f {
		return window.Key(r)
	}
	return window.KeyUnknown
}

func flagsModifiers(flags uint) window.Modifiers {
	var m window.Modifiers
	if flags&flagShift != 0 {
		m |= window.ModShift
	}
	if flags&flagControl != 0 {
		m |= window.ModControl
	}
	if flags&flagOption != 0 {
		m |= window.ModAlt
	}
	if flags&flagCommand != 0 {
		m |= window.ModSuper
	}
	if flags&flagCapsLock != 0 {
		m |= window.ModCapsLock
	}
	return m
}

func eventButton(typ uint) window.Button {
	switch typ {
	case evLeftMouseDown, evLeftMouseUp, evLeftMouseDragged:
		return window.ButtonLeft
	case evRightMouseDown, evRightMouseUp, evRightMouseDragged:
		return window.ButtonRight
	case evOtherMouseDown, evOtherMouseUp, evOtherMouseDragged:
		return window.ButtonMiddle
	}
	return window.ButtonNone
}

// typedText drops control characters and the private-use range AppKit uses
// for function keys.
func typedText(chars string) string {
	out := make([]rune, 0, len(chars))
	for _, r := range chars {
		if r < 0x20 || r == 0x7f || (r >= 0xF700 && r <= 0xF8FF) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func glProfile(cfg *config.Configuration) uint32 {
	if cfg.Profile != config.ProfileCore {
		return profileLegacy
	}
	if cfg.MajorVersion > 4 || (cfg.MajorVersion == 4 && cfg.MinorVersion >= 1) {
		return profile41Core
	}
	return profile32Core
}

func pixelFormatAttrs(cfg *config.Configuration) []uint32 {
	attrs := []uint32{
		pfaAccelerated,
		pfaColorSize, uint32(cfg.RedSize + cfg.GreenSize + cfg.BlueSize),
		pfaAlphaSize, uint32(cfg.AlphaSize),
		pfaDepthSize, uint32(cfg.DepthSize),
		pfaStencilSize, uint32(cfg.StencilSize),
		pfaOpenGLProfile, glProfile(cfg),
	}
	if cfg.DoubleBuffer {
		attrs = append(attrs, pfaDoubleBuffer)
	}
	if cfg.Samples > 0 {
		attrs = append(attrs, pfaSampleBuffers, 1, pfaSamples, uint32(cfg.Samples))
	}
	return append(attrs, pfaNone)
}
