package window

import (
	"strconv"
	"strings"
)

// Key represents a keyboard key. Printable keys use their lower-case ASCII
// code; special keys live above the ASCII range.
type Key int

const (
	KeyUnknown Key = 0
	KeySpace   Key = ' '
)

const (
	KeyEscape Key = 0x100 + iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyDown:      "down",
	KeyUp:        "up",
	KeyPageUp:    "page-up",
	KeyPageDown:  "page-down",
	KeyHome:      "home",
	KeyEnd:       "end",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if k > ' ' && k < 0x7f {
		return string(rune(k))
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// Modifiers is a bit set of held modifier keys.
type Modifiers int

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
	ModCapsLock
)

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		bit  Modifiers
		name string
	}{
		{ModShift, "shift"},
		{ModControl, "control"},
		{ModAlt, "alt"},
		{ModSuper, "super"},
		{ModCapsLock, "capslock"},
	} {
		if m&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}

// Button is a bit set of mouse buttons. A single button is reported for
// press and release; drag events report every held button.
type Button int

const (
	ButtonNone   Button = 0
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 4
	ButtonScroll Button = 8
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScroll:
		return "scroll"
	}
	return "buttons(" + strconv.Itoa(int(b)) + ")"
}
