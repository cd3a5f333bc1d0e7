package cocoa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/window"
)

func TestEventKey(t *testing.T) {
	assert.Equal(t, window.KeyEscape, eventKey(0x35, "\x1b"))
	assert.Equal(t, window.KeyF5, eventKey(0x60, ""))
	assert.Equal(t, window.Key('a'), eventKey(0x00, "A"))
	assert.Equal(t, window.Key('1'), eventKey(0x12, "1"))
	assert.Equal(t, window.KeyUnknown, eventKey(0x38, ""))
}

func TestFlagsModifiers(t *testing.T) {
	assert.Equal(t, window.Modifiers(0), flagsModifiers(0))
	assert.Equal(t, window.ModShift|window.ModSuper, flagsModifiers(flagShift|flagCommand))
	assert.Equal(t, window.ModControl|window.ModAlt|window.ModCapsLock, flagsModifiers(flagControl|flagOption|flagCapsLock))
}

func TestEventButton(t *testing.T) {
	assert.Equal(t, window.ButtonLeft, eventButton(evLeftMouseDragged))
	assert.Equal(t, window.ButtonRight, eventButton(evRightMouseUp))
	assert.Equal(t, window.ButtonMiddle, eventButton(evOtherMouseDown))
	assert.Equal(t, window.ButtonNone, eventButton(evKeyDown))
}

func TestTypedText(t *testing.T) {
	assert.Equal(t, "hé", typedText("hé"))
	assert.Equal(t, "", typedText("\r"))
	assert.Equal(t, "", typedText(""))
}

func TestPixelFormatAttrs(t *testing.T) {
	cfg := config.Default()
	attrs := pixelFormatAttrs(cfg)
	require.NotEmpty(t, attrs)
	assert.Equal(t, uint32(pfaNone), attrs[len(attrs)-1])
	assert.Contains(t, attrs, uint32(pfaDoubleBuffer))
	assert.NotContains(t, attrs, uint32(pfaSampleBuffers))

	cfg.DoubleBuffer = false
	cfg.Samples = 4
	attrs = pixelFormatAttrs(cfg)
	assert.NotContains(t, attrs, uint32(pfaDoubleBuffer))
	assert.Contains(t, attrs, uint32(pfaSampleBuffers))
}

func TestGLProfile(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, uint32(profileLegacy), glProfile(cfg))

	cfg.Profile = config.ProfileCore
	cfg.MajorVersion, cfg.MinorVersion = 3, 3
	assert.Equal(t, uint32(profile32Core), glProfile(cfg))

	cfg.MajorVersion, cfg.MinorVersion = 4, 1
	assert.Equal(t, uint32(profile41Core), glProfile(cfg))
}
