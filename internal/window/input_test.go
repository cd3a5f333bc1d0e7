package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "a", Key('a').String())
	assert.Equal(t, "space", KeySpace.String())
	assert.Equal(t, "escape", KeyEscape.String())
	assert.Equal(t, "f1", KeyF1.String())
	assert.Equal(t, "f12", KeyF12.String())
	assert.Equal(t, "key(9999)", Key(9999).String())
}

func TestModifiersString(t *testing.T) {
	assert.Equal(t, "none", Modifiers(0).String())
	assert.Equal(t, "shift+alt", (ModShift | ModAlt).String())
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, "none", ButtonNone.String())
	assert.Equal(t, "left", ButtonLeft.String())
	assert.Equal(t, "buttons(5)", (ButtonLeft | ButtonRight).String())
}
