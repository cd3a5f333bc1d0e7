package gl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskString(t *testing.T) {
	assert.Equal(t, "none", MaskString(0))
	assert.Equal(t, "color", MaskString(ColorBufferBit))
	assert.Equal(t, "color|depth", MaskString(ColorBufferBit|DepthBufferBit))
	assert.Equal(t, "color|depth|stencil", MaskString(ColorBufferBit|DepthBufferBit|StencilBufferBit))
	assert.Equal(t, "stencil", MaskString(StencilBufferBit))
}

func TestGostring(t *testing.T) {
	b := []byte("GL 2.1\x00")
	assert.Equal(t, "GL 2.1", gostring(&b[0]))
	assert.Equal(t, "", gostring(nil))
}
