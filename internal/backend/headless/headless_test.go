package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyrange/glwin/internal/window"
)

func TestCapabilities(t *testing.T) {
	b := New()
	assert.True(t, window.Supports(b, window.OpPoll))
	for _, op := range []window.Op{window.OpShow, window.OpClose, window.OpSetTitle, window.OpSwap, window.OpActivate} {
		assert.False(t, window.Supports(b, op), op)
	}
	assert.True(t, b.Poll(nil))
}
