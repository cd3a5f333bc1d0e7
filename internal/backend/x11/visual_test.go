//go:build linux

package x11

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/glwin/internal/config"
)

// stubVisual replaces the GLX visual entry points for one test.
func stubVisual(t *testing.T, visual *xVisualInfo) *[]unsafe.Pointer {
	t.Helper()
	choose, free := glxChooseVisual, xFree
	t.Cleanup(func() { glxChooseVisual, xFree = choose, free })

	freed := &[]unsafe.Pointer{}
	glxChooseVisual = func(uintptr, int32, *int32) *xVisualInfo { return visual }
	xFree = func(p unsafe.Pointer) int32 {
		*freed = append(*freed, p)
		return 1
	}
	return freed
}

func TestWithVisual_FreesAfterUse(t *testing.T) {
	visual := &xVisualInfo{Depth: 24}
	freed := stubVisual(t, visual)

	err := withVisual(1, 0, config.Default(), func(v *xVisualInfo) error {
		assert.Same(t, visual, v)
		assert.Empty(t, *freed, "visual released while in use")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []unsafe.Pointer{unsafe.Pointer(visual)}, *freed)
}

func TestWithVisual_FreesOnError(t *testing.T) {
	visual := &xVisualInfo{}
	freed := stubVisual(t, visual)

	errCreate := errors.New("glXCreateContext failed")
	err := withVisual(1, 0, config.Default(), func(*xVisualInfo) error { return errCreate })
	assert.ErrorIs(t, err, errCreate)
	assert.Len(t, *freed, 1)
}

func TestWithVisual_NoVisual(t *testing.T) {
	freed := stubVisual(t, nil)

	called := false
	err := withVisual(1, 0, config.Default(), func(*xVisualInfo) error { called = true; return nil })
	assert.ErrorContains(t, err, "no visual")
	assert.False(t, called)
	assert.Empty(t, *freed)
}
