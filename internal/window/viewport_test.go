package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_Extent(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		aspect       float64
		x, y, ew, eh int
	}{
		{"free", 300, 200, 0, 0, 0, 300, 200},
		{"wide area", 400, 200, 1, 100, 0, 200, 200},
		{"tall area", 200, 400, 1, 0, 100, 200, 200},
		{"exact", 160, 90, 16.0 / 9.0, 0, 0, 160, 90},
		{"empty", 0, 0, 2, 0, 0, 0, 0},
		{"negative aspect is free", 50, 60, -1, 0, 0, 50, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.w, tt.h, tt.aspect)
			x, y, ew, eh := v.Extent()
			assert.Equal(t, [4]int{tt.x, tt.y, tt.ew, tt.eh}, [4]int{x, y, ew, eh})
		})
	}
}

func TestViewport_Resize(t *testing.T) {
	v := NewViewport(10, 10, 0)
	v.Resize(30, 40)
	w, h := v.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)
	assert.Zero(t, v.Aspect())
}
