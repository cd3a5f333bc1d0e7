package window

// Viewport tracks the content area of a window and an optional fixed aspect
// ratio (width / height). An aspect of 0 lets the content fill the area.
type Viewport struct {
	width, height int
	aspect        float64
}

func NewViewport(width, height int, aspect float64) Viewport {
	if aspect < 0 {
		aspect = 0
	}
	return Viewport{width: width, height: height, aspect: aspect}
}

func (v *Viewport) Resize(width, height int) {
	v.width, v.height = width, height
}

func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

func (v *Viewport) Aspect() float64 {
	return v.aspect
}

// Extent returns the largest rectangle with the configured aspect that fits
// the content area, centered. Without an aspect it is the whole area.
func (v *Viewport) Extent() (x, y, width, height int) {
	if v.aspect == 0 || v.width == 0 || v.height == 0 {
		return 0, 0, v.width, v.height
	}
	width, height = v.width, v.height
	if float64(v.width)/float64(v.height) > v.aspect {
		width = int(float64(v.height)*v.aspect + 0.5)
	} else {
		height = int(float64(v.width)/v.aspect + 0.5)
	}
	return (v.width - width) / 2, (v.height - height) / 2, width, height
}
