package glfw

// framebufferScale divides the framebuffer width by the window width. A
// minimized window reports zero sizes and keeps a scale of 1.
func framebufferScale(framebufferWidth, windowWidth int) float32 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	return float32(framebufferWidth) / float32(windowWidth)
}
