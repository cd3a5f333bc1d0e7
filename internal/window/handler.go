package window

import "time"

// Handler receives window events. Nil callbacks are skipped.
type Handler struct {
	// A key on the keyboard was pressed.
	OnKeyPress func(symbol Key, mods Modifiers)
	// A key on the keyboard was released.
	OnKeyRelease func(symbol Key, mods Modifiers)
	// A character has been typed.
	OnCharacter func(text string)

	OnMousePress   func(x, y int, button Button)
	OnMouseRelease func(x, y int, button Button)
	// The mouse was moved with no buttons held down.
	OnMouseMotion func(x, y, dx, dy int)
	// The mouse was moved with some buttons held down.
	OnMouseDrag func(x, y, dx, dy int, buttons Button)
	// The mouse wheel was scrolled by (dx, dy).
	OnMouseScroll func(dx, dy float64)

	OnInit   func()
	OnShow   func()
	OnHide   func()
	OnClose  func()
	OnResize func(width, height int)
	// The window contents must be redrawn.
	OnDraw func(dt time.Duration)
	// The loop has time to spare.
	OnIdle func(dt time.Duration)
}

// PushHandler appends h to the handlers invoked for every event. Handlers
// run in push order.
func (w *Window) PushHandler(h *Handler) {
	if h == nil {
		return
	}
	w.handlers = append(w.handlers, h)
}

// RemoveHandler removes h, reporting whether it was present.
func (w *Window) RemoveHandler(h *Handler) bool {
	for i, x := range w.handlers {
		if x == h {
			w.handlers = append(w.handlers[:i], w.handlers[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Window) each(f func(h *Handler)) {
	// Handlers may push or remove handlers while running.
	hs := append([]*Handler(nil), w.handlers...)
	for _, h := range hs {
		f(h)
	}
}

func (w *Window) DispatchKeyPress(symbol Key, mods Modifiers) {
	w.each(func(h *Handler) {
		if h.OnKeyPress != nil {
			h.OnKeyPress(symbol, mods)
		}
	})
}

func (w *Window) DispatchKeyRelease(symbol Key, mods Modifiers) {
	w.each(func(h *Handler) {
		if h.OnKeyRelease != nil {
			h.OnKeyRelease(symbol, mods)
		}
	})
}

func (w *Window) DispatchCharacter(text string) {
	if text == "" {
		return
	}
	w.each(func(h *Handler) {
		if h.OnCharacter != nil {
			h.OnCharacter(text)
		}
	})
}

func (w *Window) DispatchMousePress(x, y int, button Button) {
	w.mouseX, w.mouseY = x, y
	w.button |= button
	w.each(func(h *Handler) {
		if h.OnMousePress != nil {
			h.OnMousePress(x, y, button)
		}
	})
}

func (w *Window) DispatchMouseRelease(x, y int, button Button) {
	w.mouseX, w.mouseY = x, y
	w.button &^= button
	w.each(func(h *Handler) {
		if h.OnMouseRelease != nil {
			h.OnMouseRelease(x, y, button)
		}
	})
}

// DispatchMouseMotion reports a pointer move to (x, y). The delta is taken
// from the previous known position; held buttons turn it into a drag.
func (w *Window) DispatchMouseMotion(x, y, dx, dy int) {
	w.mouseX, w.mouseY = x, y
	buttons := w.button
	w.each(func(h *Handler) {
		if buttons != ButtonNone {
			if h.OnMouseDrag != nil {
				h.OnMouseDrag(x, y, dx, dy, buttons)
			}
			return
		}
		if h.OnMouseMotion != nil {
			h.OnMouseMotion(x, y, dx, dy)
		}
	})
}

// MoveMouse is DispatchMouseMotion with the delta computed from the last
// known pointer position.
func (w *Window) MoveMouse(x, y int) {
	w.DispatchMouseMotion(x, y, x-w.mouseX, y-w.mouseY)
}

func (w *Window) DispatchMouseScroll(dx, dy float64) {
	w.each(func(h *Handler) {
		if h.OnMouseScroll != nil {
			h.OnMouseScroll(dx, dy)
		}
	})
}

func (w *Window) DispatchInit() {
	w.each(func(h *Handler) {
		if h.OnInit != nil {
			h.OnInit()
		}
	})
}

func (w *Window) DispatchShow() {
	w.visible = true
	w.each(func(h *Handler) {
		if h.OnShow != nil {
			h.OnShow()
		}
	})
}

func (w *Window) DispatchHide() {
	w.visible = false
	w.each(func(h *Handler) {
		if h.OnHide != nil {
			h.OnHide()
		}
	})
}

// DispatchClose marks the window closed and notifies handlers once.
func (w *Window) DispatchClose() {
	if w.closed {
		return
	}
	w.closed = true
	w.each(func(h *Handler) {
		if h.OnClose != nil {
			h.OnClose()
		}
	})
}

func (w *Window) DispatchResize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.width, w.height = width, height
	w.Viewport.Resize(width, height)
	w.viewportDirty = true
	w.each(func(h *Handler) {
		if h.OnResize != nil {
			h.OnResize(width, height)
		}
	})
}

func (w *Window) DispatchDraw(dt time.Duration) {
	w.each(func(h *Handler) {
		if h.OnDraw != nil {
			h.OnDraw(dt)
		}
	})
}

func (w *Window) DispatchIdle(dt time.Duration) {
	w.each(func(h *Handler) {
		if h.OnIdle != nil {
			h.OnIdle(dt)
		}
	})
}
