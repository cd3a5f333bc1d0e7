// Package app drives windows: it pumps backend events, fires timers and
// dispatches draw and idle events once per frame.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tinyrange/glwin/internal/clock"
	"github.com/tinyrange/glwin/internal/window"
)

// ErrNoWindows is returned by Run when called without windows.
var ErrNoWindows = errors.New("app: no windows to run")

type Options struct {
	// Framerate caps the loop; 0 runs as fast as possible.
	Framerate int

	// Duration stops the loop after this much time; 0 runs until every
	// window is closed.
	Duration time.Duration

	Logger *slog.Logger

	// Clock overrides the loop clock. Framerate is ignored when set.
	Clock *clock.Clock
}

// Run owns the calling goroutine until every window is closed, ctx is done
// or Duration elapses. It must run on the thread that created the windows.
func Run(ctx context.Context, opts Options, windows ...*window.Window) error {
	if len(windows) == 0 {
		return ErrNoWindows
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New(opts.Framerate)
	}

	for _, w := range windows {
		w.AttachClock(clk)
		if !window.Supports(w.Backend(), window.OpPoll) {
			name := w.Backend().Name()
			log.Warn(fmt.Sprintf("%s backend cannot %s", name, window.OpPoll.Action()), "backend", name, "op", string(window.OpPoll))
		}
		if err := activate(w); err != nil {
			return err
		}
		w.DispatchInit()
		if w.Visible() {
			if err := w.Show(); err != nil {
				return err
			}
		}
	}

	clk.Tick()
	for {
		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), closeAll(windows))
		default:
		}

		open := 0
		for _, w := range windows {
			if w.Poll() {
				open++
			}
		}
		if open == 0 {
			log.Debug("all windows closed")
			return nil
		}

		dt := clk.Tick()
		now := clk.Elapsed()
		for _, w := range windows {
			if err := frame(w, dt, now); err != nil {
				return err
			}
		}

		if opts.Duration > 0 && now >= opts.Duration {
			log.Debug("run duration elapsed", "duration", opts.Duration)
			return closeAll(windows)
		}
		clk.Wait()
	}
}

func frame(w *window.Window, dt, now time.Duration) error {
	if w.Closed() {
		return nil
	}
	w.FireTimers(now)
	if w.Closed() {
		return nil
	}
	if err := activate(w); err != nil {
		return err
	}
	// Resizes arrive during Poll, possibly while another window's context
	// is current.
	w.UpdateViewport()
	w.DispatchDraw(dt)
	if window.Supports(w.Backend(), window.OpSwap) {
		if err := w.Swap(); err != nil {
			return err
		}
	}
	w.DispatchIdle(dt)
	return nil
}

// activate makes w current when the backend can; single-context backends
// have nothing to switch.
func activate(w *window.Window) error {
	if !window.Supports(w.Backend(), window.OpActivate) {
		return nil
	}
	return w.Activate()
}

func closeAll(windows []*window.Window) error {
	var errs []error
	for _, w := range windows {
		if w.Closed() {
			continue
		}
		if window.Supports(w.Backend(), window.OpClose) {
			if err := w.Close(); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		w.DispatchClose()
	}
	return errors.Join(errs...)
}
