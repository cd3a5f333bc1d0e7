package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/tinyrange/glwin/internal/app"
	"github.com/tinyrange/glwin/internal/backend"
	_ "github.com/tinyrange/glwin/internal/backend/cocoa"
	_ "github.com/tinyrange/glwin/internal/backend/glfw"
	_ "github.com/tinyrange/glwin/internal/backend/headless"
	_ "github.com/tinyrange/glwin/internal/backend/win32"
	_ "github.com/tinyrange/glwin/internal/backend/x11"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

func init() {
	// Windowing systems and GL contexts are bound to the main thread.
	runtime.LockOSThread()
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	backendName := fs.String("backend", "", "window backend (overrides the config file)")
	duration := fs.Duration("duration", 0, "stop after this long (overrides the config file)")
	listBackends := fs.Bool("list-backends", false, "print the registered backends and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	if *listBackends {
		fmt.Println(strings.Join(backend.Names(), "\n"))
		return
	}

	file := config.DefaultFile()
	if *configPath != "" {
		var err error
		if file, err = config.Load(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *backendName != "" {
		file.Backend = *backendName
	}
	if *duration != 0 {
		file.Run.Duration = *duration
	}

	logger := slog.Default()
	opts := window.OptionsFromSettings(file.Window)
	opts.Logger = logger

	win, err := backend.NewWindow(file.Backend, &file.GL, opts)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	slog.Info("window",
		"backend", file.Backend,
		"size", fmt.Sprintf("%dx%d", win.Width(), win.Height()),
		"gl", file.GL.Version(),
		"clear", gl.MaskString(win.ClearMask()))

	if _, err := win.RegisterTimer(time.Second, func(time.Duration) {
		slog.Info("frame rate", "fps", fmt.Sprintf("%.1f", win.FPS()))
	}); err != nil {
		log.Fatalf("timer: %v", err)
	}

	win.PushHandler(&window.Handler{
		OnDraw: func(time.Duration) { win.Clear() },
		OnKeyPress: func(key window.Key, _ window.Modifiers) {
			if key == window.KeyEscape {
				if err := win.Close(); err != nil {
					slog.Warn("close", "err", err)
				}
			}
		},
		OnResize: func(width, height int) {
			slog.Debug("resize", "width", width, "height", height)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = app.Run(ctx, app.Options{
		Framerate: file.Run.Framerate,
		Duration:  file.Run.Duration,
		Logger:    logger,
	}, win)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("run loop: %v", err)
	}
}
