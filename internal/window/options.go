package window

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tinyrange/glwin/internal/config"
)

// Options are the initial attributes of a window. Start from DefaultOptions;
// the zero value is not a sensible window.
type Options struct {
	Width, Height int
	X, Y          int

	// Title falls back to ProgramName when empty.
	Title string

	Visible    bool
	Decoration bool
	Fullscreen bool

	// Aspect fixes the content aspect ratio (width / height). 0 means free.
	Aspect float64

	// Color is the RGBA clear color.
	Color [4]float32

	// Share is another window whose GL context the new window shares.
	Share *Window

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Width:      256,
		Height:     256,
		Title:      ProgramName(),
		Visible:    true,
		Decoration: true,
		Color:      [4]float32{0, 0, 0, 1},
	}
}

// OptionsFromSettings maps the window section of a config file onto Options.
func OptionsFromSettings(s config.WindowSettings) Options {
	return Options{
		Width:      s.Width,
		Height:     s.Height,
		X:          s.X,
		Y:          s.Y,
		Title:      s.Title,
		Visible:    s.Visible,
		Decoration: s.Decoration,
		Fullscreen: s.Fullscreen,
		Aspect:     s.Aspect,
		Color:      s.Color,
	}.WithDefaults()
}

// WithDefaults fills the fields that must never be empty.
func (o Options) WithDefaults() Options {
	if o.Title == "" {
		o.Title = ProgramName()
	}
	if o.Width < 0 {
		o.Width = 0
	}
	if o.Height < 0 {
		o.Height = 0
	}
	if o.Aspect < 0 {
		o.Aspect = 0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ProgramName is the base name of the running executable.
func ProgramName() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		if name := filepath.Base(os.Args[0]); name != "." && name != string(filepath.Separator) {
			return name
		}
	}
	return "glwin"
}
