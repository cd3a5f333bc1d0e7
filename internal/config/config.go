// Package config holds the OpenGL context configuration and the YAML
// document that drives the demo application.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Profile selects the OpenGL context profile.
type Profile string

const (
	ProfileNone          Profile = "none"
	ProfileCore          Profile = "core"
	ProfileCompatibility Profile = "compatibility"
)

// Configuration describes the framebuffer and context a backend should
// request. A window consults it once, at construction.
type Configuration struct {
	RedSize      int     `yaml:"red_size"`
	GreenSize    int     `yaml:"green_size"`
	BlueSize     int     `yaml:"blue_size"`
	AlphaSize    int     `yaml:"alpha_size"`
	DepthSize    int     `yaml:"depth_size"`
	StencilSize  int     `yaml:"stencil_size"`
	DoubleBuffer bool    `yaml:"double_buffer"`
	Samples      int     `yaml:"samples"`
	SRGB         bool    `yaml:"srgb"`
	MajorVersion int     `yaml:"major_version"`
	MinorVersion int     `yaml:"minor_version"`
	Profile      Profile `yaml:"profile"`
}

// Default returns an RGBA8 double-buffered configuration with a 24-bit depth
// buffer and an 8-bit stencil buffer on a GL 2.1 context.
func Default() *Configuration {
	return &Configuration{
		RedSize:      8,
		GreenSize:    8,
		BlueSize:     8,
		AlphaSize:    8,
		DepthSize:    24,
		StencilSize:  8,
		DoubleBuffer: true,
		Samples:      0,
		MajorVersion: 2,
		MinorVersion: 1,
		Profile:      ProfileNone,
	}
}

func (c *Configuration) Validate() error {
	sizes := []struct {
		name string
		v    int
	}{
		{"red_size", c.RedSize},
		{"green_size", c.GreenSize},
		{"blue_size", c.BlueSize},
		{"alpha_size", c.AlphaSize},
		{"depth_size", c.DepthSize},
		{"stencil_size", c.StencilSize},
		{"samples", c.Samples},
	}
	for _, s := range sizes {
		if s.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalid, s.name, s.v)
		}
	}
	if c.MajorVersion < 1 || c.MinorVersion < 0 {
		return fmt.Errorf("%w: bad GL version %d.%d", ErrInvalid, c.MajorVersion, c.MinorVersion)
	}
	switch c.Profile {
	case ProfileNone, ProfileCompatibility:
	case ProfileCore:
		if c.MajorVersion < 3 || (c.MajorVersion == 3 && c.MinorVersion < 2) {
			return fmt.Errorf("%w: core profile requires GL 3.2 or later, got %d.%d", ErrInvalid, c.MajorVersion, c.MinorVersion)
		}
	default:
		return fmt.Errorf("%w: unknown profile %q", ErrInvalid, c.Profile)
	}
	return nil
}

// Version returns the requested context version as "major.minor".
func (c *Configuration) Version() string {
	return fmt.Sprintf("%d.%d", c.MajorVersion, c.MinorVersion)
}

// WindowSettings are the initial window attributes read from a config file.
type WindowSettings struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	X          int        `yaml:"x"`
	Y          int        `yaml:"y"`
	Title      string     `yaml:"title"`
	Visible    bool       `yaml:"visible"`
	Decoration bool       `yaml:"decoration"`
	Fullscreen bool       `yaml:"fullscreen"`
	Aspect     float64    `yaml:"aspect"`
	Color      [4]float32 `yaml:"color,flow"`
}

// RunSettings control the application loop.
type RunSettings struct {
	Framerate int           `yaml:"framerate"`
	Duration  time.Duration `yaml:"duration"`
}

// File is the top-level YAML document.
type File struct {
	Backend string         `yaml:"backend"`
	Window  WindowSettings `yaml:"window"`
	GL      Configuration  `yaml:"gl"`
	Run     RunSettings    `yaml:"run"`
}

// DefaultFile returns the document used when no config file is given.
func DefaultFile() *File {
	return &File{
		Backend: "glfw",
		Window: WindowSettings{
			Width:      256,
			Height:     256,
			Visible:    true,
			Decoration: true,
			Color:      [4]float32{0, 0, 0, 1},
		},
		GL:  *Default(),
		Run: RunSettings{Framerate: 60},
	}
}

func (f *File) Validate() error {
	if f.Backend == "" {
		return fmt.Errorf("%w: backend must be set", ErrInvalid)
	}
	if f.Window.Width < 0 || f.Window.Height < 0 {
		return fmt.Errorf("%w: window size must be >= 0, got %dx%d", ErrInvalid, f.Window.Width, f.Window.Height)
	}
	if f.Window.Aspect < 0 {
		return fmt.Errorf("%w: aspect must be >= 0, got %g", ErrInvalid, f.Window.Aspect)
	}
	for i, c := range f.Window.Color {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: color[%d] must be in [0,1], got %g", ErrInvalid, i, c)
		}
	}
	if f.Run.Framerate < 0 {
		return fmt.Errorf("%w: framerate must be >= 0, got %d", ErrInvalid, f.Run.Framerate)
	}
	if f.Run.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0, got %s", ErrInvalid, f.Run.Duration)
	}
	if err := f.GL.Validate(); err != nil {
		return fmt.Errorf("gl: %w", err)
	}
	return nil
}
