// Package headless provides a backend with no native window. Every window
// operation degrades to a logged warning; the window stays open until it is
// closed from a handler or the loop stops.
package headless

import (
	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/window"
)

const Name = "headless"

func init() {
	backend.Register(Name, func(*config.Configuration, window.Options) (window.Backend, error) {
		return New(), nil
	})
}

type Backend struct{}

func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

// Poll has no events to deliver.
func (*Backend) Poll(window.Dispatcher) bool { return true }
