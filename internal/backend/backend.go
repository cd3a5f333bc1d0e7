// Package backend selects a window backend by name. Backends register
// themselves from an init function; importing a backend package makes it
// available to Open.
package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/window"
)

// ErrUnknownBackend is returned by Open for names nobody registered.
var ErrUnknownBackend = errors.New("unknown backend")

// Factory creates the native window described by opts with the context
// requested by cfg. opts.Share, when set, is the window to share a GL
// context with.
type Factory func(cfg *config.Configuration, opts window.Options) (window.Backend, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under name. It panics if name is
// empty, f is nil, or name is already taken.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" || f == nil {
		panic("backend: Register with empty name or nil factory")
	}
	if _, dup := factories[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	factories[name] = f
}

// Names returns the registered backend names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a backend with the named factory.
func Open(name string, cfg *config.Configuration, opts window.Options) (window.Backend, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	if cfg == nil {
		return nil, window.ErrNoConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := f(cfg, opts.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", name, err)
	}
	return b, nil
}

// NewWindow opens the named backend and wraps it in a Window.
func NewWindow(name string, cfg *config.Configuration, opts window.Options) (*window.Window, error) {
	b, err := Open(name, cfg, opts)
	if err != nil {
		return nil, err
	}
	w, err := window.New(b, cfg, opts)
	if err != nil {
		if c, ok := b.(window.Closer); ok {
			c.Close()
		}
		return nil, err
	}
	return w, nil
}
