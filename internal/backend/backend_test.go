package backend_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/glwin/internal/backend"
	"github.com/tinyrange/glwin/internal/backend/headless"
	"github.com/tinyrange/glwin/internal/config"
	"github.com/tinyrange/glwin/internal/gl"
	"github.com/tinyrange/glwin/internal/window"
)

type closingBackend struct{ closed bool }

func (b *closingBackend) Name() string { return "closing" }
func (b *closingBackend) Close() error { b.closed = true; return nil }

func (b *closingBackend) GL() (gl.OpenGL, error) { return nil, errNoContext }

var (
	errFactory   = errors.New("no display")
	errNoContext = errors.New("no context")

	lastClosing *closingBackend
)

func init() {
	backend.Register("failing", func(*config.Configuration, window.Options) (window.Backend, error) {
		return nil, errFactory
	})
	backend.Register("closing", func(*config.Configuration, window.Options) (window.Backend, error) {
		lastClosing = &closingBackend{}
		return lastClosing, nil
	})
}

func TestNames(t *testing.T) {
	names := backend.Names()
	assert.Contains(t, names, headless.Name)
	assert.Contains(t, names, "failing")
	assert.IsIncreasing(t, names)
}

func TestOpen_Unknown(t *testing.T) {
	_, err := backend.Open("nope", config.Default(), window.DefaultOptions())
	require.ErrorIs(t, err, backend.ErrUnknownBackend)
	assert.Contains(t, err.Error(), headless.Name)
}

func TestOpen_FactoryError(t *testing.T) {
	_, err := backend.Open("failing", config.Default(), window.DefaultOptions())
	require.ErrorIs(t, err, errFactory)
	assert.Contains(t, err.Error(), "open failing backend")
}

func TestOpen_Config(t *testing.T) {
	_, err := backend.Open(headless.Name, nil, window.DefaultOptions())
	assert.ErrorIs(t, err, window.ErrNoConfig)

	cfg := config.Default()
	cfg.DepthSize = -1
	_, err = backend.Open(headless.Name, cfg, window.DefaultOptions())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewWindow_Headless(t *testing.T) {
	w, err := backend.NewWindow(headless.Name, config.Default(), window.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, headless.Name, w.Backend().Name())
	assert.True(t, w.Poll())
	assert.False(t, window.Supports(w.Backend(), window.OpShow))
	assert.True(t, window.Supports(w.Backend(), window.OpPoll))
}

func TestNewWindow_ClosesBackendOnError(t *testing.T) {
	_, err := backend.NewWindow("closing", config.Default(), window.DefaultOptions())
	require.ErrorIs(t, err, errNoContext)
	require.NotNil(t, lastClosing)
	assert.True(t, lastClosing.closed)
}

func TestRegister_Panics(t *testing.T) {
	f := func(*config.Configuration, window.Options) (window.Backend, error) { return &closingBackend{}, nil }
	assert.Panics(t, func() { backend.Register("", f) })
	assert.Panics(t, func() { backend.Register("nil-factory", nil) })
	assert.Panics(t, func() { backend.Register(headless.Name, f) })
}
