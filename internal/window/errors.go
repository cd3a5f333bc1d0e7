package window

import "errors"

var (
	// ErrNoBackend is returned by New when no backend is supplied.
	ErrNoBackend = errors.New("window: no backend")

	// ErrNoConfig is returned by New when no GL configuration is supplied.
	ErrNoConfig = errors.New("window: no GL configuration")

	// ErrClosed is returned when registering work on a closed window.
	ErrClosed = errors.New("window: closed")

	// ErrNegativeDelay is returned by RegisterTimer for delays below zero.
	ErrNegativeDelay = errors.New("window: negative timer delay")
)
