package server

import "errors"

var (
	// Configuration errors
	ErrMissingAddress = errors.New("server address is required")
	ErrNilFactory     = errors.New("handler factory is required")
	ErrFactoryFailed  = errors.New("handler factory failed")
	ErrNothingToWatch = errors.New("no watchable directories found")

	// Server lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
)
