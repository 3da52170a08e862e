package watch

import "errors"

// Package-level error definitions for watcher construction.
var (
	ErrNilSource       = errors.New("watch: code source cannot be nil")
	ErrNilRenderer     = errors.New("watch: renderer cannot be nil")
	ErrNilLogger       = errors.New("watch: logger cannot be nil")
	ErrNilClock        = errors.New("watch: clock cannot be nil")
	ErrInvalidInterval = errors.New("watch: poll interval must be positive")
)
