package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested key or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTargetNotFound indicates a page selector resolved to nothing.
	// Services treat this as a no-op rather than a failure.
	ErrTargetNotFound = errors.New("target not found")

	// ErrCorruptState indicates stored UI state could not be decoded.
	ErrCorruptState = errors.New("corrupt stored state")

	// ErrStoreClosed indicates the key-value store has been closed.
	ErrStoreClosed = errors.New("store closed")

	// ErrInvalidTheme indicates an unknown theme name.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidBackend indicates an unknown state storage backend.
	ErrInvalidBackend = errors.New("invalid state backend")

	// ErrUnsupportedSource indicates a page source that cannot be loaded.
	ErrUnsupportedSource = errors.New("unsupported page source")

	// ErrNoPageSource indicates no page source has been configured.
	ErrNoPageSource = errors.New("no page source configured")
)
