package starfield

import "errors"

var (
	// ErrInvalidFrames indicates a headless run was asked for no frames.
	ErrInvalidFrames = errors.New("starfield: frame count must be positive")

	// ErrInvalidRuns indicates an ensemble with a negative run count.
	ErrInvalidRuns = errors.New("starfield: run count must not be negative")

	// ErrUnknownMode indicates an input mode name that has no policy.
	ErrUnknownMode = errors.New("starfield: unknown input mode")
)
