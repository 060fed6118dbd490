package matching

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidConfig reports a rejected matcher configuration: negative
	// epsilon or a non-positive window size.
	ErrInvalidConfig = errors.New("invalid matching config")
)
