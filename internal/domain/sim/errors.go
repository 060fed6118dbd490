package sim

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidConfig reports a rejected simulation configuration. All
	// configuration problems surface here, before the first trial runs.
	ErrInvalidConfig = errors.New("invalid simulation config")
)
