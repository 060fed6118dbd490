package pattern

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrOutOfRange reports an axis value outside its declared domain range
	// when strict validation is requested.
	ErrOutOfRange = errors.New("axis value out of range")
)
