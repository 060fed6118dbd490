package token

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidFormat reports malformed token material: wrong byte length,
	// odd-length hex, or non-hex characters.
	ErrInvalidFormat = errors.New("invalid token format")
)
