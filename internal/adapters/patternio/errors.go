package patternio

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidFormat reports a malformed pattern document: bad JSON, an
	// unknown field, or an axis value outside its declared range.
	ErrInvalidFormat = errors.New("invalid pattern document")
)
