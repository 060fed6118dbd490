package matching

import "fmt"

// Config holds the two matching parameters. It is immutable once built;
// invalid values are rejected at construction, never mid-session.
type Config struct {
	epsilon    float64
	windowSize int
}

// NewConfig validates and builds a matching configuration. Epsilon must be
// non-negative (zero demands exact post-normalization equality) and the
// window must hold at least one observation.
func NewConfig(epsilon float64, windowSize int) (Config, error) {
	if epsilon < 0 {
		return Config{}, fmt.Errorf("%w: epsilon must be >= 0, got %v", ErrInvalidConfig, epsilon)
	}
	if windowSize < 1 {
		return Config{}, fmt.Errorf("%w: window size must be >= 1, got %d", ErrInvalidConfig, windowSize)
	}
	return Config{epsilon: epsilon, windowSize: windowSize}, nil
}

// Epsilon is the inclusive normalized-distance threshold.
func (c Config) Epsilon() float64 {
	return c.epsilon
}

// WindowSize is the number of consecutive within-threshold observations
// required to declare a match.
func (c Config) WindowSize() int {
	return c.windowSize
}
