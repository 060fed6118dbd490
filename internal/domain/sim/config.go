package sim

import (
	"fmt"
	"runtime"
)

// CollisionMode selects how the double-match estimate (two unrelated peers
// both satisfying the match rule in the same trial) is interpreted.
type CollisionMode string

const (
	// CollisionSharedTarget evaluates both random peers against the shared
	// derived target. This is the reference interpretation and the default.
	CollisionSharedTarget CollisionMode = "shared_target"

	// CollisionMutual evaluates peer A's observation stream directly against
	// peer B's measured pattern, with no derived target involved.
	CollisionMutual CollisionMode = "mutual"
)

// Config is the immutable input of a simulation run.
type Config struct {
	// NumTrials is the number of independent trials.
	NumTrials int `json:"num_trials"`

	// NumPeers is the number of random unrelated peers sampled per trial
	// for the single-match estimate.
	NumPeers int `json:"num_peers"`

	// Epsilon and WindowSize parameterize the matcher under test.
	Epsilon    float64 `json:"epsilon"`
	WindowSize int     `json:"window_size"`

	// ApplyGeoFilter scales the candidate pool by GeoFilterFactor before
	// pool-adjusted probabilities are reported, modeling that only a
	// geographically plausible subset of peers are collision candidates.
	ApplyGeoFilter  bool    `json:"apply_geo_filter"`
	GeoFilterFactor float64 `json:"geo_filter_factor"`

	// CollisionMode selects the double-match interpretation. Empty means
	// CollisionSharedTarget.
	CollisionMode CollisionMode `json:"collision_mode"`

	// Seed drives trial randomness. The same seed and config produce an
	// identical result regardless of Workers.
	Seed int64 `json:"seed"`

	// Workers bounds trial-level fan-out. Zero means one worker per CPU.
	Workers int `json:"workers,omitempty"`
}

// Validate rejects invalid configurations before any trial runs. Simulation
// never fails mid-run; this is the only failure point.
func (c Config) Validate() error {
	if c.NumTrials < 1 {
		return fmt.Errorf("%w: num_trials must be >= 1, got %d", ErrInvalidConfig, c.NumTrials)
	}
	if c.NumPeers < 1 {
		return fmt.Errorf("%w: num_peers must be >= 1, got %d", ErrInvalidConfig, c.NumPeers)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be >= 0, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidConfig, c.WindowSize)
	}
	if c.ApplyGeoFilter && (c.GeoFilterFactor < 0 || c.GeoFilterFactor > 1) {
		return fmt.Errorf("%w: geo_filter_factor must be in [0, 1], got %v", ErrInvalidConfig, c.GeoFilterFactor)
	}
	switch c.CollisionMode {
	case "", CollisionSharedTarget, CollisionMutual:
	default:
		return fmt.Errorf("%w: unknown collision_mode %q", ErrInvalidConfig, c.CollisionMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// collisionMode resolves the default.
func (c Config) collisionMode() CollisionMode {
	if c.CollisionMode == "" {
		return CollisionSharedTarget
	}
	return c.CollisionMode
}

// workers resolves the default fan-out.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
