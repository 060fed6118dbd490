// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment sources over defaults in Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration for the phenrv CLI. Fields mirror
// the simulate/match flag surface so any value can also come from a YAML
// file or the environment.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr, when non-empty, serves Prometheus metrics during long
	// simulation runs, e.g. ":9091".
	MetricsAddr string `koanf:"metrics_addr"`

	// Epsilon is the inclusive normalized-distance threshold.
	Epsilon float64 `koanf:"epsilon"`

	// WindowSize is the number of consecutive within-threshold
	// observations required to declare a match.
	WindowSize int `koanf:"window_size"`

	// NumTrials and NumPeers size the Monte-Carlo simulation.
	NumTrials int `koanf:"num_trials"`
	NumPeers  int `koanf:"num_peers"`

	// ApplyGeoFilter and GeoFilterFactor scale the effective candidate
	// pool for pool-adjusted probabilities; the factor lives in [0,1].
	ApplyGeoFilter  bool    `koanf:"apply_geo_filter"`
	GeoFilterFactor float64 `koanf:"geo_filter_factor"`

	// CollisionMode selects the double-match interpretation:
	// shared_target or mutual.
	CollisionMode string `koanf:"collision_mode"`

	// Seed drives simulation randomness; equal seeds reproduce runs.
	Seed int64 `koanf:"seed"`

	// Workers bounds simulation fan-out; zero means one per CPU.
	Workers int `koanf:"workers"`

	// Salt is the default oracle state for derivation when no -salt flag
	// is given.
	Salt string `koanf:"salt"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		MetricsAddr:     "",
		Epsilon:         0.15,
		WindowSize:      3,
		NumTrials:       10_000,
		NumPeers:        100,
		ApplyGeoFilter:  false,
		GeoFilterFactor: 1.0,
		CollisionMode:   "shared_target",
		Seed:            1,
		Workers:         0,
		Salt:            "oracle-state",
	}
}
