package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PHENRV_CONFIG is set
//  3. env (prefix PHENRV_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PHENRV_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PHENRV_EPSILON, PHENRV_NUM_TRIALS, ...
	// Map env keys like PHENRV_NUM_TRIALS -> num_trials (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("PHENRV_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "phenrv_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate catches values no simulation or matching session could accept,
// so failures surface at load time rather than at first use.
func (c *Config) validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be >= 0", ErrInvalidConfig)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: window_size must be >= 1", ErrInvalidConfig)
	}
	if c.NumTrials < 1 {
		return fmt.Errorf("%w: num_trials must be >= 1", ErrInvalidConfig)
	}
	if c.NumPeers < 1 {
		return fmt.Errorf("%w: num_peers must be >= 1", ErrInvalidConfig)
	}
	if c.GeoFilterFactor < 0 || c.GeoFilterFactor > 1 {
		return fmt.Errorf("%w: geo_filter_factor must be in [0, 1]", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0", ErrInvalidConfig)
	}
	return nil
}
