// Package service wires the rendezvous core together for the CLI layer:
// derivation, matching sessions, and simulation runs behind one façade, so
// callers never touch HMAC or quantization internals.
package service

import (
	"context"

	"github.com/kiloran/phenrv/internal/domain/derive"
	"github.com/kiloran/phenrv/internal/domain/matching"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/internal/domain/sim"
	"github.com/kiloran/phenrv/internal/domain/token"
	"github.com/kiloran/phenrv/pkg/logger"
)

// Default matching parameters used when no option overrides them.
const (
	defaultEpsilon    = 0.15
	defaultWindowSize = 3
)

// Service implements the rendezvous operations for the CLI.
type Service struct {
	matchingCfg matching.Config
	log         logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service) error

// WithMatching sets the default epsilon and window size for sessions.
func WithMatching(epsilon float64, windowSize int) Option {
	return func(s *Service) error {
		cfg, err := matching.NewConfig(epsilon, windowSize)
		if err != nil {
			return err
		}
		s.matchingCfg = cfg
		return nil
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) error {
		if log != nil {
			s.log = log
		}
		return nil
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) (*Service, error) {
	cfg, _ := matching.NewConfig(defaultEpsilon, defaultWindowSize)
	s := &Service{matchingCfg: cfg}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MatchingConfig returns the service's default matching parameters.
func (s *Service) MatchingConfig() matching.Config {
	return s.matchingCfg
}

// DeriveTarget computes the target pattern for (tok, salt) under the
// current protocol mapping. The token never reaches the log fields.
func (s *Service) DeriveTarget(ctx context.Context, tok token.Token, salt []byte) pattern.Pattern {
	target := derive.FromToken(tok, salt)
	if s.log != nil {
		s.log.Debug(ctx, "derived target pattern",
			logger.Int("mapping_version", derive.V1.Version()),
			logger.Int("salt_bytes", len(salt)))
	}
	return target
}

// RunSimulation validates cfg and executes a Monte-Carlo run against the
// target derived from (tok, salt).
func (s *Service) RunSimulation(ctx context.Context, cfg sim.Config, tok token.Token, salt []byte) (sim.Result, error) {
	result, err := sim.Run(ctx, cfg, tok, salt)
	if err != nil {
		return sim.Result{}, err
	}
	if s.log != nil {
		s.log.Info(ctx, "simulation complete",
			logger.String("run_id", result.RunID),
			logger.Int("trials", result.TotalTrials),
			logger.Int("peer_samples", result.TotalPeerSamples),
			logger.Float64("single_match_probability", result.SingleMatchProbability),
			logger.Float64("double_match_probability", result.DoubleMatchProbability),
			logger.Float64("elapsed_ms", result.ElapsedMS))
	}
	return result, nil
}
