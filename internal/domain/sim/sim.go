// Package sim estimates false-rendezvous and collision probabilities by
// Monte-Carlo trial. Each trial is an independent pure function of the run
// seed and trial index, so trials fan out across workers without changing
// per-trial semantics or the aggregate result.
package sim

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kiloran/phenrv/internal/domain/derive"
	"github.com/kiloran/phenrv/internal/domain/matching"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/internal/domain/token"
	"github.com/kiloran/phenrv/pkg/metrics"
)

// outcome is the tally of one trial (or a worker's partial sum of trials).
type outcome struct {
	peerSamples   int
	singleMatches int
	doubleMatches int
}

func (o *outcome) add(other outcome) {
	o.peerSamples += other.peerSamples
	o.singleMatches += other.singleMatches
	o.doubleMatches += other.doubleMatches
}

// Run executes cfg.NumTrials independent trials against the target derived
// from (tok, salt) and aggregates the estimates. The target is held constant
// across trials, modeling one rendezvous attempt. The only failure modes are
// an invalid configuration and context cancellation; trials themselves
// cannot fail.
func Run(ctx context.Context, cfg Config, tok token.Token, salt []byte) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	target := derive.FromToken(tok, salt)
	mode := cfg.collisionMode()

	workers := cfg.workers()
	if workers > cfg.NumTrials {
		workers = cfg.NumTrials
	}

	partials := make([]outcome, workers)
	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			for {
				trial := int(next.Add(1)) - 1
				if trial >= cfg.NumTrials || ctx.Err() != nil {
					return
				}
				partials[slot].add(runTrial(cfg, mode, target, trial))
			}
		}(w)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var total outcome
	for i := range partials {
		total.add(partials[i])
	}

	singleProb := float64(total.singleMatches) / float64(total.peerSamples)
	doubleProb := float64(total.doubleMatches) / float64(cfg.NumTrials)

	effectivePeers := float64(cfg.NumPeers)
	if cfg.ApplyGeoFilter {
		effectivePeers = math.Max(effectivePeers*cfg.GeoFilterFactor, 1)
	}

	elapsed := time.Since(start)
	metrics.AddSimulationTrials(cfg.NumTrials)
	metrics.AddPeerSamples(total.peerSamples)
	metrics.AddSingleMatches(total.singleMatches)
	metrics.AddDoubleMatches(total.doubleMatches)
	metrics.RecordSimulationDuration(elapsed.Seconds())

	return Result{
		RunID:                  uuid.New().String(),
		Seed:                   cfg.Seed,
		CollisionMode:          mode,
		TotalTrials:            cfg.NumTrials,
		TotalPeerSamples:       total.peerSamples,
		SingleMatchCount:       total.singleMatches,
		DoubleMatchCount:       total.doubleMatches,
		SingleMatchProbability: singleProb,
		DoubleMatchProbability: doubleProb,
		EffectivePeerCount:     effectivePeers,
		ExpectedMatchesInPool:  singleProb * effectivePeers,
		PoolMatchProbability:   1 - math.Pow(1-singleProb, effectivePeers),
		ElapsedMS:              float64(elapsed) / float64(time.Millisecond),
	}, nil
}

// runTrial evaluates one trial: NumPeers independent single-match attempts
// against the shared target, plus one peer pair for the collision estimate.
// Deterministic given (cfg.Seed, trial).
func runTrial(cfg Config, mode CollisionMode, target pattern.Pattern, trial int) outcome {
	rng := trialRand(cfg.Seed, trial)
	mcfg, _ := matching.NewConfig(cfg.Epsilon, cfg.WindowSize)

	var o outcome
	for p := 0; p < cfg.NumPeers; p++ {
		peer := randomPattern(rng)
		if sustainedMatch(mcfg, peer, target) {
			o.singleMatches++
		}
		o.peerSamples++
	}

	peerA := randomPattern(rng)
	peerB := randomPattern(rng)
	switch mode {
	case CollisionMutual:
		// No derived target involved: A's stream observed against B.
		// The distance metric is symmetric, so one direction suffices.
		if sustainedMatch(mcfg, peerA, peerB) {
			o.doubleMatches++
		}
	default:
		if sustainedMatch(mcfg, peerA, target) && sustainedMatch(mcfg, peerB, target) {
			o.doubleMatches++
		}
	}
	return o
}

// sustainedMatch models one peer holding its measured pattern for a full
// observation window: the pattern is observed windowSize consecutive times
// through a fresh matcher, so the trial exercises the same warm-up rule a
// live session would.
func sustainedMatch(cfg matching.Config, measured, target pattern.Pattern) bool {
	m := matching.New(cfg)
	for i := 0; i < cfg.WindowSize(); i++ {
		if m.Observe(measured, target) {
			return true
		}
	}
	return false
}
