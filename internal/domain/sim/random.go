package sim

import (
	"math/rand"

	"github.com/kiloran/phenrv/internal/domain/pattern"
)

// trialSeedMul decorrelates per-trial seeds drawn from one run seed
// (splitmix64 increment). Trials are pure functions of (run seed, index),
// which is what makes the worker fan-out order-independent.
const trialSeedMul = 0x9E3779B97F4A7C15

// trialRand returns the dedicated generator for one trial index.
func trialRand(seed int64, trial int) *rand.Rand {
	s := int64(uint64(seed) + uint64(trial+1)*trialSeedMul)
	return rand.New(rand.NewSource(s)) //nolint:gosec // statistical sampling, no secret material
}

// randomPattern draws one pattern with every axis sampled uniformly and
// independently over its declared range. Uniform independent axes are a
// modeling simplification, not a claim about real sensor distributions.
func randomPattern(rng *rand.Rand) pattern.Pattern {
	var vals [pattern.AxisCount]float64
	for _, a := range pattern.Axes() {
		r := a.Range()
		vals[a] = r.Min + rng.Float64()*r.Span()
	}
	return pattern.FromValues(vals)
}
