package sim

// Result is the immutable output record of one simulation run. Counts are
// reported alongside the derived ratios so callers can judge estimator
// precision (standard error shrinks with 1/sqrt(trials)).
type Result struct {
	// RunID identifies the run in logs and emitted documents.
	RunID string `json:"run_id"`

	// Seed and CollisionMode echo the effective inputs so the document is
	// self-describing and the run reproducible.
	Seed          int64         `json:"seed"`
	CollisionMode CollisionMode `json:"collision_mode"`

	TotalTrials      int `json:"total_trials"`
	TotalPeerSamples int `json:"total_peer_samples"`

	// SingleMatchCount counts random unrelated peers that falsely satisfied
	// the match rule against the derived target.
	SingleMatchCount int `json:"single_match_count"`

	// DoubleMatchCount counts trials whose sampled peer pair satisfied the
	// collision rule under the configured mode.
	DoubleMatchCount int `json:"double_match_count"`

	SingleMatchProbability float64 `json:"single_match_probability"`
	DoubleMatchProbability float64 `json:"double_match_probability"`

	// EffectivePeerCount is the candidate pool after the geographic filter.
	EffectivePeerCount float64 `json:"effective_peer_count"`

	// ExpectedMatchesInPool is SingleMatchProbability * EffectivePeerCount.
	ExpectedMatchesInPool float64 `json:"expected_matches_in_pool"`

	// PoolMatchProbability is the chance at least one peer in the effective
	// pool falsely matches: 1 - (1-p)^n.
	PoolMatchProbability float64 `json:"pool_match_probability"`

	// ElapsedMS is wall-clock run duration in milliseconds.
	ElapsedMS float64 `json:"elapsed_ms"`
}
