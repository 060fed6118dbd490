// Package matching decides whether a stream of measured patterns is close
// enough to a target, for long enough, to declare a rendezvous. The decision
// is a strict AND over a sliding window of recent observations: one
// out-of-threshold reading breaks the streak, there is no majority vote.
package matching

import (
	"github.com/kiloran/phenrv/internal/domain/pattern"
)

// Matcher is a per-session stateful object. It is not safe for concurrent
// use; run one Matcher per observation stream.
type Matcher struct {
	cfg Config

	// Fixed-capacity ring buffer over the most recent windowSize
	// within-threshold booleans. withinCount tracks how many of the
	// occupied slots are true so a full-window check is O(1).
	window      []bool
	head        int
	occupied    int
	withinCount int

	observations int
}

// New creates a matching session with an empty observation history.
func New(cfg Config) *Matcher {
	return &Matcher{
		cfg:    cfg,
		window: make([]bool, cfg.WindowSize()),
	}
}

// Config returns the session's immutable configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Observations is the total number of observations fed into the session.
func (m *Matcher) Observations() int {
	return m.observations
}

// Observe feeds one measured pattern into the session and reports whether
// the match rule currently holds: the window is full and every entry is
// within epsilon of the target. During warm-up, before windowSize
// observations exist, the result is always false.
//
// The threshold is inclusive: distance exactly equal to epsilon counts as
// within.
func (m *Matcher) Observe(measured, target pattern.Pattern) bool {
	dist := pattern.Distance(measured.Normalized(), target.Normalized())
	within := dist <= m.cfg.Epsilon()
	m.push(within)
	m.observations++
	return m.occupied == len(m.window) && m.withinCount == len(m.window)
}

// Reset clears the observation history, keeping the configuration. The next
// match cannot fire before another full window accumulates.
func (m *Matcher) Reset() {
	for i := range m.window {
		m.window[i] = false
	}
	m.head = 0
	m.occupied = 0
	m.withinCount = 0
	m.observations = 0
}

// push records one within-threshold result, evicting the oldest entry once
// the buffer is at capacity.
func (m *Matcher) push(within bool) {
	if m.occupied == len(m.window) {
		if m.window[m.head] {
			m.withinCount--
		}
	} else {
		m.occupied++
	}
	m.window[m.head] = within
	if within {
		m.withinCount++
	}
	m.head = (m.head + 1) % len(m.window)
}
