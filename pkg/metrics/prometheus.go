// Package metrics provides Prometheus metrics for the rendezvous core:
// matcher observation counters and Monte-Carlo simulation tallies. Metrics
// are registered on a custom registry so the CLI can expose them without
// the default Go collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the metric instruments for one registry.
type Manager struct {
	namespace string
	enabled   bool
	buckets   []float64
	registry  prometheus.Registerer

	// Matcher metrics.
	observationsTotal  prometheus.Counter
	withinEpsilonTotal prometheus.Counter
	matchesDeclared    prometheus.Counter
	sessionsStarted    prometheus.Counter

	// Simulation metrics.
	simTrialsTotal      prometheus.Counter
	simPeerSamplesTotal prometheus.Counter
	simSingleMatches    prometheus.Counter
	simDoubleMatches    prometheus.Counter
	simRunDuration      prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "phenrv",
		enabled:   true,
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.observationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "observations_total",
		Help:      "Total pattern observations fed into matcher sessions.",
	})
	m.withinEpsilonTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "within_epsilon_total",
		Help:      "Observations whose normalized distance was within epsilon.",
	})
	m.matchesDeclared = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "matches_declared_total",
		Help:      "Observations at which a full-window match was declared.",
	})
	m.sessionsStarted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "sessions_total",
		Help:      "Matching sessions created.",
	})

	m.simTrialsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sim",
		Name:      "trials_total",
		Help:      "Monte-Carlo trials executed.",
	})
	m.simPeerSamplesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sim",
		Name:      "peer_samples_total",
		Help:      "Random peer patterns sampled for the single-match estimate.",
	})
	m.simSingleMatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sim",
		Name:      "single_matches_total",
		Help:      "Random peers that falsely matched the derived target.",
	})
	m.simDoubleMatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sim",
		Name:      "double_matches_total",
		Help:      "Trials whose peer pair satisfied the collision rule.",
	})
	m.simRunDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "sim",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of simulation runs.",
		Buckets:   m.buckets,
	})
}

// Package-level helpers on the global manager.

// RecordObservation counts one matcher observation and its outcome.
func RecordObservation(within, matched bool) {
	if !globalManager.enabled {
		return
	}
	globalManager.observationsTotal.Inc()
	if within {
		globalManager.withinEpsilonTotal.Inc()
	}
	if matched {
		globalManager.matchesDeclared.Inc()
	}
}

// RecordSessionStarted counts one new matching session.
func RecordSessionStarted() {
	if !globalManager.enabled {
		return
	}
	globalManager.sessionsStarted.Inc()
}

// AddSimulationTrials counts completed Monte-Carlo trials.
func AddSimulationTrials(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.simTrialsTotal.Add(float64(n))
}

// AddPeerSamples counts sampled random peers.
func AddPeerSamples(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.simPeerSamplesTotal.Add(float64(n))
}

// AddSingleMatches counts false single matches.
func AddSingleMatches(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.simSingleMatches.Add(float64(n))
}

// AddDoubleMatches counts collision-rule hits.
func AddDoubleMatches(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.simDoubleMatches.Add(float64(n))
}

// RecordSimulationDuration records one run's wall-clock seconds.
func RecordSimulationDuration(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.simRunDuration.Observe(seconds)
}

// GetRegistry returns the custom registry backing the global manager, for
// promhttp exposure.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
