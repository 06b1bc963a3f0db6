package monitoring

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/brigade/internal/bench"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one benchmark run
type Metrics struct {
	registry *prometheus.Registry

	// Driver metrics
	Phases *prometheus.GaugeVec
	Units prometheus.Gauge

	// Relay metrics
	Iterations        prometheus.Counter
	IterationDuration prometheus.Histogram

	// Spawn metrics
	Batches       prometheus.Counter
	BatchDuration prometheus.Histogram
	StartLatency  prometheus.Histogram

	// Exposition metrics
	Scrapes prometheus.Counter

	// Snapshot for logs and tests - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values
type Snapshot struct {
	Phase      bench.Phase
	Iterations int64
	Batches    int64
	Starts     int64
}

// latencyBuckets spans 100ns to ~100ms.
var latencyBuckets = prometheus.ExponentialBuckets(100e-9, 4, 12)

// NewMetrics creates a new metrics collector. constLabels are attached to
// every series (substrate, link, bench).
func NewMetrics(constLabels prometheus.Labels) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		Phases: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "brigade_phase",
				Help:        "Current driver phase (1 = active)",
				ConstLabels: constLabels,
			},
			[]string{"phase"},
		),
		Units: factory.NewGauge(
			prometheus.GaugeOpts{
				Name:        "brigade_units",
				Help:        "Execution units per chain or batch",
				ConstLabels: constLabels,
			},
		),

		Iterations: factory.NewCounter(
			prometheus.CounterOpts{
				Name:        "brigade_iterations_total",
				Help:        "Total number of measured relay iterations",
				ConstLabels: constLabels,
			},
		),
		IterationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "brigade_iteration_duration_seconds",
				Help:        "Relay iteration latency in seconds",
				Buckets:     latencyBuckets,
				ConstLabels: constLabels,
			},
		),

		Batches: factory.NewCounter(
			prometheus.CounterOpts{
				Name:        "brigade_batches_total",
				Help:        "Total number of measured spawn batches",
				ConstLabels: constLabels,
			},
		),
		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "brigade_batch_duration_seconds",
				Help:        "Time to admit one batch of units in seconds",
				Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 12),
				ConstLabels: constLabels,
			},
		),
		StartLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "brigade_start_latency_seconds",
				Help:        "Delay between admitting a unit and its body starting, in seconds",
				Buckets:     latencyBuckets,
				ConstLabels: constLabels,
			},
		),

		Scrapes: factory.NewCounter(
			prometheus.CounterOpts{
				Name:        "brigade_scrapes_total",
				Help:        "Total number of metrics scrapes served",
				ConstLabels: constLabels,
			},
		),
	}

	return m
}

// Registry returns the registry holding every collector
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetUnits records the unit count
func (m *Metrics) SetUnits(n int) {
	m.Units.Set(float64(n))
}

// Phase marks p as the active driver phase
func (m *Metrics) Phase(p bench.Phase) {
	for _, other := range []bench.Phase{bench.PhaseBuilding, bench.PhaseWarmup, bench.PhaseMeasuring, bench.PhaseDone} {
		v := 0.0
		if other == p {
			v = 1
		}
		m.Phases.WithLabelValues(other.String()).Set(v)
	}

	m.mu.Lock()
	m.snapshot.Phase = p
	m.mu.Unlock()
}

// Iteration records one measured relay iteration
func (m *Metrics) Iteration(elapsed time.Duration) {
	m.Iterations.Inc()
	m.IterationDuration.Observe(elapsed.Seconds())

	m.mu.Lock()
	m.snapshot.Iterations++
	m.mu.Unlock()
}

// Batch records one measured spawn batch
func (m *Metrics) Batch(creation time.Duration) {
	m.Batches.Inc()
	m.BatchDuration.Observe(creation.Seconds())

	m.mu.Lock()
	m.snapshot.Batches++
	m.mu.Unlock()
}

// Start records one unit's creation-to-start latency
func (m *Metrics) Start(latency time.Duration) {
	m.StartLatency.Observe(latency.Seconds())

	m.mu.Lock()
	m.snapshot.Starts++
	m.mu.Unlock()
}

// GetSnapshot returns current metric values
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
