package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the engine's Prometheus instrumentation. The process
// is a batch job with no serving surface of its own; collectors attach
// to the default registerer so an embedding process can expose them.
type Registry struct {
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	SnapshotsBuilt prometheus.Counter
	EventsScored   prometheus.Counter
	LabTotalScore  *prometheus.GaugeVec
}

var (
	registry *Registry
	initOnce sync.Once
)

// Get returns the process-wide metrics registry, initializing it on
// first use.
func Get() *Registry {
	initOnce.Do(func() {
		registry = newRegistry()
		registry.register(prometheus.DefaultRegisterer)
	})
	return registry
}

func newRegistry() *Registry {
	return &Registry{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faultline_runs_total",
				Help: "Scoring runs by path and result",
			},
			[]string{"path", "result"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faultline_run_duration_seconds",
				Help:    "Duration of a scoring run in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"path"},
		),
		SnapshotsBuilt: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "faultline_snapshots_built_total",
				Help: "Monthly snapshots computed across all runs",
			},
		),
		EventsScored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "faultline_events_scored_total",
				Help: "Events that fell inside a decay window and contributed to a lab score",
			},
		),
		LabTotalScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "faultline_lab_total_score",
				Help: "Latest computed total fragility score per lab",
			},
			[]string{"lab"},
		),
	}
}

func (r *Registry) register(reg prometheus.Registerer) {
	reg.MustRegister(
		r.RunsTotal,
		r.RunDuration,
		r.SnapshotsBuilt,
		r.EventsScored,
		r.LabTotalScore,
	)
}
