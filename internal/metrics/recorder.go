// Package metrics exposes solver instrumentation as Prometheus collectors.
//
// Collectors live on a private registry rather than the global one so a
// CLI invocation can dump exactly what it measured with [Recorder.WriteFile].
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "emsolve"

type Recorder struct {
	registry     *prometheus.Registry
	solves       *prometheus.CounterVec
	solveSeconds prometheus.Histogram
	unknowns     prometheus.Gauge
	inductance   *prometheus.CounterVec
	sweepPoints  prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Electrostatic solves by factorization method.",
		}, []string{"method"}),
		solveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of assembly plus linear solve.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		unknowns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_solve_unknowns",
			Help:      "Free unknowns in the most recent reduced system.",
		}),
		inductance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inductance_branch_total",
			Help:      "Inductance estimates by decision branch.",
		}, []string{"branch"}),
		sweepPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_points_total",
			Help:      "Completed frequency sweep points.",
		}),
	}
	r.registry.MustRegister(r.solves, r.solveSeconds, r.unknowns, r.inductance, r.sweepPoints)
	return r
}

func (r *Recorder) ObserveSolve(method string, unknowns int, d time.Duration) {
	r.solves.WithLabelValues(method).Inc()
	r.solveSeconds.Observe(d.Seconds())
	r.unknowns.Set(float64(unknowns))
}

func (r *Recorder) IncInductanceBranch(branch string) {
	r.inductance.WithLabelValues(branch).Inc()
}

func (r *Recorder) IncSweepPoint() {
	r.sweepPoints.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteFile writes all collectors in the Prometheus text format, suitable
// for the node_exporter textfile collector.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Default is the process-wide recorder used by the solver packages.
var Default = NewRecorder()

func ObserveSolve(method string, unknowns int, d time.Duration) {
	Default.ObserveSolve(method, unknowns, d)
}

func IncInductanceBranch(branch string) { Default.IncInductanceBranch(branch) }

func IncSweepPoint() { Default.IncSweepPoint() }
