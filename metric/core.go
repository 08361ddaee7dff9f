package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run status values reported by RecordRunStatus.
const (
	RunStatusIdle     = 0
	RunStatusRunning  = 1
	RunStatusPassed   = 2
	RunStatusViolated = 3
)

// Metrics contains driver-level metrics (not per-queue metrics, which each
// queue registers under its own prefix)
type Metrics struct {
	RunStatus       prometheus.Gauge
	StepsTotal      *prometheus.CounterVec
	StepDuration    *prometheus.HistogramVec
	ElementsMoved   *prometheus.CounterVec
	ViolationsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all driver metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RunStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ringqueue",
				Subsystem: "soak",
				Name:      "run_status",
				Help:      "Soak run status (0=idle, 1=running, 2=passed, 3=violated)",
			},
		),

		StepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringqueue",
				Subsystem: "soak",
				Name:      "steps_total",
				Help:      "Total number of workload steps executed",
			},
			[]string{"op"},
		),

		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ringqueue",
				Subsystem: "soak",
				Name:      "step_duration_seconds",
				Help:      "Time spent executing one workload step",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"op"},
		),

		ElementsMoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringqueue",
				Subsystem: "soak",
				Name:      "elements_total",
				Help:      "Total number of elements moved by workload steps",
			},
			[]string{"op"},
		),

		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringqueue",
				Subsystem: "soak",
				Name:      "violations_total",
				Help:      "Total number of queue law violations detected",
			},
			[]string{"law"},
		),
	}
}

// RecordRunStatus updates the run status gauge
func (c *Metrics) RecordRunStatus(status int) {
	c.RunStatus.Set(float64(status))
}

// RecordStep counts one executed step, the elements it touched and its duration
func (c *Metrics) RecordStep(op string, elements int, duration time.Duration) {
	c.StepsTotal.WithLabelValues(op).Inc()
	c.ElementsMoved.WithLabelValues(op).Add(float64(elements))
	c.StepDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordViolation increments the violation counter for a law
func (c *Metrics) RecordViolation(law string) {
	c.ViolationsTotal.WithLabelValues(law).Inc()
}
