package ringqueue

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/ringqueue/metric"
)

// queueMetrics holds Prometheus metrics for queue operations.
type queueMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	enqueues  prometheus.Counter
	dequeues  prometheus.Counter
	peeks     prometheus.Counter
	grows     prometheus.Counter
	resizes   prometheus.Counter
	truncated prometheus.Counter
	errors    *prometheus.CounterVec

	// Gauge metrics - updated on operations
	size        prometheus.Gauge
	capacity    prometheus.Gauge
	utilization prometheus.Gauge

	relocated prometheus.Histogram
}

// newQueueMetrics creates and registers queue metrics with the provided registry.
// prefix becomes the "queue" const label and the registry component name.
func newQueueMetrics(registry *metric.MetricsRegistry, prefix string) (*queueMetrics, error) {
	labels := prometheus.Labels{"queue": prefix}

	m := &queueMetrics{
		enqueues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "enqueues_total",
			ConstLabels: labels,
			Help:        "Total number of enqueue operations",
		}),
		dequeues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "dequeues_total",
			ConstLabels: labels,
			Help:        "Total number of successful dequeue operations",
		}),
		peeks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "peeks_total",
			ConstLabels: labels,
			Help:        "Total number of successful peek operations",
		}),
		grows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "grows_total",
			ConstLabels: labels,
			Help:        "Total number of automatic buffer growths",
		}),
		resizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "resizes_total",
			ConstLabels: labels,
			Help:        "Total number of explicit resizes",
		}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "truncated_total",
			ConstLabels: labels,
			Help:        "Total number of elements discarded by shrinking resizes",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "errors_total",
			ConstLabels: labels,
			Help:        "Total number of failed queue operations by kind",
		}, []string{"kind"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "size",
			ConstLabels: labels,
			Help:        "Current number of elements in the queue",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Current number of slots in the backing buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "utilization",
			ConstLabels: labels,
			Help:        "Queue utilization as a ratio (0.0 to 1.0)",
		}),
		relocated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "ringqueue",
			Subsystem:   "queue",
			Name:        "relocated_elements",
			ConstLabels: labels,
			Help:        "Number of elements copied per buffer reallocation",
			Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	counters := []struct {
		name    string
		counter prometheus.Counter
	}{
		{"enqueues", m.enqueues},
		{"dequeues", m.dequeues},
		{"peeks", m.peeks},
		{"grows", m.grows},
		{"resizes", m.resizes},
		{"truncated", m.truncated},
	}
	for _, c := range counters {
		if err := registry.RegisterCounter(prefix, "queue_"+c.name, c.counter); err != nil {
			return nil, err
		}
	}

	if err := registry.RegisterCounterVec(prefix, "queue_errors", m.errors); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "queue_size", m.size); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "queue_capacity", m.capacity); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "queue_utilization", m.utilization); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram(prefix, "queue_relocated", m.relocated); err != nil {
		return nil, err
	}

	return m, nil
}

// recordEnqueue increments the enqueue counter and updates the gauges.
func (m *queueMetrics) recordEnqueue(size, capacity int) {
	m.enqueues.Inc()
	m.updateSize(size, capacity)
}

// recordDequeue increments the dequeue counter and updates the gauges.
func (m *queueMetrics) recordDequeue(size, capacity int) {
	m.dequeues.Inc()
	m.updateSize(size, capacity)
}

func (m *queueMetrics) recordPeek() {
	m.peeks.Inc()
}

func (m *queueMetrics) recordGrow() {
	m.grows.Inc()
}

// recordResize counts a resize and the elements it discarded.
func (m *queueMetrics) recordResize(truncated int) {
	m.resizes.Inc()
	if truncated > 0 {
		m.truncated.Add(float64(truncated))
	}
}

// recordRelocation observes the number of elements copied into a new buffer,
// which is also the queue size right after the reallocation.
func (m *queueMetrics) recordRelocation(moved, capacity int) {
	m.relocated.Observe(float64(moved))
	m.updateSize(moved, capacity)
}

// recordError counts a failed operation; kind is "empty", "allocation" or
// "invalid_capacity".
func (m *queueMetrics) recordError(kind string) {
	m.errors.WithLabelValues(kind).Inc()
}

// updateSize sets the current size, capacity and utilization.
func (m *queueMetrics) updateSize(size, capacity int) {
	m.size.Set(float64(size))
	m.capacity.Set(float64(capacity))
	if capacity == 0 {
		m.utilization.Set(0)
		return
	}
	m.utilization.Set(float64(size) / float64(capacity))
}
