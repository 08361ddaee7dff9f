package metric

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringqueue/errors"
)

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(metricFamilies))
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-queue", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	assert.True(t, gatheredNames(t, registry)["test_counter"],
		"Counter should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	err := registry.RegisterGauge("test-queue", "test_gauge", gauge)
	require.NoError(t, err)

	gauge.Set(42.0)

	assert.True(t, gatheredNames(t, registry)["test_gauge"],
		"Gauge should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterHistogram(t *testing.T) {
	registry := NewMetricsRegistry()

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_histogram",
		Help:    "A test histogram",
		Buckets: prometheus.DefBuckets,
	})

	err := registry.RegisterHistogram("test-queue", "test_histogram", histogram)
	require.NoError(t, err)

	histogram.Observe(1.5)

	assert.True(t, gatheredNames(t, registry)["test_histogram"],
		"Histogram should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterCounterVec(t *testing.T) {
	registry := NewMetricsRegistry()

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_counter_vec",
		Help: "A test counter vector",
	}, []string{"kind"})

	err := registry.RegisterCounterVec("test-queue", "test_counter_vec", counterVec)
	require.NoError(t, err)

	counterVec.WithLabelValues("empty").Inc()

	assert.True(t, gatheredNames(t, registry)["test_counter_vec"])
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})

	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter", // Same help to avoid Prometheus validation error
	})

	err := registry.RegisterCounter("queue1", "duplicate_counter", counter1)
	require.NoError(t, err)

	// Different component key, same Prometheus name
	err = registry.RegisterCounter("queue2", "duplicate_counter", counter2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prometheus conflict")
	assert.True(t, errors.IsInvalid(err))

	// Same component key
	err = registry.RegisterCounter("queue1", "duplicate_counter", counter2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate metric registration")
}

func TestMetricsRegistry_UnregisterMetric(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	})

	err := registry.RegisterCounter("test-queue", "unregister_counter", counter)
	require.NoError(t, err)
	assert.True(t, gatheredNames(t, registry)["unregister_counter"])

	success := registry.Unregister("test-queue", "unregister_counter")
	assert.True(t, success)
	assert.False(t, gatheredNames(t, registry)["unregister_counter"])

	assert.False(t, registry.Unregister("test-queue", "unregister_counter"),
		"second unregister should report nothing removed")
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", id),
				Help: "A concurrent counter",
			})

			err := registry.RegisterCounter("concurrent-queue",
				fmt.Sprintf("concurrent_counter_%d", id), counter)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	counterCount := 0
	for name := range gatheredNames(t, registry) {
		if strings.HasPrefix(name, "concurrent_counter_") {
			counterCount++
		}
	}

	assert.Equal(t, numGoroutines, counterCount,
		"All concurrent counters should be registered")
}

func TestMetricsRegistrar_Interface(t *testing.T) {
	var registrar MetricsRegistrar = NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interface_counter",
		Help: "Counter registered through interface",
	})

	err := registrar.RegisterCounter("interface-queue", "interface_counter", counter)
	require.NoError(t, err)
}

func TestCoreMetrics_RecordMethods(t *testing.T) {
	registry := NewMetricsRegistry()
	coreMetrics := registry.CoreMetrics()

	coreMetrics.RecordRunStatus(RunStatusRunning)
	coreMetrics.RecordStep("enqueue", 100, 20*time.Microsecond)
	coreMetrics.RecordStep("dequeue", 50, 10*time.Microsecond)
	coreMetrics.RecordViolation("fifo")

	names := gatheredNames(t, registry)

	expected := []string{
		"ringqueue_soak_run_status",
		"ringqueue_soak_steps_total",
		"ringqueue_soak_step_duration_seconds",
		"ringqueue_soak_elements_total",
		"ringqueue_soak_violations_total",
	}
	for _, name := range expected {
		assert.True(t, names[name], "core metric %s should be initialized", name)
	}
}
