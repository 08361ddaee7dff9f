// Package metric provides Prometheus-based metrics collection and an HTTP server
// for ringqueue observability.
//
// The package offers a registry managing driver-level metrics (soak run status,
// workload steps, law violations) and component-specific metrics registered by
// individual queues. It includes an HTTP server exposing everything in Prometheus
// format.
//
// # Architecture
//
//  1. Core Metrics: driver-level metrics registered automatically (Metrics type)
//  2. Component Registry: duplicate-safe registration for per-queue metrics (MetricsRegistrar)
//  3. HTTP Server: /metrics endpoint plus /health (Server type)
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	if err := server.Start(); err != nil {
//	    return err
//	}
//	defer server.Stop()
//
//	q, err := ringqueue.New[int](ringqueue.WithMetrics[int](registry, "orders"))
//
// Metrics are keyed by "component.metric". Registering the same key twice, or a
// collector whose Prometheus name is already taken, fails with an Invalid
// classified error; any other Prometheus failure is Fatal.
//
// # Thread Safety
//
// MetricsRegistry is safe for concurrent use. Prometheus collectors are safe for
// concurrent updates.
package metric
