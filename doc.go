// Package ringqueue is the root of a module providing a generic, growable FIFO
// queue stored in a single contiguous ring buffer, plus the tooling to observe
// and soak-test it.
//
// # Layout
//
//	pkg/ringqueue        RingQueue[T]: storage manager, index engine, iterators,
//	                     statistics, optional Prometheus metrics, configuration
//	errors               classified errors (transient, invalid, fatal) and the
//	                     queue sentinels ErrEmptyQueue, ErrAllocation,
//	                     ErrInvalidCapacity, ErrIteratorInvalid
//	metric               Prometheus registry wrapper and /metrics HTTP server
//	cmd/ringqueue-soak   workload driver checking FIFO, size and truncation
//	                     laws against a reference model
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         ringqueue-soak              │  Workload files (YAML/JSON),
//	│   (steps, reference model, report)  │  law checks, run metrics
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│          RingQueue[T]               │  Enqueue, Dequeue, Resize,
//	│  (index engine + storage manager)   │  iterators, Clone, Move
//	└─────────────────────────────────────┘
//	           ↓ reports to
//	┌─────────────────────────────────────┐
//	│   Statistics  /  MetricsRegistry    │  Always-on counters,
//	│                                     │  optional Prometheus export
//	└─────────────────────────────────────┘
//
// # Error Handling
//
// Every failure is a classified error from the errors package. Dequeue on an
// empty queue and bad capacities are Invalid: the caller misused the queue and
// can carry on. Allocation failures are Fatal. Nothing is retried internally.
//
//	v, err := q.Dequeue()
//	switch {
//	case errors.Is(err, rqerrors.ErrEmptyQueue):
//		// nothing to do
//	case err != nil:
//		return err
//	}
//
// # Observability
//
// Queues always keep Statistics. Passing ringqueue.WithMetrics exports the same
// activity to Prometheus through metric.MetricsRegistry, and metric.Server
// serves it over HTTP. Reallocations are logged at debug level via log/slog.
package ringqueue
