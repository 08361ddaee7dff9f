// Package ringqueue provides a generic, growable FIFO queue stored in a single
// contiguous ring buffer, with built-in statistics and optional Prometheus metrics.
//
// # Quick Start
//
//	q, err := ringqueue.New[int]()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = q.Enqueue(1)
//	_ = q.Enqueue(2)
//
//	v, err := q.Dequeue() // v == 1
//
// Dequeue on an empty queue returns errors.ErrEmptyQueue, classified Invalid.
// Callers usually check Empty first or test with errors.Is.
//
// # Capacity
//
// The buffer holds Capacity() slots, all of which may be occupied. A full queue
// grows before the next Enqueue to max(capacity+1, ceil(capacity*factor)) slots,
// with a default factor of 2.0. Growth copies the live elements, oldest first,
// into a fresh buffer starting at slot 0, so at most two linear segments are
// moved per reallocation.
//
// Resize sets the capacity explicitly. Shrinking below Size() keeps the oldest
// elements and discards the newest ones:
//
//	q, _ := ringqueue.FromSlice([]string{"a", "b", "c", "d"},
//		ringqueue.WithTruncateCallback(func(s string) { fmt.Println("dropped", s) }),
//	)
//	_ = q.Resize(2) // prints "dropped c" then "dropped d"; q holds a, b
//
// WithMaxCapacity bounds growth. Exceeding the bound, or an allocation the
// runtime cannot satisfy, fails with errors.ErrAllocation, classified Fatal, and
// leaves the queue unchanged.
//
// # Iteration
//
// Begin, End, Find and FindFunc return iterators that read and overwrite
// elements in place. All returns an iter.Seq for range loops:
//
//	for v := range q.All() {
//		fmt.Println(v)
//	}
//
// Reallocation (growth, Resize, Clear, Move) invalidates outstanding iterators,
// as does dequeuing the element an iterator points at. Using an invalidated
// iterator returns errors.ErrIteratorInvalid rather than reading stale memory.
//
// # Copy and Move
//
// Clone returns an independent deep copy. Move transfers the buffer to a new
// queue and leaves the receiver empty with zero capacity.
//
// # Observability
//
// Statistics are always collected and available via Stats(). WithMetrics also
// exports them to Prometheus under the ringqueue_queue_ prefix with a queue label:
//
//	registry := metric.NewMetricsRegistry()
//	q, err := ringqueue.New[int](ringqueue.WithMetrics[int](registry, "orders"))
//
// WithLogger sets the slog.Logger used for reallocation debug records and
// allocation failures. Enqueue and Dequeue never log.
//
// # Thread Safety
//
// A RingQueue is not safe for concurrent use; callers serialize access. The
// Statistics it exposes may be read from other goroutines.
package ringqueue
