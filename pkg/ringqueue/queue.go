package ringqueue

import (
	"github.com/c360/ringqueue/errors"
)

// DefaultCapacity is the slot count of a queue built with New.
const DefaultCapacity = 2

// RingQueue is a FIFO queue over one contiguous buffer addressed with
// wraparound index arithmetic. It grows automatically when full and can be
// resized explicitly, which may truncate the newest elements.
//
// RingQueue is not safe for concurrent use.
type RingQueue[T any] struct {
	buffer []T
	front  int // physical slot of the oldest element, meaningful while count > 0
	back   int // physical slot the next Enqueue writes
	count  int

	// epoch changes whenever the buffer is replaced; popped counts dequeues.
	// Together they let iterators detect that they went stale.
	epoch  uint64
	popped uint64

	limit   int
	stats   *Statistics
	metrics *queueMetrics // Optional Prometheus metrics
	opts    *queueOptions[T]
}

// New creates an empty queue with DefaultCapacity slots.
func New[T any](options ...Option[T]) (*RingQueue[T], error) {
	return newRingQueue(DefaultCapacity, applyOptions(options...))
}

// NewWithCapacity creates an empty queue with exactly capacity slots.
// Capacities below 1 are raised to 1.
func NewWithCapacity[T any](capacity int, options ...Option[T]) (*RingQueue[T], error) {
	if capacity <= 0 {
		capacity = 1 // Minimum capacity
	}
	return newRingQueue(capacity, applyOptions(options...))
}

// FromSlice creates a queue holding items in order, with len(items)+1 slots.
// The slice is copied.
func FromSlice[T any](items []T, options ...Option[T]) (*RingQueue[T], error) {
	q, err := newRingQueue(len(items)+1, applyOptions(options...))
	if err != nil {
		return nil, err
	}

	copy(q.buffer, items)
	q.count = len(items)
	q.back = q.count % len(q.buffer)

	q.stats.UpdateSize(int64(q.count), int64(len(q.buffer)))
	if q.metrics != nil {
		q.metrics.updateSize(q.count, len(q.buffer))
	}

	return q, nil
}

func newRingQueue[T any](capacity int, opts *queueOptions[T]) (*RingQueue[T], error) {
	limit := slotLimit[T](opts.maxCapacity)

	buf, err := allocate[T](capacity, limit)
	if err != nil {
		opts.logger.Error("ring queue allocation failed", "requested", capacity, "error", err)
		return nil, err
	}

	var metrics *queueMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		metrics, err = newQueueMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.Wrap(err, "RingQueue", "newRingQueue", "metrics registration")
		}
		metrics.updateSize(0, capacity)
	}

	stats := NewStatistics()
	stats.UpdateSize(0, int64(capacity))

	return &RingQueue[T]{
		buffer:  buf,
		limit:   limit,
		stats:   stats,
		metrics: metrics,
		opts:    opts,
	}, nil
}

// Enqueue appends value at the back of the queue, growing the buffer first when
// it is full. It only fails when growth cannot be allocated, with
// errors.ErrAllocation; the queue is unchanged in that case.
func (q *RingQueue[T]) Enqueue(value T) error {
	if q.count == len(q.buffer) {
		if err := q.grow(); err != nil {
			return err
		}
	}

	q.buffer[q.back] = value
	q.back = (q.back + 1) % len(q.buffer)
	q.count++

	q.stats.Enqueue()
	q.stats.UpdateSize(int64(q.count), int64(len(q.buffer)))
	if q.metrics != nil {
		q.metrics.recordEnqueue(q.count, len(q.buffer))
	}

	return nil
}

// Dequeue removes and returns the oldest element. On an empty queue it returns
// errors.ErrEmptyQueue and leaves the queue unchanged.
func (q *RingQueue[T]) Dequeue() (T, error) {
	var zero T

	if q.count == 0 {
		q.stats.EmptyDequeue()
		if q.metrics != nil {
			q.metrics.recordError("empty")
		}
		return zero, errors.WrapInvalid(errors.ErrEmptyQueue, "RingQueue", "Dequeue", "remove front")
	}

	item := q.buffer[q.front]
	q.buffer[q.front] = zero // Release references held by the vacated slot
	q.front = (q.front + 1) % len(q.buffer)
	q.count--
	q.popped++

	q.stats.Dequeue()
	q.stats.UpdateSize(int64(q.count), int64(len(q.buffer)))
	if q.metrics != nil {
		q.metrics.recordDequeue(q.count, len(q.buffer))
	}

	return item, nil
}

// DequeueBatch removes and returns up to max of the oldest elements in order.
func (q *RingQueue[T]) DequeueBatch(max int) []T {
	if max <= 0 || q.count == 0 {
		return nil
	}

	n := min(max, q.count)
	result := make([]T, n)
	for i := range result {
		// Cannot fail: n <= count
		result[i], _ = q.Dequeue()
	}

	return result
}

// Peek returns the oldest element without removing it. On an empty queue it
// returns errors.ErrEmptyQueue.
func (q *RingQueue[T]) Peek() (T, error) {
	var zero T

	if q.count == 0 {
		if q.metrics != nil {
			q.metrics.recordError("empty")
		}
		return zero, errors.WrapInvalid(errors.ErrEmptyQueue, "RingQueue", "Peek", "read front")
	}

	q.stats.Peek()
	if q.metrics != nil {
		q.metrics.recordPeek()
	}
	return q.buffer[q.front], nil
}

// Size returns the number of live elements.
func (q *RingQueue[T]) Size() int {
	return q.count
}

// Empty reports whether the queue holds no elements.
func (q *RingQueue[T]) Empty() bool {
	return q.count == 0
}

// Capacity returns the current number of slots in the backing buffer.
func (q *RingQueue[T]) Capacity() int {
	return len(q.buffer)
}

// Clear removes all elements and keeps the capacity. Outstanding iterators are
// invalidated.
func (q *RingQueue[T]) Clear() {
	clear(q.buffer)
	q.front = 0
	q.back = 0
	q.count = 0
	q.epoch++

	q.stats.UpdateSize(0, int64(len(q.buffer)))
	if q.metrics != nil {
		q.metrics.updateSize(0, len(q.buffer))
	}
}

// Values returns the live elements in FIFO order in a new slice.
func (q *RingQueue[T]) Values() []T {
	values := make([]T, q.count)
	for i := range values {
		values[i] = q.buffer[q.physical(i)]
	}
	return values
}

// Stats returns queue statistics (always available for observability).
func (q *RingQueue[T]) Stats() *Statistics {
	return q.stats
}

// Clone returns a deep copy with its own buffer, the same index state and
// fresh statistics. Prometheus metrics are not carried over.
func (q *RingQueue[T]) Clone() (*RingQueue[T], error) {
	opts := q.opts.withoutMetrics()

	buf, err := allocate[T](len(q.buffer), q.limit)
	if err != nil {
		q.recordAllocationFailure(err, len(q.buffer))
		return nil, err
	}
	copy(buf, q.buffer)

	stats := NewStatistics()
	stats.UpdateSize(int64(q.count), int64(len(buf)))

	return &RingQueue[T]{
		buffer: buf,
		front:  q.front,
		back:   q.back,
		count:  q.count,
		limit:  q.limit,
		stats:  stats,
		opts:   opts,
	}, nil
}

// Move transfers the buffer, index state, statistics and metrics to a new
// queue. The receiver is left empty with zero capacity and no buffer; it stays
// usable and grows on the next Enqueue. Iterators issued by the receiver are
// invalidated.
func (q *RingQueue[T]) Move() *RingQueue[T] {
	moved := &RingQueue[T]{
		buffer:  q.buffer,
		front:   q.front,
		back:    q.back,
		count:   q.count,
		popped:  q.popped,
		limit:   q.limit,
		stats:   q.stats,
		metrics: q.metrics,
		opts:    q.opts,
	}

	q.buffer = nil
	q.front = 0
	q.back = 0
	q.count = 0
	q.epoch++
	q.stats = NewStatistics()
	q.metrics = nil
	q.opts = q.opts.withoutMetrics()

	return moved
}

// physical maps a logical offset from the front to a buffer slot.
func (q *RingQueue[T]) physical(offset int) int {
	return (q.front + offset) % len(q.buffer)
}
