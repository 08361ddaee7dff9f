package ringqueue

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks queue activity. Counters are updated atomically so a
// monitoring goroutine may read them while the owning goroutine mutates the queue.
type Statistics struct {
	// Atomic counters for thread-safe updates
	enqueues           int64
	dequeues           int64
	peeks              int64
	emptyDequeues      int64
	grows              int64
	resizes            int64
	truncated          int64
	allocationFailures int64

	// Protected by mutex
	mu              sync.RWMutex
	startTime       time.Time
	currentSize     int64
	maxSize         int64
	currentCapacity int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Enqueue records an enqueue operation.
func (s *Statistics) Enqueue() {
	atomic.AddInt64(&s.enqueues, 1)
}

// Dequeue records a successful dequeue operation.
func (s *Statistics) Dequeue() {
	atomic.AddInt64(&s.dequeues, 1)
}

// Peek records a successful peek operation.
func (s *Statistics) Peek() {
	atomic.AddInt64(&s.peeks, 1)
}

// EmptyDequeue records a dequeue attempted on an empty queue.
func (s *Statistics) EmptyDequeue() {
	atomic.AddInt64(&s.emptyDequeues, 1)
}

// Grow records an automatic growth.
func (s *Statistics) Grow() {
	atomic.AddInt64(&s.grows, 1)
}

// Resize records an explicit resize.
func (s *Statistics) Resize() {
	atomic.AddInt64(&s.resizes, 1)
}

// Truncate records n elements discarded by a shrinking resize.
func (s *Statistics) Truncate(n int64) {
	atomic.AddInt64(&s.truncated, n)
}

// AllocationFailure records a failed buffer allocation.
func (s *Statistics) AllocationFailure() {
	atomic.AddInt64(&s.allocationFailures, 1)
}

// UpdateSize updates the current element count and capacity.
func (s *Statistics) UpdateSize(size, capacity int64) {
	s.mu.Lock()
	s.currentSize = size
	s.currentCapacity = capacity
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Enqueues returns the total number of enqueue operations.
func (s *Statistics) Enqueues() int64 {
	return atomic.LoadInt64(&s.enqueues)
}

// Dequeues returns the total number of successful dequeue operations.
func (s *Statistics) Dequeues() int64 {
	return atomic.LoadInt64(&s.dequeues)
}

// Peeks returns the total number of successful peek operations.
func (s *Statistics) Peeks() int64 {
	return atomic.LoadInt64(&s.peeks)
}

// EmptyDequeues returns the number of dequeues attempted on an empty queue.
func (s *Statistics) EmptyDequeues() int64 {
	return atomic.LoadInt64(&s.emptyDequeues)
}

// Grows returns the number of automatic growths.
func (s *Statistics) Grows() int64 {
	return atomic.LoadInt64(&s.grows)
}

// Resizes returns the number of explicit resizes.
func (s *Statistics) Resizes() int64 {
	return atomic.LoadInt64(&s.resizes)
}

// Truncated returns the total number of elements discarded by resizes.
func (s *Statistics) Truncated() int64 {
	return atomic.LoadInt64(&s.truncated)
}

// AllocationFailures returns the number of failed buffer allocations.
func (s *Statistics) AllocationFailures() int64 {
	return atomic.LoadInt64(&s.allocationFailures)
}

// CurrentSize returns the current number of elements in the queue.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the maximum number of elements the queue has held.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// CurrentCapacity returns the current number of slots.
func (s *Statistics) CurrentCapacity() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCapacity
}

// Utilization returns the current fill ratio (0.0 to 1.0).
func (s *Statistics) Utilization() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentCapacity == 0 {
		return 0.0
	}
	return float64(s.currentSize) / float64(s.currentCapacity)
}

// Throughput returns the average number of enqueues per second.
func (s *Statistics) Throughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.Enqueues()) / elapsed.Seconds()
}

// Uptime returns how long the statistics have been collected.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.enqueues, 0)
	atomic.StoreInt64(&s.dequeues, 0)
	atomic.StoreInt64(&s.peeks, 0)
	atomic.StoreInt64(&s.emptyDequeues, 0)
	atomic.StoreInt64(&s.grows, 0)
	atomic.StoreInt64(&s.resizes, 0)
	atomic.StoreInt64(&s.truncated, 0)
	atomic.StoreInt64(&s.allocationFailures, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentSize = 0
	s.maxSize = 0
	s.currentCapacity = 0
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of Statistics.
type StatsSummary struct {
	Enqueues           int64         `json:"enqueues"`
	Dequeues           int64         `json:"dequeues"`
	Peeks              int64         `json:"peeks"`
	EmptyDequeues      int64         `json:"empty_dequeues"`
	Grows              int64         `json:"grows"`
	Resizes            int64         `json:"resizes"`
	Truncated          int64         `json:"truncated"`
	AllocationFailures int64         `json:"allocation_failures"`
	CurrentSize        int64         `json:"current_size"`
	MaxSize            int64         `json:"max_size"`
	Capacity           int64         `json:"capacity"`
	Utilization        float64       `json:"utilization"`
	Throughput         float64       `json:"throughput"`
	Uptime             time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Enqueues:           s.Enqueues(),
		Dequeues:           s.Dequeues(),
		Peeks:              s.Peeks(),
		EmptyDequeues:      s.EmptyDequeues(),
		Grows:              s.Grows(),
		Resizes:            s.Resizes(),
		Truncated:          s.Truncated(),
		AllocationFailures: s.AllocationFailures(),
		CurrentSize:        s.CurrentSize(),
		MaxSize:            s.MaxSize(),
		Capacity:           s.CurrentCapacity(),
		Utilization:        s.Utilization(),
		Throughput:         s.Throughput(),
		Uptime:             s.Uptime(),
	}
}
