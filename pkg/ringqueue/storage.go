package ringqueue

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/c360/ringqueue/errors"
)

// maxBufferBytes bounds a single backing buffer. It matches the largest heap
// allocation the Go runtime accepts on 64-bit platforms.
const maxBufferBytes uint64 = 1 << 47

// slotLimit returns the largest slot count a buffer of T may hold, further
// bounded by maxCapacity when it is positive.
func slotLimit[T any](maxCapacity int) int {
	var zero T
	limit := math.MaxInt
	if size := uint64(unsafe.Sizeof(zero)); size > 0 {
		if n := maxBufferBytes / size; n < uint64(math.MaxInt) {
			limit = int(n)
		}
	}
	if maxCapacity > 0 && maxCapacity < limit {
		limit = maxCapacity
	}
	return limit
}

// allocate returns a buffer of exactly capacity zero-valued slots. Requests the
// runtime cannot satisfy fail with errors.ErrAllocation, classified fatal.
func allocate[T any](capacity, limit int) (buf []T, err error) {
	if capacity < 0 || capacity > limit {
		return nil, errors.WrapFatal(errors.ErrAllocation, "RingQueue", "allocate",
			fmt.Sprintf("reserve %d slots (limit %d)", capacity, limit))
	}

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			buf = nil
			err = errors.WrapFatal(fmt.Errorf("%w: %v", errors.ErrAllocation, rerr), "RingQueue", "allocate",
				fmt.Sprintf("reserve %d slots", capacity))
		}
	}()

	return make([]T, capacity), nil
}

// nextCapacity computes the capacity a full queue grows to: current scaled by
// factor, at least one more slot, never above limit. ok is false when the queue
// cannot grow at all.
func nextCapacity(current int, factor float64, limit int) (next int, ok bool) {
	if current >= limit {
		return 0, false
	}

	scaled := math.Ceil(float64(current) * factor)
	if scaled >= float64(limit) {
		return limit, true
	}

	next = int(scaled)
	if next < current+1 {
		next = current + 1
	}
	return next, true
}

// relocate copies the keep oldest live elements of src into dst starting at
// slot 0 and returns the new front and back. The live run in src starts at
// front; when it wraps it is copied as two linear segments, src[front:] followed
// by src[:back]. keep must not exceed the live count nor len(dst).
func relocate[T any](dst, src []T, front, back, keep int) (newFront, newBack int) {
	if keep > 0 {
		if front < back {
			copy(dst[:keep], src[front:back])
		} else {
			n := copy(dst[:keep], src[front:])
			copy(dst[n:keep], src[:back])
		}
	}

	if len(dst) == 0 {
		return 0, 0
	}
	return 0, keep % len(dst)
}

// grow enlarges a full buffer by the configured growth factor.
func (q *RingQueue[T]) grow() error {
	oldCapacity := len(q.buffer)

	newCapacity, ok := nextCapacity(oldCapacity, q.opts.growthFactor, q.limit)
	if !ok {
		err := errors.WrapFatal(errors.ErrAllocation, "RingQueue", "grow",
			fmt.Sprintf("grow beyond %d slots", q.limit))
		q.recordAllocationFailure(err, oldCapacity+1)
		return err
	}

	if err := q.reallocate(newCapacity, q.count); err != nil {
		return err
	}

	q.stats.Grow()
	if q.metrics != nil {
		q.metrics.recordGrow()
	}

	q.opts.logger.Debug("ring queue grew",
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
		"count", q.count)

	return nil
}

// Resize changes the capacity to exactly newCapacity slots. It can grow or
// shrink the queue.
//
// When newCapacity is smaller than Size(), only the oldest newCapacity elements
// are kept, in their FIFO order, and the newest Size()-newCapacity elements are
// discarded. Discarded elements are handed to the truncate callback, if one is
// configured, and counted in Stats().Truncated(). This truncation is part of the
// contract, not an error.
//
// newCapacity below 1 fails with errors.ErrInvalidCapacity. A capacity the
// storage manager cannot allocate fails with errors.ErrAllocation and leaves
// the queue unchanged. Every successful Resize invalidates outstanding iterators.
func (q *RingQueue[T]) Resize(newCapacity int) error {
	if newCapacity < 1 {
		if q.metrics != nil {
			q.metrics.recordError("invalid_capacity")
		}
		return errors.WrapInvalid(errors.ErrInvalidCapacity, "RingQueue", "Resize",
			fmt.Sprintf("resize to %d slots", newCapacity))
	}

	oldCapacity := len(q.buffer)
	keep := min(newCapacity, q.count)

	var dropped []T
	if keep < q.count && q.opts.truncateCallback != nil {
		dropped = make([]T, 0, q.count-keep)
		for i := keep; i < q.count; i++ {
			dropped = append(dropped, q.buffer[q.physical(i)])
		}
	}
	truncated := q.count - keep

	if err := q.reallocate(newCapacity, keep); err != nil {
		return err
	}

	q.stats.Resize()
	if truncated > 0 {
		q.stats.Truncate(int64(truncated))
	}
	if q.metrics != nil {
		q.metrics.recordResize(truncated)
	}

	q.opts.logger.Debug("ring queue resized",
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
		"count", q.count,
		"dropped", truncated)

	for _, item := range dropped {
		q.opts.truncateCallback(item)
	}

	return nil
}

// reallocate moves the keep oldest elements into a fresh buffer of newCapacity
// slots. The queue is untouched when allocation fails.
func (q *RingQueue[T]) reallocate(newCapacity, keep int) error {
	buf, err := allocate[T](newCapacity, q.limit)
	if err != nil {
		q.recordAllocationFailure(err, newCapacity)
		return err
	}

	q.front, q.back = relocate(buf, q.buffer, q.front, q.back, keep)
	q.buffer = buf
	q.count = keep
	q.epoch++

	q.stats.UpdateSize(int64(q.count), int64(newCapacity))
	if q.metrics != nil {
		q.metrics.recordRelocation(keep, newCapacity)
	}

	return nil
}

func (q *RingQueue[T]) recordAllocationFailure(err error, requested int) {
	q.stats.AllocationFailure()
	if q.metrics != nil {
		q.metrics.recordError("allocation")
	}
	q.opts.logger.Error("ring queue allocation failed",
		"capacity", len(q.buffer),
		"requested", requested,
		"count", q.count,
		"error", err)
}
