package ringqueue

import (
	"iter"

	"github.com/c360/ringqueue/errors"
)

// Iterator is a read/write cursor over the live elements of a RingQueue in
// FIFO order. It does not own the queue.
//
// An iterator is invalidated when its queue reallocates (growth, Resize, Clear,
// Move) or when Dequeue removes the element it points at. Value and Set on an
// invalidated iterator, or one positioned at End, return errors.ErrIteratorInvalid.
type Iterator[T any] struct {
	q     *RingQueue[T]
	epoch uint64
	pos   uint64 // absolute position: dequeues before the element plus its offset
}

// Begin returns an iterator at the oldest element. On an empty queue it equals End.
func (q *RingQueue[T]) Begin() Iterator[T] {
	return Iterator[T]{q: q, epoch: q.epoch, pos: q.popped}
}

// End returns the sentinel position one past the newest element.
func (q *RingQueue[T]) End() Iterator[T] {
	return Iterator[T]{q: q, epoch: q.epoch, pos: q.popped + uint64(q.count)}
}

// FindFunc returns an iterator at the first element, in FIFO order, for which
// match returns true, or End when there is none.
func (q *RingQueue[T]) FindFunc(match func(T) bool) Iterator[T] {
	for i := 0; i < q.count; i++ {
		if match(q.buffer[q.physical(i)]) {
			return Iterator[T]{q: q, epoch: q.epoch, pos: q.popped + uint64(i)}
		}
	}
	return q.End()
}

// Find returns an iterator at the first element equal to value, or q.End().
func Find[T comparable](q *RingQueue[T], value T) Iterator[T] {
	return q.FindFunc(func(item T) bool { return item == value })
}

// All returns a sequence over the live elements in FIFO order. Each call starts
// from the current front.
func (q *RingQueue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.count; i++ {
			if !yield(q.buffer[q.physical(i)]) {
				return
			}
		}
	}
}

// Next advances one element and reports whether the new position holds an
// element. Next at End, or on an invalidated iterator, does not move.
func (it *Iterator[T]) Next() bool {
	if !it.current() || it.atEnd() {
		return false
	}
	it.pos++
	return !it.atEnd()
}

// Valid reports whether the iterator points at a live element.
func (it Iterator[T]) Valid() bool {
	return it.current() && !it.atEnd()
}

// Value returns the element under the iterator.
func (it Iterator[T]) Value() (T, error) {
	var zero T
	slot, err := it.slot("Value")
	if err != nil {
		return zero, err
	}
	return it.q.buffer[slot], nil
}

// Set overwrites the element under the iterator in place. The queue size does
// not change.
func (it Iterator[T]) Set(value T) error {
	slot, err := it.slot("Set")
	if err != nil {
		return err
	}
	it.q.buffer[slot] = value
	return nil
}

// Equal reports whether both iterators refer to the same position of the same
// queue buffer.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.q == other.q && it.epoch == other.epoch && it.pos == other.pos
}

// current reports whether the queue still uses the buffer the iterator was
// issued for and the element has not been dequeued.
func (it Iterator[T]) current() bool {
	return it.q != nil && it.epoch == it.q.epoch && it.pos >= it.q.popped
}

func (it Iterator[T]) atEnd() bool {
	return it.pos >= it.q.popped+uint64(it.q.count)
}

func (it Iterator[T]) slot(method string) (int, error) {
	if !it.current() {
		return 0, errors.WrapInvalid(errors.ErrIteratorInvalid, "Iterator", method, "check buffer epoch")
	}
	if it.atEnd() {
		return 0, errors.WrapInvalid(errors.ErrIteratorInvalid, "Iterator", method, "dereference end")
	}
	return it.q.physical(int(it.pos - it.q.popped)), nil
}
