// Package errors provides standardized error handling patterns for ringqueue packages.
//
// # Overview
//
// The errors package implements a three-class error classification system: Transient
// (temporary, the caller may try again), Invalid (misuse or bad input, do not retry),
// and Fatal (unrecoverable, stop processing).
//
// The classification integrates with Go's standard error handling patterns,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Queue Errors
//
// The ring queue reports two conditions defined by its contract:
//
//   - ErrEmptyQueue: Dequeue or Peek on a queue with no live elements. Classified
//     Invalid. The queue is left unchanged; check Empty() first or handle the error.
//   - ErrAllocation: the storage manager could not obtain a buffer of the requested
//     size. Classified Fatal and never retried internally.
//
// Two further errors cover misuse of the API:
//
//   - ErrInvalidCapacity: an explicit Resize below one slot.
//   - ErrIteratorInvalid: dereferencing an iterator after the buffer was reallocated,
//     after Dequeue moved the front past it, or at End().
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")  // For retryable errors
//	errors.WrapFatal(err, "Component", "Method", "action")      // For unrecoverable errors
//	errors.WrapInvalid(err, "Component", "Method", "action")    // For misuse and bad input
//
// The generic Wrap() function adds context without changing the classification:
//
//	errors.Wrap(err, "Component", "Method", "action")
//
// # Integration with errors.As/Is
//
//	v, err := q.Dequeue()
//	if errors.Is(err, errors.ErrEmptyQueue) {
//	    // nothing to do yet
//	}
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    log.Printf("Component: %s, Class: %s", ce.Component, ce.Class)
//	}
//
// # Thread Safety
//
// All classification and wrapping operations are safe for concurrent use. Error
// variables are immutable. A ClassifiedError is safe to share after creation.
package errors
