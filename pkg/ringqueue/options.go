package ringqueue

import (
	"log/slog"

	"github.com/c360/ringqueue/metric"
)

// DefaultGrowthFactor is the capacity multiplier applied when a full queue grows.
const DefaultGrowthFactor = 2.0

// TruncateCallback is called for every element discarded by a shrinking Resize,
// oldest discarded element first. Owners of resources held by elements release
// them here.
type TruncateCallback[T any] func(item T)

// Option configures queue behavior using the functional options pattern.
type Option[T any] func(*queueOptions[T])

// queueOptions holds internal configuration for queue instances.
// Stats are always collected; metrics are optional and exposed via WithMetrics().
type queueOptions[T any] struct {
	growthFactor     float64
	maxCapacity      int // 0 means the platform slot limit for T
	logger           *slog.Logger
	truncateCallback TruncateCallback[T]

	// metricsReg is optional - if provided, queue stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the queue label for Prometheus metrics
	metricsPrefix string
}

// WithGrowthFactor sets the multiplier applied to capacity when the queue is full.
// Factors <= 1 are ignored; growth always adds at least one slot.
func WithGrowthFactor[T any](factor float64) Option[T] {
	return func(opts *queueOptions[T]) {
		if factor > 1 {
			opts.growthFactor = factor
		}
	}
}

// WithMaxCapacity bounds the number of slots the queue may allocate. Growth or
// Resize beyond the bound fails with errors.ErrAllocation. Values <= 0 are ignored.
func WithMaxCapacity[T any](maxCapacity int) Option[T] {
	return func(opts *queueOptions[T]) {
		if maxCapacity > 0 {
			opts.maxCapacity = maxCapacity
		}
	}
}

// WithLogger sets the logger used for reallocation and failure records.
// A nil logger is ignored and slog.Default() is used.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(opts *queueOptions[T]) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithTruncateCallback sets a callback invoked for elements discarded by Resize.
func WithTruncateCallback[T any](callback TruncateCallback[T]) Option[T] {
	return func(opts *queueOptions[T]) {
		opts.truncateCallback = callback
	}
}

// WithMetrics enables Prometheus metrics export for queue statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[T any](registry *metric.MetricsRegistry, prefix string) Option[T] {
	return func(opts *queueOptions[T]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// applyOptions applies functional options to create the final queue configuration.
func applyOptions[T any](options ...Option[T]) *queueOptions[T] {
	opts := &queueOptions[T]{
		growthFactor: DefaultGrowthFactor,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	return opts
}

// withoutMetrics returns a copy of the options that does not register metrics.
// Metrics are keyed by prefix, so a second queue cannot reuse them.
func (o *queueOptions[T]) withoutMetrics() *queueOptions[T] {
	clone := *o
	clone.metricsReg = nil
	clone.metricsPrefix = ""
	return &clone
}
