package ringqueue

import (
	"fmt"

	"github.com/c360/ringqueue/errors"
)

// Config contains configuration for queue creation.
type Config struct {
	// InitialCapacity is the slot count allocated at construction.
	InitialCapacity int `json:"initial_capacity" yaml:"initial_capacity"`

	// GrowthFactor multiplies the capacity when a full queue grows.
	GrowthFactor float64 `json:"growth_factor" yaml:"growth_factor"`

	// MaxCapacity bounds the slot count. Zero means the platform limit.
	MaxCapacity int `json:"max_capacity" yaml:"max_capacity"`
}

// DefaultConfig returns a default queue configuration.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultCapacity,
		GrowthFactor:    DefaultGrowthFactor,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.InitialCapacity < 1 {
		return errors.WrapInvalid(errors.ErrInvalidData, "ringqueue", "Validate",
			fmt.Sprintf("initial_capacity must be positive, got %d", c.InitialCapacity))
	}
	if c.GrowthFactor <= 1 {
		return errors.WrapInvalid(errors.ErrInvalidData, "ringqueue", "Validate",
			fmt.Sprintf("growth_factor must be greater than 1, got %g", c.GrowthFactor))
	}
	if c.MaxCapacity < 0 {
		return errors.WrapInvalid(errors.ErrInvalidData, "ringqueue", "Validate",
			fmt.Sprintf("max_capacity must not be negative, got %d", c.MaxCapacity))
	}
	if c.MaxCapacity > 0 && c.MaxCapacity < c.InitialCapacity {
		return errors.WrapInvalid(errors.ErrInvalidData, "ringqueue", "Validate",
			fmt.Sprintf("max_capacity %d is below initial_capacity %d", c.MaxCapacity, c.InitialCapacity))
	}
	return nil
}

// ConfigOptions translates the growth settings of config into functional options.
func ConfigOptions[T any](config Config) []Option[T] {
	options := []Option[T]{WithGrowthFactor[T](config.GrowthFactor)}
	if config.MaxCapacity > 0 {
		options = append(options, WithMaxCapacity[T](config.MaxCapacity))
	}
	return options
}

// NewFromConfig creates a queue based on the provided configuration.
// Additional functional options can be passed to configure logging, metrics,
// callbacks, etc. They are applied after the configuration and win on conflict.
func NewFromConfig[T any](config Config, options ...Option[T]) (*RingQueue[T], error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "ringqueue", "NewFromConfig", "config validation")
	}

	all := append(ConfigOptions[T](config), options...)
	return newRingQueue(config.InitialCapacity, applyOptions(all...))
}
