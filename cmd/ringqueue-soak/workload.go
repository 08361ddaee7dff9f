package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	"github.com/c360/ringqueue/errors"
	"github.com/c360/ringqueue/pkg/ringqueue"
)

// Step operations
const (
	OpEnqueue = "enqueue"
	OpDequeue = "dequeue"
	OpResize  = "resize"
)

// Workload describes one soak run.
type Workload struct {
	Name string `json:"name" yaml:"name"`

	// Queue configures the queue under test. Zero fields take the defaults.
	Queue ringqueue.Config `json:"queue" yaml:"queue"`

	// MetricsPrefix labels the queue's Prometheus metrics. Empty disables them.
	MetricsPrefix string `json:"metrics_prefix" yaml:"metrics_prefix"`

	// Repeat runs Steps this many times; values below 1 mean once.
	Repeat int `json:"repeat" yaml:"repeat"`

	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is one workload operation. Count applies to enqueue and dequeue,
// Capacity to resize.
type Step struct {
	Op       string `json:"op" yaml:"op"`
	Count    int    `json:"count,omitempty" yaml:"count,omitempty"`
	Capacity int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// loadWorkload reads a workload file. Files ending in .json are decoded as
// JSON, anything else as YAML.
func loadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "soak", "loadWorkload", fmt.Sprintf("read %s", path))
	}
	return parseWorkload(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

func parseWorkload(data []byte, isJSON bool) (*Workload, error) {
	w := &Workload{}

	var err error
	if isJSON {
		err = sonnet.Unmarshal(data, w)
	} else {
		err = yaml.Unmarshal(data, w)
	}
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %v", errors.ErrParsingFailed, err),
			"soak", "parseWorkload", "decode workload")
	}

	w.applyDefaults()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workload) applyDefaults() {
	defaults := ringqueue.DefaultConfig()
	if w.Queue.InitialCapacity == 0 {
		w.Queue.InitialCapacity = defaults.InitialCapacity
	}
	if w.Queue.GrowthFactor == 0 {
		w.Queue.GrowthFactor = defaults.GrowthFactor
	}
	if w.Repeat < 1 {
		w.Repeat = 1
	}
	if w.Name == "" {
		w.Name = "unnamed"
	}
}

// Validate checks the queue configuration and every step.
func (w *Workload) Validate() error {
	if err := w.Queue.Validate(); err != nil {
		return errors.WrapInvalid(err, "soak", "Validate", "queue config")
	}
	if len(w.Steps) == 0 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "soak", "Validate", "workload has no steps")
	}

	for i, step := range w.Steps {
		switch step.Op {
		case OpEnqueue, OpDequeue:
			if step.Count < 1 {
				return errors.WrapInvalid(errors.ErrInvalidData, "soak", "Validate",
					fmt.Sprintf("step %d: %s count must be positive, got %d", i, step.Op, step.Count))
			}
		case OpResize:
			// Capacities below 1 are allowed: the run expects ErrInvalidCapacity.
		default:
			return errors.WrapInvalid(errors.ErrInvalidData, "soak", "Validate",
				fmt.Sprintf("step %d: unknown op %q", i, step.Op))
		}
	}
	return nil
}
