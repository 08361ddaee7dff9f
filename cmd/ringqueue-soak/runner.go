package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/c360/ringqueue/errors"
	"github.com/c360/ringqueue/metric"
	"github.com/c360/ringqueue/pkg/ringqueue"
)

// Laws checked after every step
const (
	LawFIFO       = "fifo"
	LawSize       = "size"
	LawEmpty      = "empty"
	LawTruncation = "truncation"
	LawCapacity   = "capacity"
	LawOrder      = "order"
)

// maxRecordedViolations bounds Report.Violations; the total is always counted.
const maxRecordedViolations = 100

// Violation is a queue result that disagrees with the reference model.
type Violation struct {
	Round  int    `json:"round"`
	Step   int    `json:"step"`
	Law    string `json:"law"`
	Detail string `json:"detail"`
}

// Report summarizes one soak run.
type Report struct {
	RunID           string                 `json:"run_id"`
	Workload        string                 `json:"workload"`
	Rounds          int                    `json:"rounds"`
	Steps           int                    `json:"steps"`
	Enqueued        int                    `json:"enqueued"`
	Dequeued        int                    `json:"dequeued"`
	Truncated       int                    `json:"truncated"`
	ViolationCount  int                    `json:"violation_count"`
	Violations      []Violation            `json:"violations,omitempty"`
	FinalSize       int                    `json:"final_size"`
	FinalCapacity   int                    `json:"final_capacity"`
	Stats           ringqueue.StatsSummary `json:"stats"`
	Duration        time.Duration          `json:"duration"`
	CompletedRounds int                    `json:"completed_rounds"`
}

// Passed reports whether the run finished without violations.
func (r *Report) Passed() bool {
	return r.ViolationCount == 0
}

// Runner drives a RingQueue[int] through a workload alongside a plain slice
// model of the expected contents.
type Runner struct {
	workload *Workload
	logger   *slog.Logger
	registry *metric.MetricsRegistry

	queue   *ringqueue.RingQueue[int]
	model   []int
	next    int
	dropped []int
	report  *Report
}

// NewRunner creates a runner. registry may be nil, which disables metrics.
func NewRunner(workload *Workload, logger *slog.Logger, registry *metric.MetricsRegistry) *Runner {
	return &Runner{
		workload: workload,
		logger:   logger,
		registry: registry,
	}
}

// Run executes the workload. Violations are collected in the report; an error
// is returned only when the run could not complete, such as an allocation
// failure or a cancelled context.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID, "workload", r.workload.Name)

	r.report = &Report{
		RunID:    runID,
		Workload: r.workload.Name,
		Rounds:   r.workload.Repeat,
	}
	r.model = nil
	r.next = 0

	options := []ringqueue.Option[int]{
		ringqueue.WithLogger[int](logger),
		ringqueue.WithTruncateCallback[int](func(v int) { r.dropped = append(r.dropped, v) }),
	}
	if r.registry != nil && r.workload.MetricsPrefix != "" {
		options = append(options, ringqueue.WithMetrics[int](r.registry, r.workload.MetricsPrefix))
	}

	q, err := ringqueue.NewFromConfig[int](r.workload.Queue, options...)
	if err != nil {
		return nil, errors.Wrap(err, "soak", "Run", "create queue")
	}
	r.queue = q

	r.recordStatus(metric.RunStatusRunning)
	logger.Info("soak run started",
		"rounds", r.workload.Repeat,
		"steps", len(r.workload.Steps),
		"initial_capacity", q.Capacity())

	start := time.Now()
	for round := range r.workload.Repeat {
		for i, step := range r.workload.Steps {
			if err := ctx.Err(); err != nil {
				r.finish(start)
				r.recordStatus(metric.RunStatusIdle)
				return r.report, errors.WrapTransient(err, "soak", "Run", "execute steps")
			}

			stepStart := time.Now()
			elements, err := r.apply(round, i, step)
			if err != nil {
				r.finish(start)
				r.recordStatus(metric.RunStatusViolated)
				return r.report, errors.Wrap(err, "soak", "Run", fmt.Sprintf("round %d step %d %s", round, i, step.Op))
			}
			r.report.Steps++

			if r.registry != nil {
				r.registry.CoreMetrics().RecordStep(step.Op, elements, time.Since(stepStart))
			}
		}
		r.report.CompletedRounds++
		logger.Debug("soak round completed", "round", round, "size", q.Size(), "capacity", q.Capacity())
	}

	if values := q.Values(); !slices.Equal(values, r.model) {
		r.violate(r.workload.Repeat, len(r.workload.Steps), LawOrder,
			fmt.Sprintf("final contents differ: %d elements in queue, %d expected", len(values), len(r.model)))
	}

	r.finish(start)
	if r.report.Passed() {
		r.recordStatus(metric.RunStatusPassed)
	} else {
		r.recordStatus(metric.RunStatusViolated)
	}

	return r.report, nil
}

// apply executes one step against the queue and the model and checks the
// laws. It returns the number of elements the step moved.
func (r *Runner) apply(round, index int, step Step) (int, error) {
	q := r.queue
	moved := 0

	switch step.Op {
	case OpEnqueue:
		for range step.Count {
			if err := q.Enqueue(r.next); err != nil {
				return moved, err
			}
			r.model = append(r.model, r.next)
			r.next++
			moved++
		}
		r.report.Enqueued += moved

	case OpDequeue:
		for range step.Count {
			v, err := q.Dequeue()
			if len(r.model) == 0 {
				if !stderrors.Is(err, errors.ErrEmptyQueue) {
					r.violate(round, index, LawEmpty, fmt.Sprintf("dequeue on empty queue returned %d, %v", v, err))
				}
				continue
			}

			want := r.model[0]
			r.model = r.model[1:]
			if err != nil {
				r.violate(round, index, LawFIFO, fmt.Sprintf("dequeue failed with %d queued: %v", len(r.model)+1, err))
				continue
			}
			if v != want {
				r.violate(round, index, LawFIFO, fmt.Sprintf("dequeued %d, want %d", v, want))
			}
			moved++
		}
		r.report.Dequeued += moved

	case OpResize:
		r.dropped = r.dropped[:0]
		err := q.Resize(step.Capacity)

		if step.Capacity < 1 {
			if !stderrors.Is(err, errors.ErrInvalidCapacity) {
				r.violate(round, index, LawCapacity,
					fmt.Sprintf("resize to %d returned %v, want invalid capacity", step.Capacity, err))
			}
			break
		}
		if err != nil {
			return 0, err
		}

		keep := min(step.Capacity, len(r.model))
		if !slices.Equal(r.dropped, r.model[keep:]) {
			r.violate(round, index, LawTruncation,
				fmt.Sprintf("resize to %d dropped %d elements, want %d", step.Capacity, len(r.dropped), len(r.model)-keep))
		}
		r.model = r.model[:keep]
		moved = keep
		r.report.Truncated += len(r.dropped)

		if q.Capacity() != step.Capacity {
			r.violate(round, index, LawCapacity,
				fmt.Sprintf("capacity %d after resize to %d", q.Capacity(), step.Capacity))
		}
	}

	if q.Size() != len(r.model) {
		r.violate(round, index, LawSize, fmt.Sprintf("size %d, want %d", q.Size(), len(r.model)))
	}

	return moved, nil
}

func (r *Runner) violate(round, step int, law, detail string) {
	r.report.ViolationCount++
	if len(r.report.Violations) < maxRecordedViolations {
		r.report.Violations = append(r.report.Violations, Violation{
			Round:  round,
			Step:   step,
			Law:    law,
			Detail: detail,
		})
	}

	if r.registry != nil {
		r.registry.CoreMetrics().RecordViolation(law)
	}
	r.logger.Warn("queue law violated", "law", law, "round", round, "step", step, "detail", detail)
}

func (r *Runner) finish(start time.Time) {
	r.report.Duration = time.Since(start)
	r.report.FinalSize = r.queue.Size()
	r.report.FinalCapacity = r.queue.Capacity()
	r.report.Stats = r.queue.Stats().Summary()
}

func (r *Runner) recordStatus(status int) {
	if r.registry != nil {
		r.registry.CoreMetrics().RecordRunStatus(status)
	}
}
