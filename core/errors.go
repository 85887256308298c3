package core

import "errors"

var (
	// ErrInvalidPeriod is returned when a worker is constructed or attached
	// with a non-positive period.
	ErrInvalidPeriod = errors.New("core: period must be greater than zero")

	// ErrWorkerLimitExceeded is returned by a Scheduler's Attach* methods
	// once the configured maximum worker count has been reached.
	ErrWorkerLimitExceeded = errors.New("core: scheduler worker limit exceeded")

	// ErrSchedulerTerminated is returned by operations attempted on a
	// Scheduler after it has been deactivated and torn down.
	ErrSchedulerTerminated = errors.New("core: scheduler already terminated")

	// ErrNilTask is returned when a nil Task is attached.
	ErrNilTask = errors.New("core: task must not be nil")
)
