package core

import (
	"time"

	"github.com/google/uuid"
)

// WorkerStats is a point-in-time snapshot of a single Worker, safe to read
// without synchronizing with the worker's own goroutine (every field here
// is sourced from an atomic or a value copied under the worker's mutex).
type WorkerStats struct {
	ID          uuid.UUID
	TaskName    string
	Priority    Priority
	Period      time.Duration
	DurationCap time.Duration // configured duration_max ceiling; 0 = unbounded

	Started    bool
	Terminated bool

	ScheduledCount  uint64
	ExecutionErrors uint64

	DurationCur time.Duration
	DurationMin time.Duration
	DurationMax time.Duration
	IntervalCur time.Duration
	IntervalMin time.Duration
	IntervalMax time.Duration

	DurationFaultCount uint64
	IntervalFaultCount uint64
}

// SchedulerStats is a point-in-time snapshot of a Scheduler and every
// worker it currently owns.
type SchedulerStats struct {
	Active     bool
	Terminated bool
	MaxWorkers int
	Workers    []WorkerStats
}
