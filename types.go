package cyclic

import (
	"time"

	"github.com/cyclicrt/cyclic/core"
)

// Re-export commonly used types from core so most callers only need to
// import this package.

// Task is the unit of periodic work a Worker drives.
type Task = core.Task

// Routine is the optional inbound/outbound refinement of Task.
type Routine = core.Routine

// Action is the nullary effect an Agent performs on each RunOnce.
type Action = core.Action

// TimeoutCallback is the optional effect an Agent invokes with the
// current duration-timeout status on every iteration.
type TimeoutCallback = core.TimeoutCallback

// Agent wraps a name, an action, and an optional timeout callback into a
// Task.
type Agent = core.Agent

// Priority is a portable thread priority.
type Priority = core.Priority

// SchedPolicy selects the OS scheduling class a worker's thread runs
// under.
type SchedPolicy = core.SchedPolicy

// Worker pairs one task with one thread and one time monitor.
type Worker = core.Worker

// TimeMonitor tracks per-iteration duration and interval statistics.
type TimeMonitor = core.TimeMonitor

// Scheduler is the registry and lifecycle owner for a set of Workers.
type Scheduler = core.Scheduler

// Observer receives a push notification after every completed iteration.
type Observer = core.Observer

// WorkerStats is a point-in-time snapshot of a single Worker.
type WorkerStats = core.WorkerStats

// SchedulerStats is a point-in-time snapshot of a Scheduler.
type SchedulerStats = core.SchedulerStats

// SchedulerConfig holds configuration options for Scheduler.
type SchedulerConfig = core.SchedulerConfig

// Priority constants.
const (
	PriorityIdle         = core.PriorityIdle
	PriorityLowest       = core.PriorityLowest
	PriorityBelowNormal  = core.PriorityBelowNormal
	PriorityNormal       = core.PriorityNormal
	PriorityAboveNormal  = core.PriorityAboveNormal
	PriorityHighest      = core.PriorityHighest
	PriorityTimeCritical = core.PriorityTimeCritical
)

// Scheduling policy constants.
const (
	SchedDefault              = core.SchedDefault
	SchedRealtimeFIFO         = core.SchedRealtimeFIFO
	SchedRealtimeRoundRobin   = core.SchedRealtimeRoundRobin
	SchedNonRealtimeTimeshare = core.SchedNonRealtimeTimeshare
)

// Sentinel errors, re-exported for callers using errors.Is without
// importing core directly.
var (
	ErrInvalidPeriod       = core.ErrInvalidPeriod
	ErrWorkerLimitExceeded = core.ErrWorkerLimitExceeded
	ErrSchedulerTerminated = core.ErrSchedulerTerminated
	ErrNilTask             = core.ErrNilTask
)

// NewAgent builds a Task from a name and an action.
func NewAgent(name string, action Action) *Agent {
	return core.NewAgent(name, action)
}

// NewAgentWithTimeout builds a Task from a name, an action, and a timeout
// callback.
func NewAgentWithTimeout(name string, action Action, onTimeout TimeoutCallback) *Agent {
	return core.NewAgentWithTimeout(name, action, onTimeout)
}

// NewWorker constructs a Worker bound to task.
func NewWorker(task Task, period time.Duration, priority Priority, durationMax time.Duration) (*Worker, error) {
	return core.NewWorker(task, period, priority, durationMax)
}

// NewCriticalWorker constructs a Worker whose Shutdown always lets the
// current cycle's wait run to completion instead of waking it early.
func NewCriticalWorker(task Task, period time.Duration, priority Priority) (*Worker, error) {
	return core.NewCriticalWorker(task, period, priority)
}

// NewScheduler builds a Scheduler with the given name and worker limit
// (0 = unbounded).
func NewScheduler(name string, maxWorkers int) *Scheduler {
	return core.NewScheduler(name, maxWorkers)
}

// DefaultSchedulerConfig returns a SchedulerConfig with unbounded workers
// and no observer.
func DefaultSchedulerConfig() *SchedulerConfig {
	return core.DefaultSchedulerConfig()
}

// NewSchedulerWithConfig builds a Scheduler from an explicit config.
func NewSchedulerWithConfig(name string, config *SchedulerConfig) *Scheduler {
	return core.NewSchedulerWithConfig(name, config)
}
