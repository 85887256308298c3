package core

import "context"

// Task is the unit of periodic work a Worker drives. Unlike the pool-style
// Task closures elsewhere in this lineage, a Task here is a long-lived
// handle: the same instance is invoked once per scheduled interval for the
// worker's entire lifetime.
type Task interface {
	// RunOnce performs one iteration of the task's work. A returned error
	// is counted as an execution error and logged; it never stops the
	// worker's cadence.
	RunOnce(ctx context.Context) error

	// Name identifies the task in logs and metrics.
	Name() string

	// NotifyDurationTimeout is called once per iteration, after the
	// duration sample for that iteration has been recorded, with whether
	// the iteration breached its duration deviation tolerance. It is
	// called every iteration (not only on transitions) so the task itself
	// can latch edge detection if it cares to.
	NotifyDurationTimeout(isTimeout bool)
}

// Routine is an optional refinement of Task for work that naturally splits
// into a read phase and a write phase (e.g. poll a sensor, then publish the
// result). A Worker that detects a Task also implementing Routine calls
// both phases in sequence instead of a single RunOnce call; it still takes
// exactly one duration sample per iteration, covering both phases.
type Routine interface {
	PerformInboundRoutine(ctx context.Context) error
	PerformOutboundRoutine(ctx context.Context) error
}

// Action is the nullary effect an Agent performs on each RunOnce.
type Action func(ctx context.Context) error

// TimeoutCallback is the optional effect an Agent invokes with the current
// duration-timeout status on every iteration.
type TimeoutCallback func(isTimeout bool)

// Agent wraps a name, an action, and an optional timeout callback into a
// Task, so a caller can register ad-hoc work without defining a named type.
// Agents exist purely as glue: the scheduler's Attach* convenience methods
// build one internally, and NewAgent is exported for callers who want to
// construct a Task by hand.
type Agent struct {
	name      string
	action    Action
	onTimeout TimeoutCallback
}

var _ Task = (*Agent)(nil)

// NewAgent builds a Task from a name and an action, with no timeout
// callback.
func NewAgent(name string, action Action) *Agent {
	return NewAgentWithTimeout(name, action, nil)
}

// NewAgentWithTimeout builds a Task from a name, an action, and a timeout
// callback invoked on every iteration with the current duration-timeout
// status.
func NewAgentWithTimeout(name string, action Action, onTimeout TimeoutCallback) *Agent {
	return &Agent{
		name:      name,
		action:    action,
		onTimeout: onTimeout,
	}
}

// RunOnce invokes the wrapped action.
func (a *Agent) RunOnce(ctx context.Context) error {
	if a.action == nil {
		return nil
	}
	return a.action(ctx)
}

// Name returns the agent's configured name.
func (a *Agent) Name() string {
	return a.name
}

// NotifyDurationTimeout forwards to the configured callback, if any.
func (a *Agent) NotifyDurationTimeout(isTimeout bool) {
	if a.onTimeout != nil {
		a.onTimeout(isTimeout)
	}
}
