// Package cyclic provides a periodic task scheduler for soft real-time
// workloads: register work to run at a fixed period on its own OS thread
// with a configured priority, and the scheduler handles cadence, drift
// compensation, and timeout detection.
//
// # Quick Start
//
//	sched := cyclic.NewScheduler("control-loop", 0)
//	_, err := sched.AttachTask("poll-sensor", func(ctx context.Context) error {
//		return pollSensor(ctx)
//	}, 50*time.Millisecond, cyclic.PriorityAboveNormal)
//	sched.Activate()
//	defer sched.Close()
//
// # Key Concepts
//
// Task: the unit of periodic work, implementing RunOnce, Name, and
// NotifyDurationTimeout. Agent wraps a name, action, and optional timeout
// callback into a Task for hosts that don't want to define their own type.
//
// Worker: pairs one Task with one OS thread and one TimeMonitor. It drives
// the task every period, recording duration and interval samples and
// surfacing deviations as fault counts rather than silently absorbing
// drift.
//
// Scheduler: the registry that owns a set of Workers, starts and stops
// them together, and enforces a configured worker limit.
//
// # Observability
//
// corelog carries a process-wide pluggable log sink. The observability/
// prometheus subpackage adapts Worker/Scheduler statistics into
// Prometheus collectors, both as a push-based per-iteration histogram
// (IterationExporter) and a pull-based periodic snapshot (SnapshotPoller).
package cyclic
