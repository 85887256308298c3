package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyclicrt/cyclic/corelog"
	"github.com/cyclicrt/cyclic/platform"
)

// durationMsgInterval is how many completed iterations pass between
// periodic Info-level summary logs.
const durationMsgInterval = 60

// Worker owns one task, one OS thread, and one TimeMonitor, and drives the
// task at a fixed period until told to stop. A Worker is constructed
// inactive; ScheduleWork starts its thread, Shutdown stops it cooperatively.
type Worker struct {
	id       uuid.UUID
	task     Task
	routine  Routine // non-nil when task also implements Routine
	period   time.Duration
	priority Priority
	policy   SchedPolicy
	durationMax time.Duration // 0 = unbounded lifetime

	monitor  *TimeMonitor
	observer Observer

	// immediateWake controls whether Shutdown wakes a sleeping worker
	// early. true (the default, used by NewWorker) cuts the current wait
	// short. false (used by NewCriticalWorker) lets the wait run to its
	// natural end before termination is observed.
	immediateWake bool

	mu         sync.Mutex
	cond       *sync.Cond
	terminated bool
	started    bool

	handle      *platform.Handle
	handleReady chan struct{} // closed once handle is safe to read

	scheduledCount  uint64
	executionErrors uint64
	msgCount        uint32

	activatedAt time.Time
	last        time.Time
}

// NewWorker constructs a Worker bound to task, running every period with
// the given priority. durationMax bounds the worker's total lifetime; zero
// means unbounded. The worker does not start until ScheduleWork is called.
func NewWorker(task Task, period time.Duration, priority Priority, durationMax time.Duration) (*Worker, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}

	w := &Worker{
		id:            uuid.New(),
		task:          task,
		period:        period,
		priority:      priority,
		policy:        SchedDefault,
		durationMax:   durationMax,
		monitor:       NewTimeMonitor(period, period),
		observer:      NoopObserver,
		immediateWake: true,
		handleReady:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	if r, ok := task.(Routine); ok {
		w.routine = r
	}
	return w, nil
}

// NewCriticalWorker constructs a Worker whose Shutdown never cuts a
// sleeping cycle short: it always completes both the current RunOnce and
// the remainder of its current wait before observing termination, rather
// than being woken early the way a plain Worker is. Intended for work
// that must never be interrupted mid-cycle, such as a watchdog that
// expects to run on a clean, undisturbed cadence right up to the moment
// it chooses to stop. Has an unbounded lifetime: a critical worker is
// built with no duration cap and has no way to set one.
func NewCriticalWorker(task Task, period time.Duration, priority Priority) (*Worker, error) {
	w, err := NewWorker(task, period, priority, 0)
	if err != nil {
		return nil, err
	}
	w.immediateWake = false
	return w, nil
}

// WithSchedPolicy sets the OS scheduling policy applied when the worker's
// thread is spawned. Must be called before ScheduleWork.
func (w *Worker) WithSchedPolicy(policy SchedPolicy) *Worker {
	w.policy = policy
	return w
}

// WithObserver registers an Observer notified after every completed
// iteration. Must be called before ScheduleWork to avoid a race with the
// worker goroutine.
func (w *Worker) WithObserver(observer Observer) *Worker {
	if observer == nil {
		observer = NoopObserver
	}
	w.observer = observer
	return w
}

// TaskName returns the name of the bound task, for logging and stats.
func (w *Worker) TaskName() string { return w.task.Name() }

// ThreadName returns the OS-level name actually applied to the worker's
// thread, which may be a truncated form of TaskName on platforms with a
// short name ceiling. Empty until ScheduleWork has started the thread.
func (w *Worker) ThreadName() string {
	select {
	case <-w.handleReady:
		return platform.ThreadName(w.handle)
	default:
		return ""
	}
}

// ID returns the worker's opaque, process-unique identity. Distinct from
// the task name, which a host may reuse across workers; the ID is stable
// for the worker's lifetime and safe to use as a metrics/log correlation
// key even when two workers share a task name.
func (w *Worker) ID() uuid.UUID { return w.id }

// ScheduleWork starts the worker's thread. Idempotent: calling it again
// while already started is a no-op.
func (w *Worker) ScheduleWork() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.activatedAt = time.Now()
	w.last = w.activatedAt
	w.mu.Unlock()

	w.handle = platform.Spawn(w.task.Name(), platform.Priority(w.priority), platform.SchedPolicy(w.policy), w.run)
	close(w.handleReady)
}

// Shutdown requests termination and returns once the worker's thread has
// joined. Safe to call from any goroutine, and safe to call more than
// once. For a plain Worker this wakes an in-progress wait immediately;
// for a CriticalWorker (immediateWake false) the current wait is left to
// run to its natural end, so termination is only observed at the next
// cycle boundary.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	w.terminated = true
	started := w.started
	immediate := w.immediateWake
	w.mu.Unlock()
	if immediate {
		w.cond.Broadcast()
	}

	if !started {
		return
	}
	// Wait for ScheduleWork to finish publishing the handle before reading
	// it; Join is then safe to call repeatedly, since the thread's done
	// channel stays closed once closed.
	<-w.handleReady
	w.handle.Join()
}

// IsTerminated reports whether the worker has stopped or been told to
// stop.
func (w *Worker) IsTerminated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.terminated
}

// IsStarted reports whether ScheduleWork has been called.
func (w *Worker) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

// Monitor exposes the worker's TimeMonitor for direct inspection.
func (w *Worker) Monitor() *TimeMonitor { return w.monitor }

// Stats returns a point-in-time snapshot of the worker's counters and
// timing statistics.
func (w *Worker) Stats() WorkerStats {
	w.mu.Lock()
	scheduled := w.scheduledCount
	errs := w.executionErrors
	started := w.started
	terminated := w.terminated
	w.mu.Unlock()

	m := w.monitor
	return WorkerStats{
		ID:                 w.id,
		TaskName:           w.task.Name(),
		Priority:           w.priority,
		Period:             w.period,
		DurationCap:        w.durationMax,
		Started:            started,
		Terminated:         terminated,
		ScheduledCount:     scheduled,
		ExecutionErrors:    errs,
		DurationCur:        m.DurationCur(),
		DurationMin:        m.DurationMin(),
		DurationMax:        m.DurationMax(),
		IntervalCur:        m.IntervalCur(),
		IntervalMin:        m.IntervalMin(),
		IntervalMax:        m.IntervalMax(),
		DurationFaultCount: m.DurationFaultCount(),
		IntervalFaultCount: m.IntervalFaultCount(),
	}
}

// run is the worker thread's entry point: the main cyclical loop.
func (w *Worker) run() {
	ctx := context.Background()

	for {
		w.mu.Lock()
		if w.terminated {
			w.mu.Unlock()
			break
		}
		w.mu.Unlock()

		w.monitor.Start()
		w.incScheduled()

		if err := w.invokeTask(ctx); err != nil {
			w.incExecutionErrors()
			corelog.Log(corelog.Warning, fmt.Sprintf("task %s execution error: %v", w.task.Name(), err))
		}

		w.monitor.Stop()
		durationFault := w.monitor.IsDurationTimeout()
		w.task.NotifyDurationTimeout(durationFault)
		w.observer.ObserveIteration(w.task.Name(), w.priority, w.monitor.DurationCur(), durationFault, w.monitor.IsIntervalTimeout())

		if w.checkDurationCapExpired() {
			w.setTerminated()
			break
		}

		w.maybeLogSummary()

		if w.waitForNextCycle() {
			break
		}
	}

	w.logShutdown()
}

func (w *Worker) invokeTask(ctx context.Context) error {
	if w.routine != nil {
		if err := w.routine.PerformInboundRoutine(ctx); err != nil {
			return err
		}
		return w.routine.PerformOutboundRoutine(ctx)
	}
	return w.task.RunOnce(ctx)
}

func (w *Worker) incScheduled() {
	w.mu.Lock()
	w.scheduledCount++
	w.mu.Unlock()
}

func (w *Worker) incExecutionErrors() {
	w.mu.Lock()
	w.executionErrors++
	w.mu.Unlock()
}

func (w *Worker) setTerminated() {
	w.mu.Lock()
	w.terminated = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

func (w *Worker) checkDurationCapExpired() bool {
	if w.durationMax <= 0 {
		return false
	}
	return time.Since(w.activatedAt) > w.durationMax
}

// waitForNextCycle computes the required wait per the drift-surfacing
// formula and blocks on the condition variable until that much time has
// passed or termination is requested. Returns true if the worker should
// stop.
func (w *Worker) waitForNextCycle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.last.Add(w.period)
	now := time.Now()

	// Surface drift honestly: advance by one period, not to now(), so an
	// overrun shows up as an interval fault rather than being absorbed.
	// Cap the catch-up at one period so a long stall doesn't cause a
	// burst of immediate iterations while it works off the backlog.
	if now.Sub(target) > w.period {
		w.last = now
	} else {
		w.last = target
	}

	for {
		if w.terminated {
			return true
		}

		wait := time.Until(target)
		if wait <= 0 {
			return false
		}

		timer := time.AfterFunc(wait, func() {
			w.mu.Lock()
			w.mu.Unlock()
			w.cond.Broadcast()
		})
		w.cond.Wait()
		timer.Stop()

		if w.terminated {
			return true
		}
		if !time.Now().Before(target) {
			return false
		}
		// Spurious wakeup: loop and recheck remaining wait.
	}
}

func (w *Worker) maybeLogSummary() {
	w.mu.Lock()
	w.msgCount++
	due := w.msgCount >= durationMsgInterval
	if due {
		w.msgCount = 0
	}
	w.mu.Unlock()

	if due {
		w.logSummary()
	}
}

func (w *Worker) logSummary() {
	m := w.monitor
	stats := w.Stats()
	corelog.Log(corelog.Info, fmt.Sprintf(
		"task %s periodic summary: scheduled=%d duration(cur/min/max)=%s/%s/%s interval(cur/min/max)=%s/%s/%s faults(duration/interval)=%d/%d",
		w.task.Name(), stats.ScheduledCount,
		m.DurationCur(), m.DurationMin(), m.DurationMax(),
		m.IntervalCur(), m.IntervalMin(), m.IntervalMax(),
		m.DurationFaultCount(), m.IntervalFaultCount()))
}

func (w *Worker) logShutdown() {
	stats := w.Stats()
	corelog.Log(corelog.Info, fmt.Sprintf("task %s worker exiting: scheduled=%d executionErrors=%d",
		w.task.Name(), stats.ScheduledCount, stats.ExecutionErrors))
}
