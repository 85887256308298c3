package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cyclicrt/cyclic/corelog"
)

// Scheduler is the registry and lifecycle owner for a set of Workers. It
// implements Task itself, so a Scheduler can be attached to another
// Scheduler as a composable tier.
type Scheduler struct {
	mu         sync.Mutex
	workers    []*Worker
	agents     []*Agent // agents this scheduler created itself, kept alive alongside their worker
	maxWorkers int
	active     bool
	terminated bool
	name       string
	observer   Observer
}

// SchedulerConfig holds configuration options for Scheduler. All fields are
// optional; a zero value config behaves the same as DefaultSchedulerConfig.
type SchedulerConfig struct {
	// MaxWorkers refuses registrations once the scheduler already owns
	// this many workers. <= 0 means unbounded.
	MaxWorkers int

	// Observer is applied to every worker the scheduler subsequently
	// attaches. Defaults to NoopObserver.
	Observer Observer
}

// DefaultSchedulerConfig returns a config with unbounded workers and no
// observer.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		MaxWorkers: 0,
		Observer:   NoopObserver,
	}
}

// NewScheduler builds a Scheduler that refuses registrations once it
// already owns maxWorkers workers. maxWorkers <= 0 means unbounded.
func NewScheduler(name string, maxWorkers int) *Scheduler {
	cfg := DefaultSchedulerConfig()
	cfg.MaxWorkers = maxWorkers
	return NewSchedulerWithConfig(name, cfg)
}

// NewSchedulerWithConfig builds a Scheduler from an explicit config. A nil
// config is treated as DefaultSchedulerConfig.
func NewSchedulerWithConfig(name string, config *SchedulerConfig) *Scheduler {
	if config == nil {
		config = DefaultSchedulerConfig()
	}
	observer := config.Observer
	if observer == nil {
		observer = NoopObserver
	}
	return &Scheduler{name: name, maxWorkers: config.MaxWorkers, observer: observer}
}

// SetObserver registers an Observer applied to every worker this
// scheduler subsequently attaches (existing workers are unaffected).
func (s *Scheduler) SetObserver(observer Observer) {
	if observer == nil {
		observer = NoopObserver
	}
	s.mu.Lock()
	s.observer = observer
	s.mu.Unlock()
}

// AttachWorker registers task to run every period at priority, with an
// unbounded lifetime. If the scheduler is already active, the new worker
// is started immediately.
func (s *Scheduler) AttachWorker(task Task, period time.Duration, priority Priority) (*Worker, error) {
	return s.attach(task, period, priority, 0)
}

// AttachWorkerWithDuration registers task with a bounded lifetime: the
// worker self-terminates once durationMax has elapsed since activation.
func (s *Scheduler) AttachWorkerWithDuration(task Task, period time.Duration, priority Priority, durationMax time.Duration) (*Worker, error) {
	return s.attach(task, period, priority, durationMax)
}

// AttachTask wraps (name, action) into an Agent, taking shared ownership
// of it, and registers it with an unbounded lifetime.
func (s *Scheduler) AttachTask(name string, action Action, period time.Duration, priority Priority) (*Worker, error) {
	agent := NewAgent(name, action)
	w, err := s.attach(agent, period, priority, 0)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.agents = append(s.agents, agent)
	s.mu.Unlock()
	return w, nil
}

// AttachTaskWithTimeout is AttachTask plus a duration-timeout callback.
func (s *Scheduler) AttachTaskWithTimeout(name string, action Action, period time.Duration, priority Priority, onTimeout TimeoutCallback) (*Worker, error) {
	agent := NewAgentWithTimeout(name, action, onTimeout)
	w, err := s.attach(agent, period, priority, 0)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.agents = append(s.agents, agent)
	s.mu.Unlock()
	return w, nil
}

func (s *Scheduler) attach(task Task, period time.Duration, priority Priority, durationMax time.Duration) (*Worker, error) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return nil, ErrSchedulerTerminated
	}
	if s.maxWorkers > 0 && len(s.workers) >= s.maxWorkers {
		s.mu.Unlock()
		return nil, ErrWorkerLimitExceeded
	}
	active := s.active
	observer := s.observer
	s.mu.Unlock()

	w, err := NewWorker(task, period, priority, durationMax)
	if err != nil {
		return nil, err
	}
	w.WithObserver(observer)

	s.mu.Lock()
	s.workers = append(s.workers, w)
	s.mu.Unlock()

	if active {
		w.ScheduleWork()
	}
	return w, nil
}

// Activate starts every registered worker that hasn't already been
// started. Idempotent.
func (s *Scheduler) Activate() {
	s.mu.Lock()
	if s.active || s.terminated {
		s.mu.Unlock()
		return
	}
	s.active = true
	workers := make([]*Worker, len(s.workers))
	copy(workers, s.workers)
	s.mu.Unlock()

	for _, w := range workers {
		w.ScheduleWork()
	}
}

// Deactivate signals every worker to terminate and joins them all before
// returning. Idempotent. The worker list itself is retained afterward;
// workers whose duration cap already expired are kept as zombies rather
// than removed, so accessors keep working.
func (s *Scheduler) Deactivate() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	workers := make([]*Worker, len(s.workers))
	copy(workers, s.workers)
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, w := range workers {
		w := w
		go func() {
			defer wg.Done()
			w.Shutdown()
		}()
	}
	wg.Wait()

	corelog.Log(corelog.Info, fmt.Sprintf("scheduler %s deactivated %d workers", s.name, len(workers)))
}

// Close deactivates (if not already) and releases the scheduler's
// references to its workers and agents. After Close the scheduler cannot
// be reactivated.
func (s *Scheduler) Close() {
	s.Deactivate()

	s.mu.Lock()
	s.terminated = true
	s.workers = nil
	s.agents = nil
	s.mu.Unlock()
}

// WorkerCount returns the number of workers currently registered,
// including any retained zombies.
func (s *Scheduler) WorkerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}

// Stats returns a point-in-time snapshot of the scheduler and every
// worker it owns.
func (s *Scheduler) Stats() SchedulerStats {
	s.mu.Lock()
	workers := make([]*Worker, len(s.workers))
	copy(workers, s.workers)
	active := s.active
	terminated := s.terminated
	maxWorkers := s.maxWorkers
	s.mu.Unlock()

	stats := SchedulerStats{
		Active:     active,
		Terminated: terminated,
		MaxWorkers: maxWorkers,
		Workers:    make([]WorkerStats, len(workers)),
	}
	for i, w := range workers {
		stats.Workers[i] = w.Stats()
	}
	return stats
}

// Name returns the scheduler's identifying name.
func (s *Scheduler) Name() string { return s.name }

// RunOnce implements Task so a Scheduler can be driven by another
// Scheduler. It is a no-op tick: the real work happens inside each
// worker's own thread.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return nil
}

// NotifyDurationTimeout implements Task; a Scheduler's own tick has no
// notion of overrun, so this is a no-op.
func (s *Scheduler) NotifyDurationTimeout(bool) {}

var _ Task = (*Scheduler)(nil)
