package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/cyclicrt/cyclic/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// WorkerSnapshotProvider provides a current Worker stats snapshot.
type WorkerSnapshotProvider interface {
	Stats() core.WorkerStats
}

// SchedulerSnapshotProvider provides a current Scheduler stats snapshot.
type SchedulerSnapshotProvider interface {
	Stats() core.SchedulerStats
}

// SnapshotPoller periodically exports Worker/Scheduler Stats() snapshots
// into Prometheus gauges. Unlike IterationExporter it needs no hook inside
// the worker loop: it just reads whatever Stats() reports on a timer.
type SnapshotPoller struct {
	interval time.Duration

	workersMu sync.RWMutex
	workers   map[string]WorkerSnapshotProvider

	schedulersMu sync.RWMutex
	schedulers   map[string]SchedulerSnapshotProvider

	scheduledCount     *prom.GaugeVec
	executionErrors    *prom.GaugeVec
	durationCur        *prom.GaugeVec
	durationMin        *prom.GaugeVec
	durationMax        *prom.GaugeVec
	intervalCur        *prom.GaugeVec
	intervalMin        *prom.GaugeVec
	intervalMax        *prom.GaugeVec
	durationFaultTotal *prom.GaugeVec
	intervalFaultTotal *prom.GaugeVec
	workerTerminated   *prom.GaugeVec

	schedulerWorkerCount *prom.GaugeVec
	schedulerActive      *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	const ns = "cyclic"

	p := &SnapshotPoller{
		interval:   interval,
		workers:    make(map[string]WorkerSnapshotProvider),
		schedulers: make(map[string]SchedulerSnapshotProvider),
	}

	build := func(name, help string, labels []string) (*prom.GaugeVec, error) {
		vec := prom.NewGaugeVec(prom.GaugeOpts{Namespace: ns, Name: name, Help: help}, labels)
		return registerCollector(reg, vec)
	}

	var err error
	workerLabels := []string{"task"}
	if p.scheduledCount, err = build("worker_scheduled_count", "Total scheduled iterations for this worker.", workerLabels); err != nil {
		return nil, err
	}
	if p.executionErrors, err = build("worker_execution_errors", "Total task execution errors for this worker.", workerLabels); err != nil {
		return nil, err
	}
	if p.durationCur, err = build("worker_duration_cur_seconds", "Most recent iteration duration.", workerLabels); err != nil {
		return nil, err
	}
	if p.durationMin, err = build("worker_duration_min_seconds", "Minimum observed iteration duration.", workerLabels); err != nil {
		return nil, err
	}
	if p.durationMax, err = build("worker_duration_max_seconds", "Maximum observed iteration duration.", workerLabels); err != nil {
		return nil, err
	}
	if p.intervalCur, err = build("worker_interval_cur_seconds", "Most recent inter-iteration interval.", workerLabels); err != nil {
		return nil, err
	}
	if p.intervalMin, err = build("worker_interval_min_seconds", "Minimum observed interval.", workerLabels); err != nil {
		return nil, err
	}
	if p.intervalMax, err = build("worker_interval_max_seconds", "Maximum observed interval.", workerLabels); err != nil {
		return nil, err
	}
	if p.durationFaultTotal, err = build("worker_duration_fault_total", "Snapshot of the worker's duration fault counter.", workerLabels); err != nil {
		return nil, err
	}
	if p.intervalFaultTotal, err = build("worker_interval_fault_total", "Snapshot of the worker's interval fault counter.", workerLabels); err != nil {
		return nil, err
	}
	if p.workerTerminated, err = build("worker_terminated", "Worker terminated state (1=terminated, 0=running).", workerLabels); err != nil {
		return nil, err
	}

	schedulerLabels := []string{"scheduler"}
	if p.schedulerWorkerCount, err = build("scheduler_worker_count", "Number of workers registered with this scheduler.", schedulerLabels); err != nil {
		return nil, err
	}
	if p.schedulerActive, err = build("scheduler_active", "Scheduler active state (1=active, 0=inactive).", schedulerLabels); err != nil {
		return nil, err
	}

	return p, nil
}

// AddWorker adds or replaces a worker snapshot provider by name.
func (p *SnapshotPoller) AddWorker(name string, provider WorkerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "worker")
	p.workersMu.Lock()
	p.workers[name] = provider
	p.workersMu.Unlock()
}

// AddScheduler adds or replaces a scheduler snapshot provider by name.
func (p *SnapshotPoller) AddScheduler(name string, provider SchedulerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "scheduler")
	p.schedulersMu.Lock()
	p.schedulers[name] = provider
	p.schedulersMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.workersMu.RLock()
	for name, provider := range p.workers {
		stats := provider.Stats()
		p.scheduledCount.WithLabelValues(name).Set(float64(stats.ScheduledCount))
		p.executionErrors.WithLabelValues(name).Set(float64(stats.ExecutionErrors))
		p.durationCur.WithLabelValues(name).Set(stats.DurationCur.Seconds())
		p.durationMin.WithLabelValues(name).Set(stats.DurationMin.Seconds())
		p.durationMax.WithLabelValues(name).Set(stats.DurationMax.Seconds())
		p.intervalCur.WithLabelValues(name).Set(stats.IntervalCur.Seconds())
		p.intervalMin.WithLabelValues(name).Set(stats.IntervalMin.Seconds())
		p.intervalMax.WithLabelValues(name).Set(stats.IntervalMax.Seconds())
		p.durationFaultTotal.WithLabelValues(name).Set(float64(stats.DurationFaultCount))
		p.intervalFaultTotal.WithLabelValues(name).Set(float64(stats.IntervalFaultCount))
		if stats.Terminated {
			p.workerTerminated.WithLabelValues(name).Set(1)
		} else {
			p.workerTerminated.WithLabelValues(name).Set(0)
		}
	}
	p.workersMu.RUnlock()

	p.schedulersMu.RLock()
	for name, provider := range p.schedulers {
		stats := provider.Stats()
		p.schedulerWorkerCount.WithLabelValues(name).Set(float64(len(stats.Workers)))
		if stats.Active {
			p.schedulerActive.WithLabelValues(name).Set(1)
		} else {
			p.schedulerActive.WithLabelValues(name).Set(0)
		}
	}
	p.schedulersMu.RUnlock()
}
