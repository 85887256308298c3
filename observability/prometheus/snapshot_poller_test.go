package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/cyclicrt/cyclic/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type workerStub struct {
	stats core.WorkerStats
}

func (s workerStub) Stats() core.WorkerStats { return s.stats }

type schedulerStub struct {
	stats core.SchedulerStats
}

func (s schedulerStub) Stats() core.SchedulerStats { return s.stats }

func TestSnapshotPoller_CollectsWorkerAndSchedulerStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddWorker("heartbeat", workerStub{stats: core.WorkerStats{
		ScheduledCount:     3,
		ExecutionErrors:    1,
		DurationFaultCount: 2,
		Terminated:         true,
	}})
	poller.AddScheduler("main", schedulerStub{stats: core.SchedulerStats{
		Active:  true,
		Workers: make([]core.WorkerStats, 4),
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		scheduled := testutil.ToFloat64(poller.scheduledCount.WithLabelValues("heartbeat"))
		workerCount := testutil.ToFloat64(poller.schedulerWorkerCount.WithLabelValues("main"))
		return scheduled == 3 && workerCount == 4
	})

	if got := testutil.ToFloat64(poller.workerTerminated.WithLabelValues("heartbeat")); got != 1 {
		t.Fatalf("worker terminated gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.schedulerActive.WithLabelValues("main")); got != 1 {
		t.Fatalf("scheduler active gauge = %v, want 1", got)
	}
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
