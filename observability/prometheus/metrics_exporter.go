// Package prometheus adapts core's worker/scheduler observability surface
// (the push-based core.Observer and the pull-based Stats() snapshots) into
// Prometheus collectors.
package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/cyclicrt/cyclic/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// IterationExporter adapts core.Observer to Prometheus collectors, giving
// a duration histogram and fault counters that a periodic snapshot poll
// alone can't reconstruct.
type IterationExporter struct {
	iterationDuration  *prom.HistogramVec
	durationFaultTotal *prom.CounterVec
	intervalFaultTotal *prom.CounterVec
}

var _ core.Observer = (*IterationExporter)(nil)

// NewIterationExporter creates and registers the Prometheus collectors
// backing an IterationExporter.
func NewIterationExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*IterationExporter, error) {
	if namespace == "" {
		namespace = "cyclic"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "iteration_duration_seconds",
		Help:      "Per-iteration task execution duration in seconds.",
		Buckets:   buckets,
	}, []string{"task", "priority"})
	durationFaultVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "duration_fault_total",
		Help:      "Total number of iterations whose duration breached tolerance.",
	}, []string{"task"})
	intervalFaultVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "interval_fault_total",
		Help:      "Total number of iterations whose interval breached tolerance.",
	}, []string{"task"})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if durationFaultVec, err = registerCollector(reg, durationFaultVec); err != nil {
		return nil, err
	}
	if intervalFaultVec, err = registerCollector(reg, intervalFaultVec); err != nil {
		return nil, err
	}

	return &IterationExporter{
		iterationDuration:  durationVec,
		durationFaultTotal: durationFaultVec,
		intervalFaultTotal: intervalFaultVec,
	}, nil
}

// ObserveIteration implements core.Observer.
func (e *IterationExporter) ObserveIteration(taskName string, priority core.Priority, duration time.Duration, durationFault, intervalFault bool) {
	if e == nil {
		return
	}
	name := normalizeLabel(taskName, "unknown")
	e.iterationDuration.WithLabelValues(name, priority.String()).Observe(duration.Seconds())
	if durationFault {
		e.durationFaultTotal.WithLabelValues(name).Inc()
	}
	if intervalFault {
		e.intervalFaultTotal.WithLabelValues(name).Inc()
	}
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
