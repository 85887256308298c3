package prometheus

import (
	"testing"
	"time"

	"github.com/cyclicrt/cyclic/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestIterationExporter_ObserveIteration(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewIterationExporter("cyclic", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewIterationExporter failed: %v", err)
	}

	exporter.ObserveIteration("heartbeat", core.PriorityAboveNormal, 25*time.Millisecond, true, false)
	exporter.ObserveIteration("heartbeat", core.PriorityAboveNormal, 25*time.Millisecond, false, true)

	durationFaults := testutil.ToFloat64(exporter.durationFaultTotal.WithLabelValues("heartbeat"))
	if durationFaults != 1 {
		t.Fatalf("duration fault total = %v, want 1", durationFaults)
	}

	intervalFaults := testutil.ToFloat64(exporter.intervalFaultTotal.WithLabelValues("heartbeat"))
	if intervalFaults != 1 {
		t.Fatalf("interval fault total = %v, want 1", intervalFaults)
	}

	count, err := histogramSampleCount(exporter.iterationDuration.WithLabelValues("heartbeat", core.PriorityAboveNormal.String()))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("duration sample count = %d, want 2", count)
	}
}

func TestIterationExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewIterationExporter("cyclic", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("first NewIterationExporter failed: %v", err)
	}
	second, err := NewIterationExporter("cyclic", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("second NewIterationExporter failed: %v", err)
	}

	first.ObserveIteration("poll", core.PriorityNormal, time.Millisecond, true, false)
	second.ObserveIteration("poll", core.PriorityNormal, time.Millisecond, true, false)

	got := testutil.ToFloat64(first.durationFaultTotal.WithLabelValues("poll"))
	if got != 2 {
		t.Fatalf("shared fault counter = %v, want 2", got)
	}
}

func histogramSampleCount(observer prom.Observer) (uint64, error) {
	collector, ok := observer.(prom.Collector)
	if !ok {
		return 0, nil
	}

	metricCh := make(chan prom.Metric, 1)
	collector.Collect(metricCh)
	close(metricCh)
	for metric := range metricCh {
		msg := &dto.Metric{}
		if err := metric.Write(msg); err != nil {
			return 0, err
		}
		if msg.Histogram != nil {
			return msg.Histogram.GetSampleCount(), nil
		}
	}
	return 0, nil
}
