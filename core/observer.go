package core

import "time"

// Observer receives a push notification after every completed iteration,
// in addition to whatever a puller later reads via Stats(). It exists so
// an exporter can build a duration distribution (a histogram) that a
// point-in-time snapshot can't reconstruct.
type Observer interface {
	ObserveIteration(taskName string, priority Priority, duration time.Duration, durationFault, intervalFault bool)
}

type noopObserver struct{}

func (noopObserver) ObserveIteration(string, Priority, time.Duration, bool, bool) {}

// NoopObserver discards every observation.
var NoopObserver Observer = noopObserver{}
