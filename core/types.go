package core

import "time"

// Microsecond and Millisecond mirror the original Concurrency:: library's
// fixed-width duration aliases (uint64). Nothing in this package uses them:
// the monitor and worker keep all timing values as time.Duration.
type Microsecond = uint64
type Millisecond = uint64

// Priority is a portable thread priority, mapped onto OS values by the
// platform package. The ordering matches the original Thread.hpp PRIO enum.
type Priority int

const (
	PriorityIdle Priority = iota
	PriorityLowest
	PriorityBelowNormal
	PriorityNormal
	PriorityAboveNormal
	PriorityHighest
	PriorityTimeCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityIdle:
		return "Idle"
	case PriorityLowest:
		return "Lowest"
	case PriorityBelowNormal:
		return "BelowNormal"
	case PriorityNormal:
		return "Normal"
	case PriorityAboveNormal:
		return "AboveNormal"
	case PriorityHighest:
		return "Highest"
	case PriorityTimeCritical:
		return "TimeCritical"
	default:
		return "Unknown"
	}
}

// SchedPolicy selects the OS scheduling class a worker's thread runs under.
type SchedPolicy int

const (
	SchedDefault SchedPolicy = iota
	SchedRealtimeFIFO
	SchedRealtimeRoundRobin
	SchedNonRealtimeTimeshare
)

// durationDeviationFloor is the minimum absolute deviation tolerance,
// regardless of how small the expected duration/interval is. Resolves the
// deviation-tolerance ambiguity left open by the spec: 10% of expected,
// floored at 200 microseconds.
const durationDeviationFloor = 200 * time.Microsecond

// deviationTolerance computes the allowed absolute deviation for a given
// expected duration: 10% of expected, floored at durationDeviationFloor.
func deviationTolerance(expected time.Duration) time.Duration {
	tol := expected / 10
	if tol < durationDeviationFloor {
		return durationDeviationFloor
	}
	return tol
}
