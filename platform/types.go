package platform

// Priority mirrors core.Priority's underlying values so this package can
// apply an OS scheduling hint without importing core (which imports this
// package to spawn worker threads).
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

// SchedPolicy mirrors core.SchedPolicy's underlying values.
type SchedPolicy int

const (
	SchedDefault SchedPolicy = iota
	SchedRealtimeFIFO
	SchedRealtimeRoundRobin
	SchedNonRealtimeTimeshare
)
