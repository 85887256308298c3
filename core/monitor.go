package core

import (
	"sync/atomic"
	"time"
)

// TimeMonitor tracks per-iteration duration and inter-iteration interval
// statistics for a single worker, counting faults whenever a sample drifts
// too far from its expected value. An interval fault is a deviation in
// either direction; a duration fault is only an overrun (a duration that
// exceeds the expected value by more than the tolerance), so a task that
// finishes early is never a fault. All timing fields are atomics so that
// read-only accessor calls from outside the owning worker's goroutine never
// race with Start/Stop (spec leaves this unspecified; atomics resolve it).
type TimeMonitor struct {
	durationExpected time.Duration
	intervalExpected time.Duration
	durationDeviation time.Duration
	intervalDeviation time.Duration

	durationCur atomic.Int64
	durationMin atomic.Int64
	durationMax atomic.Int64

	intervalCur atomic.Int64
	intervalMin atomic.Int64
	intervalMax atomic.Int64

	durationFaultCount atomic.Uint64
	intervalFaultCount atomic.Uint64

	firstLoopDone    atomic.Bool
	durationRecorded atomic.Bool // true once at least one duration sample exists
	intervalRecorded atomic.Bool // true once at least one interval sample exists

	startTime     time.Time
	previousStart time.Time
}

// NewTimeMonitor constructs a TimeMonitor with the given expected duration
// and expected interval, both in the same units the worker schedules in.
// Deviation tolerances are derived once, per the design note that the
// tolerance should not be recomputed every iteration.
func NewTimeMonitor(expectedDuration, expectedInterval time.Duration) *TimeMonitor {
	m := &TimeMonitor{
		durationExpected:  expectedDuration,
		intervalExpected:  expectedInterval,
		durationDeviation: deviationTolerance(expectedDuration),
		intervalDeviation: deviationTolerance(expectedInterval),
	}
	m.durationMin.Store(int64(^uint64(0) >> 1))
	m.intervalMin.Store(int64(^uint64(0) >> 1))
	return m
}

// Start stamps the beginning of an iteration and, once a previous iteration
// exists, scores the interval since that previous start.
func (m *TimeMonitor) Start() {
	m.startTime = time.Now()

	if m.firstLoopDone.Load() {
		interval := m.startTime.Sub(m.previousStart)
		m.recordInterval(interval)
	}

	m.previousStart = m.startTime
}

// Stop closes out the current iteration, scoring the duration since the
// matching Start, and marks the first loop as done.
func (m *TimeMonitor) Stop() {
	duration := time.Since(m.startTime)
	m.recordDuration(duration)
	m.firstLoopDone.Store(true)
}

func (m *TimeMonitor) recordInterval(interval time.Duration) {
	m.intervalCur.Store(int64(interval))
	updateMin(&m.intervalMin, int64(interval))
	updateMax(&m.intervalMax, int64(interval))
	m.intervalRecorded.Store(true)

	if absDuration(interval-m.intervalExpected) > m.intervalDeviation {
		m.intervalFaultCount.Add(1)
	}
}

func (m *TimeMonitor) recordDuration(duration time.Duration) {
	m.durationCur.Store(int64(duration))
	updateMin(&m.durationMin, int64(duration))
	updateMax(&m.durationMax, int64(duration))
	m.durationRecorded.Store(true)

	if duration-m.durationExpected > m.durationDeviation {
		m.durationFaultCount.Add(1)
	}
}

func updateMin(field *atomic.Int64, v int64) {
	for {
		cur := field.Load()
		if v >= cur {
			return
		}
		if field.CompareAndSwap(cur, v) {
			return
		}
	}
}

func updateMax(field *atomic.Int64, v int64) {
	for {
		cur := field.Load()
		if v <= cur {
			return
		}
		if field.CompareAndSwap(cur, v) {
			return
		}
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// DurationCur returns the most recently recorded duration sample.
func (m *TimeMonitor) DurationCur() time.Duration { return time.Duration(m.durationCur.Load()) }

// DurationMin returns the smallest duration sample seen so far, or 0 if no
// sample has been recorded yet. Gated on durationRecorded rather than
// firstLoopDone so a ResetElapsedTiming call (which clears durationRecorded
// along with the sentinel) is reflected here too, instead of exposing the
// MaxInt64 sentinel again.
func (m *TimeMonitor) DurationMin() time.Duration {
	if !m.durationRecorded.Load() {
		return 0
	}
	return time.Duration(m.durationMin.Load())
}

// DurationMax returns the largest duration sample seen so far.
func (m *TimeMonitor) DurationMax() time.Duration { return time.Duration(m.durationMax.Load()) }

// IntervalCur returns the most recently recorded interval sample.
func (m *TimeMonitor) IntervalCur() time.Duration { return time.Duration(m.intervalCur.Load()) }

// IntervalMin returns the smallest interval sample seen so far, or 0 if no
// interval sample has been recorded yet (the very first iteration has no
// prior start to measure against, so no interval exists until the second
// Start). Gated on intervalRecorded rather than firstLoopDone: firstLoopDone
// flips at the end of the first Stop, a full Start/Stop pair before
// recordInterval ever runs, which would otherwise expose the MaxInt64
// sentinel through this accessor for one iteration.
func (m *TimeMonitor) IntervalMin() time.Duration {
	if !m.intervalRecorded.Load() {
		return 0
	}
	return time.Duration(m.intervalMin.Load())
}

// IntervalMax returns the largest interval sample seen so far.
func (m *TimeMonitor) IntervalMax() time.Duration { return time.Duration(m.intervalMax.Load()) }

// DurationFaultCount returns the monotonically non-decreasing count of
// duration samples that exceeded the deviation tolerance.
func (m *TimeMonitor) DurationFaultCount() uint64 { return m.durationFaultCount.Load() }

// IntervalFaultCount returns the monotonically non-decreasing count of
// interval samples that exceeded the deviation tolerance.
func (m *TimeMonitor) IntervalFaultCount() uint64 { return m.intervalFaultCount.Load() }

// IsFirstLoopDone reports whether at least one full iteration has
// completed (Start then Stop).
func (m *TimeMonitor) IsFirstLoopDone() bool { return m.firstLoopDone.Load() }

// IsDurationTimeout reports whether the most recent duration sample
// overran the expected duration by more than the deviation tolerance.
func (m *TimeMonitor) IsDurationTimeout() bool {
	return m.DurationCur()-m.durationExpected > m.durationDeviation
}

// IsIntervalTimeout reports whether the most recent interval sample
// breached the interval deviation tolerance.
func (m *TimeMonitor) IsIntervalTimeout() bool {
	if !m.intervalRecorded.Load() {
		return false
	}
	return absDuration(m.IntervalCur()-m.intervalExpected) > m.intervalDeviation
}

// ResetElapsedTiming zeroes the duration min/max/cur fields (not the fault
// count) when reset is true, and returns DurationMin to reporting 0 until a
// fresh sample arrives.
func (m *TimeMonitor) ResetElapsedTiming(reset bool) {
	if !reset {
		return
	}
	m.durationCur.Store(0)
	m.durationMin.Store(int64(^uint64(0) >> 1))
	m.durationMax.Store(0)
	m.durationRecorded.Store(false)
}

// ResetIntervalTiming zeroes the interval min/max/cur fields (not the fault
// count) when reset is true, and returns IntervalMin to reporting 0 until a
// fresh sample arrives.
func (m *TimeMonitor) ResetIntervalTiming(reset bool) {
	if !reset {
		return
	}
	m.intervalCur.Store(0)
	m.intervalMin.Store(int64(^uint64(0) >> 1))
	m.intervalMax.Store(0)
	m.intervalRecorded.Store(false)
}
