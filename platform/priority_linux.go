//go:build linux

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// niceForPriority maps the portable Priority enum onto a setpriority(2)
// nice value. Lower nice values run sooner; TimeCritical maps to -20, the
// most negative nice value Linux accepts.
func niceForPriority(p Priority) int {
	switch p {
	case PriorityIdle:
		return 19
	case PriorityLowest:
		return 10
	case PriorityBelowNormal:
		return 5
	case PriorityNormal:
		return 0
	case PriorityAboveNormal:
		return -5
	case PriorityHighest:
		return -10
	case PriorityTimeCritical:
		return -20
	default:
		return 0
	}
}

func applyPriority(priority Priority, policy SchedPolicy) {
	tid := unix.Gettid()
	_ = unix.Setpriority(unix.PRIO_PROCESS, tid, niceForPriority(priority))

	if policy == SchedRealtimeFIFO || policy == SchedRealtimeRoundRobin {
		schedPolicy := unix.SCHED_FIFO
		if policy == SchedRealtimeRoundRobin {
			schedPolicy = unix.SCHED_RR
		}
		// Realtime priority range is platform-dependent and usually
		// requires elevated privileges; best-effort only, failures are
		// intentionally ignored here as they are for niceness above.
		_ = schedSetscheduler(tid, schedPolicy, int32(rtPriorityFor(priority)))
	}
}

// schedParam mirrors the C struct sched_param (a single int field on
// Linux), which golang.org/x/sys/unix does not wrap with a sched_setscheduler
// helper.
type schedParam struct {
	Priority int32
}

// schedSetscheduler calls the sched_setscheduler(2) syscall directly since
// golang.org/x/sys/unix exposes the syscall number but not a wrapper.
func schedSetscheduler(pid int, policy int, priority int32) error {
	param := schedParam{Priority: priority}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, uintptr(pid), uintptr(policy), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return errno
	}
	return nil
}

func rtPriorityFor(p Priority) int {
	// SCHED_FIFO/SCHED_RR priorities on Linux range 1-99; spread the
	// portable enum across the upper half, reserving low values for
	// policies this package doesn't originate.
	switch p {
	case PriorityTimeCritical:
		return 99
	case PriorityHighest:
		return 80
	case PriorityAboveNormal:
		return 60
	default:
		return 50
	}
}

// SetThisThreadName sets the calling OS thread's name via prctl(PR_SET_NAME).
func SetThisThreadName(name string) error {
	b := append([]byte(truncateName(name)), 0)
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&b[0])), 0, 0, 0)
}
