//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

func win32PriorityFor(p Priority) int32 {
	switch p {
	case PriorityIdle:
		return windows.THREAD_PRIORITY_IDLE
	case PriorityLowest:
		return windows.THREAD_PRIORITY_LOWEST
	case PriorityBelowNormal:
		return windows.THREAD_PRIORITY_BELOW_NORMAL
	case PriorityNormal:
		return windows.THREAD_PRIORITY_NORMAL
	case PriorityAboveNormal:
		return windows.THREAD_PRIORITY_ABOVE_NORMAL
	case PriorityHighest:
		return windows.THREAD_PRIORITY_HIGHEST
	case PriorityTimeCritical:
		return windows.THREAD_PRIORITY_TIME_CRITICAL
	default:
		return windows.THREAD_PRIORITY_NORMAL
	}
}

func applyPriority(priority Priority, policy SchedPolicy) {
	// Windows has no user-mode SCHED_FIFO/SCHED_RR equivalent; policy is
	// advisory here and only the priority class is honored.
	handle := windows.CurrentThread()
	_ = windows.SetThreadPriority(handle, win32PriorityFor(priority))
}

// SetThisThreadName sets the calling thread's description, best-effort;
// older Windows builds silently ignore the call.
func SetThisThreadName(name string) error {
	name = truncateName(name)
	utf16Name, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	return windows.SetThreadDescription(windows.CurrentThread(), utf16Name)
}
