// Package platform wraps the OS thread primitives a worker needs: spawning
// a goroutine pinned to its own OS thread, naming it, and applying a
// priority/scheduling policy to it. Priority and SchedPolicy mirror core's
// portable enums by value; this package only knows how to apply them to
// the current OS thread.
package platform

import (
	"runtime"
	"sync"
)

// maxThreadNameLen mirrors the 15-byte name ceiling imposed by pthread and
// the Linux kernel (TASK_COMM_LEN - 1); names are truncated to fit.
const maxThreadNameLen = 15

// Handle is a running worker thread. Join blocks until the thread's entry
// function returns.
type Handle struct {
	done   chan struct{}
	osName string
}

// Join blocks until the thread exits.
func (h *Handle) Join() {
	<-h.done
}

// Running reports whether the thread's entry function has not yet
// returned. Non-blocking: a closed done channel is immediately selectable,
// so the default case only wins while the thread is still live.
func (h *Handle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Spawn starts fn on a new goroutine locked to its own OS thread for the
// goroutine's lifetime, applying name, priority and policy before calling
// fn. Errors applying priority are non-fatal: the thread still runs, just
// without the requested scheduling class, since soft real-time priority is
// a best-effort hint on most platforms.
func Spawn(name string, priority Priority, policy SchedPolicy, fn func()) *Handle {
	h := &Handle{done: make(chan struct{}), osName: truncateName(name)}
	var ready sync.WaitGroup
	ready.Add(1)

	go func() {
		defer close(h.done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		SetThisThreadName(name)
		applyPriority(priority, policy)
		ready.Done()

		fn()
	}()

	ready.Wait()
	return h
}

// ThreadName returns the name Spawn computed for h's OS thread: the
// caller-supplied name truncated to the 15-byte ceiling. It is recorded at
// Spawn time, not read back from the OS (on platforms without a naming
// backend no name is applied at all). Useful for diagnosing collisions:
// two workers whose caller-supplied names differ only past the 15-byte
// ceiling end up with the same truncated name, and ThreadName surfaces
// that rather than echoing back the untruncated name passed to Spawn.
func ThreadName(h *Handle) string {
	return h.osName
}

func truncateName(name string) string {
	if len(name) <= maxThreadNameLen {
		return name
	}
	return name[:maxThreadNameLen]
}
