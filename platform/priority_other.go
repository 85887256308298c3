//go:build !linux && !windows

package platform

// applyPriority is a no-op on platforms without a wired priority backend;
// the worker still runs, just without OS scheduling hints.
func applyPriority(Priority, SchedPolicy) {}

// SetThisThreadName is a no-op on platforms without a naming syscall.
func SetThisThreadName(name string) error { return nil }
