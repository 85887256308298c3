package platform

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestSpawn_RunsEntryOnSeparateGoroutine verifies Spawn invokes fn and Join
// waits for it to finish.
// Given: a Spawn call wrapping a function that flips a flag
// When: Join returns
// Then: the flag is observably set
func TestSpawn_RunsEntryOnSeparateGoroutine(t *testing.T) {
	var ran atomic.Bool
	h := Spawn("worker-test", PriorityNormal, SchedDefault, func() {
		ran.Store(true)
	})
	h.Join()

	if !ran.Load() {
		t.Fatal("fn did not run before Join returned")
	}
}

// TestHandle_RunningReflectsThreadLifetime verifies Running reports true
// while the entry function is still executing and false after Join
// returns.
// Given: a Spawn call wrapping a function that blocks until released
// When: Running is queried before and after the function returns
// Then: it reports true, then false, matching the thread's actual lifetime
func TestHandle_RunningReflectsThreadLifetime(t *testing.T) {
	release := make(chan struct{})
	h := Spawn("worker-test", PriorityNormal, SchedDefault, func() {
		<-release
	})

	if !h.Running() {
		t.Fatal("Running() = false while entry function is still blocked, want true")
	}

	close(release)
	h.Join()

	if h.Running() {
		t.Fatal("Running() = true after Join returned, want false")
	}

	// Repeated queries after exit must stay false and not block.
	deadline := time.After(time.Second)
	select {
	case <-deadline:
		t.Fatal("Running() appears to block after the thread exited")
	default:
		if h.Running() {
			t.Fatal("Running() = true on second read after exit, want false")
		}
	}
}

// TestThreadName_ReflectsTruncation verifies ThreadName returns the
// post-truncation name actually applied, not the original caller-supplied
// name, so collisions past the 15-byte ceiling are visible to callers.
func TestThreadName_ReflectsTruncation(t *testing.T) {
	done := make(chan struct{})
	h := Spawn("this-name-is-far-too-long-for-any-platform", PriorityNormal, SchedDefault, func() {
		<-done
	})
	defer func() { close(done); h.Join() }()

	got := ThreadName(h)
	if len(got) != maxThreadNameLen {
		t.Fatalf("ThreadName() = %q (len %d), want length %d", got, len(got), maxThreadNameLen)
	}
	if got != "this-name-is-fa" {
		t.Fatalf("ThreadName() = %q, want the truncated prefix", got)
	}
}

// TestTruncateName verifies names longer than the platform ceiling are cut
// down rather than rejected.
func TestTruncateName(t *testing.T) {
	long := "this-name-is-far-too-long-for-any-platform"
	got := truncateName(long)
	if len(got) != maxThreadNameLen {
		t.Fatalf("truncateName length = %d, want %d", len(got), maxThreadNameLen)
	}
	if got != long[:maxThreadNameLen] {
		t.Fatalf("truncateName = %q, want prefix of %q", got, long)
	}

	short := "short"
	if got := truncateName(short); got != short {
		t.Fatalf("truncateName(%q) = %q, want unchanged", short, got)
	}
}
