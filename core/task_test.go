package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// TestAgent_RunOnceInvokesAction verifies Agent.RunOnce forwards to the
// wrapped action.
// Given: An Agent built with NewAgent around a counting action
// When: RunOnce is called twice
// Then: The action observes two invocations and returns its error
func TestAgent_RunOnceInvokesAction(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	wantErr := errors.New("boom")
	agent := NewAgent("counter", func(ctx context.Context) error {
		calls.Add(1)
		if calls.Load() == 2 {
			return wantErr
		}
		return nil
	})

	// Act
	err1 := agent.RunOnce(context.Background())
	err2 := agent.RunOnce(context.Background())

	// Assert
	if err1 != nil {
		t.Fatalf("first RunOnce returned %v, want nil", err1)
	}
	if !errors.Is(err2, wantErr) {
		t.Fatalf("second RunOnce returned %v, want %v", err2, wantErr)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

// TestAgent_NameReturnsConfiguredName verifies Name() is a pure accessor.
func TestAgent_NameReturnsConfiguredName(t *testing.T) {
	agent := NewAgent("heartbeat", func(ctx context.Context) error { return nil })
	if got := agent.Name(); got != "heartbeat" {
		t.Fatalf("Name() = %q, want %q", got, "heartbeat")
	}
}

// TestAgent_NotifyDurationTimeoutForwardsToCallback verifies the optional
// timeout callback observes both true and false notifications.
// Given: An Agent built with NewAgentWithTimeout
// When: NotifyDurationTimeout is called with true then false
// Then: The callback observes both values in order
func TestAgent_NotifyDurationTimeoutForwardsToCallback(t *testing.T) {
	// Arrange
	var seen []bool
	agent := NewAgentWithTimeout("watcher", func(ctx context.Context) error { return nil },
		func(isTimeout bool) { seen = append(seen, isTimeout) })

	// Act
	agent.NotifyDurationTimeout(true)
	agent.NotifyDurationTimeout(false)

	// Assert
	if len(seen) != 2 || seen[0] != true || seen[1] != false {
		t.Fatalf("seen = %v, want [true false]", seen)
	}
}

// TestAgent_NilActionIsNoOp verifies a nil action doesn't panic and returns
// nil, and a nil timeout callback is safely skipped.
func TestAgent_NilActionIsNoOp(t *testing.T) {
	agent := NewAgent("empty", nil)
	if err := agent.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() = %v, want nil", err)
	}
	agent.NotifyDurationTimeout(true) // must not panic
}

// TestAgent_ImplementsTask verifies *Agent satisfies the Task interface
// at compile time via the package-level assertion, and at runtime here.
func TestAgent_ImplementsTask(t *testing.T) {
	var _ Task = NewAgent("x", nil)
}
