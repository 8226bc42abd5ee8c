package autoclicker

import (
	"context"
	"sync"
	"testing"
	"time"

	"autotap/internal/event"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingPublisher) Publish(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingPublisher) snapshot() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingPublisher) ofType(eventType string) []event.Event {
	var out []event.Event
	for _, e := range r.snapshot() {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// recordingDispatcher completes taps synchronously unless hold is set, in
// which case the callbacks are parked until release is called.
type recordingDispatcher struct {
	mu   sync.Mutex
	taps []Position
	err  error
	hold bool
	held []func(TapOutcome)
}

func (r *recordingDispatcher) Dispatch(_ context.Context, x, y float64, done func(TapOutcome)) error {
	r.mu.Lock()
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return err
	}
	r.taps = append(r.taps, Position{X: x, Y: y})
	if r.hold {
		r.held = append(r.held, done)
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()
	done(TapCompleted)
	return nil
}

func (r *recordingDispatcher) release(outcome TapOutcome) {
	r.mu.Lock()
	held := r.held
	r.held = nil
	r.mu.Unlock()
	for _, done := range held {
		done(outcome)
	}
}

func (r *recordingDispatcher) snapshot() []Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Position, len(r.taps))
	copy(out, r.taps)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
