package robotgotap

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitReturnsImmediatelyForZeroHold(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wait(ctx, 0); err != nil {
		t.Fatalf("wait(0) error = %v, want nil", err)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := wait(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("wait error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("wait did not return promptly on cancel")
	}
}

func TestWaitElapses(t *testing.T) {
	if err := wait(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("wait error = %v", err)
	}
}

func TestNewTapperRequiresLogger(t *testing.T) {
	if _, err := NewTapper(nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}
