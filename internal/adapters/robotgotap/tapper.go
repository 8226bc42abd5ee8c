// Package robotgotap taps through robotgo, which drives the native pointer
// API on Linux (X11), Windows and macOS.
package robotgotap

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"

	"autotap/internal/core/autoclicker"
)

// Tapper moves the cursor to the target and presses the left button for the
// hold duration. The button is always released, even when ctx ends mid-hold.
type Tapper struct {
	logger autoclicker.Logger
	mu     sync.Mutex
}

func NewTapper(logger autoclicker.Logger) (*Tapper, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	w, h := robotgo.GetScreenSize()
	logger.Debug("robotgo backend ready", "screen_width", w, "screen_height", h)
	return &Tapper{logger: logger}, nil
}

func (t *Tapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	if err := robotgo.Toggle("left"); err != nil {
		return err
	}

	waitErr := wait(ctx, hold)
	if err := robotgo.Toggle("left", "up"); err != nil {
		return err
	}
	return waitErr
}

func (t *Tapper) Close() error {
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
