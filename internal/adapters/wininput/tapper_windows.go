//go:build windows

package wininput

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"autotap/internal/core/autoclicker"
)

// Tapper moves the cursor with an absolute SendInput move across the whole
// virtual desktop and presses the left button for the hold duration.
type Tapper struct {
	logger autoclicker.Logger
	mu     sync.Mutex
}

func NewTapper(logger autoclicker.Logger) (*Tapper, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	logger.Debug("Windows backend ready",
		"screen_width", systemMetric(smCXVirtualScreen),
		"screen_height", systemMetric(smCYVirtualScreen),
	)
	return &Tapper{logger: logger}, nil
}

func (t *Tapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	dx, dy, err := normalizeToVirtualDesk(x, y)
	if err != nil {
		return err
	}
	if err := sendMouse(
		mouseInput{Dx: dx, Dy: dy, DwFlags: mouseeventfMove | mouseeventfAbsolute | mouseeventfVirtualDesk},
		mouseInput{DwFlags: mouseeventfLeftDown},
	); err != nil {
		return err
	}

	waitErr := holdFor(ctx, hold)
	if err := sendMouse(mouseInput{DwFlags: mouseeventfLeftUp}); err != nil {
		return err
	}
	return waitErr
}

func (t *Tapper) Close() error {
	return nil
}

// normalizeToVirtualDesk maps pixels to the 0..65535 range SendInput uses
// for absolute moves.
func normalizeToVirtualDesk(x, y int) (int32, int32, error) {
	left := int(systemMetric(smXVirtualScreen))
	top := int(systemMetric(smYVirtualScreen))
	width := int(systemMetric(smCXVirtualScreen))
	height := int(systemMetric(smCYVirtualScreen))
	if width <= 1 || height <= 1 {
		return 0, 0, fmt.Errorf("virtual screen size unavailable")
	}
	px, py := x-left, y-top
	if px < 0 || py < 0 || px >= width || py >= height {
		return 0, 0, fmt.Errorf("point %d,%d outside virtual screen", x, y)
	}
	return int32(px * 65535 / (width - 1)), int32(py * 65535 / (height - 1)), nil
}

func sendMouse(events ...mouseInput) error {
	inputs := make([]input, len(events))
	for i, event := range events {
		inputs[i] = input{Type: inputMouse, Mi: event}
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}

func holdFor(ctx context.Context, d time.Duration) error {
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
