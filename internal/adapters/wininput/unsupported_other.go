//go:build !windows

package wininput

import (
	"context"
	"errors"
	"time"

	"autotap/internal/core/autoclicker"
)

var errUnsupported = errors.New("windows input backend is only available on Windows")

type Tapper struct{}

func NewTapper(logger autoclicker.Logger) (*Tapper, error) {
	return nil, errUnsupported
}

func (t *Tapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	return errUnsupported
}

func (t *Tapper) Close() error {
	return nil
}

type ToggleListener struct{}

func NewToggleListener(key string, onToggle func(), logger autoclicker.Logger) (*ToggleListener, error) {
	return nil, errUnsupported
}

func (l *ToggleListener) Start() error {
	return errUnsupported
}

func (l *ToggleListener) Stop() {}

func CaptureNextKeyCode(ctx context.Context) (uint32, error) {
	return 0, errUnsupported
}
