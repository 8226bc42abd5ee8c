package autoclicker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate marks a tap at x <= 0 or y <= 0. The tap is skipped.
	ErrInvalidCoordinate = errors.New("invalid tap coordinate")

	// ErrDispatchRefused means the backend declined the tap; it counts as cancelled.
	ErrDispatchRefused = errors.New("tap dispatch refused")

	ErrDispatcherClosed = fmt.Errorf("%w: dispatcher closed", ErrDispatchRefused)
	ErrQueueFull        = fmt.Errorf("%w: tap queue full", ErrDispatchRefused)
)

// TapError records which tap failed and why.
type TapError struct {
	Op  string
	X   float64
	Y   float64
	Err error
}

func (e *TapError) Error() string {
	return fmt.Sprintf("%s at (%.1f, %.1f): %v", e.Op, e.X, e.Y, e.Err)
}

func (e *TapError) Unwrap() error {
	return e.Err
}

func validCoordinate(x, y float64) bool {
	return x > 0 && y > 0
}
