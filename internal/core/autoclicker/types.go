package autoclicker

import (
	"context"
	"time"
)

const (
	MinInterval     = 100 * time.Millisecond
	DefaultInterval = time.Second
	DefaultHold     = 50 * time.Millisecond

	RepeatUnlimited = -1
)

// ClickPoint is one tap target with its own cadence.
type ClickPoint struct {
	ID       int
	X        float64
	Y        float64
	Interval time.Duration
	Enabled  bool
	Repeat   int // RepeatUnlimited, or completed taps after which the point retires for the session
}

// PointUpdate carries the fields to overwrite in Store.Update. Nil fields are
// left untouched.
type PointUpdate struct {
	X        *float64
	Y        *float64
	Interval *time.Duration
	Enabled  *bool
	Repeat   *int
}

// Position is a screen coordinate.
type Position struct {
	X float64
	Y float64
}

// TapOutcome is the asynchronous result of one dispatched tap.
type TapOutcome int

const (
	TapCompleted TapOutcome = iota + 1
	TapCancelled
)

func (o TapOutcome) String() string {
	switch o {
	case TapCompleted:
		return "completed"
	case TapCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TapDispatcher requests one synthetic tap. Unless Dispatch returns an error,
// done is called exactly once, from any goroutine, with TapCompleted or
// TapCancelled. A returned error means the platform refused the request and
// done will not be called. Once ctx ends the tap must not reach the screen,
// or must be released early if it already has.
type TapDispatcher interface {
	Dispatch(ctx context.Context, x, y float64, done func(TapOutcome)) error
}

// Tapper is a synchronous platform backend: press at (x, y), hold, release.
type Tapper interface {
	Tap(ctx context.Context, x, y int, hold time.Duration) error
	Close() error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
