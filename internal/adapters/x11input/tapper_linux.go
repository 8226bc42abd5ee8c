//go:build linux

// Package x11input taps through the XTest extension and grabs the toggle
// hotkey on the X11 root window.
package x11input

import (
	"context"
	"fmt"
	"sync"
	"time"

	"autotap/internal/core/autoclicker"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
)

// Tapper warps the pointer to absolute root coordinates and fakes a left
// button press and release. It has its own X connection so that hotkey grabs
// never share a request stream with injected input.
type Tapper struct {
	conn    *xgb.Conn
	rootWin xproto.Window
	width   int
	height  int
	logger  autoclicker.Logger

	mu     sync.Mutex
	closed bool
}

func NewTapper(logger autoclicker.Logger) (*Tapper, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("XTEST extension unavailable: %w", err)
	}

	screen := xu.Screen()
	t := &Tapper{
		conn:    conn,
		rootWin: xu.RootWin(),
		width:   int(screen.WidthInPixels),
		height:  int(screen.HeightInPixels),
		logger:  logger,
	}
	logger.Debug("X11 backend ready", "screen_width", t.width, "screen_height", t.height)
	return t, nil
}

func (t *Tapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return autoclicker.ErrDispatcherClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if x >= t.width || y >= t.height {
		return fmt.Errorf("point %d,%d outside %dx%d screen", x, y, t.width, t.height)
	}

	if err := xproto.WarpPointerChecked(
		t.conn,
		xproto.WindowNone,
		t.rootWin,
		0, 0, 0, 0,
		int16(x),
		int16(y),
	).Check(); err != nil {
		return fmt.Errorf("warp pointer: %w", err)
	}
	if err := t.fakeButton(xproto.ButtonPress); err != nil {
		return err
	}

	waitErr := holdFor(ctx, hold)
	if err := t.fakeButton(xproto.ButtonRelease); err != nil {
		return err
	}
	return waitErr
}

func (t *Tapper) fakeButton(eventType byte) error {
	if err := xtest.FakeInputChecked(
		t.conn,
		eventType,
		byte(xproto.ButtonIndex1),
		xproto.TimeCurrentTime,
		t.rootWin,
		0,
		0,
		0,
	).Check(); err != nil {
		return fmt.Errorf("fake button event %d: %w", eventType, err)
	}
	t.conn.Sync()
	return nil
}

func (t *Tapper) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.conn.Close()
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
