//go:build linux

package x11input

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// CaptureNextKeyCode grabs the keyboard and pointer until the next key or
// mouse button press and returns it as an evdev code.
func CaptureNextKeyCode(ctx context.Context) (uint16, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return 0, err
	}
	conn := xu.Conn()
	root := xu.RootWin()
	keybind.Initialize(xu)

	defer conn.Close()
	defer xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
	defer xproto.UngrabKeyboard(conn, xproto.TimeCurrentTime)

	if reply, err := xproto.GrabKeyboard(
		conn,
		false,
		root,
		xproto.TimeCurrentTime,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
	).Reply(); err != nil {
		return 0, err
	} else if reply.Status != xproto.GrabStatusSuccess {
		return 0, fmt.Errorf("failed to grab keyboard (status=%d)", reply.Status)
	}

	if reply, err := xproto.GrabPointer(
		conn,
		false,
		root,
		xproto.EventMaskButtonPress,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	).Reply(); err != nil {
		return 0, err
	} else if reply.Status != xproto.GrabStatusSuccess {
		return 0, fmt.Errorf("failed to grab pointer (status=%d)", reply.Status)
	}

	for {
		event, xerr := conn.PollForEvent()
		if xerr != nil {
			return 0, xerr
		}
		if event == nil {
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("waiting for key/button input: %w", ctx.Err())
			case <-time.After(2 * time.Millisecond):
			}
			continue
		}

		switch ev := event.(type) {
		case xproto.ButtonPressEvent:
			if code, ok := xButtonToCode(ev.Detail); ok {
				return code, nil
			}
		case xproto.KeyPressEvent:
			lookup := keybind.LookupString(xu, ev.State, ev.Detail)
			if code, ok := keysymToLinuxCode(lookup); ok {
				return code, nil
			}
		}
	}
}
