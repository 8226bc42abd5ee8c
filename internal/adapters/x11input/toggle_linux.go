//go:build linux

package x11input

import (
	"fmt"
	"sort"
	"sync"

	"autotap/internal/adapters/linuxinput"
	"autotap/internal/core/autoclicker"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ToggleListener grabs the toggle key (or mouse button) on the root window
// with any modifier and calls onToggle on each press. Grabbed events are
// replayed so the focused window still receives them.
type ToggleListener struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window

	code     uint16
	keycodes []xproto.Keycode
	button   xproto.Button
	onToggle func()
	logger   autoclicker.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewToggleListener(key string, onToggle func(), logger autoclicker.Logger) (*ToggleListener, error) {
	if onToggle == nil {
		return nil, fmt.Errorf("toggle callback is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	code, err := linuxinput.ParseCode(key)
	if err != nil {
		return nil, err
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	keybind.Initialize(xu)

	l := &ToggleListener{
		xu:       xu,
		conn:     xu.Conn(),
		rootWin:  xu.RootWin(),
		code:     code,
		onToggle: onToggle,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if err := l.resolve(); err != nil {
		l.conn.Close()
		return nil, err
	}
	return l, nil
}

func (l *ToggleListener) resolve() error {
	if button, ok := codeToXButton(l.code); ok {
		l.button = button
		return nil
	}

	keyName, ok := linuxCodeToKeysym(l.code)
	if !ok {
		return fmt.Errorf("unsupported X11 key code %s", linuxinput.FormatCodeName(l.code))
	}
	keycodes := keybind.StrToKeycodes(l.xu, keyName)
	if len(keycodes) == 0 {
		return fmt.Errorf("failed to resolve X11 key %q", keyName)
	}

	seen := make(map[xproto.Keycode]struct{}, len(keycodes))
	for _, keycode := range keycodes {
		if _, dup := seen[keycode]; dup {
			continue
		}
		seen[keycode] = struct{}{}
		l.keycodes = append(l.keycodes, keycode)
	}
	sort.Slice(l.keycodes, func(i, j int) bool { return l.keycodes[i] < l.keycodes[j] })
	return nil
}

func (l *ToggleListener) Start() error {
	if err := l.grab(); err != nil {
		l.ungrab()
		return err
	}
	go l.eventLoop()
	l.logger.Info("Listening for toggle hotkey", "backend", "x11", "key", linuxinput.FormatCodeName(l.code))
	return nil
}

func (l *ToggleListener) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.ungrab()
		l.conn.Close()
		<-l.doneCh
	})
}

func (l *ToggleListener) grab() error {
	for _, key := range l.keycodes {
		if err := xproto.GrabKeyChecked(
			l.conn,
			false,
			l.rootWin,
			xproto.ModMaskAny,
			key,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check(); err != nil {
			return fmt.Errorf("grab key %d: %w", key, err)
		}
	}
	if l.button != 0 {
		if err := xproto.GrabButtonChecked(
			l.conn,
			false,
			l.rootWin,
			xproto.EventMaskButtonPress,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
			xproto.WindowNone,
			xproto.CursorNone,
			byte(l.button),
			xproto.ModMaskAny,
		).Check(); err != nil {
			return fmt.Errorf("grab button %d: %w", l.button, err)
		}
	}
	return nil
}

func (l *ToggleListener) ungrab() {
	for _, key := range l.keycodes {
		xproto.UngrabKey(l.conn, key, l.rootWin, xproto.ModMaskAny)
	}
	if l.button != 0 {
		xproto.UngrabButton(l.conn, byte(l.button), l.rootWin, xproto.ModMaskAny)
	}
}

func (l *ToggleListener) eventLoop() {
	defer close(l.doneCh)

	for {
		event, xerr := l.conn.WaitForEvent()
		if xerr != nil {
			select {
			case <-l.stopCh:
				return
			default:
			}
			l.logger.Warn("X11 event error", "err", xerr)
			continue
		}
		if event == nil {
			return
		}

		switch ev := event.(type) {
		case xproto.KeyPressEvent:
			if l.matchesKey(ev.Detail) {
				l.logger.Debug("Toggle hotkey pressed", "backend", "x11")
				l.onToggle()
			}
			_ = xproto.AllowEventsChecked(l.conn, xproto.AllowReplayKeyboard, xproto.TimeCurrentTime).Check()
		case xproto.ButtonPressEvent:
			if l.button != 0 && ev.Detail == l.button {
				l.logger.Debug("Toggle hotkey pressed", "backend", "x11")
				l.onToggle()
			}
			_ = xproto.AllowEventsChecked(l.conn, xproto.AllowReplayPointer, xproto.TimeCurrentTime).Check()
		}
	}
}

func (l *ToggleListener) matchesKey(key xproto.Keycode) bool {
	for _, keycode := range l.keycodes {
		if keycode == key {
			return true
		}
	}
	return false
}
