// Package hotkey listens for a global toggle key through gohook. It works
// wherever gohook does (X11, Windows, macOS) and needs no device access.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"

	"autotap/internal/core/autoclicker"
)

// gohook keeps one global event loop per process.
var active sync.Mutex

type ToggleListener struct {
	key      string
	onToggle func()
	logger   autoclicker.Logger

	mu      sync.Mutex
	running bool
	doneCh  chan struct{}
}

// NewToggleListener accepts key names as "F8", "KEY_F8" or "f8".
func NewToggleListener(key string, onToggle func(), logger autoclicker.Logger) (*ToggleListener, error) {
	if onToggle == nil {
		return nil, errors.New("toggle callback is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	name := KeyName(key)
	if name == "" {
		return nil, fmt.Errorf("toggle key is empty")
	}
	if _, ok := hook.Keycode[name]; !ok {
		return nil, fmt.Errorf("unknown toggle key %q", key)
	}
	return &ToggleListener{key: name, onToggle: onToggle, logger: logger}, nil
}

func (l *ToggleListener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}
	if !active.TryLock() {
		return errors.New("another hotkey listener is already running")
	}

	hook.Register(hook.KeyDown, []string{l.key}, func(hook.Event) {
		l.logger.Debug("Toggle hotkey pressed", "key", l.key)
		l.onToggle()
	})
	events := hook.Start()
	l.doneCh = make(chan struct{})
	l.running = true

	go func(done chan struct{}) {
		defer close(done)
		<-hook.Process(events)
	}(l.doneCh)

	l.logger.Info("Listening for toggle hotkey", "backend", "hook", "key", l.key)
	return nil
}

func (l *ToggleListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	hook.End()
	<-l.doneCh
	l.running = false
	active.Unlock()
}

// KeyName maps evdev-style names to gohook's lower-case key names.
func KeyName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, "key_")
	switch name {
	case "esc":
		return "esc"
	case "leftctrl", "rightctrl":
		return "ctrl"
	case "leftshift", "rightshift":
		return "shift"
	case "leftalt", "rightalt":
		return "alt"
	case "pageup":
		return "pageup"
	case "pagedown":
		return "pagedown"
	}
	return name
}
