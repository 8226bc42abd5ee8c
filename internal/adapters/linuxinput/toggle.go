//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"autotap/internal/core/autoclicker"

	evdev "github.com/holoplot/go-evdev"
)

// ToggleListener reads key events straight from /dev/input and calls
// onToggle on every press of the toggle key. It works on Wayland, where no
// global key grab is available, but needs read access to the devices.
type ToggleListener struct {
	devices  []*evdev.InputDevice
	code     uint16
	onToggle func()
	logger   autoclicker.Logger

	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

// NewToggleListener opens devicePath, or every physical device exposing the
// key when devicePath is empty.
func NewToggleListener(devicePath, key string, onToggle func(), logger autoclicker.Logger) (*ToggleListener, error) {
	if onToggle == nil {
		return nil, fmt.Errorf("toggle callback is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	code, err := ParseCode(key)
	if err != nil {
		return nil, err
	}

	devices, err := OpenToggleDevices(devicePath, code)
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		name, _ := dev.Name()
		logger.Info("Using toggle device", "path", dev.Path(), "name", name)
	}

	return &ToggleListener{
		devices:  devices,
		code:     code,
		onToggle: onToggle,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

func (l *ToggleListener) Start() error {
	for _, dev := range l.devices {
		if err := dev.NonBlock(); err != nil {
			return fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
	}

	for _, dev := range l.devices {
		l.readersWG.Add(1)
		go l.readLoop(dev)
	}
	l.logger.Info("Listening for toggle hotkey", "backend", "evdev", "key", FormatCodeName(l.code))
	return nil
}

func (l *ToggleListener) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		for _, dev := range l.devices {
			_ = dev.Close()
		}
		l.readersWG.Wait()
	})
}

func (l *ToggleListener) readLoop(dev *evdev.InputDevice) {
	defer l.readersWG.Done()

	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if l.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !l.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			l.logger.Warn("Read failed", "path", path, "err", err)
			if !l.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}

		for _, event := range events {
			if isPress(event, l.code) {
				l.logger.Debug("Toggle hotkey pressed", "path", path)
				l.onToggle()
			}
		}
	}
}

// isPress ignores autorepeat (value 2) and releases (value 0).
func isPress(event evdev.InputEvent, code uint16) bool {
	return event.Type == evdev.EV_KEY && uint16(event.Code) == code && event.Value == 1
}

func (l *ToggleListener) stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

func (l *ToggleListener) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-l.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
