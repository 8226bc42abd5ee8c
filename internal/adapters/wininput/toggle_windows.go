//go:build windows

package wininput

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"autotap/internal/core/autoclicker"
)

var (
	mouseHookCallback    = syscall.NewCallback(mouseLLCallback)
	keyboardHookCallback = syscall.NewCallback(keyboardLLCallback)

	// Hook callbacks carry no user data, so only one listener may be active.
	activeListener atomic.Pointer[ToggleListener]
)

// ToggleListener installs low-level hooks on a dedicated OS thread and calls
// onToggle when the configured key or mouse button goes down. Injected input
// is ignored, so our own taps never toggle.
type ToggleListener struct {
	vk       uint32
	onToggle func()
	logger   autoclicker.Logger

	stopOnce sync.Once
	threadID atomic.Uint32
	doneCh   chan struct{}
}

func NewToggleListener(key string, onToggle func(), logger autoclicker.Logger) (*ToggleListener, error) {
	if onToggle == nil {
		return nil, fmt.Errorf("toggle callback is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	vk, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	return &ToggleListener{
		vk:       vk,
		onToggle: onToggle,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}, nil
}

func (l *ToggleListener) Start() error {
	if !activeListener.CompareAndSwap(nil, l) {
		return fmt.Errorf("windows hotkey listener is already active")
	}

	ready := make(chan error, 1)
	go l.hookLoop(ready)
	if err := <-ready; err != nil {
		<-l.doneCh
		return err
	}
	l.logger.Info("Listening for toggle hotkey", "backend", "windows", "key", KeyName(l.vk))
	return nil
}

func (l *ToggleListener) Stop() {
	l.stopOnce.Do(func() {
		threadID := l.threadID.Load()
		if threadID == 0 {
			activeListener.CompareAndSwap(l, nil)
			return
		}
		_, _, _ = procPostThreadMessageW.Call(uintptr(threadID), uintptr(wmQuit), 0, 0)
		<-l.doneCh
	})
}

func (l *ToggleListener) hookLoop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.doneCh)
	defer activeListener.CompareAndSwap(l, nil)

	threadID, _, _ := procGetCurrentThreadID.Call()

	hookType, callback := whKeyboardLL, keyboardHookCallback
	if isMouseVK(l.vk) {
		hookType, callback = whMouseLL, mouseHookCallback
	}
	hook, _, hookErr := procSetWindowsHookExW.Call(uintptr(hookType), callback, 0, 0)
	if hook == 0 {
		ready <- fmt.Errorf("failed to install input hook: %w", hookErr)
		return
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(hook)
	}()

	l.threadID.Store(uint32(threadID))
	ready <- nil

	var msg message
	for {
		ret, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			l.logger.Warn("Windows message loop failed", "err", callErr)
			return
		case 0:
			return
		default:
			_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
		}
	}
}

func mouseLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		if l := activeListener.Load(); l != nil {
			event := (*mouseLLHookStruct)(unsafe.Pointer(lParam))
			if event.Flags&llmhfInjected == 0 && mouseDownVK(uint32(wParam), event.MouseData) == l.vk {
				l.fire()
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

func keyboardLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		if l := activeListener.Load(); l != nil {
			event := (*keyboardLLHookStruct)(unsafe.Pointer(lParam))
			injected := event.Flags&(llkhfInjected|llkhfLowerILInjected) != 0
			down := uint32(wParam) == wmKeyDown || uint32(wParam) == wmSysKeyDown
			if !injected && down && normalizeHookVK(event.VkCode, event.Flags) == l.vk {
				l.fire()
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

// fire runs the callback off the hook thread; Windows drops hooks that take
// too long to return.
func (l *ToggleListener) fire() {
	l.logger.Debug("Toggle hotkey pressed", "backend", "windows")
	go l.onToggle()
}

func mouseDownVK(msg uint32, mouseData uint32) uint32 {
	switch msg {
	case wmLButtonDown:
		return vkLBUTTON
	case wmRButtonDown:
		return vkRBUTTON
	case wmMButtonDown:
		return vkMBUTTON
	case wmXButtonDown:
		switch uint16(mouseData >> 16) {
		case xButton1:
			return vkXBUTTON1
		case xButton2:
			return vkXBUTTON2
		}
	}
	return 0
}
