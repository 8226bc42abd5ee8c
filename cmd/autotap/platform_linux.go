//go:build linux

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"autotap/internal/adapters/linuxinput"
	"autotap/internal/adapters/x11input"
	"autotap/internal/config"
	"autotap/internal/core/autoclicker"
)

func newPlatformTapper(backend string, logger *slog.Logger) (autoclicker.Tapper, string, error) {
	switch backend {
	case "auto":
		if resolveLinuxBackend("auto") == "x11" {
			return newX11Tapper(logger)
		}
		logger.Warn("No native tap backend for Wayland sessions, falling back to robotgo")
		return newRobotgoTapper(logger)
	case "x11":
		return newX11Tapper(logger)
	default:
		return nil, "", fmt.Errorf("backend %q is not available on linux", backend)
	}
}

func newX11Tapper(logger *slog.Logger) (autoclicker.Tapper, string, error) {
	tapper, err := x11input.NewTapper(logger)
	if err != nil {
		return nil, "", err
	}
	return tapper, "x11", nil
}

func newPlatformHotkey(backend string, hk config.HotkeyConfig, onToggle func(), logger *slog.Logger) (toggleListener, error) {
	switch resolveLinuxBackend(backend) {
	case "x11":
		if hk.Device != "" {
			logger.Warn("hotkey.device is ignored on the X11 hotkey backend")
		}
		listener, err := x11input.NewToggleListener(hk.Toggle, onToggle, logger)
		if err != nil {
			return nil, err
		}
		return listener, nil
	case "wayland":
		listener, err := linuxinput.NewToggleListener(hk.Device, hk.Toggle, onToggle, logger)
		if err != nil {
			return nil, err
		}
		return listener, nil
	default:
		return nil, fmt.Errorf("hotkey backend %q is not available on linux", backend)
	}
}

func listPlatformDevices(w io.Writer) error {
	devices, err := linuxinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		virtualTag := "physical"
		if dev.IsVirtual {
			virtualTag = "virtual"
		}
		pointerTag := "non-pointer"
		if dev.IsPointer {
			pointerTag = "pointer"
		}
		fmt.Fprintf(w, "%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, pointerTag)
	}
	return nil
}

func captureKey(ctx context.Context, backend string, hk config.HotkeyConfig) (string, error) {
	var (
		code uint16
		err  error
	)
	switch resolveLinuxBackend(backend) {
	case "x11":
		code, err = x11input.CaptureNextKeyCode(ctx)
	default:
		code, err = linuxinput.CaptureNextKeyCode(ctx, hk.Device)
	}
	if err != nil {
		return "", err
	}
	return linuxinput.FormatCodeName(code), nil
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. The evdev hotkey needs read access to /dev/input (root or the input group). On X11 ensure an active X11 session and DISPLAY is set."
}

// resolveLinuxBackend turns auto into "x11" or "wayland" from the session
// environment and evdev into "wayland". Other names pass through.
func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	switch choice {
	case "", "auto", "hook", "none":
	case "evdev":
		return "wayland"
	default:
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}
