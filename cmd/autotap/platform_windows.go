//go:build windows

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"autotap/internal/adapters/wininput"
	"autotap/internal/config"
	"autotap/internal/core/autoclicker"
)

func newPlatformTapper(backend string, logger *slog.Logger) (autoclicker.Tapper, string, error) {
	switch backend {
	case "auto", "windows":
		tapper, err := wininput.NewTapper(logger)
		if err != nil {
			return nil, "", err
		}
		return tapper, "windows", nil
	default:
		return nil, "", fmt.Errorf("backend %q is not available on windows", backend)
	}
}

func newPlatformHotkey(backend string, hk config.HotkeyConfig, onToggle func(), logger *slog.Logger) (toggleListener, error) {
	switch backend {
	case "auto", "windows":
		if hk.Device != "" {
			logger.Warn("hotkey.device is ignored on Windows; using global keyboard/mouse hooks")
		}
		listener, err := wininput.NewToggleListener(hk.Toggle, onToggle, logger)
		if err != nil {
			return nil, err
		}
		return listener, nil
	default:
		return nil, fmt.Errorf("hotkey backend %q is not available on windows", backend)
	}
}

func listPlatformDevices(w io.Writer) error {
	fmt.Fprintln(w, "global: Windows Global Input [physical, pointer]")
	return nil
}

func captureKey(ctx context.Context, _ string, _ config.HotkeyConfig) (string, error) {
	vk, err := wininput.CaptureNextKeyCode(ctx)
	if err != nil {
		return "", err
	}
	return wininput.KeyName(vk), nil
}

func permissionDeniedHint() string {
	return "Permission denied registering global input hooks. Run as Administrator and ensure input-hooking is allowed."
}
