//go:build !linux && !windows

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"autotap/internal/config"
	"autotap/internal/core/autoclicker"
)

func newPlatformTapper(backend string, logger *slog.Logger) (autoclicker.Tapper, string, error) {
	if backend == "auto" {
		return newRobotgoTapper(logger)
	}
	return nil, "", fmt.Errorf("backend %q is not supported on this platform", backend)
}

func newPlatformHotkey(backend string, hk config.HotkeyConfig, onToggle func(), logger *slog.Logger) (toggleListener, error) {
	if backend == "auto" {
		return newHookListener(hk, onToggle, logger)
	}
	return nil, fmt.Errorf("hotkey backend %q is not supported on this platform", backend)
}

func listPlatformDevices(_ io.Writer) error {
	return fmt.Errorf("input device listing is not supported on this platform")
}

func captureKey(_ context.Context, _ string, _ config.HotkeyConfig) (string, error) {
	return "", fmt.Errorf("key capture is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. Grant accessibility permission to the terminal running autotap."
}
