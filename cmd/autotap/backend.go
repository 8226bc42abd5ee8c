package main

import (
	"fmt"
	"log/slog"
	"strings"

	"autotap/internal/adapters/adbtap"
	"autotap/internal/adapters/hotkey"
	"autotap/internal/adapters/robotgotap"
	"autotap/internal/config"
	"autotap/internal/core/autoclicker"
)

// toggleListener is implemented by every hotkey backend.
type toggleListener interface {
	Start() error
	Stop()
}

// newTapper returns the tap backend named by cfg.Backend and the name it
// resolved to.
func newTapper(cfg *config.Config, logger *slog.Logger) (autoclicker.Tapper, string, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case "dryrun":
		return autoclicker.NewDryRunTapper(logger), backend, nil
	case "adb":
		tapper, err := adbtap.NewTapper(adbtap.Options{Path: cfg.ADB.Path, Serial: cfg.ADB.Serial}, logger)
		if err != nil {
			return nil, "", err
		}
		return tapper, backend, nil
	case "robotgo":
		return newRobotgoTapper(logger)
	default:
		return newPlatformTapper(backend, logger)
	}
}

func newRobotgoTapper(logger *slog.Logger) (autoclicker.Tapper, string, error) {
	tapper, err := robotgotap.NewTapper(logger)
	if err != nil {
		return nil, "", err
	}
	return tapper, "robotgo", nil
}

// newHotkeyListener returns nil when hotkey.backend is none.
func newHotkeyListener(cfg *config.Config, onToggle func(), logger *slog.Logger) (toggleListener, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Hotkey.Backend))
	switch backend {
	case "", "none":
		return nil, nil
	case "hook":
		listener, err := newHookListener(cfg.Hotkey, onToggle, logger)
		if err != nil {
			return nil, fmt.Errorf("hotkey: %w", err)
		}
		return listener, nil
	default:
		listener, err := newPlatformHotkey(backend, cfg.Hotkey, onToggle, logger)
		if err != nil {
			return nil, fmt.Errorf("hotkey: %w", err)
		}
		return listener, nil
	}
}

func newHookListener(hk config.HotkeyConfig, onToggle func(), logger *slog.Logger) (toggleListener, error) {
	listener, err := hotkey.NewToggleListener(hk.Toggle, onToggle, logger)
	if err != nil {
		return nil, err
	}
	return listener, nil
}
