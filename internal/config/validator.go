package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tap.hold_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

func ValidBackends() []string {
	return []string{"auto", "dryrun", "x11", "windows", "robotgo", "adb"}
}

func ValidHotkeyBackends() []string {
	return []string{"none", "auto", "evdev", "x11", "windows", "hook"}
}

func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "warning", "error"}
}

func ValidLogFormats() []string {
	return []string{"text", "json"}
}

const (
	minIntervalMs = 100
	maxHoldMs     = 5000
	maxQueueSize  = 1024
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGeneral()...)
	errors = append(errors, c.validateLog()...)
	errors = append(errors, c.validateTap()...)
	errors = append(errors, c.validateSession()...)
	errors = append(errors, c.validateFallback()...)
	errors = append(errors, c.validateHotkey()...)
	errors = append(errors, c.validateADB()...)

	return errors
}

func (c *Config) validateGeneral() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidBackends(), strings.ToLower(c.Backend)) {
		errors = append(errors, ValidationError{
			Field:   "backend",
			Value:   c.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}
	if strings.TrimSpace(c.PointsFile) == "" {
		errors = append(errors, ValidationError{
			Field:   "points_file",
			Value:   c.PointsFile,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateLog() []ValidationError {
	var errors []ValidationError

	if c.Log.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Log.Format != "" && !slices.Contains(ValidLogFormats(), strings.ToLower(c.Log.Format)) {
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateTap() []ValidationError {
	var errors []ValidationError

	if c.Tap.HoldMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "tap.hold_ms",
			Value:   c.Tap.HoldMs,
			Message: "must be non-negative",
		})
	}
	if c.Tap.HoldMs > maxHoldMs {
		errors = append(errors, ValidationError{
			Field:   "tap.hold_ms",
			Value:   c.Tap.HoldMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxHoldMs),
		})
	}
	if c.Tap.QueueSize < 1 || c.Tap.QueueSize > maxQueueSize {
		errors = append(errors, ValidationError{
			Field:   "tap.queue_size",
			Value:   c.Tap.QueueSize,
			Message: fmt.Sprintf("must be between 1 and %d", maxQueueSize),
		})
	}

	return errors
}

func (c *Config) validateSession() []ValidationError {
	var errors []ValidationError

	if c.Session.MaxTaps == 0 || c.Session.MaxTaps < -1 {
		errors = append(errors, ValidationError{
			Field:   "session.max_taps",
			Value:   c.Session.MaxTaps,
			Message: "must be -1 (unlimited) or a positive count",
		})
	}
	if c.Session.DefaultIntervalMs < minIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "session.default_interval_ms",
			Value:   c.Session.DefaultIntervalMs,
			Message: fmt.Sprintf("must be at least %dms", minIntervalMs),
		})
	}

	return errors
}

func (c *Config) validateFallback() []ValidationError {
	var errors []ValidationError

	if !c.Fallback.Enabled {
		return errors
	}
	if c.Fallback.X <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fallback.x",
			Value:   c.Fallback.X,
			Message: "must be positive",
		})
	}
	if c.Fallback.Y <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fallback.y",
			Value:   c.Fallback.Y,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateHotkey() []ValidationError {
	var errors []ValidationError

	backend := strings.ToLower(c.Hotkey.Backend)
	if !slices.Contains(ValidHotkeyBackends(), backend) {
		errors = append(errors, ValidationError{
			Field:   "hotkey.backend",
			Value:   c.Hotkey.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidHotkeyBackends(), ", ")),
		})
	}
	if backend != "none" && strings.TrimSpace(c.Hotkey.Toggle) == "" {
		errors = append(errors, ValidationError{
			Field:   "hotkey.toggle",
			Value:   c.Hotkey.Toggle,
			Message: "must name a key when a hotkey backend is enabled",
		})
	}

	return errors
}

func (c *Config) validateADB() []ValidationError {
	var errors []ValidationError

	if strings.EqualFold(c.Backend, "adb") && strings.TrimSpace(c.ADB.Path) == "" {
		errors = append(errors, ValidationError{
			Field:   "adb.path",
			Value:   c.ADB.Path,
			Message: "must not be empty when backend is adb",
		})
	}

	return errors
}
