package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "AUTOTAP"
	appName   = "autotap"
)

// Config represents the complete autotap configuration
type Config struct {
	// Backend selects the tap injector: auto, dryrun, x11, windows, robotgo, adb
	Backend string `mapstructure:"backend"`
	// PointsFile is the YAML file holding the click points
	PointsFile string `mapstructure:"points_file"`
	// Watch reloads the points file while running when it changes on disk
	Watch bool `mapstructure:"watch"`

	Log      LogConfig      `mapstructure:"log"`
	Tap      TapConfig      `mapstructure:"tap"`
	Session  SessionConfig  `mapstructure:"session"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	Hotkey   HotkeyConfig   `mapstructure:"hotkey"`
	ADB      ADBConfig      `mapstructure:"adb"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TapConfig controls how each synthetic tap is delivered
type TapConfig struct {
	// HoldMs is how long the pointer stays down per tap
	HoldMs int `mapstructure:"hold_ms"`
	// QueueSize is how many taps may wait for the backend before new ones are refused
	QueueSize int `mapstructure:"queue_size"`
}

// SessionConfig controls one click session
type SessionConfig struct {
	// MaxTaps stops the session after this many completed taps (-1 = unlimited)
	MaxTaps int `mapstructure:"max_taps"`
	// DefaultIntervalMs is the cadence used while no point is enabled
	DefaultIntervalMs int `mapstructure:"default_interval_ms"`
}

// FallbackConfig is the position tapped when no point is enabled and none
// has been tapped yet in this process
type FallbackConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	X       float64 `mapstructure:"x"`
	Y       float64 `mapstructure:"y"`
}

// HotkeyConfig controls the global start/stop toggle
type HotkeyConfig struct {
	// Backend is one of: none, auto, evdev, x11, windows, hook
	Backend string `mapstructure:"backend"`
	// Toggle is the key name, e.g. F8 or KEY_F8
	Toggle string `mapstructure:"toggle"`
	// Device pins the evdev device path; auto-detected when empty
	Device string `mapstructure:"device"`
}

// ADBConfig controls the Android backend
type ADBConfig struct {
	Path   string `mapstructure:"path"`
	Serial string `mapstructure:"serial"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Backend:    "auto",
		PointsFile: DefaultPointsFile(),
		Watch:      false,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tap: TapConfig{
			HoldMs:    50,
			QueueSize: 8,
		},
		Session: SessionConfig{
			MaxTaps:           -1,
			DefaultIntervalMs: 1000,
		},
		Fallback: FallbackConfig{
			Enabled: true,
			X:       500,
			Y:       500,
		},
		Hotkey: HotkeyConfig{
			Backend: "none",
			Toggle:  "F8",
		},
		ADB: ADBConfig{
			Path: "adb",
		},
	}
}

// SetDefaults registers every default with v so keys resolve without a
// config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("points_file", defaults.PointsFile)
	v.SetDefault("watch", defaults.Watch)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetDefault("tap.hold_ms", defaults.Tap.HoldMs)
	v.SetDefault("tap.queue_size", defaults.Tap.QueueSize)

	v.SetDefault("session.max_taps", defaults.Session.MaxTaps)
	v.SetDefault("session.default_interval_ms", defaults.Session.DefaultIntervalMs)

	v.SetDefault("fallback.enabled", defaults.Fallback.Enabled)
	v.SetDefault("fallback.x", defaults.Fallback.X)
	v.SetDefault("fallback.y", defaults.Fallback.Y)

	v.SetDefault("hotkey.backend", defaults.Hotkey.Backend)
	v.SetDefault("hotkey.toggle", defaults.Hotkey.Toggle)
	v.SetDefault("hotkey.device", defaults.Hotkey.Device)

	v.SetDefault("adb.path", defaults.ADB.Path)
	v.SetDefault("adb.serial", defaults.ADB.Serial)
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

func (c *TapConfig) Hold() time.Duration {
	return time.Duration(c.HoldMs) * time.Millisecond
}

func (c *SessionConfig) DefaultInterval() time.Duration {
	return time.Duration(c.DefaultIntervalMs) * time.Millisecond
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultPointsFile returns where click points are kept unless points_file
// says otherwise.
func DefaultPointsFile() string {
	return filepath.Join(ConfigDir(), "points.yaml")
}
