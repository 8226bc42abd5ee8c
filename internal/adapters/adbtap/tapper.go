// Package adbtap injects touchscreen taps on an Android device through adb.
package adbtap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"autotap/internal/core/autoclicker"
)

// Runner executes one adb invocation and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

type Options struct {
	Path   string // adb binary, default "adb"
	Serial string // device serial; empty uses the only attached device
	Runner Runner
}

// Tapper sends `input tap` for zero-hold taps and a same-point `input swipe`
// otherwise, which Android treats as a press held for the swipe duration.
type Tapper struct {
	path   string
	serial string
	runner Runner
	logger autoclicker.Logger
}

func NewTapper(opts Options, logger autoclicker.Logger) (*Tapper, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = "adb"
	}
	runner := opts.Runner
	if runner == nil {
		if _, err := exec.LookPath(path); err != nil {
			return nil, fmt.Errorf("adb not found: %w", err)
		}
		runner = execRunner{}
	}
	return &Tapper{
		path:   path,
		serial: strings.TrimSpace(opts.Serial),
		runner: runner,
		logger: logger,
	}, nil
}

func (t *Tapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	args := t.tapArgs(x, y, hold)
	out, err := t.runner.Run(ctx, t.path, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	// adb shell exits 0 even when the remote command fails.
	if msg := strings.TrimSpace(string(out)); msg != "" {
		return fmt.Errorf("adb %s: %s", strings.Join(args, " "), msg)
	}
	t.logger.Debug("adb tap", "x", x, "y", y, "hold", hold)
	return nil
}

func (t *Tapper) tapArgs(x, y int, hold time.Duration) []string {
	args := make([]string, 0, 10)
	if t.serial != "" {
		args = append(args, "-s", t.serial)
	}
	sx, sy := strconv.Itoa(x), strconv.Itoa(y)
	if ms := hold.Milliseconds(); ms > 0 {
		return append(args, "shell", "input", "swipe", sx, sy, sx, sy, strconv.FormatInt(ms, 10))
	}
	return append(args, "shell", "input", "tap", sx, sy)
}

func (t *Tapper) Close() error {
	return nil
}

// Device is one line of `adb devices -l`.
type Device struct {
	Serial string
	State  string
	Model  string
}

// ListDevices runs `adb devices -l`.
func ListDevices(ctx context.Context, path string, runner Runner) ([]Device, error) {
	if path == "" {
		path = "adb"
	}
	if runner == nil {
		runner = execRunner{}
	}
	out, err := runner.Run(ctx, path, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", err)
	}
	return parseDevices(string(out)), nil
}

func parseDevices(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		dev := Device{Serial: fields[0], State: fields[1]}
		for _, field := range fields[2:] {
			if model, ok := strings.CutPrefix(field, "model:"); ok {
				dev.Model = model
			}
		}
		devices = append(devices, dev)
	}
	return devices
}
