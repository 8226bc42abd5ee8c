package adbtap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type recordingRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.out, r.err
}

func TestTapUsesInputTapWithoutHold(t *testing.T) {
	runner := &recordingRunner{}
	tapper, err := NewTapper(Options{Runner: runner}, noopLogger{})
	if err != nil {
		t.Fatalf("NewTapper() error = %v", err)
	}

	if err := tapper.Tap(context.Background(), 120, 340, 0); err != nil {
		t.Fatalf("Tap() error = %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 adb call, got %d", len(runner.calls))
	}
	if got := strings.Join(runner.calls[0], " "); got != "adb shell input tap 120 340" {
		t.Fatalf("adb call = %q", got)
	}
}

func TestTapUsesSwipeForHoldAndSerial(t *testing.T) {
	runner := &recordingRunner{}
	tapper, err := NewTapper(Options{Path: "/opt/adb", Serial: "emulator-5554", Runner: runner}, noopLogger{})
	if err != nil {
		t.Fatalf("NewTapper() error = %v", err)
	}

	if err := tapper.Tap(context.Background(), 10, 20, 75*time.Millisecond); err != nil {
		t.Fatalf("Tap() error = %v", err)
	}
	want := "/opt/adb -s emulator-5554 shell input swipe 10 20 10 20 75"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Fatalf("adb call = %q, want %q", got, want)
	}
}

func TestTapReportsFailures(t *testing.T) {
	runner := &recordingRunner{err: errors.New("exit status 1"), out: []byte("error: no devices/emulators found")}
	tapper, _ := NewTapper(Options{Runner: runner}, noopLogger{})

	err := tapper.Tap(context.Background(), 1, 1, 0)
	if err == nil || !strings.Contains(err.Error(), "no devices") {
		t.Fatalf("Tap() error = %v, want adb output in error", err)
	}

	runner.err = nil
	runner.out = []byte("Error: Unknown command: tapp")
	if err := tapper.Tap(context.Background(), 1, 1, 0); err == nil {
		t.Fatalf("expected remote shell output to be treated as failure")
	}
}

func TestTapReturnsContextError(t *testing.T) {
	runner := &recordingRunner{err: errors.New("signal: killed")}
	tapper, _ := NewTapper(Options{Runner: runner}, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tapper.Tap(ctx, 1, 1, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("Tap() error = %v, want context.Canceled", err)
	}
}

func TestListDevicesParsesOutput(t *testing.T) {
	runner := &recordingRunner{out: []byte(`* daemon started successfully
List of devices attached
emulator-5554          device product:sdk_gphone model:Pixel_6 device:emu64a transport_id:1
R58M123ABC             unauthorized usb:1-1 transport_id:2

`)}

	devices, err := ListDevices(context.Background(), "", runner)
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if got := strings.Join(runner.calls[0], " "); got != "adb devices -l" {
		t.Fatalf("adb call = %q", got)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %+v", devices)
	}
	if devices[0] != (Device{Serial: "emulator-5554", State: "device", Model: "Pixel_6"}) {
		t.Fatalf("first device = %+v", devices[0])
	}
	if devices[1].State != "unauthorized" || devices[1].Model != "" {
		t.Fatalf("second device = %+v", devices[1])
	}
}

func TestNewTapperRequiresLogger(t *testing.T) {
	if _, err := NewTapper(Options{Runner: &recordingRunner{}}, nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}
