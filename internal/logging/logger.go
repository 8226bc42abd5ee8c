// Package logging builds the slog loggers used across autotap.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Options describe how to configure a logger instance.
type Options struct {
	Level  string    // debug|info|warn|error, default info
	Format string    // text|json, default text
	Output io.Writer // default os.Stderr
	Sink   func(line string)
}

// New creates a structured logger. Setting DEBUG=1 in the environment forces
// the debug level regardless of Options.Level.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if DebugEnabled() {
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Sink != nil {
		out = io.MultiWriter(out, &LineWriter{Sink: opts.Sink})
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text", "console":
		handler = slog.NewTextHandler(out, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	default:
		return nil, fmt.Errorf("unsupported log format %q (expected text|json)", opts.Format)
	}
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func DebugEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

// ParseLevel accepts debug, info, warn/warning and error. Empty means info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
}

// LineWriter splits written bytes into trimmed lines and hands each non-empty
// line to Sink. Partial lines are buffered until the newline arrives.
type LineWriter struct {
	Sink func(line string)

	mu    sync.Mutex
	lines bytes.Buffer
}

func (w *LineWriter) Write(p []byte) (int, error) {
	if w.Sink == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx == -1 {
			_, _ = w.lines.Write(p)
			break
		}
		_, _ = w.lines.Write(p[:idx])
		line := strings.TrimSpace(w.lines.String())
		w.lines.Reset()
		if line != "" {
			w.Sink(line)
		}
		p = p[idx+1:]
	}
	return total, nil
}
