package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"autotap/internal/config"
	"autotap/internal/core/autoclicker"
	"autotap/internal/event"
	"autotap/internal/pointfile"
)

func newRunCmd(a *app) *cobra.Command {
	var start, once bool
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the click scheduler until q, Ctrl+C or SIGTERM",
		Long: `Load the click points and wait for a toggle: the configured hotkey, or 's'
in the terminal. 'q' or Ctrl+C stops tapping and exits.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScheduler(cmd.Context(), start, once)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&start, "start", false, "start tapping immediately")
	flags.BoolVar(&once, "once", false, "exit when the first session stops")
	flags.String("backend", defaults.Backend, "tap backend: "+strings.Join(config.ValidBackends(), "|"))
	flags.Int("max-taps", defaults.Session.MaxTaps, "stop after this many completed taps (-1 = unlimited)")
	flags.Bool("watch", defaults.Watch, "reload the point file when it changes on disk")
	flags.String("hotkey", defaults.Hotkey.Backend, "toggle hotkey backend: "+strings.Join(config.ValidHotkeyBackends(), "|"))
	flags.String("toggle", defaults.Hotkey.Toggle, "toggle hotkey, e.g. F8, KEY_F8 or BTN_SIDE")
	_ = a.v.BindPFlag("backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("session.max_taps", flags.Lookup("max-taps"))
	_ = a.v.BindPFlag("watch", flags.Lookup("watch"))
	_ = a.v.BindPFlag("hotkey.backend", flags.Lookup("hotkey"))
	_ = a.v.BindPFlag("hotkey.toggle", flags.Lookup("toggle"))
	return cmd
}

func (a *app) runScheduler(ctx context.Context, start, once bool) error {
	cfg := a.cfg

	var raw atomic.Bool
	out := newCRLFWriter(a.stdout, &raw)
	logger, err := a.newLogger(newCRLFWriter(a.stderr, &raw))
	if err != nil {
		return err
	}

	bus := event.NewBus(logger)
	printer := &statusPrinter{out: out}
	bus.SubscribeAll(printer.handle)
	queue := event.NewQueue(bus)
	defer queue.Close()

	store := autoclicker.NewStore(queue)
	points, err := pointfile.Load(cfg.PointsFile)
	if err != nil {
		return err
	}
	store.Replace(points)

	tapper, backendName, err := newTapper(cfg, logger)
	if err != nil {
		return err
	}
	dispatcher, err := autoclicker.NewAsyncDispatcher(tapper, autoclicker.DispatcherOptions{
		Hold:      cfg.Tap.Hold(),
		QueueSize: cfg.Tap.QueueSize,
	}, logger)
	if err != nil {
		_ = tapper.Close()
		return err
	}
	defer dispatcher.Close()

	opts := autoclicker.Options{
		MaxTaps:         cfg.Session.MaxTaps,
		DefaultInterval: cfg.Session.DefaultInterval(),
	}
	if cfg.Fallback.Enabled {
		opts.Fallback = &autoclicker.Position{X: cfg.Fallback.X, Y: cfg.Fallback.Y}
	}
	scheduler, err := autoclicker.NewScheduler(store, dispatcher, queue, logger, opts)
	if err != nil {
		return err
	}
	defer scheduler.Close()

	toggle := func() {
		if scheduler.IsRunning() {
			scheduler.Stop()
			return
		}
		scheduler.Start()
	}

	if cfg.Watch {
		if err := os.MkdirAll(filepath.Dir(cfg.PointsFile), 0o700); err != nil {
			return fmt.Errorf("failed to create points dir: %w", err)
		}
		watcher, err := pointfile.NewWatcher(cfg.PointsFile, store.Replace, logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.PointsFile, err)
		}
		watcher.Start()
		defer watcher.Stop()
	}

	listener, err := newHotkeyListener(cfg, toggle, logger)
	if err != nil {
		return err
	}
	if listener != nil {
		if err := listener.Start(); err != nil {
			listener.Stop()
			return err
		}
		defer listener.Stop()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if once {
		bus.Subscribe(event.TypeStopped, func(event.Event) { cancel() })
	}

	keys, err := startKeyControls(a.stdin, toggle, cancel)
	if err != nil {
		logger.Warn("Terminal key controls unavailable", "err", err)
	}
	if keys != nil {
		raw.Store(true)
		defer func() {
			keys.restore()
			raw.Store(false)
		}()
	}

	logger.Info("Backend", "name", backendName)
	logger.Info("Points", "file", cfg.PointsFile, "total", store.Len(), "enabled", len(store.EnabledPoints()))
	if listener != nil {
		logger.Info("Toggle", "key", cfg.Hotkey.Toggle, "backend", cfg.Hotkey.Backend)
	}
	if keys != nil {
		fmt.Fprintln(out, mutedStyle.Render("s: start/stop  q: quit"))
	} else {
		logger.Info("Press Ctrl+C to stop")
	}

	if start {
		scheduler.Start()
	}
	<-ctx.Done()
	scheduler.Stop()

	status := scheduler.Status()
	logger.Debug("Exiting", "sessions", status.Session, "last_taps", status.TapCount)
	return nil
}
