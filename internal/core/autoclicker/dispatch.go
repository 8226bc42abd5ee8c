package autoclicker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	defaultQueueSize  = 8
	defaultTapTimeout = 2 * time.Second
)

type DispatcherOptions struct {
	Hold      time.Duration // press duration per tap
	QueueSize int           // pending taps before Dispatch refuses
	Timeout   time.Duration // upper bound for one backend call
}

type tapJob struct {
	ctx  context.Context
	x, y float64
	done func(TapOutcome)
}

// AsyncDispatcher runs a synchronous Tapper on one worker goroutine so the
// scheduler never waits for the platform. Taps execute in dispatch order.
type AsyncDispatcher struct {
	tapper  Tapper
	logger  Logger
	hold    time.Duration
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan tapJob

	ctx    context.Context
	cancel context.CancelFunc
	doneCh chan struct{}
}

func NewAsyncDispatcher(tapper Tapper, opts DispatcherOptions, logger Logger) (*AsyncDispatcher, error) {
	if tapper == nil {
		return nil, errors.New("tapper is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	if opts.Hold < 0 {
		return nil, fmt.Errorf("hold must be >= 0, got %v", opts.Hold)
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTapTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &AsyncDispatcher{
		tapper:  tapper,
		logger:  logger,
		hold:    opts.Hold,
		timeout: timeout,
		jobs:    make(chan tapJob, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
	}
	go d.worker()
	return d, nil
}

// Dispatch queues a tap. It refuses with ErrQueueFull or ErrDispatcherClosed
// instead of blocking. A queued tap whose ctx has ended by the time the
// worker reaches it is reported as cancelled without touching the backend.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, x, y float64, done func(TapOutcome)) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return &TapError{Op: "dispatch", X: x, Y: y, Err: ErrDispatcherClosed}
	}
	if err := ctx.Err(); err != nil {
		return &TapError{Op: "dispatch", X: x, Y: y, Err: err}
	}
	select {
	case d.jobs <- tapJob{ctx: ctx, x: x, y: y, done: done}:
		return nil
	default:
		return &TapError{Op: "dispatch", X: x, Y: y, Err: ErrQueueFull}
	}
}

// Close cancels queued taps, waits for the worker, and closes the tapper.
// Every accepted tap still receives exactly one outcome.
func (d *AsyncDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.cancel()
	<-d.doneCh
	return d.tapper.Close()
}

func (d *AsyncDispatcher) worker() {
	defer close(d.doneCh)
	for job := range d.jobs {
		outcome := d.run(job)
		if job.done != nil {
			job.done(outcome)
		}
	}
}

func (d *AsyncDispatcher) run(job tapJob) TapOutcome {
	if d.ctx.Err() != nil || job.ctx.Err() != nil {
		return TapCancelled
	}
	// The tap ends with whichever comes first: the caller's ctx, Close, or
	// the backend timeout.
	ctx, cancel := context.WithTimeout(job.ctx, d.timeout)
	defer cancel()
	stop := context.AfterFunc(d.ctx, cancel)
	defer stop()

	x := int(math.Round(job.x))
	y := int(math.Round(job.y))
	if err := d.tapper.Tap(ctx, x, y, d.hold); err != nil {
		d.logger.Warn("Tap failed", "x", x, "y", y, "err", err)
		return TapCancelled
	}
	return TapCompleted
}

// DryRunTapper only logs. It honours the hold time so cadence looks real.
type DryRunTapper struct {
	logger Logger
}

func NewDryRunTapper(logger Logger) *DryRunTapper {
	return &DryRunTapper{logger: logger}
}

func (t *DryRunTapper) Tap(ctx context.Context, x, y int, hold time.Duration) error {
	t.logger.Info("Tap", "x", x, "y", y, "hold", hold)
	if hold <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(hold)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *DryRunTapper) Close() error {
	return nil
}
