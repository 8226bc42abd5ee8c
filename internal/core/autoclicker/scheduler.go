package autoclicker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"autotap/internal/event"
)

const (
	StopRequested       = "requested"
	StopMaxTaps         = "max_taps"
	StopRepeatExhausted = "repeat_exhausted"
	StopClosed          = "closed"
)

// Options tune a Scheduler. The zero value runs forever and skips ticks while
// no point is enabled.
type Options struct {
	MaxTaps         int           // RepeatUnlimited, or completed taps before auto-stop
	DefaultInterval time.Duration // cadence of fallback ticks
	Fallback        *Position     // tapped when nothing is enabled and no position is known yet
}

// Status is a snapshot of the current (or most recent) session.
type Status struct {
	Running   bool
	Session   uint64
	TapCount  int
	Cancelled int
	Skipped   int
}

type pointState struct {
	completed int
	inflight  int
}

// session is one Start..Stop run. running is flipped without the lock so a
// tick can observe Stop immediately; the counters are guarded by
// Scheduler.mu.
type session struct {
	id      uint64
	running atomic.Bool
	stopCh  chan struct{}

	// ctx ends at Stop and travels with every tap of the session.
	ctx    context.Context
	cancel context.CancelFunc

	cursor    int
	tapCount  int
	cancelled int
	skipped   int
	points    map[int]*pointState
}

func newSession(id uint64) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:     id,
		stopCh: make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		points: make(map[int]*pointState),
	}
}

func (s *session) state(pointID int) *pointState {
	st, ok := s.points[pointID]
	if !ok {
		st = &pointState{}
		s.points[pointID] = st
	}
	return st
}

// Scheduler is the click loop state machine: Idle --Start--> Running
// --Stop--> Idle. While running, one goroutine walks the enabled points
// round-robin, dispatching a tap per tick and sleeping for the interval of the
// point it just tapped.
type Scheduler struct {
	store      *Store
	dispatcher TapDispatcher
	publisher  event.Publisher
	logger     Logger
	opts       Options

	active atomic.Pointer[session]

	// mu serializes Start/Stop with completion accounting, so once Stop
	// returns no CountUpdated for that session can be published.
	mu        sync.Mutex
	last      *session
	nextID    uint64
	lastKnown *Position
	closed    bool

	loops sync.WaitGroup
}

// NewScheduler wires a scheduler. publisher must not block or call back into
// the scheduler synchronously; pass an event.Queue. It may be nil.
func NewScheduler(store *Store, dispatcher TapDispatcher, publisher event.Publisher, logger Logger, opts Options) (*Scheduler, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	opts.MaxTaps = NormalizeRepeat(opts.MaxTaps)
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = DefaultInterval
	}
	opts.DefaultInterval = ClampInterval(opts.DefaultInterval)
	if opts.Fallback != nil {
		fallback := *opts.Fallback
		opts.Fallback = &fallback
	}

	return &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		opts:       opts,
	}, nil
}

// Start begins a new session with the first tick due immediately. It is a
// no-op while a session is running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("Start ignored, scheduler is closed")
		return
	}
	if cur := s.active.Load(); cur != nil && cur.running.Load() {
		s.mu.Unlock()
		return
	}

	s.nextID++
	sess := newSession(s.nextID)
	sess.running.Store(true)
	s.active.Store(sess)
	s.last = sess
	s.loops.Add(1)
	enabled := len(s.store.EnabledPoints())
	s.publish(event.NewStartedEvent(sess.id, enabled))
	s.mu.Unlock()

	s.logger.Info("Click session started", "session", sess.id, "points", enabled, "max_taps", s.opts.MaxTaps)
	go s.loop(sess)
}

// Stop ends the running session. The running flag drops before anything else,
// so no tick begins after Stop returns. It is a no-op when idle.
func (s *Scheduler) Stop() {
	s.stopSession(s.active.Load(), StopRequested)
}

// IsRunning reads the running flag without locking.
func (s *Scheduler) IsRunning() bool {
	sess := s.active.Load()
	return sess != nil && sess.running.Load()
}

// Status reports the running session, or the last one after it stopped.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Status{}
	}
	return Status{
		Running:   s.last.running.Load(),
		Session:   s.last.id,
		TapCount:  s.last.tapCount,
		Cancelled: s.last.cancelled,
		Skipped:   s.last.skipped,
	}
}

// Close stops the scheduler for good and waits for the loop goroutine.
func (s *Scheduler) Close() {
	s.stopSession(s.active.Load(), StopClosed)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.loops.Wait()
}

func (s *Scheduler) stopSession(sess *session, reason string) {
	if sess == nil || !sess.running.CompareAndSwap(true, false) {
		return
	}
	sess.cancel()

	s.mu.Lock()
	close(sess.stopCh)
	s.active.CompareAndSwap(sess, nil)
	count := sess.tapCount
	s.publish(event.NewStoppedEvent(sess.id, count, reason))
	s.mu.Unlock()

	s.logger.Info("Click session stopped", "session", sess.id, "reason", reason, "taps", count)
}

func (s *Scheduler) loop(sess *session) {
	defer s.loops.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-sess.stopCh:
			return
		case <-timer.C:
		}
		if !sess.running.Load() {
			return
		}

		delay := s.tick(sess)

		if !sess.running.Load() {
			return
		}
		timer.Reset(delay)
	}
}

// tick taps the next point and returns the delay before the following tick.
func (s *Scheduler) tick(sess *session) time.Duration {
	enabled := s.store.EnabledPoints()
	if len(enabled) == 0 {
		return s.tickFallback(sess)
	}

	s.mu.Lock()
	if s.maxTapsReservedLocked(sess) {
		s.mu.Unlock()
		return MinInterval
	}
	candidates := eligiblePoints(sess, enabled)
	if len(candidates) == 0 {
		idle := inflightCount(sess) == 0
		s.mu.Unlock()
		if idle {
			s.stopSession(sess, StopRepeatExhausted)
		}
		return MinInterval
	}

	idx := sess.cursor % len(candidates)
	sess.cursor = (idx + 1) % len(candidates)
	point := candidates[idx]

	if !validCoordinate(point.X, point.Y) {
		sess.skipped++
		s.mu.Unlock()
		s.logger.Warn("Skipping tap", "point", point.ID, "err", &TapError{Op: "tap", X: point.X, Y: point.Y, Err: ErrInvalidCoordinate})
		return point.Interval
	}

	sess.state(point.ID).inflight++
	s.lastKnown = &Position{X: point.X, Y: point.Y}
	s.mu.Unlock()

	s.logger.Debug("Tick", "session", sess.id, "point", point.ID, "x", point.X, "y", point.Y, "next", point.Interval)
	s.dispatch(sess, point.ID, point.X, point.Y)
	return point.Interval
}

func (s *Scheduler) tickFallback(sess *session) time.Duration {
	s.mu.Lock()
	if s.maxTapsReservedLocked(sess) {
		s.mu.Unlock()
		return MinInterval
	}
	var pos *Position
	if s.lastKnown != nil {
		pos = s.lastKnown
	} else {
		pos = s.opts.Fallback
	}
	if pos == nil {
		s.mu.Unlock()
		s.logger.Debug("No enabled click points, skipping tick", "session", sess.id)
		return s.opts.DefaultInterval
	}
	x, y := pos.X, pos.Y
	if !validCoordinate(x, y) {
		sess.skipped++
		s.mu.Unlock()
		s.logger.Warn("Skipping fallback tap", "err", &TapError{Op: "tap", X: x, Y: y, Err: ErrInvalidCoordinate})
		return s.opts.DefaultInterval
	}
	sess.state(0).inflight++
	s.mu.Unlock()

	s.logger.Debug("Fallback tick", "session", sess.id, "x", x, "y", y)
	s.dispatch(sess, 0, x, y)
	return s.opts.DefaultInterval
}

func (s *Scheduler) dispatch(sess *session, pointID int, x, y float64) {
	err := s.dispatcher.Dispatch(sess.ctx, x, y, func(outcome TapOutcome) {
		s.handleOutcome(sess, pointID, outcome)
	})
	if err != nil {
		s.logger.Warn("Tap dispatch refused", "point", pointID, "err", err)
		s.handleOutcome(sess, pointID, TapCancelled)
	}
}

func (s *Scheduler) handleOutcome(sess *session, pointID int, outcome TapOutcome) {
	s.mu.Lock()
	st := sess.state(pointID)
	if st.inflight > 0 {
		st.inflight--
	}

	if outcome != TapCompleted {
		sess.cancelled++
		s.mu.Unlock()
		s.logger.Debug("Tap cancelled", "session", sess.id, "point", pointID)
		return
	}
	// Completions that land after Stop are not counted.
	if !sess.running.Load() {
		s.mu.Unlock()
		return
	}
	if s.opts.MaxTaps > 0 && sess.tapCount >= s.opts.MaxTaps {
		s.mu.Unlock()
		return
	}

	sess.tapCount++
	st.completed++
	count := sess.tapCount
	s.publish(event.NewCountUpdatedEvent(sess.id, count, pointID))

	reason := ""
	switch {
	case s.opts.MaxTaps > 0 && count >= s.opts.MaxTaps:
		reason = StopMaxTaps
	case repeatExhausted(sess, s.store.EnabledPoints()):
		reason = StopRepeatExhausted
	}
	s.mu.Unlock()

	if reason != "" {
		s.stopSession(sess, reason)
	}
}

func (s *Scheduler) publish(e event.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

// eligiblePoints drops points whose repeat budget is used up, counting taps
// still in flight.
func eligiblePoints(sess *session, enabled []ClickPoint) []ClickPoint {
	out := make([]ClickPoint, 0, len(enabled))
	for _, point := range enabled {
		if point.Repeat > 0 {
			st := sess.points[point.ID]
			if st != nil && st.completed+st.inflight >= point.Repeat {
				continue
			}
		}
		out = append(out, point)
	}
	return out
}

func repeatExhausted(sess *session, enabled []ClickPoint) bool {
	if len(enabled) == 0 {
		return false
	}
	for _, point := range enabled {
		if point.Repeat <= 0 {
			return false
		}
		st := sess.points[point.ID]
		if st == nil || st.completed < point.Repeat {
			return false
		}
	}
	return true
}

// maxTapsReservedLocked reports whether completed plus in-flight taps already
// cover MaxTaps, so another dispatch could overshoot it.
func (s *Scheduler) maxTapsReservedLocked(sess *session) bool {
	return s.opts.MaxTaps > 0 && sess.tapCount+inflightCount(sess) >= s.opts.MaxTaps
}

func inflightCount(sess *session) int {
	n := 0
	for _, st := range sess.points {
		n += st.inflight
	}
	return n
}
