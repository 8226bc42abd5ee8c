package event

import "sync"

// Queue delivers events to a Publisher from a single goroutine. Publish never
// blocks; events are delivered in the order they were published.
type Queue struct {
	target Publisher

	mu      sync.Mutex
	pending []Event
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewQueue starts the delivery goroutine. Call Close to drain and stop it.
func NewQueue(target Publisher) *Queue {
	q := &Queue{
		target: target,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Publish enqueues an event. Events published after Close are dropped.
func (q *Queue) Publish(e Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, e)
	q.mu.Unlock()
	q.signal()
}

// Close delivers everything already queued, then stops the goroutine.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
	<-q.done
}

// Pending returns the number of events waiting for delivery.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.mu.Unlock()
			<-q.wake
			q.mu.Lock()
		}
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		if len(batch) == 0 && closed {
			return
		}
		for _, e := range batch {
			q.target.Publish(e)
		}
	}
}
