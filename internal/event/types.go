package event

import "time"

const (
	TypeStarted       = "autotap.started"
	TypeStopped       = "autotap.stopped"
	TypeCountUpdated  = "autotap.count_updated"
	TypePointsChanged = "autotap.points_changed"
)

// Event is implemented by everything published on a Bus.
type Event interface {
	EventType() string
	Timestamp() time.Time
}

// Publisher accepts events for delivery. Both Bus and Queue implement it.
type Publisher interface {
	Publish(Event)
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// StartedEvent is emitted when a click session begins.
type StartedEvent struct {
	baseEvent
	Session uint64
	Points  int // enabled points at start
}

func NewStartedEvent(session uint64, points int) StartedEvent {
	return StartedEvent{
		baseEvent: newBaseEvent(TypeStarted),
		Session:   session,
		Points:    points,
	}
}

// StoppedEvent is emitted when a click session ends.
type StoppedEvent struct {
	baseEvent
	Session  uint64
	TapCount int
	Reason   string // "requested", "max_taps", "repeat_exhausted", "closed"
}

func NewStoppedEvent(session uint64, tapCount int, reason string) StoppedEvent {
	return StoppedEvent{
		baseEvent: newBaseEvent(TypeStopped),
		Session:   session,
		TapCount:  tapCount,
		Reason:    reason,
	}
}

// CountUpdatedEvent is emitted after every completed tap.
type CountUpdatedEvent struct {
	baseEvent
	Session uint64
	Count   int
	PointID int // 0 for fallback taps
}

func NewCountUpdatedEvent(session uint64, count, pointID int) CountUpdatedEvent {
	return CountUpdatedEvent{
		baseEvent: newBaseEvent(TypeCountUpdated),
		Session:   session,
		Count:     count,
		PointID:   pointID,
	}
}

// PointsChangedEvent is emitted whenever the click point set is mutated.
type PointsChangedEvent struct {
	baseEvent
	Total   int
	Enabled int
}

func NewPointsChangedEvent(total, enabled int) PointsChangedEvent {
	return PointsChangedEvent{
		baseEvent: newBaseEvent(TypePointsChanged),
		Total:     total,
		Enabled:   enabled,
	}
}
