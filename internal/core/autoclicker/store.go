package autoclicker

import (
	"sync"
	"time"

	"autotap/internal/event"
)

// Store holds the ordered click points. Reads return copies; every mutation
// goes through its methods and is announced as a PointsChanged event.
type Store struct {
	mu        sync.RWMutex
	points    []ClickPoint
	publisher event.Publisher
}

// NewStore returns an empty store. publisher may be nil.
func NewStore(publisher event.Publisher) *Store {
	return &Store{publisher: publisher}
}

// Add appends a new enabled point with id = max existing id + 1.
func (s *Store) Add(x, y float64, interval time.Duration) ClickPoint {
	s.mu.Lock()
	point := ClickPoint{
		ID:       s.nextIDLocked(),
		X:        x,
		Y:        y,
		Interval: ClampInterval(interval),
		Enabled:  true,
		Repeat:   RepeatUnlimited,
	}
	s.points = append(s.points, point)
	total, enabled := s.countsLocked()
	s.mu.Unlock()

	s.changed(total, enabled)
	return point
}

// Remove deletes the point with the given id and reports whether it existed.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.points = append(s.points[:idx], s.points[idx+1:]...)
	total, enabled := s.countsLocked()
	s.mu.Unlock()

	s.changed(total, enabled)
	return true
}

// Update overwrites the supplied fields of a point. Intervals are clamped and
// repeat counts normalized. Unknown ids are ignored.
func (s *Store) Update(id int, update PointUpdate) (ClickPoint, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ClickPoint{}, false
	}
	point := &s.points[idx]
	if update.X != nil {
		point.X = *update.X
	}
	if update.Y != nil {
		point.Y = *update.Y
	}
	if update.Interval != nil {
		point.Interval = ClampInterval(*update.Interval)
	}
	if update.Enabled != nil {
		point.Enabled = *update.Enabled
	}
	if update.Repeat != nil {
		point.Repeat = NormalizeRepeat(*update.Repeat)
	}
	updated := *point
	total, enabled := s.countsLocked()
	s.mu.Unlock()

	s.changed(total, enabled)
	return updated, true
}

// Get returns a copy of one point.
func (s *Store) Get(id int) (ClickPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return ClickPoint{}, false
	}
	return s.points[idx], true
}

// List returns every point in insertion order.
func (s *Store) List() []ClickPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ClickPoint, len(s.points))
	copy(out, s.points)
	return out
}

// EnabledPoints returns the enabled points in insertion order. An empty
// result means there is nothing to click.
func (s *Store) EnabledPoints() []ClickPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ClickPoint, 0, len(s.points))
	for _, point := range s.points {
		if point.Enabled {
			out = append(out, point)
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Clear removes every point.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.points) == 0 {
		s.mu.Unlock()
		return
	}
	s.points = nil
	s.mu.Unlock()

	s.changed(0, 0)
}

// Replace swaps in a new point set, keeping the given ids. Points with a
// non-positive or duplicate id get a fresh one.
func (s *Store) Replace(points []ClickPoint) {
	next := make([]ClickPoint, 0, len(points))
	seen := make(map[int]struct{}, len(points))
	maxID := 0
	for _, point := range points {
		if point.ID > maxID {
			maxID = point.ID
		}
	}
	for _, point := range points {
		if _, dup := seen[point.ID]; dup || point.ID <= 0 {
			maxID++
			point.ID = maxID
		}
		seen[point.ID] = struct{}{}
		point.Interval = ClampInterval(point.Interval)
		point.Repeat = NormalizeRepeat(point.Repeat)
		next = append(next, point)
	}

	s.mu.Lock()
	s.points = next
	total, enabled := s.countsLocked()
	s.mu.Unlock()

	s.changed(total, enabled)
}

func (s *Store) nextIDLocked() int {
	maxID := 0
	for _, point := range s.points {
		if point.ID > maxID {
			maxID = point.ID
		}
	}
	return maxID + 1
}

func (s *Store) indexLocked(id int) int {
	for i, point := range s.points {
		if point.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) countsLocked() (total, enabled int) {
	for _, point := range s.points {
		if point.Enabled {
			enabled++
		}
	}
	return len(s.points), enabled
}

func (s *Store) changed(total, enabled int) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(event.NewPointsChangedEvent(total, enabled))
}
