package autoclicker

import (
	"testing"
	"time"

	"autotap/internal/event"
)

func TestStoreAddAssignsMaxPlusOne(t *testing.T) {
	store := NewStore(nil)
	for i := 1; i <= 3; i++ {
		if got := store.Add(float64(i), float64(i), time.Second).ID; got != i {
			t.Fatalf("Add() id = %d, want %d", got, i)
		}
	}

	store.Remove(2)
	if got := store.Add(5, 5, time.Second).ID; got != 4 {
		t.Fatalf("Add() after removing a middle point id = %d, want 4", got)
	}

	store.Remove(4)
	if got := store.Add(6, 6, time.Second).ID; got != 4 {
		t.Fatalf("Add() after removing the max id = %d, want 4", got)
	}

	store.Clear()
	if got := store.Add(7, 7, time.Second).ID; got != 1 {
		t.Fatalf("Add() after Clear id = %d, want 1", got)
	}
}

func TestStoreAddDefaults(t *testing.T) {
	store := NewStore(nil)
	point := store.Add(10, 20, 10*time.Millisecond)
	if point.Interval != MinInterval {
		t.Fatalf("Interval = %v, want clamped %v", point.Interval, MinInterval)
	}
	if !point.Enabled {
		t.Fatalf("new points should be enabled")
	}
	if point.Repeat != RepeatUnlimited {
		t.Fatalf("Repeat = %d, want %d", point.Repeat, RepeatUnlimited)
	}
}

func TestStoreRemoveUnknownIsNoop(t *testing.T) {
	store := NewStore(nil)
	store.Add(1, 1, time.Second)
	if store.Remove(99) {
		t.Fatalf("Remove(99) = true, want false")
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
}

func TestStoreUpdateAppliesOnlySuppliedFields(t *testing.T) {
	store := NewStore(nil)
	point := store.Add(10, 20, time.Second)

	x := 99.0
	interval := 50 * time.Millisecond
	updated, ok := store.Update(point.ID, PointUpdate{X: &x, Interval: &interval})
	if !ok {
		t.Fatalf("Update() ok = false")
	}
	if updated.X != 99 || updated.Y != 20 {
		t.Fatalf("Update() position = (%v, %v), want (99, 20)", updated.X, updated.Y)
	}
	if updated.Interval != 100*time.Millisecond {
		t.Fatalf("Update() interval = %v, want 100ms", updated.Interval)
	}
	if !updated.Enabled {
		t.Fatalf("Update() should not touch Enabled")
	}

	zero := 0
	updated, _ = store.Update(point.ID, PointUpdate{Repeat: &zero})
	if updated.Repeat != RepeatUnlimited {
		t.Fatalf("Repeat = %d, want %d", updated.Repeat, RepeatUnlimited)
	}

	stored, _ := store.Get(point.ID)
	if stored != updated {
		t.Fatalf("Get() = %+v, want %+v", stored, updated)
	}
}

func TestStoreUpdateUnknownIsNoop(t *testing.T) {
	publisher := &recordingPublisher{}
	store := NewStore(publisher)
	x := 1.0
	if _, ok := store.Update(7, PointUpdate{X: &x}); ok {
		t.Fatalf("Update(7) ok = true, want false")
	}
	if got := len(publisher.snapshot()); got != 0 {
		t.Fatalf("no-op update published %d events", got)
	}
}

func TestStoreEnabledPointsKeepsInsertionOrder(t *testing.T) {
	store := NewStore(nil)
	store.Add(1, 1, time.Second)
	second := store.Add(2, 2, time.Second)
	store.Add(3, 3, time.Second)

	disabled := false
	store.Update(second.ID, PointUpdate{Enabled: &disabled})

	enabled := store.EnabledPoints()
	if len(enabled) != 2 || enabled[0].ID != 1 || enabled[1].ID != 3 {
		t.Fatalf("EnabledPoints() = %+v, want ids [1 3]", enabled)
	}
	if _, ok := store.Get(second.ID); !ok {
		t.Fatalf("disabled point should stay addressable")
	}

	store.Clear()
	if got := store.EnabledPoints(); len(got) != 0 {
		t.Fatalf("EnabledPoints() after Clear = %+v", got)
	}
}

func TestStoreListReturnsCopy(t *testing.T) {
	store := NewStore(nil)
	store.Add(1, 1, time.Second)

	points := store.List()
	points[0].X = 500

	if got, _ := store.Get(1); got.X != 1 {
		t.Fatalf("mutating List() result changed the store: X = %v", got.X)
	}
}

func TestStoreReplaceNormalizesPoints(t *testing.T) {
	store := NewStore(nil)
	store.Replace([]ClickPoint{
		{ID: 4, X: 1, Y: 1, Interval: 10 * time.Millisecond, Enabled: true, Repeat: 0},
		{ID: 4, X: 2, Y: 2, Interval: time.Second, Enabled: true, Repeat: 3},
		{ID: 0, X: 3, Y: 3, Interval: time.Second, Enabled: false, Repeat: -7},
	})

	points := store.List()
	if len(points) != 3 {
		t.Fatalf("Len = %d, want 3", len(points))
	}
	ids := map[int]bool{}
	for _, point := range points {
		if ids[point.ID] {
			t.Fatalf("duplicate id %d after Replace: %+v", point.ID, points)
		}
		ids[point.ID] = true
	}
	if points[0].ID != 4 || points[0].Interval != MinInterval || points[0].Repeat != RepeatUnlimited {
		t.Fatalf("first point = %+v", points[0])
	}
	if points[1].Repeat != 3 {
		t.Fatalf("second point Repeat = %d, want 3", points[1].Repeat)
	}
	if points[2].Repeat != RepeatUnlimited || points[2].Enabled {
		t.Fatalf("third point = %+v", points[2])
	}
	if got := store.Add(9, 9, time.Second).ID; got != 7 {
		t.Fatalf("Add() after Replace id = %d, want 7", got)
	}
}

func TestStorePublishesPointsChanged(t *testing.T) {
	publisher := &recordingPublisher{}
	store := NewStore(publisher)

	store.Add(1, 1, time.Second)
	point := store.Add(2, 2, time.Second)
	disabled := false
	store.Update(point.ID, PointUpdate{Enabled: &disabled})
	store.Remove(1)
	store.Clear()
	store.Clear()

	events := publisher.ofType(event.TypePointsChanged)
	if len(events) != 5 {
		t.Fatalf("expected 5 PointsChanged events, got %d", len(events))
	}
	want := []struct{ total, enabled int }{{1, 1}, {2, 2}, {2, 1}, {1, 0}, {0, 0}}
	for i, e := range events {
		changed := e.(event.PointsChangedEvent)
		if changed.Total != want[i].total || changed.Enabled != want[i].enabled {
			t.Fatalf("event %d = {%d %d}, want %+v", i, changed.Total, changed.Enabled, want[i])
		}
	}
}
