package registry

import (
	"context"
	"testing"
	"time"

	"github.com/gamedock/gamedock/internal/domain/controller"
	"github.com/gamedock/gamedock/internal/shared/types"
)

// fakeController emits events on demand for registry tests.
type fakeController struct {
	controller.Base
}

func newFake(id string) *fakeController {
	return &fakeController{Base: controller.NewBase(types.Game{ID: id, Name: id})}
}

func (f *fakeController) Install(ctx context.Context) error   { return nil }
func (f *fakeController) Play(ctx context.Context) error      { return nil }
func (f *fakeController) Uninstall(ctx context.Context) error { return nil }

func TestAddRejectsDuplicate(t *testing.T) {
	r := New(nil)
	defer r.Close()

	if err := r.Add(newFake("g1")); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	if err := r.Add(newFake("g1")); err == nil {
		t.Error("second Add for the same game id should fail")
	}

	if r.Count() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Count())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := New(nil)
	defer r.Close()

	// Removing a game that was never registered is a no-op.
	r.Remove("ghost")

	c := newFake("g1")
	if err := r.Add(c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	r.Remove("g1")
	r.Remove("g1")

	if r.Count() != 0 {
		t.Errorf("expected empty registry, got %d entries", r.Count())
	}

	// Re-adding after remove is allowed.
	if err := r.Add(newFake("g1")); err != nil {
		t.Errorf("re-Add after Remove failed: %v", err)
	}
}

func TestEventsFanIn(t *testing.T) {
	r := New(nil)
	defer r.Close()

	c1 := newFake("g1")
	c2 := newFake("g2")
	if err := r.Add(c1); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(c2); err != nil {
		t.Fatal(err)
	}

	c1.Emit(types.GameEvent{Type: types.EventStarted})
	c2.Emit(types.GameEvent{Type: types.EventInstalled})

	got := map[string]types.EventType{}
	for i := 0; i < 2; i++ {
		select {
		case ev := <-r.Events():
			got[ev.GameID] = ev.Type
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fan-in event")
		}
	}

	if got["g1"] != types.EventStarted {
		t.Errorf("g1 event = %v, want started", got["g1"])
	}
	if got["g2"] != types.EventInstalled {
		t.Errorf("g2 event = %v, want installed", got["g2"])
	}
}

func TestRemoveStopsForwarding(t *testing.T) {
	r := New(nil)
	defer r.Close()

	c := newFake("g1")
	if err := r.Add(c); err != nil {
		t.Fatal(err)
	}

	r.Remove("g1")

	// Emit after removal must not reach the fan-in channel. The emit
	// itself returns because StopMonitoring dropped the event.
	c.Emit(types.GameEvent{Type: types.EventStopped})

	select {
	case ev := <-r.Events():
		t.Errorf("unexpected event after Remove: %v", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCloseReleasesAllAndClosesEvents(t *testing.T) {
	r := New(nil)

	if err := r.Add(newFake("g1")); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(newFake("g2")); err != nil {
		t.Fatal(err)
	}

	r.Close()

	if r.Count() != 0 {
		t.Errorf("expected empty registry after Close, got %d", r.Count())
	}

	select {
	case _, ok := <-r.Events():
		if ok {
			t.Error("expected closed events channel")
		}
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}

	if err := r.Add(newFake("g3")); err == nil {
		t.Error("Add after Close should fail")
	}
}
