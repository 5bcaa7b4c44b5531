package registry

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/domain/controller"
	"github.com/gamedock/gamedock/internal/logging"
	"github.com/gamedock/gamedock/internal/shared/types"
)

const eventBuffer = 64

// entry pairs a live controller with its event-forwarder handle.
type entry struct {
	controller controller.Controller
	quit       chan struct{}
}

// Registry is the single authority over which games currently have an
// active controller. It owns controller instances exclusively: callers
// hand a controller over with Add and never retain a reference past the
// call that created it.
//
// Every registered controller's events are re-raised on one fan-in
// channel so exactly one listener (the orchestrator) subscribes once
// rather than per controller.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry // Protected by mu, keyed by game id
	events  chan types.GameEvent
	logger  *logging.Logger
	wg      sync.WaitGroup
	closed  bool
}

// New creates an empty registry.
func New(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		entries: make(map[string]*entry),
		events:  make(chan types.GameEvent, eventBuffer),
		logger:  logger,
	}
}

// Add registers the controller under its game id and starts forwarding
// its events. A controller already registered for the same id is a
// programming error: callers must Remove first.
func (r *Registry) Add(c controller.Controller) error {
	game := c.Game()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("registry is closed")
	}
	if _, exists := r.entries[game.ID]; exists {
		return fmt.Errorf("controller already active for game %s", game.ID)
	}

	e := &entry{controller: c, quit: make(chan struct{})}
	r.entries[game.ID] = e

	r.wg.Add(1)
	go r.forward(c, e.quit)

	r.logger.Debug("controller registered", zap.String("game_id", game.ID), zap.String("game_name", game.Name))
	return nil
}

// Get returns the active controller for a game, if any.
func (r *Registry) Get(id string) (controller.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.controller, true
}

// Remove unregisters the game's controller and stops its monitoring.
// Safe to call when nothing is registered.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	close(e.quit)
	e.controller.StopMonitoring()
	r.logger.Debug("controller removed", zap.String("game_id", id))
}

// Events is the fan-in channel carrying every registered controller's
// events. It is closed by Close.
func (r *Registry) Events() <-chan types.GameEvent {
	return r.events
}

// Count reports how many games have an active controller.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ActiveIDs returns the game ids with an active controller.
func (r *Registry) ActiveIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Close stops monitoring every active controller and closes the fan-in
// channel. This models "we are no longer tracking outcomes", not
// cancellation of the underlying work.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for id, e := range entries {
		close(e.quit)
		e.controller.StopMonitoring()
		r.logger.Debug("controller released on teardown", zap.String("game_id", id))
	}

	r.wg.Wait()
	close(r.events)
}

// forward moves one controller's events onto the shared channel until the
// entry is removed or the controller's channel closes.
func (r *Registry) forward(c controller.Controller, quit chan struct{}) {
	defer r.wg.Done()

	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return
			}
			select {
			case r.events <- ev:
			case <-quit:
				return
			}
		case <-quit:
			return
		}
	}
}
