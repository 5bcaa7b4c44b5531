package controller

import (
	"context"
	"sync"

	"github.com/gamedock/gamedock/internal/shared/types"
)

// Controller performs install/play/uninstall work for exactly one game.
// Controllers are one-shot: constructed for a single operation, run once,
// terminate once.
//
// Each method returns after starting the operation; the returned error is
// the synchronous failure channel. Completion, process start/exit, and
// asynchronous failure all arrive on Events() as exactly one terminal
// event per run (Play additionally raises Started before its terminal
// Stopped).
type Controller interface {
	// Game returns the target game as it was at construction time.
	Game() types.Game

	// Install begins installation. Raises Installed(elapsed) or Failed.
	Install(ctx context.Context) error

	// Play launches the game. Raises Started once the process is
	// confirmed running, then Stopped(elapsed) when it exits.
	Play(ctx context.Context) error

	// Uninstall begins uninstallation. Raises Uninstalled(elapsed) or Failed.
	Uninstall(ctx context.Context) error

	// Events delivers this controller's lifecycle events.
	Events() <-chan types.GameEvent

	// StopMonitoring stops observing the underlying operation. It does
	// not cancel the work itself; no further events are delivered.
	StopMonitoring()
}

// Factory constructs a controller for a game, inspecting the game's
// declared platform/source metadata. Emulator profiles are passed through
// uninterpreted by the core.
type Factory interface {
	New(game *types.Game, emulators []*types.Emulator) (Controller, error)
}

// Base carries the event plumbing shared by controller implementations.
type Base struct {
	game   types.Game
	events chan types.GameEvent
	stop   chan struct{}
	once   sync.Once
}

// NewBase creates event plumbing for one controller run.
func NewBase(game types.Game) Base {
	return Base{
		game:   game,
		events: make(chan types.GameEvent, 4),
		stop:   make(chan struct{}),
	}
}

// Game returns the target game.
func (b *Base) Game() types.Game {
	return b.game
}

// Events delivers this controller's lifecycle events.
func (b *Base) Events() <-chan types.GameEvent {
	return b.events
}

// StopMonitoring detaches observers; pending emits are dropped.
func (b *Base) StopMonitoring() {
	b.once.Do(func() { close(b.stop) })
}

// Emit delivers an event unless monitoring has been stopped. An emit
// after StopMonitoring returns is always dropped; the check happens
// before the send so a closed stop channel cannot race a ready buffer.
func (b *Base) Emit(ev types.GameEvent) {
	select {
	case <-b.stop:
		return
	default:
	}
	ev.GameID = b.game.ID
	select {
	case b.events <- ev:
	case <-b.stop:
	}
}
