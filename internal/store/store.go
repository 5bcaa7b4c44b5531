package store

import (
	"errors"

	"github.com/gamedock/gamedock/internal/shared/types"
)

// ErrNotFound is returned when a game id has no persisted entry.
var ErrNotFound = errors.New("game not found")

// Store is the persistence collaborator for the lifecycle core. The
// orchestrator treats it as the source of truth for game state.
type Store interface {
	// GetGame loads a game by id. Returns ErrNotFound when absent.
	GetGame(id string) (*types.Game, error)

	// AddGame inserts a new game.
	AddGame(game *types.Game) error

	// UpdateGame persists the current value of the game.
	UpdateGame(game *types.Game) error

	// DeleteGame removes a single game.
	DeleteGame(game *types.Game) error

	// DeleteGames removes a batch of games atomically.
	DeleteGames(games []*types.Game) error

	// ListGames returns every game in the library.
	ListGames() ([]*types.Game, error)

	// RecentlyPlayed returns installed games with a non-null
	// last-activity timestamp, most recent first, capped to limit.
	RecentlyPlayed(limit int) ([]*types.Game, error)

	// Emulators enumerates configured emulator profiles. The core
	// passes them through to controller construction uninterpreted.
	Emulators() ([]*types.Emulator, error)
}
