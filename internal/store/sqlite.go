package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gamedock/gamedock/internal/shared/types"
)

// SQLite is the gorm-backed Store implementation. The driver is pure Go,
// so the backend builds without cgo.
type SQLite struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&types.Game{}, &types.Emulator{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// GetGame loads a game by id.
func (s *SQLite) GetGame(id string) (*types.Game, error) {
	var game types.Game
	if err := s.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}
	return &game, nil
}

// AddGame inserts a new game.
func (s *SQLite) AddGame(game *types.Game) error {
	now := time.Now()
	if game.Added.IsZero() {
		game.Added = now
	}
	game.Modified = now
	if game.CompletionStatus == "" {
		game.CompletionStatus = types.StatusNotPlayed
	}
	if err := s.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to add game %s: %w", game.ID, err)
	}
	return nil
}

// UpdateGame persists the current value of the game.
func (s *SQLite) UpdateGame(game *types.Game) error {
	game.Modified = time.Now()
	// Save writes every column, so flags flipped back to false overwrite
	// previous values instead of being skipped as zero values.
	if err := s.db.Save(game).Error; err != nil {
		return fmt.Errorf("failed to update game %s: %w", game.ID, err)
	}
	return nil
}

// DeleteGame removes a single game.
func (s *SQLite) DeleteGame(game *types.Game) error {
	if err := s.db.Delete(&types.Game{}, "id = ?", game.ID).Error; err != nil {
		return fmt.Errorf("failed to delete game %s: %w", game.ID, err)
	}
	return nil
}

// DeleteGames removes a batch of games in one transaction.
func (s *SQLite) DeleteGames(games []*types.Game) error {
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	if err := s.db.Delete(&types.Game{}, "id IN ?", ids).Error; err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}
	return nil
}

// ListGames returns every game in the library.
func (s *SQLite) ListGames() ([]*types.Game, error) {
	var games []*types.Game
	if err := s.db.Order("name").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// RecentlyPlayed returns installed games with a last-activity timestamp,
// most recent first.
func (s *SQLite) RecentlyPlayed(limit int) ([]*types.Game, error) {
	var games []*types.Game
	err := s.db.
		Where("installed = ? AND last_activity IS NOT NULL", true).
		Order("last_activity DESC").
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recently played: %w", err)
	}
	return games, nil
}

// Emulators enumerates configured emulator profiles.
func (s *SQLite) Emulators() ([]*types.Emulator, error) {
	var emulators []*types.Emulator
	if err := s.db.Find(&emulators).Error; err != nil {
		return nil, fmt.Errorf("failed to list emulators: %w", err)
	}
	return emulators, nil
}

// AddEmulator inserts an emulator profile.
func (s *SQLite) AddEmulator(e *types.Emulator) error {
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("failed to add emulator %s: %w", e.ID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
