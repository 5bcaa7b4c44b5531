package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedock/gamedock/internal/shared/types"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetGame(t *testing.T) {
	s := openTestStore(t)

	game := &types.Game{
		ID:   "g1",
		Name: "Quake",
		PlayAction: &types.GameAction{
			Type: types.ActionFile,
			Path: "quake.exe",
		},
	}
	require.NoError(t, s.AddGame(game))

	loaded, err := s.GetGame("g1")
	require.NoError(t, err)
	assert.Equal(t, "Quake", loaded.Name)
	assert.Equal(t, types.StatusNotPlayed, loaded.CompletionStatus)
	require.NotNil(t, loaded.PlayAction)
	assert.Equal(t, "quake.exe", loaded.PlayAction.Path)
}

func TestGetGameNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetGame("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGamePersistsFalseFlags(t *testing.T) {
	s := openTestStore(t)

	game := &types.Game{ID: "g1", Name: "Quake"}
	game.State.Installing = true
	require.NoError(t, s.AddGame(game))

	// Flipping a flag back to false must stick.
	game.State.Installing = false
	game.State.Installed = true
	require.NoError(t, s.UpdateGame(game))

	loaded, err := s.GetGame("g1")
	require.NoError(t, err)
	assert.False(t, loaded.State.Installing)
	assert.True(t, loaded.State.Installed)
}

func TestRecentlyPlayedOrderAndFilter(t *testing.T) {
	s := openTestStore(t)

	now := time.Now()
	older := now.Add(-time.Hour)
	oldest := now.Add(-2 * time.Hour)

	installed := func(id string, at *time.Time) *types.Game {
		g := &types.Game{ID: id, Name: id, LastActivity: at}
		g.State.Installed = true
		return g
	}

	require.NoError(t, s.AddGame(installed("a", &older)))
	require.NoError(t, s.AddGame(installed("b", &now)))
	require.NoError(t, s.AddGame(installed("c", &oldest)))
	// Never played: no last activity
	require.NoError(t, s.AddGame(installed("d", nil)))
	// Played but not installed
	notInstalled := &types.Game{ID: "e", Name: "e", LastActivity: &now}
	require.NoError(t, s.AddGame(notInstalled))

	recent, err := s.RecentlyPlayed(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].ID)
	assert.Equal(t, "a", recent[1].ID)
}

func TestDeleteGames(t *testing.T) {
	s := openTestStore(t)

	g1 := &types.Game{ID: "g1", Name: "One"}
	g2 := &types.Game{ID: "g2", Name: "Two"}
	g3 := &types.Game{ID: "g3", Name: "Three"}
	for _, g := range []*types.Game{g1, g2, g3} {
		require.NoError(t, s.AddGame(g))
	}

	require.NoError(t, s.DeleteGames([]*types.Game{g1, g3}))

	_, err := s.GetGame("g1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetGame("g3")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetGame("g2")
	assert.NoError(t, err)
}

func TestEmulators(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddEmulator(&types.Emulator{ID: "em1", Name: "RetroArch", Executable: "retroarch"}))

	emulators, err := s.Emulators()
	require.NoError(t, err)
	require.Len(t, emulators, 1)
	assert.Equal(t, "RetroArch", emulators[0].Name)
}
