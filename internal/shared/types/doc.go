// Package types provides shared data structures for the GameDock backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Game: Persisted library entry
//   - GameState: Transient runtime flags for a game
//   - StateUpdate: Partial update of GameState
//   - GameAction: Launchable task definition
//   - Emulator: Configured emulator profile
//
// Events:
//   - GameEvent: Controller lifecycle event
//   - EventType: Started, Stopped, Installed, Uninstalled, Failed
//
// Example Usage:
//
//	game := &types.Game{
//	    ID:               uuid.New().String(),
//	    Name:             "Quake",
//	    CompletionStatus: types.StatusNotPlayed,
//	}
//	game.State.Apply(types.StateUpdate{Installing: types.Bool(true)})
package types
