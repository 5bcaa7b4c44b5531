package types

import "time"

// EventType identifies a controller lifecycle event
type EventType string

const (
	// EventStarted fires once the game process is confirmed running
	// (the Launching -> Running edge, distinct from operation completion).
	EventStarted EventType = "started"
	// EventStopped fires when the game process exits.
	EventStopped EventType = "stopped"
	// EventInstalled fires when an install operation completes.
	EventInstalled EventType = "installed"
	// EventUninstalled fires when an uninstall operation completes.
	EventUninstalled EventType = "uninstalled"
	// EventFailed fires when an operation fails after its synchronous
	// portion returned; it is the asynchronous failure channel.
	EventFailed EventType = "failed"
)

// Operation names the controller operation families
type Operation string

const (
	OpInstall   Operation = "install"
	OpPlay      Operation = "play"
	OpUninstall Operation = "uninstall"
)

// GameEvent is a terminal or progress event raised by a controller.
// Every event carries the identity of its target game; Elapsed is the
// wall-clock duration of the operation where applicable.
type GameEvent struct {
	Type    EventType     `json:"type"`
	GameID  string        `json:"game_id"`
	Op      Operation     `json:"op,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`

	// Install completion payload: directory the controller installed
	// into and the launch tasks it discovered.
	InstallDirectory string       `json:"install_directory,omitempty"`
	PlayAction       *GameAction  `json:"play_action,omitempty"`
	OtherActions     []GameAction `json:"other_actions,omitempty"`

	Err error `json:"-"`
}
