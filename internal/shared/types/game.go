package types

import "time"

// CompletionStatus tracks how far a game has been played
type CompletionStatus string

const (
	StatusNotPlayed CompletionStatus = "not_played"
	StatusPlayed    CompletionStatus = "played"
	StatusBeaten    CompletionStatus = "beaten"
	StatusCompleted CompletionStatus = "completed"
)

// ActionType identifies how a game action is executed
type ActionType string

const (
	ActionFile     ActionType = "file"
	ActionURL      ActionType = "url"
	ActionEmulator ActionType = "emulator"
	ActionScript   ActionType = "script"
)

// GameAction describes a launchable task for a game (play task, config
// tool, installer hook)
type GameAction struct {
	Name       string     `json:"name"`
	Type       ActionType `json:"type"`
	Path       string     `json:"path"`
	Arguments  string     `json:"arguments,omitempty"`
	WorkingDir string     `json:"working_dir,omitempty"`
	EmulatorID string     `json:"emulator_id,omitempty"`
}

// GameState holds the transient runtime flags for a game.
// Installed is the only flag with open-ended lifetime; the others are
// true only while a controller is actively driving the operation.
type GameState struct {
	Installed    bool `json:"installed"`
	Running      bool `json:"running"`
	Installing   bool `json:"installing"`
	Uninstalling bool `json:"uninstalling"`
	Launching    bool `json:"launching"`
}

// StateUpdate is a partial update of GameState. A nil field leaves the
// corresponding flag unchanged.
type StateUpdate struct {
	Installed    *bool
	Running      *bool
	Installing   *bool
	Uninstalling *bool
	Launching    *bool
}

// Apply mutates the state with every non-nil field of the update.
// No validation happens here; preconditions are the orchestrator's job.
func (s *GameState) Apply(u StateUpdate) {
	if u.Installed != nil {
		s.Installed = *u.Installed
	}
	if u.Running != nil {
		s.Running = *u.Running
	}
	if u.Installing != nil {
		s.Installing = *u.Installing
	}
	if u.Uninstalling != nil {
		s.Uninstalling = *u.Uninstalling
	}
	if u.Launching != nil {
		s.Launching = *u.Launching
	}
}

// Busy reports whether any transient operation is in flight.
func (s GameState) Busy() bool {
	return s.Installing || s.Running || s.Launching || s.Uninstalling
}

// Bool returns a pointer for StateUpdate fields.
func Bool(v bool) *bool { return &v }

// Game represents a persisted library entry
type Game struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	Name             string           `json:"name"`
	PlatformID       string           `json:"platform_id,omitempty"`
	InstallDirectory string           `json:"install_directory,omitempty"`
	Icon             string           `json:"icon,omitempty"`
	PlayAction       *GameAction      `json:"play_action,omitempty" gorm:"serializer:json"`
	OtherActions     []GameAction     `json:"other_actions,omitempty" gorm:"serializer:json"`
	Playtime         int64            `json:"playtime"` // seconds
	PlayCount        int64            `json:"play_count"`
	LastActivity     *time.Time       `json:"last_activity,omitempty"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	State            GameState        `json:"state" gorm:"embedded"`
	Added            time.Time        `json:"added"`
	Modified         time.Time        `json:"modified"`
}

// Emulator is a configured emulator profile, passed through to controller
// construction and not interpreted by the core.
type Emulator struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Executable string `json:"executable"`
	Arguments  string `json:"arguments,omitempty"`
	WorkingDir string `json:"working_dir,omitempty"`
}
