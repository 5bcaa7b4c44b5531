// Package shortcuts builds the quick-launch surface consumed by OS shell
// integrations (jump lists, dock menus). It only supplies the data; the
// shell-specific construction lives outside the backend.
package shortcuts

import (
	"fmt"

	"github.com/gamedock/gamedock/internal/domain/controller"
	"github.com/gamedock/gamedock/internal/shared/types"
)

// Entry is one quick-launch item: a stable "launch game by id" command
// plus a resolved icon source.
type Entry struct {
	GameID  string `json:"game_id"`
	Name    string `json:"name"`
	Command string `json:"command"`
	Icon    string `json:"icon,omitempty"`
}

// Build converts recent games into quick-launch entries.
func Build(games []*types.Game) []Entry {
	entries := make([]Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, Entry{
			GameID:  g.ID,
			Name:    g.Name,
			Command: fmt.Sprintf("gamedock --start %s", g.ID),
			Icon:    ResolveIcon(g),
		})
	}
	return entries
}

// ResolveIcon picks the icon source for a game: an explicit icon asset
// wins; otherwise a direct file launch resolves to the launched file
// itself (combining working directory and relative path when the path is
// not already absolute).
func ResolveIcon(g *types.Game) string {
	if g.Icon != "" {
		return g.Icon
	}
	if g.PlayAction != nil && g.PlayAction.Type == types.ActionFile {
		return controller.ResolvePath(g.InstallDirectory, g.PlayAction.WorkingDir, g.PlayAction.Path)
	}
	return ""
}
