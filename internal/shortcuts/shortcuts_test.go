package shortcuts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamedock/gamedock/internal/shared/types"
)

func TestResolveIconPrefersExplicitAsset(t *testing.T) {
	g := &types.Game{
		Icon: "/icons/quake.png",
		PlayAction: &types.GameAction{
			Type: types.ActionFile,
			Path: "/games/quake/quake.sh",
		},
	}
	assert.Equal(t, "/icons/quake.png", ResolveIcon(g))
}

func TestResolveIconFallsBackToLaunchFile(t *testing.T) {
	g := &types.Game{
		InstallDirectory: "/games/quake",
		PlayAction: &types.GameAction{
			Type: types.ActionFile,
			Path: "quake.sh",
		},
	}
	assert.Equal(t, filepath.Join("/games/quake", "quake.sh"), ResolveIcon(g))
}

func TestResolveIconAbsolutePathUntouched(t *testing.T) {
	g := &types.Game{
		InstallDirectory: "/games/quake",
		PlayAction: &types.GameAction{
			Type: types.ActionFile,
			Path: "/bin/quake",
		},
	}
	assert.Equal(t, "/bin/quake", ResolveIcon(g))
}

func TestResolveIconNonFileActionHasNoIcon(t *testing.T) {
	g := &types.Game{
		PlayAction: &types.GameAction{
			Type: types.ActionURL,
			Path: "https://example.com/play",
		},
	}
	assert.Empty(t, ResolveIcon(g))
}

func TestBuildEntries(t *testing.T) {
	games := []*types.Game{
		{ID: "g1", Name: "Quake", Icon: "/icons/q.png"},
		{ID: "g2", Name: "Doom"},
	}

	entries := Build(games)
	assert.Len(t, entries, 2)
	assert.Equal(t, "gamedock --start g1", entries[0].Command)
	assert.Equal(t, "/icons/q.png", entries[0].Icon)
	assert.Equal(t, "Doom", entries[1].Name)
	assert.Empty(t, entries[1].Icon)
}
