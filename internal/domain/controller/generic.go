package controller

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gamedock/gamedock/internal/shared/types"
)

// Generic drives games whose actions are plain executables, scripts, URLs,
// or emulator invocations. Platform-specific controllers live behind the
// same Factory interface; this one covers everything a declared GameAction
// can express.
type Generic struct {
	Base
	emulators []*types.Emulator
	started   atomic.Bool
}

// GenericFactory builds Generic controllers.
type GenericFactory struct{}

// New constructs a one-shot controller for the game.
func (GenericFactory) New(game *types.Game, emulators []*types.Emulator) (Controller, error) {
	if game == nil {
		return nil, fmt.Errorf("controller requires a game")
	}
	return &Generic{Base: NewBase(*game), emulators: emulators}, nil
}

// Install runs the game's declared install action.
func (g *Generic) Install(ctx context.Context) error {
	if !g.started.CompareAndSwap(false, true) {
		return fmt.Errorf("controller for %s already ran", g.game.ID)
	}

	action, ok := g.findAction("install")
	if !ok {
		g.started.Store(false)
		return fmt.Errorf("game %s declares no install action", g.game.Name)
	}

	cmd, err := g.buildCommand(ctx, &action)
	if err != nil {
		g.started.Store(false)
		return err
	}
	if err := cmd.Start(); err != nil {
		g.started.Store(false)
		return fmt.Errorf("failed to start installer: %w", err)
	}

	start := time.Now()
	go func() {
		if err := cmd.Wait(); err != nil {
			g.Emit(types.GameEvent{Type: types.EventFailed, Op: types.OpInstall, Err: err})
			return
		}
		g.Emit(types.GameEvent{
			Type:             types.EventInstalled,
			Op:               types.OpInstall,
			Elapsed:          time.Since(start),
			InstallDirectory: g.installDirectory(&action),
			PlayAction:       g.game.PlayAction,
		})
	}()
	return nil
}

// Play launches the game process and monitors it until exit.
func (g *Generic) Play(ctx context.Context) error {
	if !g.started.CompareAndSwap(false, true) {
		return fmt.Errorf("controller for %s already ran", g.game.ID)
	}

	if g.game.PlayAction == nil {
		g.started.Store(false)
		return fmt.Errorf("game %s declares no play action", g.game.Name)
	}

	cmd, err := g.buildCommand(ctx, g.game.PlayAction)
	if err != nil {
		g.started.Store(false)
		return err
	}
	if err := cmd.Start(); err != nil {
		g.started.Store(false)
		return fmt.Errorf("failed to launch game: %w", err)
	}

	start := time.Now()
	g.Emit(types.GameEvent{Type: types.EventStarted, Op: types.OpPlay})

	go func() {
		// Exit status of the game itself is not a failure of the
		// launch operation; a non-zero exit still means "stopped".
		_ = cmd.Wait()
		g.Emit(types.GameEvent{Type: types.EventStopped, Op: types.OpPlay, Elapsed: time.Since(start)})
	}()
	return nil
}

// Uninstall runs the game's declared uninstall action.
func (g *Generic) Uninstall(ctx context.Context) error {
	if !g.started.CompareAndSwap(false, true) {
		return fmt.Errorf("controller for %s already ran", g.game.ID)
	}

	action, ok := g.findAction("uninstall")
	if !ok {
		g.started.Store(false)
		return fmt.Errorf("game %s declares no uninstall action", g.game.Name)
	}

	cmd, err := g.buildCommand(ctx, &action)
	if err != nil {
		g.started.Store(false)
		return err
	}
	if err := cmd.Start(); err != nil {
		g.started.Store(false)
		return fmt.Errorf("failed to start uninstaller: %w", err)
	}

	start := time.Now()
	go func() {
		if err := cmd.Wait(); err != nil {
			g.Emit(types.GameEvent{Type: types.EventFailed, Op: types.OpUninstall, Err: err})
			return
		}
		g.Emit(types.GameEvent{Type: types.EventUninstalled, Op: types.OpUninstall, Elapsed: time.Since(start)})
	}()
	return nil
}

// findAction locates a named action among the game's other tasks.
func (g *Generic) findAction(name string) (types.GameAction, bool) {
	for _, a := range g.game.OtherActions {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return types.GameAction{}, false
}

// buildCommand turns a GameAction into an executable command.
func (g *Generic) buildCommand(ctx context.Context, action *types.GameAction) (*exec.Cmd, error) {
	switch action.Type {
	case types.ActionFile, types.ActionScript:
		path := ResolvePath(g.game.InstallDirectory, action.WorkingDir, action.Path)
		cmd := exec.CommandContext(ctx, path, splitArguments(action.Arguments)...)
		cmd.Dir = workingDir(g.game.InstallDirectory, action.WorkingDir)
		return cmd, nil

	case types.ActionURL:
		opener, err := urlOpener()
		if err != nil {
			return nil, err
		}
		return exec.CommandContext(ctx, opener[0], append(opener[1:], action.Path)...), nil

	case types.ActionEmulator:
		profile := g.findEmulator(action.EmulatorID)
		if profile == nil {
			return nil, fmt.Errorf("emulator profile %s not configured", action.EmulatorID)
		}
		args := splitArguments(profile.Arguments)
		args = append(args, ResolvePath(g.game.InstallDirectory, action.WorkingDir, action.Path))
		cmd := exec.CommandContext(ctx, profile.Executable, args...)
		cmd.Dir = profile.WorkingDir
		return cmd, nil

	default:
		return nil, fmt.Errorf("unsupported action type %q", action.Type)
	}
}

func (g *Generic) findEmulator(id string) *types.Emulator {
	for _, e := range g.emulators {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// installDirectory reports where the install action put the game.
func (g *Generic) installDirectory(action *types.GameAction) string {
	if g.game.InstallDirectory != "" {
		return g.game.InstallDirectory
	}
	return workingDir("", action.WorkingDir)
}

// ResolvePath combines an install directory, a working directory, and a
// possibly-relative path into an absolute invocation target.
func ResolvePath(installDir, actionWorkDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if actionWorkDir != "" {
		return filepath.Join(actionWorkDir, path)
	}
	if installDir != "" {
		return filepath.Join(installDir, path)
	}
	return path
}

func workingDir(installDir, actionWorkDir string) string {
	if actionWorkDir != "" {
		return actionWorkDir
	}
	return installDir
}

func splitArguments(args string) []string {
	if args == "" {
		return nil
	}
	return strings.Fields(args)
}

func urlOpener() ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}, nil
	case "linux":
		return []string{"xdg-open"}, nil
	default:
		return nil, fmt.Errorf("no URL opener for %s", runtime.GOOS)
	}
}
