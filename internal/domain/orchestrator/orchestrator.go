package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/config"
	"github.com/gamedock/gamedock/internal/domain/controller"
	"github.com/gamedock/gamedock/internal/domain/registry"
	"github.com/gamedock/gamedock/internal/logging"
	"github.com/gamedock/gamedock/internal/monitoring"
	"github.com/gamedock/gamedock/internal/notify"
	"github.com/gamedock/gamedock/internal/shared/types"
	"github.com/gamedock/gamedock/internal/store"
)

// ErrGameBusy rejects actions against a game with an operation in flight.
var ErrGameBusy = errors.New("game has an operation in progress")

// Shell is the application shell the after-launch policy acts on.
type Shell interface {
	CloseApplication()
	MinimizeMainWindow()
}

// Orchestrator is the single entry point for user-initiated lifecycle
// actions. It validates preconditions against persisted state, drives the
// controller registry, and reconciles state on every controller event.
//
// One mutex serializes public actions and event reconciliation, so a
// completion delivered from a controller goroutine never races a new
// action against the same game id.
type Orchestrator struct {
	mu       sync.Mutex
	store    store.Store
	registry *registry.Registry
	factory  controller.Factory
	hub      *notify.Hub
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	cfg      config.LibraryConfig
	shell    Shell

	cancels map[string]context.CancelFunc // Protected by mu
	done    chan struct{}
	started bool
}

// New creates an orchestrator. Call Start to begin consuming controller
// events and Close to tear down.
func New(
	st store.Store,
	reg *registry.Registry,
	factory controller.Factory,
	hub *notify.Hub,
	logger *logging.Logger,
	cfg config.LibraryConfig,
) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if hub == nil {
		hub = notify.NewHub()
	}
	return &Orchestrator{
		store:    st,
		registry: reg,
		factory:  factory,
		hub:      hub,
		logger:   logger,
		cfg:      cfg,
		cancels:  make(map[string]context.CancelFunc),
		done:     make(chan struct{}),
	}
}

// WithMetrics adds metrics tracking to the orchestrator.
func (o *Orchestrator) WithMetrics(m *monitoring.Metrics) *Orchestrator {
	o.metrics = m
	return o
}

// WithShell wires the application shell used by the after-launch policy.
func (o *Orchestrator) WithShell(s Shell) *Orchestrator {
	o.shell = s
	return o
}

// Start launches the event loop consuming registry events.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	go o.run()
}

// Play launches an installed game. A game that is not installed is
// redirected to the install flow instead of failing.
func (o *Orchestrator) Play(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.loadGame(id)
	if err != nil {
		return err
	}

	if game.State.Running || game.State.Launching {
		return fmt.Errorf("%s is already running: %w", game.Name, ErrGameBusy)
	}
	if game.State.Installing || game.State.Uninstalling {
		return fmt.Errorf("%s has an operation in progress: %w", game.Name, ErrGameBusy)
	}

	if !game.State.Installed {
		return o.installLocked(game)
	}

	return o.startOperation(game, types.OpPlay,
		types.StateUpdate{Launching: types.Bool(true)},
		types.StateUpdate{Launching: types.Bool(false)},
		func(c controller.Controller, ctx context.Context) error { return c.Play(ctx) })
}

// Install begins installation of a game.
func (o *Orchestrator) Install(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.loadGame(id)
	if err != nil {
		return err
	}

	if game.State.Busy() {
		return fmt.Errorf("%s has an operation in progress: %w", game.Name, ErrGameBusy)
	}

	return o.installLocked(game)
}

// installLocked starts the install flow. Caller holds the mutex.
func (o *Orchestrator) installLocked(game *types.Game) error {
	return o.startOperation(game, types.OpInstall,
		types.StateUpdate{Installing: types.Bool(true)},
		types.StateUpdate{Installing: types.Bool(false)},
		func(c controller.Controller, ctx context.Context) error { return c.Install(ctx) })
}

// Uninstall begins uninstallation. Rejected while the game is running or
// launching; state is left unchanged on rejection.
func (o *Orchestrator) Uninstall(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.loadGame(id)
	if err != nil {
		return err
	}

	if game.State.Running || game.State.Launching {
		o.hub.Error(game.ID, fmt.Sprintf("Cannot uninstall %s while it is running.", game.Name))
		return fmt.Errorf("%s is running: %w", game.Name, ErrGameBusy)
	}
	if game.State.Installing || game.State.Uninstalling {
		return fmt.Errorf("%s has an operation in progress: %w", game.Name, ErrGameBusy)
	}

	return o.startOperation(game, types.OpUninstall,
		types.StateUpdate{Uninstalling: types.Bool(true)},
		types.StateUpdate{Uninstalling: types.Bool(false)},
		func(c controller.Controller, ctx context.Context) error { return c.Uninstall(ctx) })
}

// startOperation drives the shared action sequence: persist the transient
// flag before the controller's asynchronous work begins, register the
// controller, then start it. A synchronous failure unwinds everything in
// the same call, relying on no event.
func (o *Orchestrator) startOperation(
	game *types.Game,
	op types.Operation,
	set types.StateUpdate,
	reset types.StateUpdate,
	start func(controller.Controller, context.Context) error,
) error {
	emulators, err := o.store.Emulators()
	if err != nil {
		o.reportFailure(game, op, err)
		return err
	}

	// One controller per game id: always remove before re-adding.
	o.removeController(game.ID)

	c, err := o.factory.New(game, emulators)
	if err != nil {
		o.reportFailure(game, op, err)
		return err
	}

	// The busy flag is persisted before the controller starts, so a
	// crash between registry-add and controller-start leaves the game
	// visibly busy rather than silently stale.
	game.State.Apply(set)
	if err := o.store.UpdateGame(game); err != nil {
		o.reportFailure(game, op, err)
		return err
	}

	if err := o.registry.Add(c); err != nil {
		game.State.Apply(reset)
		o.saveBestEffort(game)
		o.reportFailure(game, op, err)
		return err
	}

	ctx, cancel := o.operationContext(op)
	o.cancels[game.ID] = cancel

	if err := start(c, ctx); err != nil {
		o.removeController(game.ID)
		game.State.Apply(reset)
		o.saveBestEffort(game)
		o.reportFailure(game, op, err)
		o.metrics.RecordOperationFailed(string(op), "sync")
		return err
	}

	o.metrics.RecordOperationStarted(string(op))
	o.metrics.SetControllersActive(o.registry.Count())
	return nil
}

// Remove deletes a game from the library. Rejected while the game is busy.
func (o *Orchestrator) Remove(id string) error {
	return o.RemoveGames([]string{id})
}

// RemoveGames deletes a batch of games. A single busy game rejects the
// entire batch; no game is deleted.
func (o *Orchestrator) RemoveGames(ids []string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	games := make([]*types.Game, 0, len(ids))
	for _, id := range ids {
		game, err := o.loadGame(id)
		if err != nil {
			return err
		}
		if game.State.Busy() {
			o.hub.Error(game.ID, fmt.Sprintf("Cannot remove %s: an operation is in progress.", game.Name))
			return fmt.Errorf("%s is busy: %w", game.Name, ErrGameBusy)
		}
		games = append(games, game)
	}

	if err := o.store.DeleteGames(games); err != nil {
		o.logger.Error("failed to delete games", zap.Error(err))
		o.hub.Error("", fmt.Sprintf("Failed to remove games: %v", err))
		return err
	}

	if o.metrics != nil {
		o.metrics.GamesRemoved.Add(float64(len(games)))
	}
	o.hub.Changed(notify.PropertyRecentlyPlayed)
	return nil
}

// CancelMonitoring unconditionally clears every transient flag and drops
// the controller reference. It stops observing the operation, not the
// operation itself.
func (o *Orchestrator) CancelMonitoring(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.removeController(id)

	game, err := o.loadGame(id)
	if err != nil {
		return err
	}

	o.clearTransientFlags(game)
	if err := o.store.UpdateGame(game); err != nil {
		return fmt.Errorf("failed to persist cancelled state: %w", err)
	}

	o.hub.Changed(notify.PropertyRecentlyPlayed)
	return nil
}

// RecentlyPlayed is the derived read model for quick-launch surfaces:
// installed games with activity, most recent first.
func (o *Orchestrator) RecentlyPlayed() ([]*types.Game, error) {
	return o.store.RecentlyPlayed(o.cfg.RecentGamesCount)
}

// Close tears the orchestrator down: every active controller stops being
// observed and every tracked game's transient flags are cleared. The
// underlying operations are not cancelled.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	started := o.started
	for id, cancel := range o.cancels {
		cancel()
		delete(o.cancels, id)
	}
	for _, id := range o.registry.ActiveIDs() {
		game, err := o.loadGame(id)
		if err != nil {
			continue
		}
		o.clearTransientFlags(game)
		o.saveBestEffort(game)
	}
	o.mu.Unlock()

	o.registry.Close()
	if started {
		<-o.done
	}
}

// loadGame resolves a game id against the store. A missing entity gets a
// distinct user-facing message, and the recent-games view is refreshed so
// the stale entry disappears from it.
func (o *Orchestrator) loadGame(id string) (*types.Game, error) {
	game, err := o.store.GetGame(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			o.hub.Error(id, "Game is no longer in the library.")
			o.hub.Changed(notify.PropertyRecentlyPlayed)
		}
		return nil, err
	}
	return game, nil
}

// operationContext derives the context threaded into controller calls.
// Play sessions are unbounded; install/uninstall honor the configured
// operation timeout when one is set.
func (o *Orchestrator) operationContext(op types.Operation) (context.Context, context.CancelFunc) {
	if op != types.OpPlay && o.cfg.OperationTimeout > 0 {
		return context.WithTimeout(context.Background(), o.cfg.OperationTimeout)
	}
	return context.WithCancel(context.Background())
}

// removeController drops the registry entry and its cancel token.
// Caller holds the mutex.
func (o *Orchestrator) removeController(id string) {
	o.registry.Remove(id)
	if cancel, ok := o.cancels[id]; ok {
		cancel()
		delete(o.cancels, id)
	}
	o.metrics.SetControllersActive(o.registry.Count())
}

func (o *Orchestrator) clearTransientFlags(game *types.Game) {
	game.State.Apply(types.StateUpdate{
		Running:      types.Bool(false),
		Installing:   types.Bool(false),
		Uninstalling: types.Bool(false),
		Launching:    types.Bool(false),
	})
}

// reportFailure surfaces a user-facing message carrying the underlying
// failure text and logs at error severity with identifying context.
func (o *Orchestrator) reportFailure(game *types.Game, op types.Operation, err error) {
	o.logger.WithGame(game.ID, game.Name).Error("operation failed",
		zap.String("op", string(op)),
		zap.Error(err),
	)
	o.hub.Error(game.ID, fmt.Sprintf("Failed to %s %s: %v", op, game.Name, err))
}

// saveBestEffort persists the game, logging but not surfacing failures.
func (o *Orchestrator) saveBestEffort(game *types.Game) {
	if err := o.store.UpdateGame(game); err != nil {
		o.logger.Error("failed to persist game state",
			zap.String("game_id", game.ID),
			zap.Error(err),
		)
	}
}

// run is the control loop reconciling controller events. It exits when
// the registry's fan-in channel closes.
func (o *Orchestrator) run() {
	for ev := range o.registry.Events() {
		o.handleEvent(ev)
	}
	close(o.done)
}

// handleEvent folds one controller event into persisted state.
func (o *Orchestrator) handleEvent(ev types.GameEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// An event from a controller no longer tracked (cancelled monitoring,
	// shutdown in progress) is stale: the flags it would reconcile were
	// already cleared when the controller was dropped.
	if _, ok := o.registry.Get(ev.GameID); !ok {
		o.logger.Debug("event after monitoring stopped",
			zap.String("game_id", ev.GameID),
			zap.String("event", string(ev.Type)),
		)
		return
	}

	game, err := o.store.GetGame(ev.GameID)
	if err != nil {
		o.logger.Warn("event for unknown game",
			zap.String("game_id", ev.GameID),
			zap.String("event", string(ev.Type)),
			zap.Error(err),
		)
		o.removeController(ev.GameID)
		return
	}

	switch ev.Type {
	case types.EventStarted:
		o.onStarted(game)
	case types.EventStopped:
		o.onStopped(game, ev)
	case types.EventInstalled:
		o.onInstalled(game, ev)
	case types.EventUninstalled:
		o.onUninstalled(game, ev)
	case types.EventFailed:
		o.onFailed(game, ev)
	default:
		o.logger.Warn("unknown controller event", zap.String("event", string(ev.Type)))
	}
}

// onStarted handles the Launching -> Running edge: activity bookkeeping
// happens exactly once here, never on operation completion.
func (o *Orchestrator) onStarted(game *types.Game) {
	now := time.Now()
	game.State.Apply(types.StateUpdate{
		Running:   types.Bool(true),
		Launching: types.Bool(false),
	})
	game.LastActivity = &now
	game.PlayCount++
	if game.CompletionStatus == types.StatusNotPlayed || game.CompletionStatus == "" {
		game.CompletionStatus = types.StatusPlayed
	}
	o.saveBestEffort(game)

	// Refreshing dependent surfaces is best-effort and never rolls back
	// the launch.
	o.hub.Changed(notify.PropertyRecentlyPlayed)

	o.applyAfterLaunchPolicy()
}

func (o *Orchestrator) onStopped(game *types.Game, ev types.GameEvent) {
	game.State.Apply(types.StateUpdate{Running: types.Bool(false)})
	game.Playtime += int64(ev.Elapsed.Seconds())
	o.saveBestEffort(game)

	o.removeController(game.ID)
	o.metrics.RecordOperationCompleted(string(types.OpPlay))
	o.hub.Changed(notify.PropertyRecentlyPlayed)
}

func (o *Orchestrator) onInstalled(game *types.Game, ev types.GameEvent) {
	game.State.Apply(types.StateUpdate{
		Installing: types.Bool(false),
		Installed:  types.Bool(true),
	})

	// Reinstall paths can change, so the directory is always refreshed;
	// task definitions are first-install-wins.
	if ev.InstallDirectory != "" {
		game.InstallDirectory = ev.InstallDirectory
	}
	if game.PlayAction == nil && ev.PlayAction != nil {
		game.PlayAction = ev.PlayAction
	}
	if len(game.OtherActions) == 0 && len(ev.OtherActions) > 0 {
		game.OtherActions = ev.OtherActions
	}
	o.saveBestEffort(game)

	o.removeController(game.ID)
	o.metrics.RecordOperationCompleted(string(types.OpInstall))
	o.hub.Changed(notify.PropertyRecentlyPlayed)
}

func (o *Orchestrator) onUninstalled(game *types.Game, ev types.GameEvent) {
	game.State.Apply(types.StateUpdate{
		Uninstalling: types.Bool(false),
		Installed:    types.Bool(false),
	})
	game.InstallDirectory = ""
	o.saveBestEffort(game)

	o.removeController(game.ID)
	o.metrics.RecordOperationCompleted(string(types.OpUninstall))
	o.hub.Changed(notify.PropertyRecentlyPlayed)
}

// onFailed handles the asynchronous failure channel: the transient flag
// returns to false exactly as it would on success, and the failure is
// surfaced once.
func (o *Orchestrator) onFailed(game *types.Game, ev types.GameEvent) {
	switch ev.Op {
	case types.OpInstall:
		game.State.Apply(types.StateUpdate{Installing: types.Bool(false)})
	case types.OpUninstall:
		game.State.Apply(types.StateUpdate{Uninstalling: types.Bool(false)})
	case types.OpPlay:
		game.State.Apply(types.StateUpdate{
			Launching: types.Bool(false),
			Running:   types.Bool(false),
		})
	}
	o.saveBestEffort(game)

	o.removeController(game.ID)
	o.metrics.RecordOperationFailed(string(ev.Op), "async")
	o.reportFailure(game, ev.Op, ev.Err)
}

// applyAfterLaunchPolicy runs the configured post-launch shell action,
// skipped in fullscreen mode where the shell owns the screen.
func (o *Orchestrator) applyAfterLaunchPolicy() {
	if o.shell == nil || o.cfg.FullscreenMode {
		return
	}
	switch o.cfg.AfterLaunch {
	case config.AfterLaunchClose:
		o.shell.CloseApplication()
	case config.AfterLaunchMinimize:
		o.shell.MinimizeMainWindow()
	}
}
