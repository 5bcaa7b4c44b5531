package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamedock/gamedock/internal/domain/orchestrator"
	"github.com/gamedock/gamedock/internal/shared/types"
	"github.com/gamedock/gamedock/internal/shortcuts"
	"github.com/gamedock/gamedock/internal/store"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	orch  *orchestrator.Orchestrator
	store store.Store
}

// NewHandlers creates a new handler set
func NewHandlers(orch *orchestrator.Orchestrator, st store.Store) *Handlers {
	return &Handlers{orch: orch, store: st}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "GameDock",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	games, err := h.store.ListGames()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"games":  len(games),
	})
}

// ListGames lists every game in the library
func (h *Handlers) ListGames(c *gin.Context) {
	games, err := h.store.ListGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetGame returns one game by id
func (h *Handlers) GetGame(c *gin.Context) {
	game, err := h.store.GetGame(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, game)
}

// addGameRequest is the import payload for a new library entry.
type addGameRequest struct {
	Name             string             `json:"name" binding:"required"`
	PlatformID       string             `json:"platform_id"`
	InstallDirectory string             `json:"install_directory"`
	Icon             string             `json:"icon"`
	Installed        bool               `json:"installed"`
	PlayAction       *types.GameAction  `json:"play_action"`
	OtherActions     []types.GameAction `json:"other_actions"`
}

// AddGame imports a game into the library
func (h *Handlers) AddGame(c *gin.Context) {
	var req addGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := &types.Game{
		ID:               uuid.New().String(),
		Name:             req.Name,
		PlatformID:       req.PlatformID,
		InstallDirectory: req.InstallDirectory,
		Icon:             req.Icon,
		PlayAction:       req.PlayAction,
		OtherActions:     req.OtherActions,
		CompletionStatus: types.StatusNotPlayed,
		Added:            time.Now(),
	}
	game.State.Installed = req.Installed

	if err := h.store.AddGame(game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, game)
}

// PlayGame launches a game (or installs it when not installed)
func (h *Handlers) PlayGame(c *gin.Context) {
	h.runAction(c, h.orch.Play)
}

// InstallGame begins installation
func (h *Handlers) InstallGame(c *gin.Context) {
	h.runAction(c, h.orch.Install)
}

// UninstallGame begins uninstallation
func (h *Handlers) UninstallGame(c *gin.Context) {
	h.runAction(c, h.orch.Uninstall)
}

// CancelMonitoring stops observing a game's active operation
func (h *Handlers) CancelMonitoring(c *gin.Context) {
	h.runAction(c, h.orch.CancelMonitoring)
}

// RemoveGame deletes one game from the library
func (h *Handlers) RemoveGame(c *gin.Context) {
	h.runAction(c, h.orch.Remove)
}

// removeGamesRequest is the batch-removal payload.
type removeGamesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// RemoveGames deletes a batch of games; any busy game rejects the batch
func (h *Handlers) RemoveGames(c *gin.Context) {
	var req removeGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orch.RemoveGames(req.IDs); err != nil {
		c.JSON(actionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": len(req.IDs)})
}

// RecentGames returns the recently-played read model
func (h *Handlers) RecentGames(c *gin.Context) {
	games, err := h.orch.RecentlyPlayed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// QuickLaunch returns the quick-launch entries for shell integrations
func (h *Handlers) QuickLaunch(c *gin.Context) {
	games, err := h.orch.RecentlyPlayed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": shortcuts.Build(games)})
}

// runAction executes an orchestrator action against the path id param.
func (h *Handlers) runAction(c *gin.Context, action func(string) error) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game id is required"})
		return
	}

	if err := action(id); err != nil {
		c.JSON(actionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

// actionStatus maps orchestrator errors onto HTTP status codes.
func actionStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrGameBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
