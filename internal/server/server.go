package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/config"
	"github.com/gamedock/gamedock/internal/domain/controller"
	"github.com/gamedock/gamedock/internal/domain/orchestrator"
	"github.com/gamedock/gamedock/internal/domain/registry"
	apihttp "github.com/gamedock/gamedock/internal/http"
	"github.com/gamedock/gamedock/internal/logging"
	"github.com/gamedock/gamedock/internal/monitoring"
	"github.com/gamedock/gamedock/internal/notify"
	"github.com/gamedock/gamedock/internal/store"
	"github.com/gamedock/gamedock/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router *gin.Engine
	orch   *orchestrator.Orchestrator
	store  *store.SQLite
	hub    *notify.Hub
	logger *logging.Logger
}

// New creates a fully wired server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	hub := notify.NewHub()
	metrics := monitoring.NewMetrics()
	reg := registry.New(logger)

	orch := orchestrator.New(st, reg, controller.GenericFactory{}, hub, logger, cfg.Library).
		WithMetrics(metrics)
	orch.Start()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(monitoring.Middleware(metrics))

	handlers := apihttp.NewHandlers(orch, st)
	wsHandler := ws.NewHandler(hub, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Library
	router.GET("/games", handlers.ListGames)
	router.POST("/games", handlers.AddGame)
	router.GET("/games/recent", handlers.RecentGames)
	router.POST("/games/remove", handlers.RemoveGames)
	router.GET("/games/:id", handlers.GetGame)
	router.DELETE("/games/:id", handlers.RemoveGame)

	// Lifecycle actions
	router.POST("/games/:id/play", handlers.PlayGame)
	router.POST("/games/:id/install", handlers.InstallGame)
	router.POST("/games/:id/uninstall", handlers.UninstallGame)
	router.POST("/games/:id/cancel", handlers.CancelMonitoring)

	// Shell integration
	router.GET("/quicklaunch", handlers.QuickLaunch)

	// Event stream
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router: router,
		orch:   orch,
		store:  st,
		hub:    hub,
		logger: logger,
	}, nil
}

// Run starts the server
func (s *Server) Run(addr string) error {
	s.logger.Info("starting GameDock backend", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close cleans up resources: the orchestrator stops observing every
// active controller and transient state is cleared before the store
// connection drops.
func (s *Server) Close() error {
	s.orch.Close()
	s.hub.Close()
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing store", zap.Error(err))
		return err
	}
	return nil
}
