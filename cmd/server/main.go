package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/config"
	"github.com/gamedock/gamedock/internal/logging"
	"github.com/gamedock/gamedock/internal/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override environment for development convenience
	port := flag.String("port", cfg.Server.Port, "Server port")
	dbPath := flag.String("db", cfg.Store.Path, "SQLite database path")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Store.Path = *dbPath

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutting down gracefully")
		if err := srv.Close(); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("server error", zap.Error(err))
	}
}
