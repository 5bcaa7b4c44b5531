// Package config provides 12-factor configuration management for the
// GameDock backend.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Store: SQLite database path
//   - Library: lifecycle behavior (after-launch policy, fullscreen flag,
//     recent-games count, controller operation timeout)
//   - Logging: Log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, DB_PATH
//   - AFTER_LAUNCH, FULLSCREEN_MODE, RECENT_GAMES_COUNT, OPERATION_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
package config
