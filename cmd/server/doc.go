// Package main is the entry point for the GameDock backend server.
//
// The server drives install, launch, and uninstall operations for library
// entries through pluggable per-game controllers and keeps their runtime
// state consistent with the persistent store.
//
// The server provides:
//   - REST API for library and lifecycle actions
//   - WebSocket stream of lifecycle notifications
//   - Prometheus metrics
//   - Quick-launch data for OS shell integrations
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 8090 -db gamedock.db
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
