// Package http contains the gin handlers for the GameDock API.
//
// Handlers translate HTTP requests into orchestrator actions and store
// queries; all lifecycle invariants live in the orchestrator, never here.
package http
