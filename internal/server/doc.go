// Package server wires the GameDock backend together: store, controller
// registry, orchestrator, notification hub, metrics, and the HTTP/WS
// surface.
package server
