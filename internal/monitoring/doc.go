// Package monitoring provides Prometheus metrics for the GameDock backend.
//
// Metrics cover the HTTP surface (request counts and latencies), the
// lifecycle core (operations started/completed/failed, active controllers),
// and the WebSocket event stream.
//
// All metric recorders are nil-safe so the lifecycle core can run without
// a collector in tests.
package monitoring
