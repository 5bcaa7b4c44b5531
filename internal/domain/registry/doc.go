// Package registry tracks which games currently have an active
// controller.
//
// The registry enforces the single-controller-per-game invariant: Add
// rejects a second controller for a game id, and the orchestrator always
// Removes before re-adding. It exclusively owns controller instances and
// re-raises their events on one fan-in channel consumed by a single
// subscriber.
package registry
