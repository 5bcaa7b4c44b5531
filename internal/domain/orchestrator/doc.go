// Package orchestrator coordinates user actions, the controller registry,
// and persisted game state.
//
// Every public action follows the same sequence: check persisted
// preconditions, persist the transient flag, register the controller,
// start it. Completion arrives asynchronously on the registry's fan-in
// channel and is reconciled on a single control loop, so no reconciliation
// ever races a user action against the same game.
//
// Failure handling distinguishes two channels and never conflates them:
// a synchronous failure (construction or the starting portion of an
// operation) unwinds registry entry and flag in the same call; an
// asynchronous failure arrives as a Failed event and is reconciled like
// any other terminal event. No failure here is fatal to the process.
package orchestrator
