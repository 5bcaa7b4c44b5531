// Package controller defines the contract between the lifecycle core and
// the per-game units of work.
//
// A Controller is constructed for exactly one of install/play/uninstall,
// runs once, and terminates once. The synchronous portion of each method
// reports failure through its error return; everything after that arrives
// on the Events channel, including the explicit Failed event for
// asynchronous faults.
//
// Generic is the built-in implementation driving declared GameActions
// through os/exec. Platform stores with their own install machinery plug
// in behind the Factory interface.
package controller
