// Package engine contains the simulation loop and its orchestration.
// This is the heartbeat of the economy.
//
// ARCHITECTURAL RULE: The Engine owns every model exclusively. It is not safe
// for concurrent use; the Ticker serializes access when driving it on a cadence.
package engine
