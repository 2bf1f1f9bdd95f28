// Package redundancy provides voting-based redundant value containers for
// tolerating single-event upsets. Each container holds multiple replicas of
// a value and resolves disagreements by majority, plurality, or
// health-weighted voting. Corruption is recoverable data, not an error:
// Get always returns a usable value, HasErrors is the detection-only query,
// and Repair restores the all-replicas-equal invariant.
//
// Containers are not safe for concurrent mutation; each is expected to have
// a single writer, with the scrubber registry being the only cross-thread
// surface (see package scrubber).
package redundancy
