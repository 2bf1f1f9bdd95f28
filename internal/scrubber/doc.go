// Package scrubber runs a periodic background sweep over registered memory
// regions so that corruption in values nobody happens to read is still
// found and repaired. Detection is decoupled from application access: once
// a region is registered with a repair callback, the single sweep goroutine
// invokes the callback every interval regardless of foreground traffic.
//
// The registration table is the only state shared between the sweep
// goroutine and foreground callers. The table lock is held only to mutate
// or snapshot the table, never across a callback invocation, so
// registration latency is bounded independently of sweep duration. The
// flip side is that no per-callback timeout exists: a pathological
// callback stalls the sweep loop until it returns.
package scrubber
