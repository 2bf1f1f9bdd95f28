// Package arena provides a deterministic fixed-capacity bump allocator.
// Allocations are served from a pool sized once at construction with a
// monotonically increasing offset and no reclamation; freeing is a no-op.
// Fragmentation-driven nondeterminism is itself a reliability risk in
// long-running embedded contexts, so the base policy trades reuse for
// predictability. Reset returns the whole pool at once for phase-based
// reuse, e.g. between simulation epochs.
package arena

import "errors"

// ErrCapacityExceeded is returned when an allocation does not fit in the
// remaining pool. The allocator never writes outside the pool.
var ErrCapacityExceeded = errors.New("arena: capacity exceeded")

// Arena is a bump allocator over a fixed pool of T slots. Alignment is
// inherited from the backing slice, so every allocation is correctly
// aligned for T. An Arena is not safe for concurrent use.
type Arena[T any] struct {
	pool []T
	next int
}

// New creates an arena with capacity slots of T. A non-positive capacity
// yields an arena that rejects every allocation.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{pool: make([]T, capacity)}
}

// Alloc returns a slice of n zeroed slots carved from the pool, or
// ErrCapacityExceeded when fewer than n slots remain. n <= 0 returns an
// empty slice. The returned slice aliases the pool and stays valid until
// the next Reset.
func (a *Arena[T]) Alloc(n int) ([]T, error) {
	if n <= 0 {
		return a.pool[a.next:a.next:a.next], nil
	}
	if a.next+n > len(a.pool) {
		return nil, ErrCapacityExceeded
	}
	out := a.pool[a.next : a.next+n : a.next+n]
	a.next += n
	return out, nil
}

// AllocValue returns a pointer to a single zeroed slot, or
// ErrCapacityExceeded when the pool is exhausted.
func (a *Arena[T]) AllocValue() (*T, error) {
	s, err := a.Alloc(1)
	if err != nil {
		return nil, err
	}
	return &s[0], nil
}

// Free is a no-op. The base policy never reclaims individual allocations.
func (a *Arena[T]) Free(_ []T) {}

// Reset returns the arena to empty. Previously returned slices alias slots
// that will be handed out again; the caller owns that hazard, which is the
// point of phase-based reuse.
func (a *Arena[T]) Reset() {
	clear(a.pool)
	a.next = 0
}

// MaxSize returns the remaining capacity in units of T.
func (a *Arena[T]) MaxSize() int {
	return len(a.pool) - a.next
}

// Len returns the number of slots handed out since the last Reset.
func (a *Arena[T]) Len() int {
	return a.next
}

// Cap returns the configured capacity in units of T.
func (a *Arena[T]) Cap() int {
	return len(a.pool)
}

// Equal reports structural compatibility: two arenas are equal iff their
// configured capacities match. It says nothing about aliasing.
func (a *Arena[T]) Equal(other *Arena[T]) bool {
	if other == nil {
		return false
	}
	return len(a.pool) == len(other.pool)
}
