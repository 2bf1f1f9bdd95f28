package redundancy

// TripleVote protects a value with three replicas and strict majority
// voting. It is the cheapest variant and tolerates corruption of any single
// replica.
type TripleVote[T comparable] struct {
	replicas [3]T
}

// NewTripleVote creates a container with all three replicas set to initial.
func NewTripleVote[T comparable](initial T) *TripleVote[T] {
	return &TripleVote[T]{replicas: [3]T{initial, initial, initial}}
}

// Get returns the value shared by at least two replicas. When all three
// replicas are mutually distinct there is no majority; replica 0 is
// returned as the deterministic fallback, because a redundancy primitive
// must always yield a value.
func (c *TripleVote[T]) Get() T {
	if c.replicas[0] == c.replicas[1] || c.replicas[0] == c.replicas[2] {
		return c.replicas[0]
	}
	if c.replicas[1] == c.replicas[2] {
		return c.replicas[1]
	}
	return c.replicas[0]
}

// Set overwrites all replicas with v.
func (c *TripleVote[T]) Set(v T) {
	c.replicas = [3]T{v, v, v}
}

// HasErrors reports whether the replicas disagree.
func (c *TripleVote[T]) HasErrors() bool {
	return c.replicas[0] != c.replicas[1] || c.replicas[1] != c.replicas[2]
}

// Repair overwrites all replicas with the voted value and reports whether
// a discrepancy existed.
func (c *TripleVote[T]) Repair() bool {
	had := c.HasErrors()
	c.Set(c.Get())
	return had
}

// Replicas returns a copy of the replica slots for diagnostics.
func (c *TripleVote[T]) Replicas() [3]T {
	return c.replicas
}

// CorruptReplica overwrites a single replica slot out of band. It exists
// for fault injection and verification; production code has no reason to
// call it.
func (c *TripleVote[T]) CorruptReplica(i int, v T) {
	c.replicas[i] = v
}
