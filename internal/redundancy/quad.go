package redundancy

// QuadVote protects a value with four replicas and plurality voting. The
// extra replica lets it tolerate a single corruption with a 3-of-4
// supermajority and still produce a plurality winner under some double
// corruptions.
type QuadVote[T comparable] struct {
	replicas   [4]T
	errorCount uint64
}

// NewQuadVote creates a container with all four replicas set to initial.
func NewQuadVote[T comparable](initial T) *QuadVote[T] {
	return &QuadVote[T]{replicas: [4]T{initial, initial, initial, initial}}
}

// Get returns the most frequent replica value. Ties are broken by
// first-seen order during the count, so replica 0 wins a 2-2 split against
// a value first seen later.
func (c *QuadVote[T]) Get() T {
	if c.replicas[0] == c.replicas[1] && c.replicas[1] == c.replicas[2] && c.replicas[2] == c.replicas[3] {
		return c.replicas[0]
	}

	counts := make(map[T]int, 4)
	best := c.replicas[0]
	bestCount := 0
	for _, v := range c.replicas {
		counts[v]++
		if counts[v] > bestCount {
			bestCount = counts[v]
			best = v
		}
	}
	return best
}

// Set overwrites all replicas with v. The error counter is not reset; it
// is a monotonic lifetime count of corrected discrepancies.
func (c *QuadVote[T]) Set(v T) {
	c.replicas = [4]T{v, v, v, v}
}

// HasErrors reports whether the replicas disagree.
func (c *QuadVote[T]) HasErrors() bool {
	for i := 1; i < 4; i++ {
		if c.replicas[0] != c.replicas[i] {
			return true
		}
	}
	return false
}

// Repair overwrites all replicas with the plurality value. It is a no-op
// returning false when the replicas already agree; otherwise it increments
// the error counter and returns true.
func (c *QuadVote[T]) Repair() bool {
	if !c.HasErrors() {
		return false
	}
	c.Set(c.Get())
	c.errorCount++
	return true
}

// ErrorCount returns the number of Repair calls that corrected a
// discrepancy over the container's lifetime.
func (c *QuadVote[T]) ErrorCount() uint64 {
	return c.errorCount
}

// Replicas returns a copy of the replica slots for diagnostics.
func (c *QuadVote[T]) Replicas() [4]T {
	return c.replicas
}

// CorruptReplica overwrites a single replica slot out of band, for fault
// injection and verification only.
func (c *QuadVote[T]) CorruptReplica(i int, v T) {
	c.replicas[i] = v
}
