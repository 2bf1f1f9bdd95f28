package redundancy

import (
	"hash/crc32"

	"radmem/internal/memview"
)

// ErrorStats counts fault events observed by a ChecksumVote container over
// its lifetime. Detected counts every Get that saw at least one stale
// checksum; Corrected counts those where checksum-guided voting could still
// pin down the value; Uncorrectable counts the remainder, where the result
// is a best guess.
type ErrorStats struct {
	Detected      uint64
	Corrected     uint64
	Uncorrectable uint64
}

// ChecksumVote protects a value with three replicas, each paired with a
// CRC-32 of its byte image. The checksum localizes corruption to a replica
// before voting, which lets the container distinguish a corrupted replica
// from a legitimately conflicting one and keep per-container error
// statistics.
//
// T must be a plain-data type (no pointers, slices, maps, or strings); the
// checksum covers the raw byte image of the value.
type ChecksumVote[T comparable] struct {
	replicas [3]T
	sums     [3]uint32
	stats    ErrorStats
}

// NewChecksumVote creates a container with all replicas set to initial and
// checksums computed.
func NewChecksumVote[T comparable](initial T) *ChecksumVote[T] {
	c := &ChecksumVote[T]{replicas: [3]T{initial, initial, initial}}
	c.resum()
	return c
}

// Get returns the voted value, preferring replicas whose checksum still
// matches. With two or three valid replicas it votes among them; with one
// valid replica that replica wins outright; with none it falls back to
// plain majority over the raw values and counts the event as
// uncorrectable.
func (c *ChecksumVote[T]) Get() T {
	var valid [3]bool
	validCount := 0
	for i := range c.replicas {
		valid[i] = c.sums[i] == checksumOf(&c.replicas[i])
		if valid[i] {
			validCount++
		}
	}

	switch validCount {
	case 3:
		if c.allEqual() {
			return c.replicas[0]
		}
		// Replicas disagree but every checksum matches its replica: the
		// corruption landed before the checksum was (re)computed, or hit
		// value and checksum together. Majority still resolves it.
		c.stats.Detected++
		v, ok := c.majority()
		if ok {
			c.stats.Corrected++
		} else {
			c.stats.Uncorrectable++
		}
		return v
	case 2:
		c.stats.Detected++
		a, b := -1, -1
		for i := range valid {
			if !valid[i] {
				continue
			}
			if a < 0 {
				a = i
			} else {
				b = i
			}
		}
		if c.replicas[a] == c.replicas[b] {
			c.stats.Corrected++
			return c.replicas[a]
		}
		// Two intact replicas that disagree: no way to tell which one the
		// writer meant. First valid replica is the deterministic guess.
		c.stats.Uncorrectable++
		return c.replicas[a]
	case 1:
		c.stats.Detected++
		c.stats.Corrected++
		for i := range valid {
			if valid[i] {
				return c.replicas[i]
			}
		}
		panic("unreachable")
	default:
		// Every checksum is stale. Vote over the raw values and hope the
		// corruption spared a majority.
		c.stats.Detected++
		c.stats.Uncorrectable++
		v, _ := c.majority()
		return v
	}
}

// Set overwrites all replicas with v and recomputes checksums. Error
// statistics are lifetime counters and survive Set.
func (c *ChecksumVote[T]) Set(v T) {
	c.replicas = [3]T{v, v, v}
	c.resum()
}

// HasErrors reports whether any replica disagrees with the others or fails
// its checksum.
func (c *ChecksumVote[T]) HasErrors() bool {
	if !c.allEqual() {
		return true
	}
	for i := range c.replicas {
		if c.sums[i] != checksumOf(&c.replicas[i]) {
			return true
		}
	}
	return false
}

// Repair overwrites all replicas with the voted value, recomputes
// checksums, and reports whether a discrepancy existed.
func (c *ChecksumVote[T]) Repair() bool {
	had := c.HasErrors()
	c.Set(c.Get())
	return had
}

// Stats returns the lifetime error statistics.
func (c *ChecksumVote[T]) Stats() ErrorStats {
	return c.stats
}

// Replicas returns a copy of the replica slots for diagnostics.
func (c *ChecksumVote[T]) Replicas() [3]T {
	return c.replicas
}

// CorruptReplica overwrites a single replica slot without updating its
// checksum, emulating an in-memory upset. For fault injection and
// verification only.
func (c *ChecksumVote[T]) CorruptReplica(i int, v T) {
	c.replicas[i] = v
}

// majority returns the two-of-three majority value, or replica 0 with
// ok=false when all three replicas are mutually distinct.
func (c *ChecksumVote[T]) majority() (T, bool) {
	if c.replicas[0] == c.replicas[1] || c.replicas[0] == c.replicas[2] {
		return c.replicas[0], true
	}
	if c.replicas[1] == c.replicas[2] {
		return c.replicas[1], true
	}
	return c.replicas[0], false
}

func (c *ChecksumVote[T]) allEqual() bool {
	return c.replicas[0] == c.replicas[1] && c.replicas[1] == c.replicas[2]
}

func (c *ChecksumVote[T]) resum() {
	for i := range c.replicas {
		c.sums[i] = checksumOf(&c.replicas[i])
	}
}

// checksumOf hashes the byte image of *p with the IEEE CRC-32 polynomial.
func checksumOf[T any](p *T) uint32 {
	return crc32.ChecksumIEEE(memview.BytesOf(p))
}
