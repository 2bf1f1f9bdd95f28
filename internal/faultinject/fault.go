package faultinject

import (
	"math/rand/v2"
)

// FaultType selects the corruption pattern applied by Inject.
type FaultType int

const (
	// SingleBitFlip flips one uniformly chosen bit in the range. Contract:
	// popcount(before XOR after) == 1 for any non-empty range.
	SingleBitFlip FaultType = iota
	// MultiBitFlip flips 2 to 4 distinct bits within one byte, modeling a
	// multiple-cell upset with tight locality.
	MultiBitFlip
	// StuckAtZero clears one byte to 0x00.
	StuckAtZero
	// StuckAtOne sets one byte to 0xFF.
	StuckAtOne
	// RandomByte replaces one byte with a random value, which may equal
	// the original.
	RandomByte
)

// String returns the pattern name used in reports.
func (ft FaultType) String() string {
	switch ft {
	case SingleBitFlip:
		return "single_bit_flip"
	case MultiBitFlip:
		return "multi_bit_flip"
	case StuckAtZero:
		return "stuck_at_zero"
	case StuckAtOne:
		return "stuck_at_one"
	case RandomByte:
		return "random_byte"
	default:
		return "unknown"
	}
}

// Injector produces synthetic faults from a seedable random source, so
// campaigns reproduce run to run.
type Injector struct {
	rng *rand.Rand
}

// New creates an injector with a nondeterministic seed.
func New() *Injector {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded creates an injector with a deterministic PCG source.
func NewSeeded(seed1, seed2 uint64) *Injector {
	return &Injector{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// FlipRandomBit flips one uniformly chosen bit among all len(region)*8
// bits and returns its index. An empty region is a no-op returning -1.
func (in *Injector) FlipRandomBit(region []byte) int {
	if len(region) == 0 {
		return -1
	}
	bit := in.rng.IntN(len(region) * 8)
	region[bit/8] ^= 1 << (bit % 8)
	return bit
}

// FlipBitValue returns v with one uniformly chosen bit flipped. It is the
// value-level form of FlipRandomBit for corrupting a single replica slot.
func (in *Injector) FlipBitValue(v uint64) uint64 {
	return v ^ (1 << in.rng.IntN(64))
}

// ReplicaIndex returns a uniformly chosen replica index in [0, n), for
// callers that corrupt one slot of a container per trial.
func (in *Injector) ReplicaIndex(n int) int {
	return in.rng.IntN(n)
}

// Inject applies the given fault pattern at a random location in the
// region. An empty region is a no-op for every pattern.
func (in *Injector) Inject(region []byte, ft FaultType) {
	if len(region) == 0 {
		return
	}
	switch ft {
	case SingleBitFlip:
		in.FlipRandomBit(region)
	case MultiBitFlip:
		in.multiBitFlip(region)
	case StuckAtZero:
		region[in.rng.IntN(len(region))] = 0x00
	case StuckAtOne:
		region[in.rng.IntN(len(region))] = 0xFF
	case RandomByte:
		region[in.rng.IntN(len(region))] = byte(in.rng.IntN(256))
	}
}

// multiBitFlip flips 2-4 distinct bits of one byte.
func (in *Injector) multiBitFlip(region []byte) {
	idx := in.rng.IntN(len(region))
	n := 2 + in.rng.IntN(3)
	var mask byte
	for count := 0; count < n; {
		bit := byte(1) << in.rng.IntN(8)
		if mask&bit == 0 {
			mask |= bit
			count++
		}
	}
	region[idx] ^= mask
}
