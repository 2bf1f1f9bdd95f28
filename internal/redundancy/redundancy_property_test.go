package redundancy

import (
	"math/rand/v2"
	"testing"

	"radmem/internal/fixedpoint"
)

// TestVoting_SingleCorruptionAlwaysMasked checks the core guarantee shared
// by every voting container: after corrupting exactly one replica to an
// arbitrary value, Get still returns the original and Repair restores full
// agreement.
func TestVoting_SingleCorruptionAlwaysMasked(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	containers := []struct {
		name     string
		replicas int
		make     func(v uint64) Cell[uint64]
	}{
		{"triple_vote", 3, func(v uint64) Cell[uint64] { return NewTripleVote(v) }},
		{"quad_vote", 4, func(v uint64) Cell[uint64] { return NewQuadVote(v) }},
		{"health_vote", 3, func(v uint64) Cell[uint64] { return NewHealthVote(v) }},
		{"checksum_vote", 3, func(v uint64) Cell[uint64] { return NewChecksumVote(v) }},
	}

	type corrupter interface {
		CorruptReplica(i int, v uint64)
	}

	for _, tc := range containers {
		t.Run(tc.name, func(t *testing.T) {
			for trial := 0; trial < 200; trial++ {
				want := rng.Uint64()
				c := tc.make(want)

				idx := rng.IntN(tc.replicas)
				junk := rng.Uint64()
				if junk == want {
					junk++
				}
				c.(corrupter).CorruptReplica(idx, junk)

				if got := c.Get(); got != want {
					t.Fatalf("trial %d: Get() = %d after corrupting replica %d, want %d",
						trial, got, idx, want)
				}
				c.Repair()
				if c.HasErrors() {
					t.Fatalf("trial %d: HasErrors() = true after Repair", trial)
				}
			}
		})
	}
}

// TestVoting_CleanContainerRoundTrips checks that Set followed by Get is the
// identity for every container when nothing has been corrupted.
func TestVoting_CleanContainerRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	cells := []struct {
		name string
		cell Cell[int64]
	}{
		{"triple_vote", NewTripleVote(int64(0))},
		{"quad_vote", NewQuadVote(int64(0))},
		{"health_vote", NewHealthVote(int64(0))},
		{"checksum_vote", NewChecksumVote(int64(0))},
	}

	for _, tc := range cells {
		t.Run(tc.name, func(t *testing.T) {
			for trial := 0; trial < 100; trial++ {
				v := rng.Int64()
				tc.cell.Set(v)
				if got := tc.cell.Get(); got != v {
					t.Fatalf("Get() = %d after Set(%d)", got, v)
				}
				if tc.cell.HasErrors() {
					t.Fatal("HasErrors() = true on clean container")
				}
			}
		})
	}
}

// TestTripleVote_FixedPointPayload exercises a voting container over the
// fixed-point numeric type, the pairing used for protected arithmetic state.
func TestTripleVote_FixedPointPayload(t *testing.T) {
	want := fixedpoint.FromFloat64(3.25)
	c := NewTripleVote(want)

	c.CorruptReplica(0, fixedpoint.FromFloat64(-1.5))
	if got := c.Get(); got != want {
		t.Fatalf("Get() = %v, want %v", got, want)
	}

	sum := c.Get().Add(fixedpoint.FromInt(2))
	if got := sum.Float64(); got != 5.25 {
		t.Errorf("voted value + 2 = %v, want 5.25", got)
	}

	if !c.Repair() {
		t.Error("Repair() = false, want true after corruption")
	}
}
