package faultinject

import (
	"bytes"
	"math/bits"
	"testing"
)

func popcountDiff(a, b []byte) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

func TestFlipRandomBit_FlipsExactlyOneBit(t *testing.T) {
	in := NewSeeded(1, 2)

	for _, size := range []int{1, 2, 7, 8, 64} {
		region := make([]byte, size)
		for trial := 0; trial < 100; trial++ {
			before := bytes.Clone(region)
			bit := in.FlipRandomBit(region)
			if bit < 0 || bit >= size*8 {
				t.Fatalf("size %d: bit index %d out of range", size, bit)
			}
			if got := popcountDiff(before, region); got != 1 {
				t.Fatalf("size %d trial %d: %d bits changed, want exactly 1", size, trial, got)
			}
			if region[bit/8]^before[bit/8] != 1<<(bit%8) {
				t.Fatalf("size %d: reported bit %d does not match the change", size, bit)
			}
		}
	}
}

func TestFlipRandomBit_EmptyRegion(t *testing.T) {
	in := NewSeeded(1, 2)
	if got := in.FlipRandomBit(nil); got != -1 {
		t.Errorf("FlipRandomBit(nil) = %d, want -1", got)
	}
	if got := in.FlipRandomBit([]byte{}); got != -1 {
		t.Errorf("FlipRandomBit(empty) = %d, want -1", got)
	}
}

func TestFlipBitValue(t *testing.T) {
	in := NewSeeded(3, 4)
	for trial := 0; trial < 100; trial++ {
		var v uint64 = 0xA5A5A5A5A5A5A5A5
		got := in.FlipBitValue(v)
		if bits.OnesCount64(v^got) != 1 {
			t.Fatalf("trial %d: %d bits changed, want 1", trial, bits.OnesCount64(v^got))
		}
	}
}

func TestNewSeeded_Deterministic(t *testing.T) {
	a := NewSeeded(42, 7)
	b := NewSeeded(42, 7)

	for i := 0; i < 50; i++ {
		ra := make([]byte, 16)
		rb := make([]byte, 16)
		a.Inject(ra, SingleBitFlip)
		b.Inject(rb, SingleBitFlip)
		if !bytes.Equal(ra, rb) {
			t.Fatalf("step %d: identical seeds diverged", i)
		}
	}
}

func TestInject_Patterns(t *testing.T) {
	tests := []struct {
		name  string
		ft    FaultType
		check func(t *testing.T, before, after []byte)
	}{
		{
			name: "single bit flip",
			ft:   SingleBitFlip,
			check: func(t *testing.T, before, after []byte) {
				if got := popcountDiff(before, after); got != 1 {
					t.Errorf("%d bits changed, want 1", got)
				}
			},
		},
		{
			name: "multi bit flip stays in one byte",
			ft:   MultiBitFlip,
			check: func(t *testing.T, before, after []byte) {
				changed := 0
				for i := range before {
					if before[i] != after[i] {
						changed++
						if n := bits.OnesCount8(before[i] ^ after[i]); n < 2 || n > 4 {
							t.Errorf("%d bits flipped in byte %d, want 2 to 4", n, i)
						}
					}
				}
				if changed != 1 {
					t.Errorf("%d bytes changed, want 1", changed)
				}
			},
		},
		{
			name: "stuck at zero",
			ft:   StuckAtZero,
			check: func(t *testing.T, before, after []byte) {
				for i := range before {
					if before[i] != after[i] && after[i] != 0x00 {
						t.Errorf("byte %d = %#x, want 0x00", i, after[i])
					}
				}
			},
		},
		{
			name: "stuck at one",
			ft:   StuckAtOne,
			check: func(t *testing.T, before, after []byte) {
				changed := false
				for i := range before {
					if before[i] != after[i] {
						changed = true
						if after[i] != 0xFF {
							t.Errorf("byte %d = %#x, want 0xFF", i, after[i])
						}
					}
				}
				if !changed {
					t.Error("no byte changed")
				}
			},
		},
	}

	in := NewSeeded(9, 9)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for trial := 0; trial < 50; trial++ {
				region := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
				before := bytes.Clone(region)
				in.Inject(region, tt.ft)
				tt.check(t, before, region)
			}
		})
	}
}

func TestInject_EmptyRegionIsNoOp(t *testing.T) {
	in := NewSeeded(1, 1)
	for _, ft := range []FaultType{SingleBitFlip, MultiBitFlip, StuckAtZero, StuckAtOne, RandomByte} {
		in.Inject(nil, ft)
	}
}

func TestReplicaIndex_InRange(t *testing.T) {
	in := NewSeeded(5, 6)
	seen := make(map[int]bool)
	for trial := 0; trial < 200; trial++ {
		idx := in.ReplicaIndex(3)
		if idx < 0 || idx >= 3 {
			t.Fatalf("ReplicaIndex(3) = %d, out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 3 {
		t.Errorf("200 draws hit %d distinct indexes, want all 3", len(seen))
	}
}

func TestFaultType_String(t *testing.T) {
	tests := []struct {
		ft   FaultType
		want string
	}{
		{SingleBitFlip, "single_bit_flip"},
		{MultiBitFlip, "multi_bit_flip"},
		{StuckAtZero, "stuck_at_zero"},
		{StuckAtOne, "stuck_at_one"},
		{RandomByte, "random_byte"},
		{FaultType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FaultType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}
