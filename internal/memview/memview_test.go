package memview

import (
	"encoding/binary"
	"testing"
)

func TestBytesOf_AliasesValue(t *testing.T) {
	var v uint64 = 0x0102030405060708
	b := BytesOf(&v)

	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	if got := binary.NativeEndian.Uint64(b); got != v {
		t.Fatalf("byte image decodes to %#x, want %#x", got, v)
	}

	// Writes through the view mutate the value in place.
	b[0] ^= 0xFF
	if v == 0x0102030405060708 {
		t.Error("value unchanged after writing through the view")
	}
}

func TestBytesOf_Struct(t *testing.T) {
	type pair struct {
		A uint32
		B uint32
	}
	p := pair{A: 1, B: 2}
	b := BytesOf(&p)

	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	for i := range b {
		b[i] = 0
	}
	if p.A != 0 || p.B != 0 {
		t.Errorf("struct = %+v after zeroing its byte image, want zero", p)
	}
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"uint8", SizeOf[uint8](), 1},
		{"uint32", SizeOf[uint32](), 4},
		{"uint64", SizeOf[uint64](), 8},
		{"array", SizeOf[[3]uint16](), 6},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("SizeOf[%s] = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}
