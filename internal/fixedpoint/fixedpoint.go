// Package fixedpoint provides a deterministic Q16.16 fixed-point scalar.
// Consumers that must avoid floating-point nondeterminism (and want a
// value type that survives bit-exact comparison inside a redundancy cell)
// store Fixed instead of float64. Fixed is an integer underneath and is
// equality-comparable, so it composes directly with the voting containers.
package fixedpoint

import (
	"fmt"
	"math"
)

// fracBits is the number of fractional bits in the Q16.16 format.
const fracBits = 16

// scale is the value of one integer unit: 1 << fracBits.
const scale = 1 << fracBits

// Fixed is a Q16.16 fixed-point number over int32: 16 integer bits (one of
// them sign) and 16 fractional bits, giving a range of about ±32767.99998
// with a resolution of 2^-16.
type Fixed int32

// FromInt converts an integer, truncating to the representable range.
func FromInt(v int) Fixed {
	return saturate(int64(v) * scale)
}

// FromFloat64 converts a float, truncating toward zero and saturating at
// the representable range. NaN converts to zero.
func FromFloat64(v float64) Fixed {
	if math.IsNaN(v) {
		return 0
	}
	return saturate(int64(v * scale))
}

// Float64 converts back to a float64 exactly; every Fixed is representable.
func (f Fixed) Float64() float64 {
	return float64(f) / scale
}

// Int returns the integer part, truncated toward zero.
func (f Fixed) Int() int {
	return int(f / scale)
}

// Add returns f+g with saturation.
func (f Fixed) Add(g Fixed) Fixed {
	return saturate(int64(f) + int64(g))
}

// Sub returns f-g with saturation.
func (f Fixed) Sub(g Fixed) Fixed {
	return saturate(int64(f) - int64(g))
}

// Mul returns f*g with saturation. The intermediate product is computed in
// 64 bits, so no precision is lost before rescaling.
func (f Fixed) Mul(g Fixed) Fixed {
	return saturate((int64(f) * int64(g)) >> fracBits)
}

// Div returns f/g with saturation. Division by zero saturates to the
// representable extreme matching f's sign rather than trapping; a
// deterministic arithmetic type must not panic on corrupted inputs.
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 {
		if f < 0 {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return saturate((int64(f) << fracBits) / int64(g))
}

// Less reports f < g.
func (f Fixed) Less(g Fixed) bool {
	return f < g
}

// String formats the value in decimal.
func (f Fixed) String() string {
	return fmt.Sprintf("%g", f.Float64())
}

func saturate(v int64) Fixed {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return Fixed(v)
}
