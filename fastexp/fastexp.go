// Package fastexp implements a fast approximation of exp(x) with a relative error below 3%.
//
// It uses Schraudolph's method: x/ln(2) is scaled and biased so that, read back as the bit
// pattern of an IEEE754 float, its integer part lands in the exponent field and its fractional
// part in the mantissa. That gives a piecewise-linear approximation of 2^x which is exact at
// integers. The correction term shifts the line down so the relative error swings between
// -2.98% and +2.98% instead of 0% and 6.15%.
//
// N. Schraudolph, "A Fast, Compact Approximation of the Exponential Function",
// Neural Computation 11, 853-862 (1999).
package fastexp

import "math"

const (
	a64 = (1 << 52) / math.Ln2
	b64 = (1 << 52) * (1023 - 0.04367744890362246)
	// below c64 the exponent field would go negative, above d64 it would overflow into the sign.
	c64 = 1 << 52
	d64 = (1 << 52) * 2047

	a32 = (1 << 23) / 0.69314718
	b32 = (1 << 23) * (127 - 0.043677448)
	c32 = 1 << 23
	d32 = (1 << 23) * 255
)

// Exp returns an approximation of math.Exp(x).
// Large negative x gives 0 and large positive x gives +Inf. NaN is returned unchanged.
func Exp(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	x = a64*x + b64
	if x < c64 {
		return 0
	}
	if x > d64 {
		// exponent field all ones, mantissa zero: +Inf
		x = d64
	}
	return math.Float64frombits(uint64(x))
}

// Exp32 is the float32 version of Exp.
func Exp32(x float32) float32 {
	if math.IsNaN(float64(x)) {
		return x
	}
	x = a32*x + b32
	if x < c32 {
		return 0
	}
	if x > d32 {
		x = d32
	}
	return math.Float32frombits(uint32(x))
}
