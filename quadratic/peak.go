package quadratic

import "math"

// ClampCeil rounds x up and clamps it to [0, max].
func ClampCeil(x float64, max int) int {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= float64(max) {
		return max
	}
	return int(math.Ceil(x))
}

// Boundary returns whichever of 0 and max has the larger value; 0 on a tie.
func Boundary(max int, at func(int) float64) int {
	if at(max) > at(0) {
		return max
	}
	return 0
}

// PeakIndex converts the roots of a turning-point equation into the index of the peak on [0, max].
//
// The roots are of f(x) = 0 where f(x) >= 0 while element x+1 is at least element x. The peak is
// the first index at which the sequence stops increasing: the ceiling of the lowest root at or above -1.
// When there is no root, or the roots lie outside [0, max] on both sides, the sequence is monotone
// over the range and the larger boundary wins.
func PeakIndex(r Roots, ok bool, max int, at func(int) float64) int {
	if !ok || (r.Lo < 0 && r.Hi > float64(max)) {
		return Boundary(max, at)
	}
	x := r.Hi
	if r.Lo >= -1 {
		x = r.Lo
	}
	return ClampCeil(x, max)
}

// Refine walks from i to the nearest local maximum of at over [0, max]. Of equal neighbours the
// lower index is kept, so a unimodal sequence always ends on its first maximum.
func Refine(i, max int, at func(int) float64) int {
	v := at(i)
	for i > 0 {
		u := at(i - 1)
		if u < v {
			break
		}
		i, v = i-1, u
	}
	for i < max {
		u := at(i + 1)
		if u <= v {
			break
		}
		i, v = i+1, u
	}
	return i
}
