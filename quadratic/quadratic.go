// Package quadratic solves quadratic equations without catastrophic cancellation and projects
// real-valued turning points onto integer index ranges.
package quadratic

import "math"

// Roots of a quadratic, Lo <= Hi. A linear equation gives Lo == Hi.
type Roots struct {
	Lo, Hi float64
}

func ordered(x, y float64) Roots {
	if y < x {
		x, y = y, x
	}
	return Roots{Lo: x, Hi: y}
}

// SolveMonic solves x^2 + bx + c = 0.
func SolveMonic(b, c float64) (Roots, bool) {
	return Solve(1, b, c)
}

// Solve solves ax^2 + bx + c = 0. ok is false when there is no real root or when the equation
// does not depend on x (a == b == 0).
func Solve(a, b, c float64) (r Roots, ok bool) {
	if a == 0 {
		if b == 0 {
			return r, false
		}
		x := -c / b
		return Roots{Lo: x, Hi: x}, true
	}
	if c == 0 {
		return ordered(0, -b/a), true
	}

	halfB := b / 2
	disc := halfB*halfB - a*c
	if disc < 0 || math.IsNaN(disc) {
		return r, false
	}
	// take the root where -halfB and the square root have the same sign, then the other from
	// the product of the roots, c/a.
	sign := 1.0
	if b < 0 {
		sign = -1
	}
	ax := -(halfB + sign*math.Sqrt(disc))
	if ax == 0 {
		// b == 0 and c/a >= 0 with disc >= 0 leaves only c == 0, handled above.
		return r, false
	}
	return ordered(ax/a, c/ax), true
}
