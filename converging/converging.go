// Package converging sums exponentials of lazily generated log-terms to a requested relative
// precision, reading only the terms that can still matter.
//
// Terms are rescaled by the log of the largest term before exponentiating, and each walk away from
// a peak stops at the first term that is negligible relative to the running total. Both rely on the
// terms decreasing monotonically away from their peaks; see lazy.Peaked2D.
package converging

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/burstlag/burstlag/fastexp"
	"github.com/burstlag/burstlag/lazy"
)

// ErrRescale is returned when a rescaled term overflows. It means the term used for rescaling was
// not the largest, so the peak estimate or the peaked assumption was wrong.
var ErrRescale = errors.New("converging: rescaling did not suppress large term")

// scaled returns exp(logX - logRescale).
func scaled(logX, logRescale float64) (float64, error) {
	d := logX - logRescale
	if d == 0 {
		return 1, nil
	}
	v := fastexp.Exp(d)
	if math.IsInf(v, 1) {
		return v, errors.Wrap(ErrRescale, fmt.Sprintf("log_x=%g log_rescale=%g", logX, logRescale))
	}
	return v, nil
}

// negligible is the cutoff: once a term adds less than termPrecision relative to the total, it and
// everything beyond it is dropped.
func negligible(term, total, termPrecision float64) bool {
	return term < total*termPrecision
}

// SumExp adds exp(logTerms.At(i) - logRescale) to total for i = 0, 1, ... until a term is
// negligible. logTerms must be decreasing.
func SumExp[A lazy.Array[float64]](logTerms A, total, logRescale, termPrecision float64) (float64, error) {
	n := logTerms.Len()
	for i := 0; i < n; i++ {
		v, err := scaled(logTerms.At(i), logRescale)
		if err != nil {
			return total, err
		}
		if negligible(v, total, termPrecision) {
			break
		}
		total += v
	}
	return total, nil
}

// sumArms adds the terms of row i on both sides of column j.
func sumArms[P lazy.Peaked2D](p P, i, j int, total, logRescale, termPrecision float64) (float64, error) {
	left, right := lazy.Split[float64](p, i, j)
	total, err := SumExp(left, total, logRescale, termPrecision)
	if err != nil {
		return total, err
	}
	return SumExp(right, total, logRescale, termPrecision)
}

// sumRow adds all significant terms of row i. ok is false, and total unchanged, when the peak of
// the row is itself negligible.
func sumRow[P lazy.Peaked2D](p P, i int, total, logRescale, termPrecision float64) (float64, bool, error) {
	j := p.LeadCol(i)
	lead, err := scaled(p.At(i, j), logRescale)
	if err != nil {
		return total, false, err
	}
	if negligible(lead, total, termPrecision) {
		return total, false, nil
	}
	total, err = sumArms(p, i, j, total+lead, logRescale, termPrecision)
	return total, true, err
}

// LogSumExp returns log(sum(exp(p.At(i, j)))) over all i, j with a relative error on the sum of at
// most relPrecision, on top of the error of fastexp.Exp.
// The precision is split evenly over all r*c terms, so admitting every borderline term still stays
// within relPrecision.
func LogSumExp[P lazy.Peaked2D](p P, relPrecision float64) (float64, error) {
	r, c := p.Dims()
	leadI := p.LeadRow()
	leadJ := p.LeadCol(leadI)

	logRescale := p.At(leadI, leadJ)
	termPrecision := relPrecision / (float64(r) * float64(c))

	// the lead term is exp(0) == 1 after rescaling.
	total, err := sumArms(p, leadI, leadJ, 1, logRescale, termPrecision)
	if err != nil {
		return math.NaN(), err
	}

	var ok bool
	for i := leadI - 1; i >= 0; i-- {
		if total, ok, err = sumRow(p, i, total, logRescale, termPrecision); err != nil {
			return math.NaN(), err
		} else if !ok {
			break
		}
	}
	for i := leadI + 1; i < r; i++ {
		if total, ok, err = sumRow(p, i, total, logRescale, termPrecision); err != nil {
			return math.NaN(), err
		} else if !ok {
			break
		}
	}
	return logRescale + math.Log(total), nil
}
