// Package relation models a pair of detectors observing the same burst and computes the
// likelihood of their coincident event counts.
//
// Each detector sees Poisson background at its own rate plus its share of a common signal. The
// signal is split between the detectors binomially by their relative sensitivity, so the likelihood
// of counts (c1, c2) in a bin is a double sum over the background counts (i, j):
//
//	alpha^i/i! * rho^j/j! * C(c1-i + c2-j, c1-i)
//
// with alpha, rho the rate constants below and a prefactor from the sensitivities.
package relation

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Relation holds the per-detector constants of the likelihood. It is a plain value; caches live in
// a Session.
type Relation struct {
	// LogSensitivity1 is -log(1 + s2/s1), the log of the share of signal seen by detector 1.
	LogSensitivity1 float64
	// LogSensitivity2 is -log(1 + s1/s2).
	LogSensitivity2 float64
	// RateConst1 is the background rate of detector 1 over its signal share.
	RateConst1 float64
	// RateConst2 is the background rate of detector 2 over its signal share.
	RateConst2 float64
}

// New returns a Relation from its constants.
func New(logSensitivity1, logSensitivity2, rateConst1, rateConst2 float64) Relation {
	return Relation{
		LogSensitivity1: logSensitivity1,
		LogSensitivity2: logSensitivity2,
		RateConst1:      rateConst1,
		RateConst2:      rateConst2,
	}
}

// FromBackground returns the Relation for detectors with the given per-bin background rates where
// detector 2 is ratio times as sensitive to the signal as detector 1.
func FromBackground(background1, background2, ratio float64) (Relation, error) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return Relation{}, errors.Errorf("relation: sensitivity ratio must be positive and finite, got %v", ratio)
	}
	if !(background1 >= 0) || !(background2 >= 0) {
		return Relation{}, errors.Errorf("relation: background rates must be >= 0, got %v, %v", background1, background2)
	}
	return New(
		-math.Log1p(ratio),
		-math.Log1p(1/ratio),
		background1*(1+ratio),
		background2*(1+1/ratio),
	), nil
}

// FromHistograms infers the sensitivity ratio from the background-subtracted totals of two aligned
// count histograms.
func FromHistograms(background1, background2 float64, h1, h2 []int) (Relation, error) {
	if len(h1) != len(h2) {
		return Relation{}, errors.Wrapf(ErrMismatch, "%d != %d", len(h1), len(h2))
	}
	n := float64(len(h1))
	signal1 := float64(total(h1)) - background1*n
	signal2 := float64(total(h2)) - background2*n
	if !(signal1 > 0) || !(signal2 > 0) {
		return Relation{}, errors.Errorf("relation: no signal above background (%.4g, %.4g)", signal1, signal2)
	}
	return FromBackground(background1, background2, signal2/signal1)
}

func total(h []int) int {
	var s int
	for _, v := range h {
		s += v
	}
	return s
}

// Flip swaps the roles of the two detectors.
func (r Relation) Flip() Relation {
	return New(r.LogSensitivity2, r.LogSensitivity1, r.RateConst2, r.RateConst1)
}

// Prefactor is the part of a bin log-likelihood outside the sum over terms.
func (r Relation) Prefactor(count1, count2 int) float64 {
	return float64(count1)*r.LogSensitivity1 + float64(count2)*r.LogSensitivity2
}

func (r Relation) String() string {
	return fmt.Sprintf("relation{logS: %.4g, %.4g rate: %.4g, %.4g}", r.LogSensitivity1, r.LogSensitivity2, r.RateConst1, r.RateConst2)
}
