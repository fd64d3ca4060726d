package relation

import (
	"math"

	"github.com/pkg/errors"

	"github.com/burstlag/burstlag/converging"
	"github.com/burstlag/burstlag/factorials"
	"github.com/burstlag/burstlag/outputs"
)

// ErrMismatch is returned for histograms of different lengths.
var ErrMismatch = errors.New("relation: histogram lengths differ")

// swapped out in tests to count summations.
var logSumExp = converging.LogSumExp[*BinTerms]

func checkArgs(count1, count2 int, relPrecision float64) error {
	if count1 < 0 || count2 < 0 {
		return errors.Errorf("relation: counts must be >= 0, got (%d, %d)", count1, count2)
	}
	if !(relPrecision > 0) {
		return errors.Errorf("relation: precision must be > 0, got %v", relPrecision)
	}
	return nil
}

// BinLogLikelihood returns the log-likelihood of counts (count1, count2) in one bin, with the sum
// over terms accurate to relPrecision. When useCache is set and cache is not nil, results are looked
// up in and stored to cache.
func BinLogLikelihood(fc *factorials.Cache, rel Relation, cache *outputs.Cache, count1, count2 int, relPrecision float64, useCache bool) (float64, error) {
	if err := checkArgs(count1, count2, relPrecision); err != nil {
		return math.NaN(), err
	}
	useCache = useCache && cache != nil
	key := outputs.Key{Count1: count1, Count2: count2, Precision: relPrecision}
	if useCache {
		if v, ok := cache.Get(key); ok {
			return v, nil
		}
	}

	terms := NewBinTerms(fc, rel, count1, count2)
	sum, err := logSumExp(terms, relPrecision)
	if err != nil {
		return math.NaN(), errors.Wrapf(err, "relation: bin (%d, %d)", count1, count2)
	}
	v := rel.Prefactor(count1, count2) + sum

	if useCache {
		cache.Put(key, v)
	}
	return v, nil
}

// ExactBinLogLikelihood is BinLogLikelihood evaluated over every term with math.Exp.
func ExactBinLogLikelihood(fc *factorials.Cache, rel Relation, count1, count2 int) (float64, error) {
	if err := checkArgs(count1, count2, 1); err != nil {
		return math.NaN(), err
	}
	return rel.Prefactor(count1, count2) + converging.Exact(NewBinTerms(fc, rel, count1, count2)), nil
}

// Session bundles a Relation with the caches used to evaluate it. A Session is not safe for
// concurrent use; goroutines should each have their own.
type Session struct {
	Relation   Relation
	Factorials *factorials.Cache
	Outputs    *outputs.Cache
	// Exact evaluates every term instead of converging on the peak.
	Exact bool
}

// NewSession returns a Session with empty caches.
func NewSession(rel Relation) *Session {
	return &Session{Relation: rel, Factorials: factorials.New(64), Outputs: outputs.New()}
}

// BinLogLikelihood is the package-level BinLogLikelihood with the session caches.
func (s *Session) BinLogLikelihood(count1, count2 int, relPrecision float64, useCache bool) (float64, error) {
	if s.Exact {
		return ExactBinLogLikelihood(s.Factorials, s.Relation, count1, count2)
	}
	return BinLogLikelihood(s.Factorials, s.Relation, s.Outputs, count1, count2, relPrecision, useCache)
}

// BinLogLikelihoods returns the log-likelihood of each bin of two aligned histograms.
func (s *Session) BinLogLikelihoods(h1, h2 []int, relPrecision float64, useCache bool) ([]float64, error) {
	if len(h1) != len(h2) {
		return nil, errors.Wrapf(ErrMismatch, "%d != %d", len(h1), len(h2))
	}
	out := make([]float64, len(h1))
	for i, c1 := range h1 {
		v, err := s.BinLogLikelihood(c1, h2[i], relPrecision, useCache)
		if err != nil {
			return nil, errors.Wrapf(err, "bin %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// LogLikelihood returns the log-likelihood of two aligned histograms: the sum over their bins.
func (s *Session) LogLikelihood(h1, h2 []int, relPrecision float64, useCache bool) (float64, error) {
	if len(h1) != len(h2) {
		return math.NaN(), errors.Wrapf(ErrMismatch, "%d != %d", len(h1), len(h2))
	}
	var total float64
	for i, c1 := range h1 {
		v, err := s.BinLogLikelihood(c1, h2[i], relPrecision, useCache)
		if err != nil {
			return math.NaN(), errors.Wrapf(err, "bin %d", i)
		}
		total += v
	}
	return total, nil
}
