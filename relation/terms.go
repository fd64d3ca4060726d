package relation

import (
	"fmt"
	"math"

	"github.com/burstlag/burstlag/factorials"
	"github.com/burstlag/burstlag/lazy"
	"github.com/burstlag/burstlag/quadratic"
)

var _ lazy.Peaked2D = &BinTerms{}

// BinTerms are the log-terms of the likelihood sum for one bin with counts (c1, c2). Element (i, j)
// is the term with i background events in detector 1 and j in detector 2.
type BinTerms struct {
	fc       *factorials.Cache
	c1, c2   int
	rate2    float64
	logRate1 float64
	logRate2 float64
	leadRow  int
}

// NewBinTerms extends fc to cover the bin and locates its peak row.
func NewBinTerms(fc *factorials.Cache, rel Relation, count1, count2 int) *BinTerms {
	fc.BuildUpto(count1 + count2)
	b := &BinTerms{
		fc:       fc,
		c1:       count1,
		c2:       count2,
		rate2:    rel.RateConst2,
		logRate1: math.Log(rel.RateConst1),
		logRate2: math.Log(rel.RateConst2),
	}
	b.leadRow = b.findLeadRow(rel.RateConst1, rel.RateConst2)
	return b
}

func (b *BinTerms) Dims() (int, int) { return b.c1 + 1, b.c2 + 1 }

func (b *BinTerms) At(i, j int) float64 {
	if i < 0 || i > b.c1 || j < 0 || j > b.c2 {
		panic(fmt.Sprintf("relation: term (%d, %d) out of range for counts (%d, %d)", i, j, b.c1, b.c2))
	}
	return b.fc.LogExpSeriesTerm(b.logRate1, i) +
		b.fc.LogExpSeriesTerm(b.logRate2, j) +
		b.fc.LogBinomial(b.c1-i, b.c2-j)
}

func (b *BinTerms) LeadRow() int { return b.leadRow }

// LeadCol solves for the column where the ratio of successive terms in row i,
// rho*l / ((j+1)(k+l)) with k = c1-i and l = c2-j, falls through 1.
func (b *BinTerms) LeadCol(i int) int {
	k, c2, rho := float64(b.c1-i), float64(b.c2), b.rate2
	roots, ok := quadratic.SolveMonic(-(k + c2 - 1 + rho), rho*c2-k-c2)
	at := func(j int) float64 { return b.At(i, j) }
	return quadratic.Refine(quadratic.PeakIndex(roots, ok, b.c2, at), b.c2, at)
}

func (b *BinTerms) rowMax(i int) float64 { return b.At(i, b.LeadCol(i)) }

// findLeadRow estimates the peak row from the stationary point of both term ratios, treating the
// counts as continuous: with n = k+l signal events the ratios balance where
// n^2 + (alpha+rho-c1-c2-2)n + alpha*rho - (c1+1)rho - (c2+1)alpha = 0, and then
// i = alpha(c1+1)/(n+alpha) - 1. The estimate is at most a row or so off and is refined on the
// row maxima.
func (b *BinTerms) findLeadRow(alpha, rho float64) int {
	c1, c2 := float64(b.c1), float64(b.c2)
	var i int
	roots, ok := quadratic.SolveMonic(alpha+rho-c1-c2-2, alpha*rho-(c1+1)*rho-(c2+1)*alpha)
	if !ok {
		i = quadratic.Boundary(b.c1, b.rowMax)
	} else {
		n := math.Min(math.Max(roots.Hi, 0), c1+c2)
		i = quadratic.ClampCeil(alpha*(c1+1)/(n+alpha)-1, b.c1)
	}
	return quadratic.Refine(i, b.c1, b.rowMax)
}
