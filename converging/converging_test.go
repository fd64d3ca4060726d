package converging_test

import (
	"errors"
	"math"
	"testing"

	"github.com/burstlag/burstlag/converging"
	"github.com/burstlag/burstlag/lazy"
)

// bump is a peaked array of log-values: a tilted quadratic bowl with the row peak drifting with i.
type bump struct {
	r, c   int
	ci     float64
	width  float64
	height float64
	reads  *int
}

func (b bump) center(i int) float64 { return 0.3*float64(b.c) + 0.2*float64(i) }

func (b bump) Dims() (int, int) { return b.r, b.c }

func (b bump) At(i, j int) float64 {
	if b.reads != nil {
		*b.reads++
	}
	di, dj := float64(i)-b.ci, float64(j)-b.center(i)
	return b.height - (di*di+dj*dj)/b.width
}

func (b bump) LeadRow() int { return int(math.Round(b.ci)) }

func (b bump) LeadCol(i int) int { return int(math.Round(b.center(i))) }

func TestAgainstExact(t *testing.T) {
	b := bump{r: 60, c: 80, ci: 21.3, width: 30, height: 40}
	exact := converging.Exact(b)
	for _, prec := range []float64{1e-1, 1e-2, 1e-4, 1e-8} {
		got, err := converging.LogSumExp(b, prec)
		if err != nil {
			t.Fatal(err)
		}
		if d := math.Abs(got - exact); d > 2*prec+0.031 {
			t.Errorf("prec %g: expected within tolerance of %v, got: %v (diff %v)", prec, exact, got, d)
		}
	}
}

func TestReadsFewTerms(t *testing.T) {
	reads := 0
	b := bump{r: 1000, c: 1000, ci: 400, width: 8, height: 0, reads: &reads}
	if _, err := converging.LogSumExp(b, 1e-6); err != nil {
		t.Fatal(err)
	}
	if reads > 10000 {
		t.Errorf("expected a small fraction of 1e6 terms to be read, got: %d", reads)
	}
}

func TestMoreTermsAtHigherPrecision(t *testing.T) {
	last := 0
	for _, prec := range []float64{1e-1, 1e-3, 1e-6, 1e-10} {
		reads := 0
		b := bump{r: 200, c: 200, ci: 50, width: 40, reads: &reads}
		if _, err := converging.LogSumExp(b, prec); err != nil {
			t.Fatal(err)
		}
		if reads < last {
			t.Errorf("prec %g: expected at least %d reads, got: %d", prec, last, reads)
		}
		last = reads
	}
}

// single holds one finite term; everything else is -Inf.
type single struct {
	r, c, i, j int
	v          float64
}

func (s single) Dims() (int, int) { return s.r, s.c }

func (s single) At(i, j int) float64 {
	if i == s.i && j == s.j {
		return s.v
	}
	return math.Inf(-1)
}

func (s single) LeadRow() int { return s.i }

func (s single) LeadCol(int) int { return s.j }

func TestSingleTerm(t *testing.T) {
	for _, s := range []single{
		{r: 1, c: 1, v: -3.25},
		{r: 5, c: 7, i: 2, j: 3, v: 17.5},
		{r: 5, c: 7, i: 4, j: 0, v: -1e-3},
	} {
		for _, prec := range []float64{1, 1e-3, 1e-12} {
			got, err := converging.LogSumExp(s, prec)
			if err != nil {
				t.Fatal(err)
			}
			if got != s.v {
				t.Errorf("expected exactly %v, got: %v", s.v, got)
			}
		}
	}
}

func TestSumExp(t *testing.T) {
	terms := lazy.Func[float64]{N: 50, F: func(i int) float64 { return -float64(i) }}
	// 1 + e^-1 + e^-2 + ... with the approximate exponential.
	got, err := converging.SumExp(terms, 0.5, 0, 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	exp := 0.5 + 1/(1-math.Exp(-1))
	if math.Abs(got-exp)/exp > 0.03 {
		t.Errorf("expected ~%v, got: %v", exp, got)
	}

	// a coarse precision stops after the first few terms.
	short, _ := converging.SumExp(terms, 1, 0, 0.2)
	if short >= got {
		t.Errorf("expected fewer terms at coarse precision: %v >= %v", short, got)
	}
}

// wrongPeak reports a lead that is far below the true maximum.
type wrongPeak struct{ bump }

func (w wrongPeak) LeadRow() int { return 0 }

func (w wrongPeak) LeadCol(int) int { return 0 }

func TestRescaleFailure(t *testing.T) {
	w := wrongPeak{bump{r: 40, c: 40, ci: 20, width: 0.1, height: 0}}
	_, err := converging.LogSumExp(w, 1e-3)
	if err == nil {
		t.Fatal("expected an error when the lead term is not the maximum")
	}
	if !errors.Is(err, converging.ErrRescale) {
		t.Errorf("expected ErrRescale, got: %v", err)
	}
}

func BenchmarkLogSumExp(b *testing.B) {
	bp := bump{r: 500, c: 500, ci: 120, width: 200}
	for i := 0; i < b.N; i++ {
		converging.LogSumExp(bp, 1e-6)
	}
}
