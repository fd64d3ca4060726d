package factorials_test

import (
	"math"
	"testing"

	"github.com/burstlag/burstlag/factorials"
)

const eps = 1e-9

func lgamma(n int) float64 {
	v, _ := math.Lgamma(float64(n + 1))
	return v
}

func TestAgainstLgamma(t *testing.T) {
	c := factorials.New(0)
	// grow in uneven steps to exercise the running sum across extensions.
	for _, n := range []int{1, 3, 2, 17, 100, 101, 1500} {
		c.BuildUpto(n)
		if c.Max() < n {
			t.Fatalf("expected max >= %d, got: %d", n, c.Max())
		}
	}
	for n := 0; n <= 1500; n++ {
		if got, exp := c.LogFactorial(n), lgamma(n); math.Abs(got-exp) > eps*(1+exp) {
			t.Errorf("LogFactorial(%d): expected: %v, got: %v", n, exp, got)
		}
	}
	for n := 1; n <= 1500; n++ {
		if got, exp := c.Log(n), math.Log(float64(n)); got != exp {
			t.Errorf("Log(%d): expected: %v, got: %v", n, exp, got)
		}
	}
}

func TestNoShrink(t *testing.T) {
	c := factorials.New(50)
	v := c.LogFactorial(50)
	c.BuildUpto(10)
	if c.Max() != 50 {
		t.Errorf("expected max 50, got: %d", c.Max())
	}
	if c.LogFactorial(50) != v {
		t.Errorf("expected unchanged value after no-op build")
	}
}

func TestLogBinomial(t *testing.T) {
	c := factorials.New(20)
	cases := []struct {
		r, s int
		exp  float64
	}{
		{0, 0, 1},
		{1, 2, 3},
		{2, 2, 6},
		{5, 5, 252},
		{10, 10, 184756},
	}
	for _, cs := range cases {
		if got := c.LogBinomial(cs.r, cs.s); math.Abs(got-math.Log(cs.exp)) > eps {
			t.Errorf("LogBinomial(%d, %d): expected: %v, got: %v", cs.r, cs.s, math.Log(cs.exp), got)
		}
	}
}

func TestExpSeries(t *testing.T) {
	c := factorials.New(0)
	x := 2.5
	series := c.ExpSeries(x, 40)
	if len(series) != 40 {
		t.Fatalf("expected 40 terms, got: %d", len(series))
	}
	var sum float64
	for k, l := range series {
		if got, exp := l, c.LogExpSeriesTerm(math.Log(x), k); got != exp {
			t.Errorf("term %d: expected: %v, got: %v", k, exp, got)
		}
		sum += math.Exp(l)
	}
	if math.Abs(sum-math.Exp(x)) > 1e-9 {
		t.Errorf("expected series to sum to exp(%v)=%v, got: %v", x, math.Exp(x), sum)
	}
}

func TestOutOfRange(t *testing.T) {
	c := factorials.New(5)
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a query past the frontier")
		}
	}()
	c.LogFactorial(6)
}

func BenchmarkLogBinomial(b *testing.B) {
	c := factorials.New(2000)
	s := 0.0
	for i := 0; i < b.N; i++ {
		s += c.LogBinomial(i%1000, (i/7)%1000)
	}
	_ = s
}
