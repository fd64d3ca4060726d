package fastexp_test

import (
	"math"
	"testing"

	"github.com/burstlag/burstlag/fastexp"
)

func TestRelativeError(t *testing.T) {
	worst := 0.0
	for x := -20.0; x <= 20.0; x += 0.001 {
		e := math.Abs(fastexp.Exp(x)/math.Exp(x) - 1)
		if e > worst {
			worst = e
		}
	}
	if worst >= 0.03 {
		t.Errorf("expected relative error < 0.03, got: %v", worst)
	}
}

func TestRelativeError32(t *testing.T) {
	for x := float32(-20); x <= 20; x += 0.01 {
		e := math.Abs(float64(fastexp.Exp32(x))/math.Exp(float64(x)) - 1)
		if e >= 0.03 {
			t.Fatalf("Exp32(%v): expected relative error < 0.03, got: %v", x, e)
		}
	}
}

func TestExactAtZero(t *testing.T) {
	// 2^0 is exact apart from the bias correction.
	if v := fastexp.Exp(0); math.Abs(v-1) > 0.03 {
		t.Errorf("expected ~1, got: %v", v)
	}
}

func TestSaturation(t *testing.T) {
	for _, x := range []float64{-800, -1e10, math.Inf(-1)} {
		if v := fastexp.Exp(x); v != 0 {
			t.Errorf("Exp(%v): expected 0, got: %v", x, v)
		}
	}
	for _, x := range []float64{800, 1e10, math.Inf(1)} {
		if v := fastexp.Exp(x); !math.IsInf(v, 1) {
			t.Errorf("Exp(%v): expected +Inf, got: %v", x, v)
		}
	}
	if v := fastexp.Exp32(-200); v != 0 {
		t.Errorf("Exp32(-200): expected 0, got: %v", v)
	}
	if v := fastexp.Exp32(200); !math.IsInf(float64(v), 1) {
		t.Errorf("Exp32(200): expected +Inf, got: %v", v)
	}
}

func TestNaN(t *testing.T) {
	if v := fastexp.Exp(math.NaN()); !math.IsNaN(v) {
		t.Errorf("expected NaN, got: %v", v)
	}
}

func TestMonotone(t *testing.T) {
	last := fastexp.Exp(-30)
	for x := -30.0; x < 30; x += 0.01 {
		v := fastexp.Exp(x)
		if v < last {
			t.Fatalf("expected non-decreasing at %v: %v < %v", x, v, last)
		}
		last = v
	}
}

func BenchmarkExp(b *testing.B) {
	s := 0.0
	for i := 0; i < b.N; i++ {
		s += fastexp.Exp(-float64(i%64) / 4)
	}
	_ = s
}

func BenchmarkMathExp(b *testing.B) {
	s := 0.0
	for i := 0; i < b.N; i++ {
		s += math.Exp(-float64(i%64) / 4)
	}
	_ = s
}
