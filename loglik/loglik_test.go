package loglik

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"
)

var (
	a1 = []int{0, 1, 2, 1, 0}
	a2 = []int{1, 2, 1, 0, 0}
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Background1: 0.1, Background2: 0.1, Precision: 1e-3}
	if _, err := Run(&buf, a1, a2, opts); err != nil {
		t.Fatal(err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(buf.String()), 64)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-(-2.58342343727)) > 1e-3+3e-2 {
		t.Errorf("expected: %v, got: %v", -2.58342343727, v)
	}

	// an explicit ratio of 1 matches the one inferred from a1 against itself.
	buf.Reset()
	opts.Ratio, opts.Exact = 1, true
	if _, err := Run(&buf, a1, a1, opts); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "-1.769424" {
		t.Errorf("expected: -1.769424, got: %s", got)
	}
}

func TestRunBins(t *testing.T) {
	var buf bytes.Buffer
	s, err := Run(&buf, a1, a1, Options{Background1: 0.1, Background2: 0.1, Precision: 1e-3, Bins: true})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 || !strings.HasPrefix(lines[5], "total\t4\t4\t") {
		t.Errorf("unexpected output: %q", buf.String())
	}
	// bins (0, 0) and (1, 1) repeat.
	if hits, misses := s.Outputs.Stats(); hits != 2 || misses != 3 {
		t.Errorf("expected 2 hits and 3 misses, got: %d, %d", hits, misses)
	}
	if s.Outputs.Len() != 3 {
		t.Errorf("expected 3 cached results, got: %d", s.Outputs.Len())
	}
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Run(&buf, a1, a2[:4], Options{Background1: 0.1, Background2: 0.1, Precision: 1e-3, Ratio: 1}); err == nil {
		t.Errorf("expected an error for mismatched histograms")
	}
	if _, err := Run(&buf, a1, a1, Options{Background1: 1, Background2: 1, Precision: 1e-3}); err == nil {
		t.Errorf("expected an error with no signal above background")
	}
}
