package hist

import (
	"math"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestSpan(t *testing.T) {
	b, err := Span(math.NaN(), math.NaN(), 0.5, []float64{1.2, 3.0}, []float64{0.9, 2.2})
	if err != nil {
		t.Fatal(err)
	}
	if b.Start != 0.9 || b.N != 5 {
		t.Errorf("expected start 0.9 with 5 bins, got: %+v", b)
	}
	b, err = Span(0, 10, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.N != 6 {
		t.Errorf("expected 6 bins, got: %d", b.N)
	}
	if _, err := Span(math.NaN(), math.NaN(), 1); err == nil {
		t.Errorf("expected an error with no events")
	}
	if _, err := Span(0, 1, 0); err == nil {
		t.Errorf("expected an error for zero width")
	}
}

func TestBin(t *testing.T) {
	b := Binning{Start: 0, Width: 1, N: 4}
	counts := b.Bin([]float64{-0.5, 0, 0.99, 1, 2.5, 3.999, 4, 10})
	if exp := []int{2, 1, 1, 1}; !reflect.DeepEqual(counts, exp) {
		t.Errorf("expected: %v, got: %v", exp, counts)
	}
	counts = b.Shift(0.5).Bin([]float64{0.4, 0.5, 1.6})
	if exp := []int{1, 1, 0, 0}; !reflect.DeepEqual(counts, exp) {
		t.Errorf("expected: %v, got: %v", exp, counts)
	}
}

func TestRead(t *testing.T) {
	src := "#time\tdet\n0.1\ta\n0.2\tb\nbad\ta\n0.3\ta\n"
	grouped, err := Read(strings.NewReader(src), regexp.MustCompile("\t"), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(grouped["a"], []float64{0.1, 0.3}) || !reflect.DeepEqual(grouped["b"], []float64{0.2}) {
		t.Errorf("unexpected groups: %v", grouped)
	}
	if keys := mapkeys(grouped); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("expected: [a b], got: %v", keys)
	}

	grouped, err = Read(strings.NewReader("1 2\n3 4\n"), regexp.MustCompile(" "), 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(grouped["default"], []float64{2, 4}) {
		t.Errorf("unexpected groups: %v", grouped)
	}

	if _, err := Read(strings.NewReader("1\n"), regexp.MustCompile("\t"), 2, -1); err == nil {
		t.Errorf("expected an error for a missing column")
	}
}

func TestPlotHists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.png")
	if err := plotHists(path, []string{"a", "b"}, [][]int{{1, 2, 3}, {3, 2, 1}}); err != nil {
		t.Fatal(err)
	}
}
