package lagscan

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"go4.org/sort"
	"gonum.org/v1/gonum/mat"
)

// ErrNoPeak is returned when a fitted curve has no turning point inside the scanned lags.
var ErrNoPeak = errors.New("lagscan: no turning point in range")

// Poly is a polynomial in the lag. Coefficients are for the lag mapped from [Lo, Hi] onto [-1, 1],
// lowest power first.
type Poly struct {
	Coeffs []float64
	Lo, Hi float64
}

func (p Poly) scale() (mid, half float64) {
	return (p.Hi + p.Lo) / 2, (p.Hi - p.Lo) / 2
}

func (p Poly) mapped(lag float64) float64 {
	mid, half := p.scale()
	return (lag - mid) / half
}

// At evaluates p at lag.
func (p Poly) At(lag float64) float64 {
	x := p.mapped(lag)
	var v float64
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		v = v*x + p.Coeffs[i]
	}
	return v
}

// Deriv returns the derivative of p with respect to the lag.
func (p Poly) Deriv() Poly {
	_, half := p.scale()
	d := Poly{Lo: p.Lo, Hi: p.Hi}
	if len(p.Coeffs) < 2 {
		d.Coeffs = []float64{0}
		return d
	}
	d.Coeffs = make([]float64, len(p.Coeffs)-1)
	for i := range d.Coeffs {
		d.Coeffs[i] = float64(i+1) * p.Coeffs[i+1] / half
	}
	return d
}

// Roots returns the real roots of p in [Lo, Hi] in increasing order.
func (p Poly) Roots() ([]float64, error) {
	c := p.Coeffs
	var big float64
	for _, v := range c {
		big = math.Max(big, math.Abs(v))
	}
	for len(c) > 0 && math.Abs(c[len(c)-1]) <= 1e-12*big {
		c = c[:len(c)-1]
	}
	m := len(c) - 1
	if m < 1 {
		return nil, nil
	}

	var xs []float64
	if m == 1 {
		xs = []float64{-c[0] / c[1]}
	} else {
		// eigenvalues of the companion matrix of the monic polynomial.
		comp := mat.NewDense(m, m, nil)
		for i := 1; i < m; i++ {
			comp.Set(i, i-1, 1)
		}
		for i := 0; i < m; i++ {
			comp.Set(i, m-1, -c[i]/c[m])
		}
		var eig mat.Eigen
		if !eig.Factorize(comp, mat.EigenNone) {
			return nil, errors.Errorf("lagscan: eigen decomposition failed for degree %d", m)
		}
		for _, v := range eig.Values(nil) {
			if math.Abs(imag(v)) <= 1e-8*(1+math.Abs(real(v))) {
				xs = append(xs, real(v))
			}
		}
	}

	mid, half := p.scale()
	roots := xs[:0]
	for _, x := range xs {
		if x < -1-1e-9 || x > 1+1e-9 {
			continue
		}
		roots = append(roots, math.Min(math.Max(mid+half*x, p.Lo), p.Hi))
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}

// Fit returns the least-squares polynomial of the given degree through points.
func Fit(points []Point, degree int) (Poly, error) {
	if degree < 0 {
		return Poly{}, errors.Errorf("lagscan: degree must be >= 0, got %d", degree)
	}
	if len(points) < degree+1 {
		return Poly{}, errors.Errorf("lagscan: %d points can't fit degree %d", len(points), degree)
	}
	p := Poly{Lo: math.Inf(1), Hi: math.Inf(-1)}
	for _, pt := range points {
		p.Lo = math.Min(p.Lo, float64(pt.Lag))
		p.Hi = math.Max(p.Hi, float64(pt.Lag))
	}
	if p.Hi == p.Lo {
		return Poly{}, errors.Errorf("lagscan: all points at lag %v", p.Lo)
	}

	a := mat.NewDense(len(points), degree+1, nil)
	y := mat.NewVecDense(len(points), nil)
	for i, pt := range points {
		x, v := p.mapped(float64(pt.Lag)), 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= x
		}
		y.SetVec(i, pt.LogLikelihood)
	}
	var c mat.VecDense
	if err := c.SolveVec(a, y); err != nil {
		return Poly{}, errors.Wrapf(err, "lagscan: fitting degree %d", degree)
	}
	p.Coeffs = make([]float64, degree+1)
	for j := range p.Coeffs {
		p.Coeffs[j] = c.AtVec(j)
	}
	return p, nil
}

// Peak is the best lag found by FindPeak.
type Peak struct {
	Lag float64
	// StdDev is 1/sqrt(|Fisher|).
	StdDev float64
	// Fisher is minus the second derivative of the fit at Lag.
	Fisher float64
	Fit    Poly
}

// FindPeak fits a polynomial of the given degree to points and returns its turning point with the
// largest value.
func FindPeak(points []Point, degree int) (Peak, error) {
	fit, err := Fit(points, degree)
	if err != nil {
		return Peak{}, err
	}
	d := fit.Deriv()
	roots, err := d.Roots()
	if err != nil {
		return Peak{}, err
	}
	if len(roots) == 0 {
		return Peak{}, errors.Wrapf(ErrNoPeak, "degree %d over [%v, %v]", degree, fit.Lo, fit.Hi)
	}
	best := roots[0]
	for _, r := range roots[1:] {
		if fit.At(r) > fit.At(best) {
			best = r
		}
	}
	fisher := -d.Deriv().At(best)
	if fisher <= 0 {
		log.Printf("lagscan: likelihood maximum not found near lag %.4g: second derivative is %.4g", best, -fisher)
	}
	return Peak{Lag: best, StdDev: math.Sqrt(1 / math.Abs(fisher)), Fisher: fisher, Fit: fit}, nil
}
