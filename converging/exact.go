package converging

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/burstlag/burstlag/lazy"
)

// Dense materializes every element of a into a matrix.
func Dense(a lazy.Array2D[float64]) *mat.Dense {
	r, c := a.Dims()
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		row := d.RawRowView(i)
		for j := range row {
			row[j] = a.At(i, j)
		}
	}
	return d
}

// Exact returns log(sum(exp(a.At(i, j)))) over every element using math.Exp. It reads all terms and
// is meant as a reference for LogSumExp.
func Exact(a lazy.Array2D[float64]) float64 {
	return floats.LogSumExp(Dense(a).RawMatrix().Data)
}
