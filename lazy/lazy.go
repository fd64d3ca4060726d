// Package lazy defines arrays whose elements are computed on demand from their index.
//
// Nothing here stores elements. At must be free of side effects and return the same value for the
// same index; summation code relies on being able to read an element more than once.
package lazy

import "fmt"

// Array is a fixed length sequence indexed over [0, Len()).
type Array[V any] interface {
	Len() int
	At(i int) V
}

// Array2D is a rectangular array indexed over [0, r) x [0, c) where r, c = Dims().
// *mat.Dense from gonum satisfies Array2D[float64].
type Array2D[V any] interface {
	Dims() (r, c int)
	At(i, j int) V
}

// Peaked2D is an Array2D of log-values with a single peak row, LeadRow, holding the largest
// element, and a single peak in each row i at column LeadCol(i).
// Values are assumed to strictly decrease away from LeadCol(i) along row i, and the row maxima to
// strictly decrease away from LeadRow. This is not checked: a violation under-counts the sum.
type Peaked2D interface {
	Array2D[float64]
	LeadRow() int
	LeadCol(row int) int
}

// Func is an Array whose i-th element is F(i).
type Func[V any] struct {
	N int
	F func(i int) V
}

func (f Func[V]) Len() int { return f.N }

func (f Func[V]) At(i int) V {
	if i < 0 || i >= f.N {
		panic(fmt.Sprintf("lazy: index %d out of range [0, %d)", i, f.N))
	}
	return f.F(i)
}

// Func2D is an Array2D whose (i, j) element is F(i, j).
type Func2D[V any] struct {
	R, C int
	F    func(i, j int) V
}

func (f Func2D[V]) Dims() (r, c int) { return f.R, f.C }

func (f Func2D[V]) At(i, j int) V {
	if i < 0 || i >= f.R || j < 0 || j >= f.C {
		panic(fmt.Sprintf("lazy: index (%d, %d) out of range [0, %d) x [0, %d)", i, j, f.R, f.C))
	}
	return f.F(i, j)
}

// Row is row I of a 2D array viewed as an Array.
type Row[V any, A Array2D[V]] struct {
	Src A
	I   int
}

// RowOf returns a view of row i of src.
func RowOf[V any, A Array2D[V]](src A, i int) Row[V, A] {
	return Row[V, A]{Src: src, I: i}
}

func (r Row[V, A]) Len() int {
	_, c := r.Src.Dims()
	return c
}

func (r Row[V, A]) At(j int) V { return r.Src.At(r.I, j) }
