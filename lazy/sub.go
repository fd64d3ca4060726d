package lazy

// Direction is the order in which a Sub walks its source.
type Direction int

const (
	// Backward walks towards index 0.
	Backward Direction = -1
	// Forward walks towards the end of the source.
	Forward Direction = 1
)

// Sub is the part of another Array running from a start index (inclusive) to the edge of the
// source in one direction. It does not copy; it must not outlive its source.
// A start outside the source, including -1 for "one before the first element", gives an empty Sub.
type Sub[V any, A Array[V]] struct {
	src   A
	start int
	dir   Direction
}

// NewSub returns the view of src from start towards its edge in direction dir.
func NewSub[V any, A Array[V]](src A, start int, dir Direction) Sub[V, A] {
	return Sub[V, A]{src: src, start: start, dir: dir}
}

func (s Sub[V, A]) empty() bool {
	return s.start < 0 || s.start >= s.src.Len()
}

// Len is the number of elements between start and the edge, or 0.
func (s Sub[V, A]) Len() int {
	if s.empty() {
		return 0
	}
	if s.dir == Forward {
		return s.src.Len() - s.start
	}
	return s.start + 1
}

// At returns the i-th element counting from start.
func (s Sub[V, A]) At(i int) V {
	return s.src.At(s.start + int(s.dir)*i)
}

// Split returns the elements of row i of src to the left of column j (nearest first) and to the
// right of it. Together they cover the row except j itself.
func Split[V any, A Array2D[V]](src A, i, j int) (left, right Sub[V, Row[V, A]]) {
	row := RowOf[V](src, i)
	return NewSub[V](row, j-1, Backward), NewSub[V](row, j+1, Forward)
}
