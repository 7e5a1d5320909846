package value

// Matrix is a row-major dense collection of T. Every row must have the
// same length; [Matrix.Validate] checks this but does not enforce it at
// construction time, so parsers can build first and report uniformity
// violations through their diagnostic pipeline.
type Matrix[T any] struct {
	Rows [][]T
}

// NewMatrix constructs a Matrix from existing rows without copying.
func NewMatrix[T any](rows [][]T) Matrix[T] {
	return Matrix[T]{Rows: rows}
}

// Validate reports whether every row has the same column count. An empty
// matrix (no rows) is valid.
func (m Matrix[T]) Validate() bool {
	if len(m.Rows) == 0 {
		return true
	}

	n := len(m.Rows[0])
	for _, row := range m.Rows {
		if len(row) != n {
			return false
		}
	}

	return true
}

// Dims returns (rows, columns). Columns is taken from the first row; it is
// the caller's responsibility to have validated the matrix first.
func (m Matrix[T]) Dims() (rows, cols int) {
	rows = len(m.Rows)
	if rows > 0 {
		cols = len(m.Rows[0])
	}

	return rows, cols
}

// Flatten returns the matrix elements in row-major order.
func (m Matrix[T]) Flatten() []T {
	rows, cols := m.Dims()

	out := make([]T, 0, rows*cols)
	for _, row := range m.Rows {
		out = append(out, row...)
	}

	return out
}

// Equal reports whether two matrices have identical dimensions and
// elements.
func (m Matrix[T]) Equal(o Matrix[T], eq func(a, b T) bool) bool {
	if len(m.Rows) != len(o.Rows) {
		return false
	}

	for i, row := range m.Rows {
		if len(row) != len(o.Rows[i]) {
			return false
		}

		for j, v := range row {
			if !eq(v, o.Rows[i][j]) {
				return false
			}
		}
	}

	return true
}
