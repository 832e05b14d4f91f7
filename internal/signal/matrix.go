package signal

import "fmt"

// Matrix is a fixed-size, column-major 2-D array of one Scalar kind.
//
// Element (row, col) lives at data[col*rows+row]. The shape is fixed by the
// constructor; CopyFrom and Equal require matching shapes. A Matrix returned
// from a block is a read-only view owned by that block and is valid until
// the block's next call.
type Matrix[T Scalar] struct {
	rows int
	cols int
	data []T
}

// NewMatrix returns a zero-valued rows×cols matrix.
// Panics if either dimension is not positive.
func NewMatrix[T Scalar](rows, cols int) *Matrix[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("signal: invalid matrix shape %dx%d", rows, cols))
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromColumns builds a matrix from a slice of columns. All columns must have
// the same length.
func FromColumns[T Scalar](cols [][]T) *Matrix[T] {
	if len(cols) == 0 {
		panic("signal: FromColumns needs at least one column")
	}
	m := NewMatrix[T](len(cols[0]), len(cols))
	for c, col := range cols {
		if len(col) != m.rows {
			panic(fmt.Sprintf("signal: column %d has %d rows, want %d", c, len(col), m.rows))
		}
		copy(m.data[c*m.rows:], col)
	}
	return m
}

// FromRows builds a matrix from a slice of rows, the orientation people
// usually write literals in.
func FromRows[T Scalar](rows [][]T) *Matrix[T] {
	if len(rows) == 0 {
		panic("signal: FromRows needs at least one row")
	}
	m := NewMatrix[T](len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("signal: row %d has %d columns, want %d", r, len(row), m.cols))
		}
		for c, v := range row {
			m.data[c*m.rows+r] = v
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Len returns rows*cols.
func (m *Matrix[T]) Len() int { return len(m.data) }

// Kind returns the element kind.
func (m *Matrix[T]) Kind() Kind { return KindOf[T]() }

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix[T]) SameShape(o *Matrix[T]) bool {
	return m.rows == o.rows && m.cols == o.cols
}

// At returns the element at (row, col).
func (m *Matrix[T]) At(row, col int) T {
	return m.data[m.index(row, col)]
}

// Set stores v at (row, col).
func (m *Matrix[T]) Set(row, col int, v T) {
	m.data[m.index(row, col)] = v
}

// Data returns the column-major backing slice. Writes through it mutate m.
func (m *Matrix[T]) Data() []T {
	return m.data
}

// Fill sets every element to v.
func (m *Matrix[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// CopyFrom overwrites m with the contents of src. Shapes must match.
func (m *Matrix[T]) CopyFrom(src *Matrix[T]) {
	if !m.SameShape(src) {
		panic(fmt.Sprintf("signal: copy %dx%d into %dx%d", src.rows, src.cols, m.rows, m.cols))
	}
	copy(m.data, src.data)
}

// Clone returns an independent copy of m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	out := NewMatrix[T](m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Equal reports element-wise equality. Matrices of different shape are never
// equal.
func (m *Matrix[T]) Equal(o *Matrix[T]) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// IsTruthy reports whether at least one element differs from zero.
func (m *Matrix[T]) IsTruthy() bool {
	var zero T
	for _, v := range m.data {
		if v != zero {
			return true
		}
	}
	return false
}

// Row copies row r into dst and returns it. dst must have Cols() elements.
func (m *Matrix[T]) Row(r int, dst []T) []T {
	for c := 0; c < m.cols; c++ {
		dst[c] = m.data[c*m.rows+r]
	}
	return dst
}

// Column returns column c as a view into the backing slice.
func (m *Matrix[T]) Column(c int) []T {
	return m.data[c*m.rows : (c+1)*m.rows]
}

func (m *Matrix[T]) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("signal: index (%d,%d) outside %dx%d matrix", row, col, m.rows, m.cols))
	}
	return col*m.rows + row
}
