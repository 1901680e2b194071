// Package matrix provides a dense, row-major float64 matrix and the
// arithmetic needed to run and train a fully connected layer.
package matrix

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows×cols matrix stored row-major.
// The element at (i, j) lives at data[i*cols+j]. Every Matrix owns its
// buffer; no two matrices ever share one.
type Matrix struct {
	rows, cols int
	data       []float64 // len(data) == rows*cols; cap may be larger after Resize
}

// New returns a zero-filled rows×cols matrix.
func New(rows, cols int) *Matrix {
	checkShape("New", rows, cols)
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Constant returns a rows×cols matrix with every element set to v.
func Constant(rows, cols int, v float64) *Matrix {
	checkShape("Constant", rows, cols)
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// Uniform returns a rows×cols matrix whose elements are drawn independently
// from [low, high) using the global math/rand source.
func Uniform(rows, cols int, low, high float64) *Matrix {
	checkShape("Uniform", rows, cols)
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	span := high - low
	for i := range m.data {
		m.data[i] = low + rand.Float64()*span
	}
	return m
}

// UniformRand is Uniform drawing from rng, for reproducible initialization.
func UniformRand(rng *rand.Rand, rows, cols int, low, high float64) *Matrix {
	checkShape("UniformRand", rows, cols)
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	span := high - low
	for i := range m.data {
		m.data[i] = low + rng.Float64()*span
	}
	return m
}

// FromSlice returns a rows×cols matrix holding a copy of data in row-major order.
func FromSlice(rows, cols int, data []float64) *Matrix {
	checkShape("FromSlice", rows, cols)
	if len(data) != rows*cols {
		panic(fmt.Errorf("matrix.FromSlice: %d elements for %dx%d: %w",
			len(data), rows, cols, ErrDimensionMismatch))
	}
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	copy(m.data, data)
	return m
}

// FromRows builds a matrix from a slice of equally long rows.
func FromRows(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		panicShape("FromRows", 0, 0)
	}
	cols := len(rows[0])
	checkShape("FromRows", len(rows), cols)
	m := &Matrix{rows: len(rows), cols: cols, data: make([]float64, 0, len(rows)*cols)}
	for i, r := range rows {
		if len(r) != cols {
			panic(fmt.Errorf("matrix.FromRows: row %d has %d columns, want %d: %w",
				i, len(r), cols, ErrDimensionMismatch))
		}
		m.data = append(m.data, r...)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// Len returns rows*cols.
func (m *Matrix) Len() int { return len(m.data) }

// Cap returns the number of elements the buffer can hold without
// reallocating. It is at least Len.
func (m *Matrix) Cap() int { return cap(m.data) }

func (m *Matrix) index(op string, i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix.%s: index (%d, %d) out of range for %dx%d", op, i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[m.index("At", i, j)]
}

// Set assigns v to the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[m.index("Set", i, j)] = v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	start := m.index("Row", i, 0)
	out := make([]float64, m.cols)
	copy(out, m.data[start:start+m.cols])
	return out
}

// Data returns a copy of the elements in row-major order.
func (m *Matrix) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: m.Data()}
}

// Resize reserves room for rows*cols elements. It is a capacity reservation,
// not a reshape: when rows*cols exceeds the current capacity the buffer is
// grown (keeping its contents), otherwise nothing happens. The shape and the
// elements of m are never changed, and shrinking never releases memory.
func (m *Matrix) Resize(rows, cols int) {
	checkShape("Resize", rows, cols)
	n := rows * cols
	if n <= cap(m.data) {
		return
	}
	buf := make([]float64, len(m.data), n)
	copy(buf, m.data)
	m.data = buf
}

// AddInPlace adds rhs to m element-wise, mutating m.
func (m *Matrix) AddInPlace(rhs *Matrix) {
	checkSameShape("AddInPlace", m, rhs)
	floats.Add(m.data, rhs.data)
}

// Equal reports whether a and b have the same shape and identical elements.
func Equal(a, b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	return floats.Equal(a.data, b.data)
}

// EqualApprox reports whether a and b have the same shape and every pair of
// elements differs by at most tol (absolute or relative).
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	return floats.EqualApprox(a.data, b.data, tol)
}

// String formats m one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("%.4g", mat.Formatted(mat.NewDense(m.rows, m.cols, m.data), mat.Squeeze()))
}
