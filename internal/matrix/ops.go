package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Add returns lhs + rhs.
func Add(lhs, rhs *Matrix) *Matrix {
	checkSameShape("Add", lhs, rhs)
	out := New(lhs.rows, lhs.cols)
	floats.AddTo(out.data, lhs.data, rhs.data)
	return out
}

// Sub returns lhs - rhs.
func Sub(lhs, rhs *Matrix) *Matrix {
	checkSameShape("Sub", lhs, rhs)
	out := New(lhs.rows, lhs.cols)
	floats.SubTo(out.data, lhs.data, rhs.data)
	return out
}

// Hadamard returns the element-wise product of lhs and rhs.
func Hadamard(lhs, rhs *Matrix) *Matrix {
	checkSameShape("Hadamard", lhs, rhs)
	out := New(lhs.rows, lhs.cols)
	floats.MulTo(out.data, lhs.data, rhs.data)
	return out
}

// Scale returns alpha*m.
func Scale(m *Matrix, alpha float64) *Matrix {
	out := New(m.rows, m.cols)
	floats.ScaleTo(out.data, alpha, m.data)
	return out
}

// Apply returns a new matrix with fn applied to every element of m.
func Apply(m *Matrix, fn func(float64) float64) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = fn(v)
	}
	return out
}

// Mul returns the matrix product lhs·rhs. It requires lhs.Cols() == rhs.Rows()
// and yields a lhs.Rows()×rhs.Cols() matrix.
func Mul(lhs, rhs *Matrix) *Matrix {
	if lhs.cols != rhs.rows {
		panicMismatch("Mul", lhs, rhs)
	}
	n, inner, p := lhs.rows, lhs.cols, rhs.cols
	out := New(n, p)
	// i-k-j keeps both rhs and out accesses sequential.
	for i := 0; i < n; i++ {
		dst := out.data[i*p : (i+1)*p]
		for k := 0; k < inner; k++ {
			floats.AddScaled(dst, lhs.data[i*inner+k], rhs.data[k*p:(k+1)*p])
		}
	}
	return out
}

// MulTransposeLeft returns lhsᵗ·rhs without materializing the transpose.
// It requires lhs.Rows() == rhs.Rows() and yields a lhs.Cols()×rhs.Cols()
// matrix.
func MulTransposeLeft(lhs, rhs *Matrix) *Matrix {
	if lhs.rows != rhs.rows {
		panicMismatch("MulTransposeLeft", lhs, rhs)
	}
	shared, n, p := lhs.rows, lhs.cols, rhs.cols
	out := New(n, p)
	// out[i,:] = sum over k of lhs[k,i] * rhs[k,:]
	for k := 0; k < shared; k++ {
		src := rhs.data[k*p : (k+1)*p]
		for i := 0; i < n; i++ {
			floats.AddScaled(out.data[i*p:(i+1)*p], lhs.data[k*n+i], src)
		}
	}
	return out
}

// MulTransposeRight returns lhs·rhsᵗ without materializing the transpose.
// It requires lhs.Cols() == rhs.Cols() and yields a lhs.Rows()×rhs.Rows()
// matrix.
func MulTransposeRight(lhs, rhs *Matrix) *Matrix {
	if lhs.cols != rhs.cols {
		panicMismatch("MulTransposeRight", lhs, rhs)
	}
	n, shared, p := lhs.rows, lhs.cols, rhs.rows
	out := New(n, p)
	// Both operands are walked along their rows, so every entry is a dot
	// product of two contiguous slices.
	for i := 0; i < n; i++ {
		a := lhs.data[i*shared : (i+1)*shared]
		for j := 0; j < p; j++ {
			out.data[i*p+j] = floats.Dot(a, rhs.data[j*shared:(j+1)*shared])
		}
	}
	return out
}

// Transpose returns mᵗ.
func Transpose(m *Matrix) *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// SumCols returns the rows×1 column vector holding the sum of each row of m,
// i.e. the sum of all of m's columns.
func SumCols(m *Matrix) *Matrix {
	out := New(m.rows, 1)
	for i := 0; i < m.rows; i++ {
		out.data[i] = floats.Sum(m.data[i*m.cols : (i+1)*m.cols])
	}
	return out
}

// BroadcastCol repeats the column vector col n times, returning a
// col.Rows()×n matrix.
func BroadcastCol(col *Matrix, n int) *Matrix {
	if col.cols != 1 {
		panic(fmt.Errorf("matrix.BroadcastCol: %dx%d is not a column vector: %w",
			col.rows, col.cols, ErrDimensionMismatch))
	}
	out := New(col.rows, n)
	for i, v := range col.data {
		row := out.data[i*n : (i+1)*n]
		for j := range row {
			row[j] = v
		}
	}
	return out
}
