package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is raised when a matrix is requested with a
	// non-positive number of rows or columns.
	ErrInvalidShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch is raised when the operands of a binary operation
	// (or a layer call) have incompatible shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// Shape violations are programmer errors. They are never returned: the
// operation panics with an error wrapping one of the sentinels above, so a
// caller that recovers can still match it with errors.Is.

func panicShape(op string, rows, cols int) {
	panic(fmt.Errorf("matrix.%s(%d, %d): %w", op, rows, cols, ErrInvalidShape))
}

func panicMismatch(op string, lhs, rhs *Matrix) {
	panic(fmt.Errorf("matrix.%s: %dx%d and %dx%d: %w",
		op, lhs.rows, lhs.cols, rhs.rows, rhs.cols, ErrDimensionMismatch))
}

func checkShape(op string, rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panicShape(op, rows, cols)
	}
}

func checkSameShape(op string, lhs, rhs *Matrix) {
	if lhs.rows != rhs.rows || lhs.cols != rhs.cols {
		panicMismatch(op, lhs, rhs)
	}
}
