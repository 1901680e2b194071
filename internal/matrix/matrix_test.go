package matrix

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// requirePanicsWith asserts that fn panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

// toDense converts m to a gonum matrix for use as an independent reference.
func toDense(m *Matrix) *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), m.Data())
}

func TestFactories(t *testing.T) {
	m := New(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, make([]float64, 6), m.Data())

	c := Constant(3, 2, 1.5)
	for _, v := range c.Data() {
		assert.Equal(t, 1.5, v)
	}

	u := UniformRand(rand.New(rand.NewSource(1)), 10, 10, -0.5, 0.25)
	require.Equal(t, 100, u.Len())
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.25)
	}

	g := Uniform(4, 4, 2, 3)
	for _, v := range g.Data() {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}

	id := Identity(3)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, id.Data())
}

func TestFactoriesInvalidShape(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"New zero rows", func() { New(0, 3) }},
		{"New negative cols", func() { New(2, -1) }},
		{"Constant", func() { Constant(0, 0, 1) }},
		{"Uniform", func() { Uniform(-1, 2, 0, 1) }},
		{"UniformRand", func() { UniformRand(rand.New(rand.NewSource(1)), 1, 0, 0, 1) }},
		{"FromRows empty", func() { FromRows(nil) }},
		{"Resize", func() { New(1, 1).Resize(0, 4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requirePanicsWith(t, ErrInvalidShape, tt.fn)
		})
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	m := FromSlice(2, 2, src)
	src[0] = 100
	assert.Equal(t, 1.0, m.At(0, 0))

	out := m.Data()
	out[1] = 100
	assert.Equal(t, 2.0, m.At(0, 1))

	requirePanicsWith(t, ErrDimensionMismatch, func() { FromSlice(2, 2, []float64{1, 2, 3}) })
	requirePanicsWith(t, ErrDimensionMismatch, func() { FromRows([][]float64{{1, 2}, {3}}) })
}

func TestAtSetRow(t *testing.T) {
	m := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, 6.0, m.At(1, 2))
	m.Set(1, 2, -6)
	assert.Equal(t, -6.0, m.At(1, 2))
	assert.Equal(t, []float64{4, 5, -6}, m.Row(1))
	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.Set(0, 3, 1) })
}

func TestCloneIsIndependent(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	c.Set(0, 0, 9)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.True(t, Equal(m, FromRows([][]float64{{1, 2}, {3, 4}})))
}

func TestResizeReservesCapacity(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})
	m.Resize(4, 4)
	assert.GreaterOrEqual(t, m.Cap(), 16)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Data())

	// Shrinking keeps the reserved buffer.
	before := m.Cap()
	m.Resize(1, 1)
	assert.Equal(t, before, m.Cap())
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Data())
}

func TestString(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})
	s := m.String()
	assert.Contains(t, s, "1")
	assert.Contains(t, s, "4")
}
