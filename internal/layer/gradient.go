package layer

import (
	"fmt"
	"sync"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Gradient sums weight and bias gradients for one layer across samples and
// batches. It has the layer's parameter shapes but no activation.
//
// All methods lock the buffer, so any number of goroutines may accumulate
// into the same Gradient.
type Gradient struct {
	mu      sync.Mutex
	weights *matrix.Matrix // outSize×inSize
	bias    *matrix.Matrix // outSize×1
	count   int
	inSize  int
	outSize int
}

// NewGradient returns a zeroed gradient buffer for an in→out layer.
func NewGradient(in, out int) *Gradient {
	return &Gradient{
		weights: matrix.New(out, in),
		bias:    matrix.New(out, 1),
		inSize:  in,
		outSize: out,
	}
}

// Accumulate adds a weight and bias gradient computed from samples samples.
func (g *Gradient) Accumulate(weights, bias *matrix.Matrix, samples int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.weights.AddInPlace(weights)
	g.bias.AddInPlace(bias)
	g.count += samples
}

// Merge adds everything accumulated in other into g. other is read under
// its own lock and left unchanged.
func (g *Gradient) Merge(other *Gradient) {
	if g == other {
		panic("layer.Gradient.Merge: cannot merge a buffer into itself")
	}
	if g.inSize != other.inSize || g.outSize != other.outSize {
		panic(fmt.Errorf("layer.Gradient.Merge: %dx%d into %dx%d: %w",
			other.outSize, other.inSize, g.outSize, g.inSize, matrix.ErrDimensionMismatch))
	}
	other.mu.Lock()
	w, b, n := other.weights.Clone(), other.bias.Clone(), other.count
	other.mu.Unlock()

	g.Accumulate(w, b, n)
}

// Reset zeroes the buffer for the next update cycle.
func (g *Gradient) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.weights = matrix.New(g.outSize, g.inSize)
	g.bias = matrix.New(g.outSize, 1)
	g.count = 0
}

// Weights returns a copy of the accumulated weight gradient.
func (g *Gradient) Weights() *matrix.Matrix {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.weights.Clone()
}

// Bias returns a copy of the accumulated bias gradient.
func (g *Gradient) Bias() *matrix.Matrix {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bias.Clone()
}

// Count returns the number of samples accumulated since the last Reset.
func (g *Gradient) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// InSize returns the input size of the layer the buffer belongs to.
func (g *Gradient) InSize() int { return g.inSize }

// OutSize returns the output size of the layer the buffer belongs to.
func (g *Gradient) OutSize() int { return g.outSize }
