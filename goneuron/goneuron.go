// Package goneuron is the public entry point: a dense matrix engine and a
// fully connected layer with forward and backward propagation.
package goneuron

import (
	"context"
	"math/rand"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/batch"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/layer"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/loss"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Re-export common types and functions for easier access
type (
	Matrix      = matrix.Matrix
	Activation  = activations.Activation
	Func        = activations.Func
	Dense       = layer.Dense
	Gradient    = layer.Gradient
	LayerOption = layer.Option
	Init        = layer.Init
	Loss        = loss.Loss
	Sample      = batch.Sample
	BatchOption = batch.Option
)

// Errors
var (
	ErrInvalidShape      = matrix.ErrInvalidShape
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
)

// Matrix creation
func NewMatrix(rows, cols int) *Matrix { return matrix.New(rows, cols) }
func Constant(rows, cols int, v float64) *Matrix { return matrix.Constant(rows, cols, v) }
func FromSlice(rows, cols int, d []float64) *Matrix { return matrix.FromSlice(rows, cols, d) }
func FromRows(rows [][]float64) *Matrix { return matrix.FromRows(rows) }
func Identity(n int) *Matrix { return matrix.Identity(n) }
func Uniform(rows, cols int, low, high float64) *Matrix {
	return matrix.Uniform(rows, cols, low, high)
}
func UniformRand(rng *rand.Rand, rows, cols int, low, high float64) *Matrix {
	return matrix.UniformRand(rng, rows, cols, low, high)
}

// Matrix arithmetic
func Add(lhs, rhs *Matrix) *Matrix { return matrix.Add(lhs, rhs) }
func Sub(lhs, rhs *Matrix) *Matrix { return matrix.Sub(lhs, rhs) }
func Hadamard(lhs, rhs *Matrix) *Matrix { return matrix.Hadamard(lhs, rhs) }
func Mul(lhs, rhs *Matrix) *Matrix { return matrix.Mul(lhs, rhs) }
func MulTransposeLeft(lhs, rhs *Matrix) *Matrix { return matrix.MulTransposeLeft(lhs, rhs) }
func MulTransposeRight(lhs, rhs *Matrix) *Matrix { return matrix.MulTransposeRight(lhs, rhs) }
func Transpose(m *Matrix) *Matrix { return matrix.Transpose(m) }

func Equal(a, b *Matrix) bool { return matrix.Equal(a, b) }

func EqualApprox(a, b *Matrix, tol float64) bool { return matrix.EqualApprox(a, b, tol) }

// Activations
var (
	Linear  = activations.Identity{}
	ReLU    = activations.ReLU{}
	ATan    = activations.ATan{}
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
)

func LeakyReLU(alpha float64) Activation { return activations.NewLeakyReLU(alpha) }

func Apply(act Activation, m *Matrix) *Matrix { return activations.Apply(act, m) }

func ApplyDerivative(act Activation, m *Matrix) *Matrix {
	return activations.ApplyDerivative(act, m)
}

// Layers
func NewDense(in, out int, act Activation, opts ...LayerOption) *Dense {
	return layer.New(in, out, act, opts...)
}

func NewRandomDense(in, out int, act Activation, opts ...LayerOption) *Dense {
	return layer.NewRandom(in, out, act, opts...)
}

func NewGradient(in, out int) *Gradient { return layer.NewGradient(in, out) }

// Layer initialization
var (
	WithWeightInit = layer.WithWeightInit
	WithBiasInit   = layer.WithBiasInit
	WithRand       = layer.WithRand
	Zeros          = layer.Zeros
	ConstantInit   = layer.Constant
	UniformInit    = layer.Uniform
)

// Losses
var (
	MSE                 = loss.MSE{}
	SoftmaxCrossEntropy = loss.SoftmaxCrossEntropy{}
)

func Huber(delta float64) Loss { return loss.Huber{Delta: delta} }

// Concurrent batch backward
var (
	WithWorkers = batch.WithWorkers
	WithLogger  = batch.WithLogger
)

func BackwardBatch(ctx context.Context, l *Dense, samples []Sample, acc *Gradient, opts ...BatchOption) ([]*Matrix, error) {
	return batch.Backward(ctx, l, samples, acc, opts...)
}
