// Package layer provides a fully connected neural network layer with
// forward propagation and gradient backpropagation.
package layer

import (
	"fmt"
	"math/rand"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Default initialization used by NewRandom.
const (
	DefaultWeightLow  = -0.05
	DefaultWeightHigh = 0.05
	DefaultBias       = 0.01
)

// Dense is a fully connected layer computing W·f(x) + b.
//
// The activation f is applied to the layer's input, before the affine map.
// In a stack, each layer therefore emits a pre-activation and the next layer's
// Forward applies its own activation to it. Backward follows the same
// convention.
//
// Shapes: weights is outSize×inSize, bias is outSize×1. Inputs carry one
// sample per column, so a batch of n samples is an inSize×n matrix.
type Dense struct {
	weights *matrix.Matrix
	bias    *matrix.Matrix
	act     activations.Activation
	inSize  int
	outSize int
}

// New creates a dense layer. Weights and bias start at zero unless an
// initialization option says otherwise.
func New(in, out int, act activations.Activation, opts ...Option) *Dense {
	if in <= 0 || out <= 0 {
		panic(fmt.Errorf("layer.New(%d, %d): %w", in, out, matrix.ErrInvalidShape))
	}
	cfg := config{weightInit: Zeros(), biasInit: Zeros()}
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Dense{
		weights: cfg.weightInit.build(rng, out, in),
		bias:    cfg.biasInit.build(rng, out, 1),
		act:     act,
		inSize:  in,
		outSize: out,
	}
}

// NewRandom creates a dense layer with weights drawn from
// [DefaultWeightLow, DefaultWeightHigh) and every bias set to DefaultBias.
func NewRandom(in, out int, act activations.Activation, opts ...Option) *Dense {
	defaults := []Option{
		WithWeightInit(Uniform(DefaultWeightLow, DefaultWeightHigh)),
		WithBiasInit(Constant(DefaultBias)),
	}
	return New(in, out, act, append(defaults, opts...)...)
}

func (d *Dense) mismatch(op, what string, m *matrix.Matrix, want int) {
	panic(fmt.Errorf("layer.Dense.%s: %s is %dx%d, want %d rows: %w",
		op, what, m.Rows(), m.Cols(), want, matrix.ErrDimensionMismatch))
}

// Forward propagates input through the layer and returns
// W·f(input) + b, with b added to every column. Neither input nor the layer
// is modified.
func (d *Dense) Forward(input *matrix.Matrix) *matrix.Matrix {
	if input.Rows() != d.inSize {
		d.mismatch("Forward", "input", input, d.inSize)
	}
	activated := activations.Apply(d.act, input)
	linear := matrix.Mul(d.weights, activated)
	return matrix.Add(linear, matrix.BroadcastCol(d.bias, linear.Cols()))
}

// Backward accumulates the parameter gradients for one call into acc and
// returns the gradient to propagate to the previous layer.
//
// gradIn is dL/d(output) (outSize×n) and input is the matrix originally passed
// to Forward (inSize×n). f(input) is recomputed rather than cached.
// Accumulation is additive: acc keeps summing across calls until the caller
// resets it. acc may be shared between goroutines.
func (d *Dense) Backward(gradIn, input *matrix.Matrix, acc *Gradient) *matrix.Matrix {
	if gradIn.Rows() != d.outSize {
		d.mismatch("Backward", "gradient", gradIn, d.outSize)
	}
	if input.Rows() != d.inSize {
		d.mismatch("Backward", "input", input, d.inSize)
	}
	if gradIn.Cols() != input.Cols() {
		panic(fmt.Errorf("layer.Dense.Backward: gradient has %d columns, input has %d: %w",
			gradIn.Cols(), input.Cols(), matrix.ErrDimensionMismatch))
	}
	if acc.inSize != d.inSize || acc.outSize != d.outSize {
		panic(fmt.Errorf("layer.Dense.Backward: accumulator is %dx%d, layer is %dx%d: %w",
			acc.outSize, acc.inSize, d.outSize, d.inSize, matrix.ErrDimensionMismatch))
	}

	activated := activations.Apply(d.act, input)
	weightGrad := matrix.MulTransposeRight(gradIn, activated)
	acc.Accumulate(weightGrad, matrix.SumCols(gradIn), gradIn.Cols())

	upstream := matrix.MulTransposeLeft(d.weights, gradIn)
	return matrix.Hadamard(upstream, activations.ApplyDerivative(d.act, input))
}

// ZeroGradient returns a zeroed gradient buffer shaped like d.
func (d *Dense) ZeroGradient() *Gradient {
	return NewGradient(d.inSize, d.outSize)
}

// NumParams returns the number of weights plus the number of biases.
func (d *Dense) NumParams() int {
	return d.weights.Len() + d.bias.Len()
}

// Params returns all parameters flattened: weights row-major, then biases.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, d.NumParams())
	params = append(params, d.weights.Data()...)
	params = append(params, d.bias.Data()...)
	return params
}

// SetParams replaces weights and biases from a slice laid out like Params.
func (d *Dense) SetParams(params []float64) {
	if len(params) != d.NumParams() {
		panic(fmt.Errorf("layer.Dense.SetParams: got %d values, want %d: %w",
			len(params), d.NumParams(), matrix.ErrDimensionMismatch))
	}
	n := d.weights.Len()
	d.weights = matrix.FromSlice(d.outSize, d.inSize, params[:n])
	d.bias = matrix.FromSlice(d.outSize, 1, params[n:])
}

// Weights returns a copy of the weight matrix.
func (d *Dense) Weights() *matrix.Matrix { return d.weights.Clone() }

// Bias returns a copy of the bias column vector.
func (d *Dense) Bias() *matrix.Matrix { return d.bias.Clone() }

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights.Set(row, col, val)
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.bias.Set(idx, 0, val)
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
