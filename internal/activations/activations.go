// Package activations provides the scalar non-linearities a layer applies
// element-wise, and the helpers that lift them to whole matrices.
package activations

import (
	"math"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Activation is an activation function with derivative.
// Implementations must be pure: a single value is shared by every layer
// that uses it, possibly from several goroutines at once.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// Apply returns a new matrix with act.Activate applied to every element of m.
func Apply(act Activation, m *matrix.Matrix) *matrix.Matrix {
	return matrix.Apply(m, act.Activate)
}

// ApplyDerivative returns a new matrix with act.Derivative applied to every
// element of m.
func ApplyDerivative(act Activation, m *matrix.Matrix) *matrix.Matrix {
	return matrix.Apply(m, act.Derivative)
}

// Func adapts a caller-supplied pair of scalar functions to Activation.
// Backward must be the derivative of Forward almost everywhere.
type Func struct {
	Forward  func(float64) float64
	Backward func(float64) float64
}

// Activate computes Forward(x)
func (f Func) Activate(x float64) float64 { return f.Forward(x) }

// Derivative computes Backward(x)
func (f Func) Derivative(x float64) float64 { return f.Backward(x) }

// Identity passes values through unchanged.
type Identity struct{}

// Activate returns x
func (Identity) Activate(x float64) float64 { return x }

// Derivative returns 1
func (Identity) Derivative(float64) float64 { return 1 }

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// LeakyReLU activation function to prevent dying neurons.
type LeakyReLU struct {
	Alpha float64 // Slope for x <= 0
}

// NewLeakyReLU creates a LeakyReLU with the given alpha value.
func NewLeakyReLU(alpha float64) LeakyReLU {
	return LeakyReLU{Alpha: alpha}
}

// Activate computes x if x > 0, else alpha*x
func (l LeakyReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return l.Alpha * x
}

// Derivative returns 1 if x > 0, else alpha
func (l LeakyReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return l.Alpha
}

// Sigmoid activation function.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// ATan activation function.
type ATan struct{}

// Activate computes atan(x)
func (ATan) Activate(x float64) float64 {
	return math.Atan(x)
}

// Derivative computes 1 / (1 + x^2)
func (ATan) Derivative(x float64) float64 {
	return 1 / (1 + x*x)
}
