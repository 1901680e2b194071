// Package loss provides comprehensive unit tests for loss functions.
package loss

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

func col(v ...float64) *matrix.Matrix {
	return matrix.FromSlice(len(v), 1, v)
}

// TestMSEForward tests MSE forward pass.
func TestMSEForward(t *testing.T) {
	tests := []struct {
		name     string
		yPred    *matrix.Matrix
		yTrue    *matrix.Matrix
		expected float64
	}{
		{"Perfect prediction", col(1, 2, 3), col(1, 2, 3), 0},
		{"Single error", col(1, 2), col(1.5, 2), 0.125},
		{"Multiple errors", col(1, 2, 3), col(0, 1, 2), 1},
		{"Large errors", col(10), col(0), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MSE{}.Forward(tt.yPred, tt.yTrue), 1e-12)
		})
	}
}

// TestMSEBackward tests the MSE gradient.
func TestMSEBackward(t *testing.T) {
	grad := MSE{}.Backward(col(1, 2), col(0, 4))
	assert.True(t, matrix.EqualApprox(grad, col(1, -2), 1e-12), "got %v", grad)
}

// TestLossMismatch tests shape validation.
func TestLossMismatch(t *testing.T) {
	losses := map[string]Loss{
		"mse":     MSE{},
		"huber":   Huber{Delta: 1},
		"softmax": SoftmaxCrossEntropy{},
	}
	for name, l := range losses {
		t.Run(name, func(t *testing.T) {
			for _, fn := range []func(){
				func() { l.Forward(col(1, 2), col(1)) },
				func() { l.Backward(col(1, 2), col(1)) },
			} {
				func() {
					defer func() {
						r := recover()
						require.NotNil(t, r)
						err, ok := r.(error)
						require.True(t, ok)
						assert.True(t, errors.Is(err, matrix.ErrDimensionMismatch))
					}()
					fn()
				}()
			}
		})
	}
}

// TestSoftmax checks columns are normalized independently.
func TestSoftmax(t *testing.T) {
	m := matrix.FromRows([][]float64{{0, 1000}, {0, 1000}, {math.Log(2), 0}})
	p := Softmax(m)

	assert.InDelta(t, 0.25, p.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, p.At(1, 0), 1e-12)
	assert.InDelta(t, 0.5, p.At(2, 0), 1e-12)

	// Large scores must not overflow.
	assert.InDelta(t, 0.5, p.At(0, 1), 1e-12)
	assert.InDelta(t, 0.5, p.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, p.At(2, 1), 1e-12)

	for j := 0; j < 2; j++ {
		assert.InDelta(t, 1.0, p.At(0, j)+p.At(1, j)+p.At(2, j), 1e-12)
	}
}

// TestArgmax checks the per-column maximum index.
func TestArgmax(t *testing.T) {
	m := matrix.FromRows([][]float64{{0.1, 5}, {0.7, 1}, {0.2, -1}})
	assert.Equal(t, []int{1, 0}, Argmax(m))
}

// TestGradientsMatchFiniteDifferences checks every Backward against a
// numerical derivative of Forward.
func TestGradientsMatchFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pred := matrix.UniformRand(rng, 4, 3, -2, 2)
	target := matrix.UniformRand(rng, 4, 3, -2, 2)

	onehot := matrix.New(4, 3)
	onehot.Set(1, 0, 1)
	onehot.Set(3, 1, 1)
	onehot.Set(0, 2, 1)

	tests := []struct {
		name   string
		loss   Loss
		target *matrix.Matrix
	}{
		{"mse", MSE{}, target},
		{"huber", Huber{Delta: 0.5}, target},
		{"softmax cross entropy", SoftmaxCrossEntropy{}, onehot},
	}

	settings := &fd.Settings{Formula: fd.Central}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numeric := fd.Gradient(nil, func(x []float64) float64 {
				return tt.loss.Forward(matrix.FromSlice(4, 3, x), tt.target)
			}, pred.Data(), settings)

			analytic := tt.loss.Backward(pred, tt.target).Data()
			assert.True(t, floats.EqualApprox(numeric, analytic, 1e-5), "numeric %v\nanalytic %v", numeric, analytic)
		})
	}
}
