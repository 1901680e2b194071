// Package loss provides the loss functions a training driver uses to produce
// the gradient fed into a layer's Backward.
//
// Predictions and targets carry one sample per column.
package loss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue *matrix.Matrix) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	Backward(yPred, yTrue *matrix.Matrix) *matrix.Matrix
}

func checkSame(name string, yPred, yTrue *matrix.Matrix) {
	if yPred.Rows() != yTrue.Rows() || yPred.Cols() != yTrue.Cols() {
		panic(fmt.Errorf("%s: prediction is %dx%d, target is %dx%d: %w",
			name, yPred.Rows(), yPred.Cols(), yTrue.Rows(), yTrue.Cols(), matrix.ErrDimensionMismatch))
	}
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue *matrix.Matrix) float64 {
	checkSame("MSE", yPred, yTrue)
	diff := matrix.Sub(yPred, yTrue).Data()
	return floats.Dot(diff, diff) / float64(len(diff))
}

// Backward computes gradient: dL/dy_pred = (2/n) * (y_pred - y_true)
func (m MSE) Backward(yPred, yTrue *matrix.Matrix) *matrix.Matrix {
	checkSame("MSE", yPred, yTrue)
	return matrix.Scale(matrix.Sub(yPred, yTrue), 2/float64(yPred.Len()))
}

// Huber loss for robust regression.
type Huber struct {
	Delta float64 // Threshold for quadratic/linear transition
}

// Forward computes Huber loss.
func (h Huber) Forward(yPred, yTrue *matrix.Matrix) float64 {
	checkSame("Huber", yPred, yTrue)
	diff := matrix.Sub(yPred, yTrue).Data()

	var sum float64
	for _, d := range diff {
		d = math.Abs(d)
		if d <= h.Delta {
			sum += 0.5 * d * d
		} else {
			sum += h.Delta * (d - 0.5*h.Delta)
		}
	}
	return sum / float64(len(diff))
}

// Backward computes gradient for Huber loss.
func (h Huber) Backward(yPred, yTrue *matrix.Matrix) *matrix.Matrix {
	checkSame("Huber", yPred, yTrue)
	n := float64(yPred.Len())
	return matrix.Apply(matrix.Sub(yPred, yTrue), func(d float64) float64 {
		if math.Abs(d) <= h.Delta {
			return d / n
		}
		return h.Delta * math.Copysign(1, d) / n
	})
}

// SoftmaxCrossEntropy applies softmax to each column of the prediction and
// scores it with cross entropy against a one-hot (or probability) target.
// Predictions are raw scores, not probabilities.
type SoftmaxCrossEntropy struct{}

// Forward computes -(1/cols) * sum(y_true * log(softmax(y_pred)))
func (s SoftmaxCrossEntropy) Forward(yPred, yTrue *matrix.Matrix) float64 {
	checkSame("SoftmaxCrossEntropy", yPred, yTrue)
	const eps = 1e-12
	p := Softmax(yPred)

	var sum float64
	for i := 0; i < p.Rows(); i++ {
		for j := 0; j < p.Cols(); j++ {
			if y := yTrue.At(i, j); y != 0 {
				sum -= y * math.Log(math.Max(p.At(i, j), eps))
			}
		}
	}
	return sum / float64(p.Cols())
}

// Backward computes (softmax(y_pred) - y_true) / cols.
func (s SoftmaxCrossEntropy) Backward(yPred, yTrue *matrix.Matrix) *matrix.Matrix {
	checkSame("SoftmaxCrossEntropy", yPred, yTrue)
	return matrix.Scale(matrix.Sub(Softmax(yPred), yTrue), 1/float64(yPred.Cols()))
}

// Softmax returns exp(x) / sum(exp(x)) computed independently for every
// column of m.
func Softmax(m *matrix.Matrix) *matrix.Matrix {
	t := matrix.Transpose(m) // one sample per row, contiguous
	out := make([]float64, 0, m.Len())
	for i := 0; i < t.Rows(); i++ {
		row := t.Row(i)
		// Subtract max for numerical stability
		floats.AddConst(-floats.Max(row), row)
		for k := range row {
			row[k] = math.Exp(row[k])
		}
		floats.Scale(1/floats.Sum(row), row)
		out = append(out, row...)
	}
	return matrix.Transpose(matrix.FromSlice(t.Rows(), t.Cols(), out))
}

// Argmax returns, for every column of m, the row index of its largest element.
func Argmax(m *matrix.Matrix) []int {
	t := matrix.Transpose(m)
	idx := make([]int, t.Rows())
	for i := range idx {
		idx[i] = floats.MaxIdx(t.Row(i))
	}
	return idx
}
