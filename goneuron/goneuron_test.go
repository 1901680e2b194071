package goneuron_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/GoNeuronCore/goneuron"
)

// TestTwoLayerRoundTrip drives two layers the way a training loop would:
// forward through both, loss gradient, backward in reverse order.
func TestTwoLayerRoundTrip(t *testing.T) {
	l1 := goneuron.NewDense(2, 3, goneuron.Linear, goneuron.WithWeightInit(goneuron.ConstantInit(0.5)))
	l2 := goneuron.NewDense(3, 1, goneuron.ReLU, goneuron.WithWeightInit(goneuron.ConstantInit(1)))

	x := goneuron.FromRows([][]float64{{1}, {2}})
	h := l1.Forward(x) // [[1.5],[1.5],[1.5]]
	y := l2.Forward(h) // relu(h) summed
	require.True(t, goneuron.EqualApprox(y, goneuron.FromRows([][]float64{{4.5}}), 1e-12), "got %v", y)

	target := goneuron.FromRows([][]float64{{4}})
	grad := goneuron.MSE.Backward(y, target) // 2*(4.5-4) = 1

	g2, g1 := l2.ZeroGradient(), l1.ZeroGradient()
	up := l2.Backward(grad, h, g2)
	l1.Backward(up, x, g1)

	assert.True(t, goneuron.EqualApprox(g2.Weights(), goneuron.Constant(1, 3, 1.5), 1e-12))
	assert.True(t, goneuron.EqualApprox(g1.Weights(), goneuron.FromRows([][]float64{{1, 2}, {1, 2}, {1, 2}}), 1e-12))
	assert.True(t, goneuron.EqualApprox(g1.Bias(), goneuron.Constant(3, 1, 1), 1e-12))
}

func TestBackwardBatch(t *testing.T) {
	l := goneuron.NewDense(2, 2, goneuron.Tanh, goneuron.WithWeightInit(goneuron.UniformInit(-1, 1)))
	samples := []goneuron.Sample{
		{Grad: goneuron.Constant(2, 1, 1), Input: goneuron.Constant(2, 1, 0.5)},
		{Grad: goneuron.Constant(2, 1, -1), Input: goneuron.Constant(2, 1, 0.5)},
	}
	acc := goneuron.NewGradient(2, 2)
	up, err := goneuron.BackwardBatch(context.Background(), l, samples, acc, goneuron.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, up, 2)

	// Opposite gradients on the same input cancel out.
	assert.True(t, goneuron.EqualApprox(acc.Weights(), goneuron.NewMatrix(2, 2), 1e-12))
	assert.Equal(t, 2, acc.Count())
}
