// Command layerdemo pushes a random batch through one dense layer, backpropagates
// a mean squared error against a random target and reports the gradients.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/batch"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/layer"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/loss"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

var activationsByName = map[string]activations.Activation{
	"identity": activations.Identity{},
	"relu":     activations.ReLU{},
	"atan":     activations.ATan{},
	"sigmoid":  activations.Sigmoid{},
	"tanh":     activations.Tanh{},
}

func main() {
	in := flag.Int("in", 8, "layer input size")
	out := flag.Int("out", 4, "layer output size")
	samples := flag.Int("samples", 64, "samples in the batch")
	workers := flag.Int("workers", 4, "goroutines used for the backward pass")
	actName := flag.String("activation", "atan", "identity, relu, atan, sigmoid or tanh")
	seed := flag.Int64("seed", 1, "random seed")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	act, ok := activationsByName[*actName]
	if !ok {
		logger.Error("unknown activation", "name", *actName)
		os.Exit(2)
	}
	if *in <= 0 || *out <= 0 || *samples <= 0 {
		logger.Error("sizes must be positive", "in", *in, "out", *out, "samples", *samples)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	l := layer.NewRandom(*in, *out, act, layer.WithRand(rng))
	mse := loss.MSE{}

	batchSamples := make([]batch.Sample, *samples)
	var total float64
	for i := range batchSamples {
		x := matrix.UniformRand(rng, *in, 1, -1, 1)
		y := matrix.UniformRand(rng, *out, 1, -1, 1)
		pred := l.Forward(x)
		total += mse.Forward(pred, y)
		batchSamples[i] = batch.Sample{Grad: mse.Backward(pred, y), Input: x}
	}
	logger.Info("forward pass", "samples", *samples, "mean_loss", total/float64(*samples))

	acc := l.ZeroGradient()
	start := time.Now()
	upstream, err := batch.Backward(context.Background(), l, batchSamples, acc,
		batch.WithWorkers(*workers), batch.WithLogger(logger))
	if err != nil {
		logger.Error("backward pass failed", "err", err)
		os.Exit(1)
	}
	logger.Info("backward pass",
		"samples", acc.Count(),
		"elapsed", time.Since(start),
		"weight_grad_norm", floats.Norm(acc.Weights().Data(), 2),
		"bias_grad_norm", floats.Norm(acc.Bias().Data(), 2),
		"upstream_grad_norm", floats.Norm(upstream[0].Data(), 2))

	fmt.Printf("weight gradient (%dx%d):\n%v\n", *out, *in, acc.Weights())
	fmt.Printf("bias gradient (%dx1):\n%v\n", *out, acc.Bias())
}
