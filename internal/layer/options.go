package layer

import (
	"math/rand"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Init is an initialization policy for a weight or bias matrix.
type Init struct {
	kind      initKind
	value     float64
	low, high float64
}

type initKind int

const (
	initZeros initKind = iota
	initConstant
	initUniform
)

// Zeros fills with 0.
func Zeros() Init { return Init{kind: initZeros} }

// Constant fills every element with v.
func Constant(v float64) Init { return Init{kind: initConstant, value: v} }

// Uniform draws every element independently from [low, high).
func Uniform(low, high float64) Init { return Init{kind: initUniform, low: low, high: high} }

func (in Init) build(rng *rand.Rand, rows, cols int) *matrix.Matrix {
	switch in.kind {
	case initConstant:
		return matrix.Constant(rows, cols, in.value)
	case initUniform:
		return matrix.UniformRand(rng, rows, cols, in.low, in.high)
	default:
		return matrix.New(rows, cols)
	}
}

type config struct {
	weightInit Init
	biasInit   Init
	rng        *rand.Rand
}

// Option configures a Dense layer at construction.
type Option func(*config)

// WithWeightInit sets the weight initialization policy.
func WithWeightInit(in Init) Option {
	return func(c *config) { c.weightInit = in }
}

// WithBiasInit sets the bias initialization policy.
func WithBiasInit(in Init) Option {
	return func(c *config) { c.biasInit = in }
}

// WithRand sets the random source used by Uniform policies.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}
