// Package batch runs a layer's backward pass for every sample of a batch on
// a pool of goroutines while keeping gradient accumulation race free.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/layer"
	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

// Sample is one backward call: the gradient arriving from downstream and the
// input originally fed to the layer's Forward.
type Sample struct {
	Grad  *matrix.Matrix
	Input *matrix.Matrix
}

type config struct {
	workers int
	logger  *slog.Logger
}

// Option configures Backward.
type Option func(*config)

// WithWorkers sets the number of goroutines. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Backward calls l.Backward for every sample and adds the resulting
// parameter gradients to acc. It returns the upstream gradients in sample
// order.
//
// Each worker accumulates into a private zeroed buffer; the private buffers
// are merged into acc once every sample has been processed, so acc is only
// ever touched under its own lock. If ctx is cancelled or a sample fails its
// shape checks, nothing is merged into acc and the error is returned.
func Backward(ctx context.Context, l *layer.Dense, samples []Sample, acc *layer.Gradient, opts ...Option) ([]*matrix.Matrix, error) {
	cfg := config{workers: runtime.NumCPU(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}
	if acc.InSize() != l.InSize() || acc.OutSize() != l.OutSize() {
		return nil, fmt.Errorf("batch: accumulator is %dx%d, layer is %dx%d: %w",
			acc.OutSize(), acc.InSize(), l.OutSize(), l.InSize(), matrix.ErrDimensionMismatch)
	}
	workers := min(cfg.workers, len(samples))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	start := time.Now()
	jobs := make(chan int)
	out := make([]*matrix.Matrix, len(samples))
	partials := make([]*layer.Gradient, workers)

	for w := 0; w < workers; w++ {
		partials[w] = l.ZeroGradient()
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range jobs {
				grad, err := backwardOne(l, samples[i], partials[w])
				if err != nil {
					fail(fmt.Errorf("batch: sample %d: %w", i, err))
					continue
				}
				out[i] = grad
			}
			cfg.logger.Debug("batch worker done", "worker", w, "samples", partials[w].Count())
		}(w)
	}

	interrupted := false
dispatch:
	for i := range samples {
		select {
		case jobs <- i:
		case <-ctx.Done():
			interrupted = true
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if interrupted {
		return nil, ctx.Err()
	}

	for _, p := range partials {
		acc.Merge(p)
	}
	cfg.logger.Debug("batch backward complete",
		"samples", len(samples), "workers", workers, "elapsed", time.Since(start))
	return out, nil
}

// backwardOne turns the shape panics raised by Dense.Backward into an error
// so one bad sample cannot take down the whole pool.
func backwardOne(l *layer.Dense, s Sample, acc *layer.Gradient) (grad *matrix.Matrix, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return l.Backward(s.Grad, s.Input, acc), nil
}
