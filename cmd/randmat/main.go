// Command randmat allocates a matrix of uniformly random values and prints it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/FlavioCFOliveira/GoNeuronCore/internal/matrix"
)

func main() {
	rows := flag.Int("rows", 20, "number of rows")
	cols := flag.Int("cols", 20, "number of columns")
	low := flag.Float64("low", 0, "lower bound (inclusive)")
	high := flag.Float64("high", 10, "upper bound (exclusive)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *rows <= 0 || *cols <= 0 {
		logger.Error("invalid shape", "rows", *rows, "cols", *cols)
		os.Exit(2)
	}
	if *high <= *low {
		logger.Error("empty range", "low", *low, "high", *high)
		os.Exit(2)
	}

	logger.Debug("allocating", "rows", *rows, "cols", *cols, "low", *low, "high", *high, "seed", *seed)
	m := matrix.UniformRand(rand.New(rand.NewSource(*seed)), *rows, *cols, *low, *high)
	fmt.Println(m)
}
