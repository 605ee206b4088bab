// SPDX-License-Identifier: MIT

// Package initconf generates the reproducible starting field of a run: a
// near-uniform mixture c0 perturbed by bounded uniform noise,
//
//	c[i,j] = c0 + cNoise·(0.5 - U),  U ~ Uniform[0,1)
//
// drawn cell by cell in row-major order from a seeded generator.
package initconf

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/spinodal/field"
)

// Sentinel errors.
var (
	// ErrGridSize indicates a grid side below 2.
	ErrGridSize = field.NewParameterError("initconf: grid size must be an integer >= 2")

	// ErrConcentration indicates c0 outside [0,1] (or NaN).
	ErrConcentration = field.NewParameterError("initconf: c0 must lie in [0,1]")

	// ErrNoise indicates cNoise outside [0,1] (or NaN).
	ErrNoise = field.NewParameterError("initconf: noise amplitude must lie in [0,1]")

	// ErrInvalidCombination indicates that (c0, cNoise) produced a cell outside [0,1].
	ErrInvalidCombination = field.NewStateError("initconf: invalid (c0, noise) combination")
)

const opGenerate = "initconf.Generate"

// Option configures Generate.
type Option func(*Options)

// Options holds the effective generator configuration.
type Options struct {
	seed       int64
	src        rand.Source
	rows, cols int // 0 ⇒ use n for both axes
}

// WithSeed selects the pseudorandom seed (0 ⇒ DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithSource injects a pseudorandom source; it takes precedence over WithSeed.
// A nil source restores the seeded default.
func WithSource(src rand.Source) Option {
	return func(o *Options) { o.src = src }
}

// WithShape generates a rows×cols grid instead of n×n. Both sides must be >= 2;
// Generate reports ErrGridSize otherwise.
func WithShape(rows, cols int) Option {
	return func(o *Options) { o.rows, o.cols = rows, cols }
}

// Generate returns the initial concentration field.
// MAIN DESCRIPTION:
//   - Deterministic: identical arguments and options produce bit-identical
//     fields. With no options the seed is DefaultSeed.
//
// Implementation:
//   - Stage 1: validate n (or the WithShape sides) >= 2, then c0 and cNoise in [0,1].
//   - Stage 2: build a fresh generator (WithSource, else the seed policy).
//   - Stage 3: fill cells in row-major order with c0 + cNoise·(0.5 - U).
//   - Stage 4: fail with ErrInvalidCombination if any cell left [0,1].
//
// Errors:
//   - ErrGridSize, ErrConcentration, ErrNoise (field.ErrParameter).
//   - ErrInvalidCombination (field.ErrState), naming the first offending cell.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func Generate(n int, c0, cNoise float64, opts ...Option) (*field.Field, error) {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rows, cols := n, n
	if o.rows != 0 || o.cols != 0 {
		rows, cols = o.rows, o.cols
	}
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%s: %dx%d: %w", opGenerate, rows, cols, ErrGridSize)
	}
	if !field.InUnitInterval(c0) {
		return nil, fmt.Errorf("%s: c0=%g: %w", opGenerate, c0, ErrConcentration)
	}
	if !field.InUnitInterval(cNoise) {
		return nil, fmt.Errorf("%s: noise=%g: %w", opGenerate, cNoise, ErrNoise)
	}

	var rng *rand.Rand
	if o.src != nil {
		rng = rand.New(o.src)
	} else {
		rng = rngFromSeed(o.seed)
	}

	f, err := field.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGenerate, err)
	}
	data := f.Raw()
	for idx := range data {
		data[idx] = c0 + cNoise*(0.5-rng.Float64())
	}

	i, j, found, err := field.FirstOutside(f, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGenerate, err)
	}
	if found {
		v, _ := f.At(i, j)
		return nil, fmt.Errorf("%s: c0=%g noise=%g gives c[%d,%d]=%g: %w",
			opGenerate, c0, cNoise, i, j, v, ErrInvalidCombination)
	}

	return f, nil
}
