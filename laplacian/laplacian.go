// SPDX-License-Identifier: MIT

package laplacian

import (
	"fmt"

	"github.com/katalvlaran/spinodal/field"
)

// ErrSpacing indicates a non-positive or non-finite grid spacing.
var ErrSpacing = field.NewParameterError("laplacian: dx and dy must be finite and > 0")

const (
	opApply    = "laplacian.Apply"
	opBackDiff = "laplacian.BackwardDiffSquares"
)

// ValidateSpacing returns ErrSpacing unless dx and dy are finite and > 0.
func ValidateSpacing(dx, dy float64) error {
	if !field.IsPositive(dx) || !field.IsPositive(dy) {
		return fmt.Errorf("dx=%g dy=%g: %w", dx, dy, ErrSpacing)
	}

	return nil
}

// Apply returns the periodic five-point Laplacian of f as a new field.
// MAIN DESCRIPTION:
//   - Column index j runs along x (spacing dx), row index i along y (spacing dy).
//   - Neighbors at -1 and Rows/Cols wrap to the opposite edge.
//
// Implementation:
//   - Stage 1: validate f (ErrNilField) and spacings (ErrSpacing).
//   - Stage 2: allocate the output; split rows into bands (WithWorkers).
//   - Stage 3: per row, resolve the wrapped up/down rows once, then sweep
//     columns with wrapped left/right offsets.
//
// Errors:
//   - field.ErrNilField, ErrSpacing (both field.ErrParameter).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the output.
func Apply(f *field.Field, dx, dy float64, opts ...Option) (*field.Field, error) {
	if err := field.ValidateNotNil(f); err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	if err := ValidateSpacing(dx, dy); err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	o := gatherOptions(opts...)

	rows, cols := f.Shape()
	out, err := field.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}

	src, dst := f.Raw(), out.Raw()
	invDx2, invDy2 := 1/(dx*dx), 1/(dy*dy)
	err = field.RowBands(rows, o.workers, func(lo, hi int) error {
		stencilRows(dst, src, rows, cols, lo, hi, invDx2, invDy2)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}

	return out, nil
}

// stencilRows fills dst rows [lo, hi) from src.
func stencilRows(dst, src []float64, rows, cols, lo, hi int, invDx2, invDy2 float64) {
	var i, j, left, right int
	var c float64
	for i = lo; i < hi; i++ {
		base := i * cols
		up := field.Wrap(i-1, rows) * cols
		down := field.Wrap(i+1, rows) * cols
		for j = 0; j < cols; j++ {
			left, right = j-1, j+1
			if left < 0 {
				left = cols - 1
			}
			if right == cols {
				right = 0
			}
			c = src[base+j]
			dst[base+j] = (src[base+left]+src[base+right]-2*c)*invDx2 +
				(src[up+j]+src[down+j]-2*c)*invDy2
		}
	}
}

// BackwardDiffSquares returns the periodic sums
//
//	sx = Σ (c[i,j] - c[i,j-1])²   (x axis, along a row)
//	sy = Σ (c[i,j] - c[i-1,j])²   (y axis, along a column)
//
// with the same wrap as Apply: column 0 differs against the last column and
// row 0 against the last row. These are the gradient-energy sums of the free
// energy before scaling by k/dx² and k/dy².
//
// Complexity: O(r*c) time, O(1) space.
func BackwardDiffSquares(f *field.Field) (sx, sy float64, err error) {
	if err = field.ValidateNotNil(f); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", opBackDiff, err)
	}

	rows, cols := f.Shape()
	src := f.Raw()
	var i, j int
	var d float64
	for i = 0; i < rows; i++ {
		base := i * cols
		up := field.Wrap(i-1, rows) * cols
		for j = 0; j < cols; j++ {
			d = src[base+j] - src[base+field.Wrap(j-1, cols)]
			sx += d * d
			d = src[base+j] - src[up+j]
			sy += d * d
		}
	}

	return sx, sy, nil
}
