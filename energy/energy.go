// SPDX-License-Identifier: MIT

package energy

import (
	"fmt"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
)

// ErrCoefficient indicates a negative or non-finite A or k.
var ErrCoefficient = field.NewParameterError("energy: coefficients A and k must be finite and >= 0")

const (
	opChemical = "energy.ChemicalPotential"
	opFree     = "energy.FreeEnergy"
)

// ValidateCoefficient returns ErrCoefficient unless v is finite and >= 0.
// name is used in the message only ("A", "k").
func ValidateCoefficient(name string, v float64) error {
	if !field.IsNonNegative(v) {
		return fmt.Errorf("%s=%g: %w", name, v, ErrCoefficient)
	}

	return nil
}

// HomogeneousDensity returns the double-well density A c²(1-c)².
// Both pure phases (c=0, c=1) are minima with zero energy.
func HomogeneousDensity(c, a float64) float64 {
	d := c * (1 - c)
	return a * d * d
}

// potential is the per-cell chemical potential.
func potential(c, a float64) float64 {
	u := 1 - c
	return 2 * a * (c*u*u - c*c*u)
}

// ChemicalPotential returns µ = 2A(c(1-c)² - c²(1-c)) cell by cell as a new field.
//
// Errors:
//   - field.ErrNilField; ErrCoefficient when A < 0 or non-finite.
//
// Complexity: O(r*c) time and space.
func ChemicalPotential(f *field.Field, a float64, opts ...Option) (*field.Field, error) {
	if err := field.ValidateNotNil(f); err != nil {
		return nil, fmt.Errorf("%s: %w", opChemical, err)
	}
	if err := ValidateCoefficient("A", a); err != nil {
		return nil, fmt.Errorf("%s: %w", opChemical, err)
	}
	o := gatherOptions(opts...)

	rows, cols := f.Shape()
	out, err := field.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opChemical, err)
	}
	src, dst := f.Raw(), out.Raw()
	err = field.RowBands(rows, o.workers, func(lo, hi int) error {
		for idx := lo * cols; idx < hi*cols; idx++ {
			dst[idx] = potential(src[idx], a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opChemical, err)
	}

	return out, nil
}

// FreeEnergy returns the total discrete free energy of f.
// MAIN DESCRIPTION:
//   - Homogeneous part: dx·dy·A·Σ c²(1-c)².
//   - Gradient part: (k/dx²)·Σ(c - c_{x-1})² + (k/dy²)·Σ(c - c_{y-1})², with
//     periodic backward differences (laplacian.BackwardDiffSquares).
//
// Errors:
//   - field.ErrNilField; ErrCoefficient (A < 0, k < 0); laplacian.ErrSpacing.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func FreeEnergy(f *field.Field, a, k, dx, dy float64) (float64, error) {
	if err := field.ValidateNotNil(f); err != nil {
		return 0, fmt.Errorf("%s: %w", opFree, err)
	}
	if err := ValidateCoefficient("A", a); err != nil {
		return 0, fmt.Errorf("%s: %w", opFree, err)
	}
	if err := ValidateCoefficient("k", k); err != nil {
		return 0, fmt.Errorf("%s: %w", opFree, err)
	}
	if err := laplacian.ValidateSpacing(dx, dy); err != nil {
		return 0, fmt.Errorf("%s: %w", opFree, err)
	}

	var bulk float64
	for _, c := range f.Raw() {
		d := c * (1 - c)
		bulk += d * d
	}
	sx, sy, err := laplacian.BackwardDiffSquares(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opFree, err)
	}

	return dx*dy*a*bulk + k/(dx*dx)*sx + k/(dy*dy)*sy, nil
}
