// SPDX-License-Identifier: MIT

// Package diagnostics computes the scalar summaries recorded once per step:
// average concentration, average chemical potential and total free energy.
//
// Snapshots are derived values; nothing here keeps state between calls.
package diagnostics

import (
	"fmt"

	"github.com/katalvlaran/spinodal/energy"
	"github.com/katalvlaran/spinodal/field"
	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch indicates two fields of different shapes were averaged together.
var ErrShapeMismatch = field.NewParameterError("diagnostics: fields must have the same shape")

// Snapshot is the per-step diagnostics tuple.
type Snapshot struct {
	T                        float64 // simulation time
	AverageConcentration     float64
	AverageChemicalPotential float64
	FreeEnergy               float64
}

// Average returns the arithmetic mean over all cells.
func Average(f *field.Field) (float64, error) {
	m, err := field.Mean(f)
	if err != nil {
		return 0, fmt.Errorf("diagnostics.Average: %w", err)
	}

	return m, nil
}

// AverageChemicalPotentialAndConcentration returns the means of a chemical
// potential field and a concentration field of the same shape.
//
// Errors:
//   - field.ErrNilField; ErrShapeMismatch when shapes differ.
func AverageChemicalPotentialAndConcentration(mu, c *field.Field) (avgMu, avgC float64, err error) {
	const op = "diagnostics.AverageChemicalPotentialAndConcentration"
	if err = field.ValidateNotNil(mu); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = field.ValidateNotNil(c); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	if mu.Rows() != c.Rows() || mu.Cols() != c.Cols() {
		return 0, 0, fmt.Errorf("%s: %dx%d vs %dx%d: %w",
			op, mu.Rows(), mu.Cols(), c.Rows(), c.Cols(), ErrShapeMismatch)
	}
	n := float64(c.Len())

	return floats.Sum(mu.Raw()) / n, floats.Sum(c.Raw()) / n, nil
}

// Compute returns the Snapshot of f at time t.
// MAIN DESCRIPTION:
//   - µ is evaluated with energy.ChemicalPotential, F with energy.FreeEnergy;
//     parameter errors of either are returned unchanged (wrapped).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the temporary µ field.
func Compute(t float64, f *field.Field, a, k, dx, dy float64) (Snapshot, error) {
	const op = "diagnostics.Compute"
	mu, err := energy.ChemicalPotential(f, a)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	avgMu, avgC, err := AverageChemicalPotentialAndConcentration(mu, f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	fe, err := energy.FreeEnergy(f, a, k, dx, dy)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return Snapshot{
		T:                        t,
		AverageConcentration:     avgC,
		AverageChemicalPotential: avgMu,
		FreeEnergy:               fe,
	}, nil
}
