// SPDX-License-Identifier: MIT

package integrator

import (
	"fmt"

	"github.com/katalvlaran/spinodal/energy"
	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
)

const opStep = "integrator.Step"

// Step advances f by one explicit time step and returns the new field.
// See StepReport for details; Step discards the report.
func Step(f *field.Field, p Params, opts ...Option) (*field.Field, error) {
	next, _, err := StepReport(f, p, opts...)

	return next, err
}

// StepReport advances f by one explicit time step.
// MAIN DESCRIPTION:
//   - Pure: f is only read; the result is a new independent field.
//
// Implementation:
//   - Stage 1: validate M and dt (before anything else), then A, k, dx, dy and f.
//   - Stage 2: µ = ChemicalPotential(c, A); g = 2k·∇²c; drive = µ - g.
//   - Stage 3: c' = c + dt·M·∇²drive (non-finite ⇒ field.ErrNaNInf, an ErrState).
//   - Stage 4: apply the domain policy (clamp and count, or ErrOutOfDomain).
//
// Errors:
//   - ErrMobility, ErrTimeStep, energy.ErrCoefficient, laplacian.ErrSpacing,
//     field.ErrNilField (field.ErrParameter).
//   - ErrOutOfDomain (strict), field.ErrNaNInf (field.ErrState).
//
// Complexity:
//   - Time O(r*c) with three stencil passes, Space O(r*c).
func StepReport(f *field.Field, p Params, opts ...Option) (*field.Field, Report, error) {
	if err := p.Validate(); err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}
	if err := field.ValidateNotNil(f); err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}
	o := gatherOptions(opts...)

	return step(f, p, o)
}

// step runs the update on validated inputs.
func step(f *field.Field, p Params, o Options) (*field.Field, Report, error) {
	lapOpt := laplacian.WithWorkers(o.workers)

	mu, err := energy.ChemicalPotential(f, p.A, energy.WithWorkers(o.workers))
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}
	lapC, err := laplacian.Apply(f, p.Dx, p.Dy, lapOpt)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}
	twoK := 2 * p.K
	drive, err := field.Combine(mu, lapC, func(m, l float64) float64 { return m - twoK*l })
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: driving potential: %w", opStep, err)
	}
	lapDrive, err := laplacian.Apply(drive, p.Dx, p.Dy, lapOpt)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}
	rate := p.Dt * p.M
	next, err := field.Combine(f, lapDrive, func(c, l float64) float64 { return c + rate*l })
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: update: %w", opStep, err)
	}

	switch o.policy {
	case PolicyStrict:
		i, j, found, err := field.FirstOutside(next, 0, 1)
		if err != nil {
			return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
		}
		if found {
			v, _ := next.At(i, j)
			return nil, Report{}, fmt.Errorf("%s: c[%d,%d]=%g: %w", opStep, i, j, v, ErrOutOfDomain)
		}

		return next, Report{}, nil
	default:
		clipped, n, err := field.Clip(next, 0, 1)
		if err != nil {
			return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
		}

		return clipped, Report{Clamped: n}, nil
	}
}
