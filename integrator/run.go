// SPDX-License-Identifier: MIT

package integrator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/katalvlaran/spinodal/field"
)

const opRun = "integrator.Run"

// Integrator binds validated Params and Options for repeated stepping.
type Integrator struct {
	p    Params
	opts Options
}

// New validates p and returns an Integrator.
// Errors: the parameter errors of Params.Validate.
func New(p Params, opts ...Option) (*Integrator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("integrator.New: %w", err)
	}

	return &Integrator{p: p, opts: gatherOptions(opts...)}, nil
}

// Params returns the bound parameters.
func (it *Integrator) Params() Params { return it.p }

// Policy returns the bound domain policy.
func (it *Integrator) Policy() Policy { return it.opts.policy }

// Step advances f by one time step with the bound parameters.
func (it *Integrator) Step(f *field.Field) (*field.Field, Report, error) {
	if err := field.ValidateNotNil(f); err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", opStep, err)
	}

	return step(f, it.p, it.opts)
}

// Snapshot computes the diagnostics of f at time t with the bound parameters.
func (it *Integrator) Snapshot(t float64, f *field.Field) (diagnostics.Snapshot, error) {
	return diagnostics.Compute(t, f, it.p.A, it.p.K, it.p.Dx, it.p.Dy)
}

// Run integrates n steps starting from initial at time t0.
// MAIN DESCRIPTION:
//   - Emits Record{Step: 0, T: t0} for the initial field, then one record per
//     step i = 1..n with T = t0 + i·dt.
//   - Only the current field is held; the trajectory lives in the sink.
//
// Implementation:
//   - Stage 1: validate n >= 0, sink != nil, initial finite and inside [0,1].
//   - Stage 2: emit the initial record.
//   - Stage 3: per step: check ctx, Step, compute diagnostics, emit.
//
// Behavior highlights:
//   - Any error is fatal: the run stops at the failing step and returns the
//     error annotated with the step index. No step is skipped.
//   - ctx is checked between steps only; a step is never interrupted.
//
// Errors:
//   - ErrIterations, ErrNilSink, field.ErrNilField (field.ErrParameter).
//   - ErrOutOfDomain, field.ErrNaNInf (field.ErrState).
//   - ctx.Err(), and any sink error, wrapped.
func (it *Integrator) Run(ctx context.Context, initial *field.Field, t0 float64, n int, sink Sink) error {
	if n < 0 {
		return fmt.Errorf("%s: n=%d: %w", opRun, n, ErrIterations)
	}
	if sink == nil {
		return fmt.Errorf("%s: %w", opRun, ErrNilSink)
	}
	if err := field.ValidateFinite(initial); err != nil {
		return fmt.Errorf("%s: initial field: %w", opRun, err)
	}
	if i, j, found, _ := field.FirstOutside(initial, 0, 1); found {
		v, _ := initial.At(i, j)
		return fmt.Errorf("%s: initial field c[%d,%d]=%g: %w", opRun, i, j, v, ErrOutOfDomain)
	}

	snap, err := it.Snapshot(t0, initial)
	if err != nil {
		return fmt.Errorf("%s: step 0: %w", opRun, err)
	}
	if err = sink.Write(Record{Step: 0, T: t0, Field: initial, Snapshot: snap}); err != nil {
		return fmt.Errorf("%s: step 0: sink: %w", opRun, err)
	}

	cur := initial
	var rep Report
	for i := 1; i <= n; i++ {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("%s: stopped before step %d: %w", opRun, i, err)
		}
		t := t0 + float64(i)*it.p.Dt
		if cur, rep, err = step(cur, it.p, it.opts); err != nil {
			return fmt.Errorf("%s: step %d (t=%g): %w", opRun, i, t, err)
		}
		if snap, err = it.Snapshot(t, cur); err != nil {
			return fmt.Errorf("%s: step %d: %w", opRun, i, err)
		}
		rec := Record{Step: i, T: t, Field: cur, Snapshot: snap, Clamped: rep.Clamped}
		if err = sink.Write(rec); err != nil {
			return fmt.Errorf("%s: step %d: sink: %w", opRun, i, err)
		}
	}

	return nil
}
