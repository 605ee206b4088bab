// SPDX-License-Identifier: MIT

package integrator

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/katalvlaran/spinodal/energy"
	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
)

// Sentinel errors.
var (
	// ErrMobility indicates M < 0 or non-finite.
	ErrMobility = field.NewParameterError("integrator: mobility M must be finite and >= 0")

	// ErrTimeStep indicates dt < 0 or non-finite.
	ErrTimeStep = field.NewParameterError("integrator: time step dt must be finite and >= 0")

	// ErrIterations indicates a negative iteration count.
	ErrIterations = field.NewParameterError("integrator: iteration count must be >= 0")

	// ErrPolicy indicates an unknown domain policy name.
	ErrPolicy = field.NewParameterError("integrator: policy must be \"clamp\" or \"strict\"")

	// ErrNilSink indicates Run was called without a sink.
	ErrNilSink = field.NewParameterError("integrator: nil sink")

	// ErrOutOfDomain indicates a cell outside [0,1] under PolicyStrict, or an
	// initial field handed to Run that is already outside [0,1].
	ErrOutOfDomain = field.NewStateError("integrator: concentration outside [0,1]")
)

// Policy selects how out-of-range cells of a new field are handled.
type Policy int

const (
	// PolicyClamp silently clamps cells into [0,1] (production default).
	PolicyClamp Policy = iota

	// PolicyStrict fails the step on the first out-of-range cell.
	PolicyStrict
)

// String returns "clamp" or "strict".
func (p Policy) String() string {
	switch p {
	case PolicyClamp:
		return "clamp"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a case-insensitive name to a Policy. The empty string
// selects PolicyClamp.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return PolicyClamp, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyClamp, fmt.Errorf("%q: %w", s, ErrPolicy)
	}
}

// Params are the physical parameters of one step. Immutable for a run.
type Params struct {
	A  float64 // homogeneous free-energy coefficient, >= 0
	K  float64 // gradient-energy coefficient, >= 0
	Dx float64 // column spacing (x axis), > 0
	Dy float64 // row spacing (y axis), > 0
	M  float64 // mobility, >= 0
	Dt float64 // time step, >= 0
}

// Validate checks M and Dt first, then A, K and the spacings.
func (p Params) Validate() error {
	if !field.IsNonNegative(p.M) {
		return fmt.Errorf("M=%g: %w", p.M, ErrMobility)
	}
	if !field.IsNonNegative(p.Dt) {
		return fmt.Errorf("dt=%g: %w", p.Dt, ErrTimeStep)
	}
	if err := energy.ValidateCoefficient("A", p.A); err != nil {
		return err
	}
	if err := energy.ValidateCoefficient("k", p.K); err != nil {
		return err
	}

	return laplacian.ValidateSpacing(p.Dx, p.Dy)
}

// Report describes the domain correction applied by one step.
type Report struct {
	// Clamped is the number of cells moved back into [0,1] (always 0 under
	// PolicyStrict).
	Clamped int
}

// Record is one element of a trajectory as handed to a Sink.
//
// Field is never written after emission; a sink may retain it.
type Record struct {
	Step     int // 0 for the initial field
	T        float64
	Field    *field.Field
	Snapshot diagnostics.Snapshot
	Clamped  int
}

// Sink consumes trajectory records; a non-nil error aborts Run.
type Sink interface {
	Write(rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(rec Record) error

// Write calls fn(rec).
func (fn SinkFunc) Write(rec Record) error { return fn(rec) }
