// SPDX-License-Identifier: MIT
// Package field: sentinel error set and error taxonomy.
//
// Every package of the simulator classifies its failures into exactly two
// categories, both declared here so that callers can match them uniformly:
//
//   - ErrParameter: a physical or structural parameter is outside its domain
//     (negative mobility, non-positive spacing, ragged rows, N<2, ...).
//   - ErrState: a computed field is outside the physical domain [0,1] or
//     contains non-finite values.
//
// Package-specific sentinels (laplacian.ErrSpacing, integrator.ErrTimeStep,
// ...) are built with NewParameterError / NewStateError, so errors.Is matches
// both the precise cause and its category. Do not wrap these sentinels again
// when returning them directly; at outer boundaries wrap with
// fmt.Errorf("op: %w", err).

package field

import "errors"

var (
	// ErrParameter is the category of every input-domain violation.
	ErrParameter = errors.New("invalid parameter")

	// ErrState is the category of every invalid computed field.
	ErrState = errors.New("invalid state")
)

// classified is a sentinel that carries its own message and unwraps to a category.
type classified struct {
	class error  // ErrParameter or ErrState
	msg   string // full message, already prefixed with the package name
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.class }

// NewParameterError returns a new sentinel in the ErrParameter category.
// Intended for package-level var declarations only.
func NewParameterError(msg string) error { return &classified{class: ErrParameter, msg: msg} }

// NewStateError returns a new sentinel in the ErrState category.
// Intended for package-level var declarations only.
func NewStateError(msg string) error { return &classified{class: ErrState, msg: msg} }

// Container sentinels.
var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = NewParameterError("field: dimensions must be > 0")

	// ErrNonRectangular indicates an empty or ragged [][]float64 input.
	ErrNonRectangular = NewParameterError("field: rows must be non-empty and of equal length")

	// ErrDimensionMismatch indicates incompatible shapes between operands or a
	// backing slice whose length is not rows*cols.
	ErrDimensionMismatch = NewParameterError("field: dimension mismatch")

	// ErrNilField indicates that a nil *Field was passed where a field is required.
	ErrNilField = NewParameterError("field: nil field")

	// ErrBadBounds indicates NaN/Inf clip bounds.
	ErrBadBounds = NewParameterError("field: bounds must be finite")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// At/Set MUST return this, not panic.
	ErrOutOfRange = NewParameterError("field: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = NewStateError("field: NaN or Inf encountered")
)
