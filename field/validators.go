// SPDX-License-Identifier: MIT
// Package: field
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels in sibling packages minimal by delegating nil/shape checks here.
//   - Scalar predicates return bool so each owner attaches its own sentinel.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.

package field

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the field reference is non-nil.
// Returns ErrNilField if f == nil.
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(f *Field) error {
	if f == nil {
		return validatorErrorf("ValidateNotNil", ErrNilField)
	}

	return nil
}

// ValidateSameShape ensures both fields are non-nil and have identical shapes.
// Sequence: NotNil(a) -> NotNil(b) -> shape.
func ValidateSameShape(a, b *Field) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape",
			fmt.Errorf("%dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite scans f and reports the first NaN/Inf cell.
// Complexity: O(r*c).
func ValidateFinite(f *Field) error {
	if err := ValidateNotNil(f); err != nil {
		return err
	}
	for idx, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", fieldErrorf("At", idx/f.c, idx%f.c, ErrNaNInf))
		}
	}

	return nil
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// IsPositive reports whether v is finite and > 0.
func IsPositive(v float64) bool { return IsFinite(v) && v > 0 }

// IsNonNegative reports whether v is finite and >= 0.
func IsNonNegative(v float64) bool { return IsFinite(v) && v >= 0 }

// InUnitInterval reports whether v lies in the closed interval [0,1].
// NaN is never inside.
func InUnitInterval(v float64) bool { return v >= 0 && v <= 1 }
