// SPDX-License-Identifier: MIT
// Package: field
//
// Purpose:
//   - Element-wise kernels shared by the simulator (map, combine, clip, compare)
//     and whole-field reductions (sum, mean, extrema).
//   - Every kernel returns a NEW field; inputs are never written.
//
// Determinism & Performance:
//   - Fixed flat 0..n-1 loop order over the row-major buffer.
//   - Reductions delegate to gonum/floats.

package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping.
const (
	opMap      = "Map"
	opCombine  = "Combine"
	opClip     = "Clip"
	opAllClose = "AllClose"
	opOutside  = "FirstOutside"
)

// Map returns out[i,j] = fn(f[i,j]).
// Errors: ErrNilField; ErrNaNInf when fn produces a non-finite value.
// Time: O(r*c). Space: O(r*c).
func Map(f *Field, fn func(v float64) float64) (*Field, error) {
	if err := ValidateNotNil(f); err != nil {
		return nil, fmt.Errorf("%s: %w", opMap, err)
	}
	out := &Field{r: f.r, c: f.c, data: make([]float64, len(f.data))}
	for idx, v := range f.data {
		nv := fn(v)
		if math.IsNaN(nv) || math.IsInf(nv, 0) {
			return nil, fmt.Errorf("%s: %w", opMap, fieldErrorf(ctxAt, idx/f.c, idx%f.c, ErrNaNInf))
		}
		out.data[idx] = nv
	}

	return out, nil
}

// Combine returns out[i,j] = fn(a[i,j], b[i,j]) for same-shape fields.
// Errors: ErrNilField, ErrDimensionMismatch, ErrNaNInf.
// Time: O(r*c). Space: O(r*c).
func Combine(a, b *Field, fn func(x, y float64) float64) (*Field, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opCombine, err)
	}
	out := &Field{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for idx := range a.data {
		nv := fn(a.data[idx], b.data[idx])
		if math.IsNaN(nv) || math.IsInf(nv, 0) {
			return nil, fmt.Errorf("%s: %w", opCombine, fieldErrorf(ctxAt, idx/a.c, idx%a.c, ErrNaNInf))
		}
		out.data[idx] = nv
	}

	return out, nil
}

// Clip returns a copy of f with cells clamped into [lo, hi] and the number of
// cells that were changed.
//
//	out[i,j] = min(max(f[i,j], lo), hi)
//
// Policy: if lo > hi, bounds are swapped. NaN/Inf bounds are rejected with
// ErrBadBounds. NaN cells are left untouched (callers that need finiteness
// check it first with ValidateFinite).
//
// Time: O(r*c). Space: O(r*c). Deterministic.
func Clip(f *Field, lo, hi float64) (*Field, int, error) {
	if err := ValidateNotNil(f); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opClip, err)
	}
	if !IsFinite(lo) || !IsFinite(hi) {
		return nil, 0, fmt.Errorf("%s: %w", opClip, ErrBadBounds)
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	out := &Field{r: f.r, c: f.c, data: make([]float64, len(f.data))}
	clipped := 0
	for idx, v := range f.data {
		if v < lo {
			v = lo
			clipped++
		} else if v > hi {
			v = hi
			clipped++
		}
		out.data[idx] = v
	}

	return out, clipped, nil
}

// FirstOutside returns the first cell (row-major order) whose value is not in
// [lo, hi]; NaN counts as outside. found is false when every cell is inside.
func FirstOutside(f *Field, lo, hi float64) (row, col int, found bool, err error) {
	if err = ValidateNotNil(f); err != nil {
		return 0, 0, false, fmt.Errorf("%s: %w", opOutside, err)
	}
	for idx, v := range f.data {
		if !(v >= lo && v <= hi) {
			return idx / f.c, idx % f.c, true, nil
		}
	}

	return 0, 0, false, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all cells satisfy the relation; (false,nil) otherwise.
// NaN never compares close. rtol, atol are treated as |rtol|, |atol|.
// Time: O(r*c). Space: O(1).
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests.
func AllClose(a, b *Field, rtol, atol float64) (bool, error) {
	if !IsFinite(rtol) || !IsFinite(atol) {
		return false, fmt.Errorf("%s: %w", opAllClose, ErrBadBounds)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateSameShape(a, b); err != nil {
		return false, fmt.Errorf("%s: %w", opAllClose, err)
	}
	for idx := range a.data {
		if !(math.Abs(a.data[idx]-b.data[idx]) <= atol+rtol*math.Abs(b.data[idx])) {
			return false, nil
		}
	}

	return true, nil
}

// Sum returns Σ f[i,j]. A nil field sums to 0.
func Sum(f *Field) float64 {
	if f == nil {
		return 0
	}

	return floats.Sum(f.data)
}

// Mean returns the arithmetic mean of all cells (ErrNilField on nil).
func Mean(f *Field) (float64, error) {
	if err := ValidateNotNil(f); err != nil {
		return 0, fmt.Errorf("Mean: %w", err)
	}

	return floats.Sum(f.data) / float64(len(f.data)), nil
}

// Extrema returns the minimum and maximum cell values.
func Extrema(f *Field) (lo, hi float64, err error) {
	if err = ValidateNotNil(f); err != nil {
		return 0, 0, fmt.Errorf("Extrema: %w", err)
	}

	return floats.Min(f.data), floats.Max(f.data), nil
}
