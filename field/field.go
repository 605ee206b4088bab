// SPDX-License-Identifier: MIT

// Package field - row-major concentration field on a periodic grid.
//
// Purpose:
//   - Provide the single typed 2D abstraction passed between every simulator
//     component (no nested slices at component boundaries).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep the periodic topology explicit (AtWrap) so stencils never special-case edges.
//
// Layout:
//   - Rows index the y axis, columns index the x axis; offset = i*cols + j.
//
// AI-Hints:
//   - Kernels in sibling packages allocate with New and write through Raw() of
//     the field they own; they never write into an input field.
//   - Use Clone before mutating a field you did not allocate.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-init; At/Set/AtWrap: O(1); Clone/Values: O(r*c).

package field

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxApply = "Apply"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// fieldErrorf wraps a sentinel with the method name and callsite coordinates.
// Keep tags in constants for grep-ability and consistency.
func fieldErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d): %w", method, row, col, err)
}

// Field is a concrete row-major grid of float64 values with periodic topology.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - data is a flat buffer of length r*c in row-major order.
type Field struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Field)(nil)

// New creates an r×c zero field.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func New(rows, cols int) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}

	return &Field{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Filled creates an r×c field with every cell equal to v.
// v must be finite (ErrNaNInf otherwise).
func Filled(rows, cols int, v float64) (*Field, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("Filled: %w", ErrNaNInf)
	}
	f, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for idx := range f.data {
		f.data[idx] = v
	}

	return f, nil
}

// FromRows copies a rectangular [][]float64 into a new field.
// MAIN DESCRIPTION:
//   - The only ingestion path for nested slices; heterogeneous input is rejected
//     instead of being coerced.
//
// Implementation:
//   - Stage 1: reject empty input and ragged rows (ErrNonRectangular).
//   - Stage 2: reject NaN/Inf values (ErrNaNInf) with coordinates.
//   - Stage 3: copy row by row into the flat buffer.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows(rows [][]float64) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrNonRectangular)
	}
	r, c := len(rows), len(rows[0])
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrNonRectangular)
		}
	}

	f, err := New(r, c)
	if err != nil {
		return nil, err
	}
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			v := rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("FromRows(%d,%d): %w", i, j, ErrNaNInf)
			}
			f.data[base+j] = v
		}
	}

	return f, nil
}

// FromSlice copies a row-major slice of length rows*cols into a new field.
// Returns ErrDimensionMismatch when len(data) != rows*cols.
func FromSlice(rows, cols int, data []float64) (*Field, error) {
	f, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromSlice: len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	for idx, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("FromSlice(%d,%d): %w", idx/cols, idx%cols, ErrNaNInf)
		}
	}
	copy(f.data, data)

	return f, nil
}

// Rows returns the row count (y extent).
func (f *Field) Rows() int { return f.r }

// Cols returns the column count (x extent).
func (f *Field) Cols() int { return f.c }

// Shape packs Rows() and Cols() into a single call.
func (f *Field) Shape() (rows, cols int) { return f.r, f.c }

// Len returns the number of cells, rows*cols.
func (f *Field) Len() int { return len(f.data) }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (f *Field) indexOf(row, col int) (int, error) {
	if row < 0 || row >= f.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= f.c {
		return 0, ErrOutOfRange
	}

	return row*f.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range coordinates.
// Complexity: O(1).
func (f *Field) At(row, col int) (float64, error) {
	off, err := f.indexOf(row, col)
	if err != nil {
		return 0, fieldErrorf(ctxAt, row, col, err)
	}

	return f.data[off], nil
}

// AtWrap returns the value at (row mod Rows, col mod Cols).
// MAIN DESCRIPTION:
//   - Periodic accessor: the grid is a discrete 2-torus, so every integer
//     coordinate is valid. Index -1 maps to the last row/column, Rows maps to 0.
//
// Complexity:
//   - Time O(1), Space O(1).
func (f *Field) AtWrap(row, col int) float64 {
	return f.data[Wrap(row, f.r)*f.c+Wrap(col, f.c)]
}

// Wrap reduces i into [0, n) with periodic semantics (Wrap(-1, n) == n-1).
// n must be > 0.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}

	return i
}

// Set stores v at (row, col).
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values.
//
// Complexity: O(1).
func (f *Field) Set(row, col int, v float64) error {
	off, err := f.indexOf(row, col)
	if err != nil {
		return fieldErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fieldErrorf(ctxSet, row, col, ErrNaNInf)
	}
	f.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer).
// Mutations of the clone never affect the original.
// Complexity: O(r*c).
func (f *Field) Clone() *Field {
	cp := make([]float64, len(f.data))
	copy(cp, f.data)

	return &Field{r: f.r, c: f.c, data: cp}
}

// Raw returns the backing row-major buffer without copying.
// The slice aliases the field: only the owner of a freshly allocated field
// may write through it (kernels in this module do so to fill their outputs).
// Readers must not retain it past the field's lifetime.
func (f *Field) Raw() []float64 { return f.data }

// Values returns a row-major copy of all cells.
func (f *Field) Values() []float64 {
	cp := make([]float64, len(f.data))
	copy(cp, f.data)

	return cp
}

// ToRows returns the field as a freshly allocated [][]float64.
func (f *Field) ToRows() [][]float64 {
	out := make([][]float64, f.r)
	for i := 0; i < f.r; i++ {
		row := make([]float64, f.c)
		copy(row, f.data[i*f.c:(i+1)*f.c])
		out[i] = row
	}

	return out
}

// String renders rows as lines with comma-separated values.
// Intended for logs and debugging, not for hot paths.
func (f *Field) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < f.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * f.c
		for j = 0; j < f.c; j++ {
			b.WriteString(fmt.Sprintf("%g", f.data[base+j]))
			if j+1 < f.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each cell in row-major order and calls fn(i,j,v).
// Stops early when fn returns false. Read-only; no allocations.
func (f *Field) Do(fn func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < f.r; i++ {
		base = i * f.c
		for j = 0; j < f.c; j++ {
			if !fn(i, j, f.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each cell with fn(i,j,v) in place.
// MAIN DESCRIPTION:
//   - In-place map with finite-value enforcement and deterministic order.
//
// Behavior highlights:
//   - Early error aborts; cells written before the error remain updated.
//     For all-or-nothing semantics, apply to a Clone and swap on success.
//
// Errors:
//   - ErrNaNInf when fn produced a non-finite value.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (f *Field) Apply(fn func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < f.r; i++ {
		base = i * f.c
		for j = 0; j < f.c; j++ {
			nv = fn(i, j, f.data[base+j])
			if math.IsNaN(nv) || math.IsInf(nv, 0) {
				return fieldErrorf(ctxApply, i, j, ErrNaNInf)
			}
			f.data[base+j] = nv
		}
	}

	return nil
}
