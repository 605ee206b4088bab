// Package field offers the concentration-field data model of the simulator.
//
// The field package provides:
//
//   - Field, a row-major N×M grid of float64 values on a periodic (toroidal)
//     topology, with bounds-checked At/Set and the always-valid AtWrap.
//   - Element-wise kernels (Map, Combine, Clip, AllClose) that return new
//     fields and never alias their inputs.
//   - The simulator-wide error taxonomy: ErrParameter for out-of-domain inputs
//     and ErrState for invalid computed fields.
//
// Every other package exchanges *Field values; nested slices enter only
// through FromRows, which rejects ragged input.
package field
