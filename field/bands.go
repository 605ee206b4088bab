// SPDX-License-Identifier: MIT

package field

import "golang.org/x/sync/errgroup"

// RowBands splits [0, rows) into at most workers contiguous bands and calls
// fn(lo, hi) once per band, each band on its own goroutine.
//
// Behavior highlights:
//   - workers <= 1 (or a single row) runs fn(0, rows) on the caller goroutine.
//   - workers > rows is capped at rows.
//   - RowBands returns only after every band finished (errgroup.Wait is the
//     barrier), reporting the first non-nil error.
//
// Callers must make bands write disjoint cells; reads of a fully materialized
// input field are always safe.
func RowBands(rows, workers int, fn func(lo, hi int) error) error {
	if workers <= 1 || rows < 2 {
		return fn(0, rows)
	}
	if workers > rows {
		workers = rows
	}

	size := (rows + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < rows; lo += size {
		hi := min(lo+size, rows)
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}
