// SPDX-License-Identifier: MIT
// Package field_test contains test helpers.

package field_test

import (
	"testing"

	"github.com/katalvlaran/spinodal/field"
)

// MustRows builds a field from nested slices or fails the test.
func MustRows(t *testing.T, rows [][]float64) *field.Field {
	t.Helper()
	f, err := field.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows(%v): %v", rows, err)
	}

	return f
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, f *field.Field, i, j int) float64 {
	t.Helper()
	v, err := f.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}
