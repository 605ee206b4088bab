// Package field_test contains unit tests for the Field container.
package field_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/spinodal/field"
	"github.com/stretchr/testify/require"
)

// TestNewInvalidDimensions ensures that New rejects non-positive dimensions.
func TestNewInvalidDimensions(t *testing.T) {
	_, err := field.New(0, 5)
	require.ErrorIs(t, err, field.ErrInvalidDimensions)
	require.ErrorIs(t, err, field.ErrParameter) // taxonomy category

	_, err = field.New(5, -1)
	require.ErrorIs(t, err, field.ErrInvalidDimensions)
}

// TestRowsColsShape verifies dimension accessors.
func TestRowsColsShape(t *testing.T) {
	f, err := field.New(3, 4)
	require.NoError(t, err)

	require.Equal(t, 3, f.Rows())
	require.Equal(t, 4, f.Cols())
	r, c := f.Shape()
	require.Equal(t, [2]int{3, 4}, [2]int{r, c})
	require.Equal(t, 12, f.Len())
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	f, err := field.New(2, 2)
	require.NoError(t, err)

	_, err = f.At(-1, 0)
	require.ErrorIs(t, err, field.ErrOutOfRange)

	_, err = f.At(0, 2)
	require.ErrorIs(t, err, field.ErrOutOfRange)

	err = f.Set(2, 0, 1.23)
	require.ErrorIs(t, err, field.ErrOutOfRange)

	err = f.Set(0, -1, 4.56)
	require.ErrorIs(t, err, field.ErrOutOfRange)
}

// TestSetRejectsNonFinite checks the finite-value policy of Set.
func TestSetRejectsNonFinite(t *testing.T) {
	f, err := field.New(2, 2)
	require.NoError(t, err)

	require.ErrorIs(t, f.Set(0, 0, math.NaN()), field.ErrNaNInf)
	require.ErrorIs(t, f.Set(0, 0, math.Inf(-1)), field.ErrNaNInf)
	require.ErrorIs(t, f.Set(0, 0, math.Inf(1)), field.ErrState)
	require.NoError(t, f.Set(1, 1, 0.25))
	require.Equal(t, 0.25, MustAt(t, f, 1, 1))
}

// TestAtWrapPeriodic verifies torus indexing on both axes.
func TestAtWrapPeriodic(t *testing.T) {
	f := MustRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})

	require.Equal(t, 3.0, f.AtWrap(0, -1)) // left of (0,0) is (0,2)
	require.Equal(t, 1.0, f.AtWrap(0, 3))  // right of (0,2) is (0,0)
	require.Equal(t, 4.0, f.AtWrap(-1, 0)) // above (0,0) is (1,0)
	require.Equal(t, 2.0, f.AtWrap(2, 1))  // below (1,1) is (0,1)
	require.Equal(t, 6.0, f.AtWrap(-3, -4))
}

// TestWrap checks modulo reduction including large negatives.
func TestWrap(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 3, 0}, {3, 3, 0}, {-1, 3, 2}, {-3, 3, 0}, {-7, 3, 2}, {8, 5, 3},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, field.Wrap(tc.i, tc.n), "Wrap(%d,%d)", tc.i, tc.n)
	}
}

// TestFromRowsRejectsRagged checks heterogeneous input shapes are refused.
func TestFromRowsRejectsRagged(t *testing.T) {
	_, err := field.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, field.ErrNonRectangular)
	require.ErrorIs(t, err, field.ErrParameter)

	_, err = field.FromRows(nil)
	require.ErrorIs(t, err, field.ErrNonRectangular)

	_, err = field.FromRows([][]float64{{}})
	require.ErrorIs(t, err, field.ErrNonRectangular)

	_, err = field.FromRows([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, field.ErrNaNInf)
}

// TestFromSlice checks length validation and copying.
func TestFromSlice(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	f, err := field.FromSlice(2, 3, src)
	require.NoError(t, err)
	require.Equal(t, 6.0, MustAt(t, f, 1, 2))

	src[0] = 42 // the field owns a copy
	require.Equal(t, 1.0, MustAt(t, f, 0, 0))

	_, err = field.FromSlice(2, 2, src)
	require.ErrorIs(t, err, field.ErrDimensionMismatch)
}

// TestFilled checks constant construction.
func TestFilled(t *testing.T) {
	f, err := field.Filled(3, 3, 0.5)
	require.NoError(t, err)
	f.Do(func(i, j int, v float64) bool {
		require.Equal(t, 0.5, v)
		return true
	})

	_, err = field.Filled(2, 2, math.NaN())
	require.ErrorIs(t, err, field.ErrNaNInf)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	f := MustRows(t, [][]float64{{1, 0}, {0, 2}})
	clone := f.Clone()
	require.NoError(t, clone.Set(0, 0, 3))

	require.Equal(t, 1.0, MustAt(t, f, 0, 0))
	require.Equal(t, 3.0, MustAt(t, clone, 0, 0))
}

// TestValuesAndToRowsAreCopies ensures exported views never alias the buffer.
func TestValuesAndToRowsAreCopies(t *testing.T) {
	f := MustRows(t, [][]float64{{1, 2}, {3, 4}})

	vals := f.Values()
	vals[0] = 99
	rows := f.ToRows()
	rows[1][1] = 99

	require.Equal(t, []float64{1, 2, 3, 4}, f.Values())
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, f.ToRows())
}

// TestDoEarlyStop verifies visiting order and early termination.
func TestDoEarlyStop(t *testing.T) {
	f := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	var seen []float64
	f.Do(func(_, _ int, v float64) bool {
		seen = append(seen, v)
		return v < 3
	})
	require.Equal(t, []float64{1, 2, 3}, seen)
}

// TestApplyRejectsNonFinite checks in-place mapping and its numeric guard.
func TestApplyRejectsNonFinite(t *testing.T) {
	f := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, f.Apply(func(i, j int, v float64) float64 { return v * 2 }))
	require.Equal(t, []float64{2, 4, 6, 8}, f.Values())

	err := f.Apply(func(i, j int, v float64) float64 { return math.Log(v - 5) })
	require.True(t, errors.Is(err, field.ErrNaNInf), "got %v", err)
}

// TestStringOutput checks that String() formats the field as expected.
func TestStringOutput(t *testing.T) {
	f := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", f.String())
}
