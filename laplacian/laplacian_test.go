// SPDX-License-Identifier: MIT

package laplacian_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomField fills an r×c field with deterministic uniform values in [0,1).
func randomField(t testing.TB, r, c int, seed int64) *field.Field {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()
	}
	f, err := field.FromSlice(r, c, vals)
	require.NoError(t, err)

	return f
}

func TestApply_ConstantFieldIsZero(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		n      int
		c      float64
		dx, dy float64
	}{
		{"2x2 unit", 2, 0.5, 1, 1},
		{"5x5 anisotropic", 5, 0.3, 0.25, 2},
		{"16x16 one", 16, 1, 0.7, 0.7},
		{"3x3 zero", 3, 0, 3, 1e-3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := field.Filled(tc.n, tc.n, tc.c)
			require.NoError(t, err)

			lap, err := laplacian.Apply(f, tc.dx, tc.dy)
			require.NoError(t, err)
			for _, v := range lap.Values() {
				require.Equal(t, 0.0, v)
			}
		})
	}
}

func TestApply_ReferenceGrid(t *testing.T) {
	t.Parallel()

	f, err := field.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(t, err)

	lap, err := laplacian.Apply(f, 1, 1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{12, 9, 6},
		{3, 0, -3},
		{-6, -9, -12},
	}, lap.ToRows())
	require.Equal(t, 0.0, field.Sum(lap))
}

func TestApply_AxisOrientation(t *testing.T) {
	t.Parallel()

	// Variation only along a row (x axis): dy must not matter.
	f, err := field.FromRows([][]float64{{0, 1, 0, 1}, {0, 1, 0, 1}})
	require.NoError(t, err)

	a, err := laplacian.Apply(f, 1, 1)
	require.NoError(t, err)
	b, err := laplacian.Apply(f, 1, 100)
	require.NoError(t, err)
	require.Equal(t, a.Values(), b.Values())
	require.Equal(t, []float64{2, -2, 2, -2, 2, -2, 2, -2}, a.Values())

	// Halving dx quadruples the x contribution.
	c, err := laplacian.Apply(f, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 8.0, c.Values()[0])
}

func TestApply_SumsToZero(t *testing.T) {
	t.Parallel()

	f := randomField(t, 17, 23, 42)
	lap, err := laplacian.Apply(f, 0.8, 1.3)
	require.NoError(t, err)
	require.InDelta(t, 0, field.Sum(lap), 1e-9)
}

func TestApply_Linear(t *testing.T) {
	t.Parallel()

	a := randomField(t, 8, 8, 1)
	b := randomField(t, 8, 8, 2)
	const alpha = -2.5

	mix, err := field.Combine(a, b, func(x, y float64) float64 { return alpha*x + y })
	require.NoError(t, err)

	lapMix, err := laplacian.Apply(mix, 1, 0.5)
	require.NoError(t, err)
	lapA, err := laplacian.Apply(a, 1, 0.5)
	require.NoError(t, err)
	lapB, err := laplacian.Apply(b, 1, 0.5)
	require.NoError(t, err)

	want, err := field.Combine(lapA, lapB, func(x, y float64) float64 { return alpha*x + y })
	require.NoError(t, err)

	ok, err := field.AllClose(lapMix, want, 1e-12, 1e-10)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	f := randomField(t, 4, 4, 7)
	before := f.Values()
	lap, err := laplacian.Apply(f, 1, 1)
	require.NoError(t, err)

	require.Equal(t, before, f.Values())
	require.NoError(t, lap.Set(0, 0, 123))
	require.Equal(t, before, f.Values())
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	f, err := field.Filled(3, 3, 0.5)
	require.NoError(t, err)

	for _, sp := range [][2]float64{{0, 1}, {1, 0}, {-1, 1}, {1, math.NaN()}, {math.Inf(1), 1}} {
		_, err = laplacian.Apply(f, sp[0], sp[1])
		require.ErrorIs(t, err, laplacian.ErrSpacing, "dx=%g dy=%g", sp[0], sp[1])
		require.ErrorIs(t, err, field.ErrParameter)
	}

	_, err = laplacian.Apply(nil, 1, 1)
	require.ErrorIs(t, err, field.ErrNilField)
}

func TestApply_WorkersBitIdentical(t *testing.T) {
	t.Parallel()

	f := randomField(t, 33, 29, 99)
	serial, err := laplacian.Apply(f, 0.9, 1.1)
	require.NoError(t, err)

	for _, w := range []int{0, 2, 3, 8, 64} {
		par, err := laplacian.Apply(f, 0.9, 1.1, laplacian.WithWorkers(w))
		require.NoError(t, err)
		require.Equal(t, serial.Values(), par.Values(), "workers=%d", w)
	}
}

func TestWithWorkers_PanicsOnNegative(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { laplacian.WithWorkers(-1) })
}

func TestBackwardDiffSquares(t *testing.T) {
	t.Parallel()

	f, err := field.FromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	sx, sy, err := laplacian.BackwardDiffSquares(f)
	require.NoError(t, err)
	require.Equal(t, 4.0, sx)
	require.Equal(t, 4.0, sy)

	// Only x varies: sy is zero.
	g, err := field.FromRows([][]float64{{0, 1, 3}, {0, 1, 3}})
	require.NoError(t, err)
	sx, sy, err = laplacian.BackwardDiffSquares(g)
	require.NoError(t, err)
	require.Equal(t, 2*(9.0+1+4), sx) // (0-3)² + (1-0)² + (3-1)² per row
	require.Equal(t, 0.0, sy)

	_, _, err = laplacian.BackwardDiffSquares(nil)
	require.ErrorIs(t, err, field.ErrNilField)
}
