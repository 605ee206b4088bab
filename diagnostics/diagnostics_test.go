package diagnostics_test

import (
	"testing"

	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/katalvlaran/spinodal/energy"
	"github.com/katalvlaran/spinodal/field"
	"github.com/stretchr/testify/require"
)

func rows(t *testing.T, r [][]float64) *field.Field {
	t.Helper()
	f, err := field.FromRows(r)
	require.NoError(t, err)

	return f
}

func TestAverageChemicalPotentialAndConcentration(t *testing.T) {
	mu := rows(t, [][]float64{{2, 4}, {4, 2}})
	c := rows(t, [][]float64{{0.1, 0.3}, {0.3, 0.1}})

	avgMu, avgC, err := diagnostics.AverageChemicalPotentialAndConcentration(mu, c)
	require.NoError(t, err)
	require.InDelta(t, 3.0, avgMu, 1e-8)
	require.InDelta(t, 0.2, avgC, 1e-8)
}

func TestAverageChemicalPotentialAndConcentration_ShapeMismatch(t *testing.T) {
	mu := rows(t, [][]float64{{2, 4}, {4, 2}})
	c := rows(t, [][]float64{{0.1, 0.3, 0.5}})

	_, _, err := diagnostics.AverageChemicalPotentialAndConcentration(mu, c)
	require.ErrorIs(t, err, diagnostics.ErrShapeMismatch)
	require.ErrorIs(t, err, field.ErrParameter)

	_, _, err = diagnostics.AverageChemicalPotentialAndConcentration(nil, c)
	require.ErrorIs(t, err, field.ErrNilField)
}

func TestAverage(t *testing.T) {
	avg, err := diagnostics.Average(rows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, err)
	require.Equal(t, 3.5, avg)

	f := rows(t, [][]float64{{0.1, 0.7}, {0.3, 0.9}})
	avg, err = diagnostics.Average(f)
	require.NoError(t, err)
	mean, err := field.Mean(f)
	require.NoError(t, err)
	require.Equal(t, mean, avg)

	_, err = diagnostics.Average(nil)
	require.ErrorIs(t, err, field.ErrNilField)
}

func TestCompute(t *testing.T) {
	f := rows(t, [][]float64{{1, 0}, {0, 1}})
	s, err := diagnostics.Compute(0.25, f, 1, 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, diagnostics.Snapshot{
		T:                        0.25,
		AverageConcentration:     0.5,
		AverageChemicalPotential: 0,
		FreeEnergy:               8,
	}, s)

	_, err = diagnostics.Compute(0, f, -1, 1, 1, 1)
	require.ErrorIs(t, err, energy.ErrCoefficient)
}
