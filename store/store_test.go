// SPDX-License-Identifier: MIT

package store_test

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/katalvlaran/spinodal/config"
	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/initconf"
	"github.com/katalvlaran/spinodal/integrator"
	"github.com/katalvlaran/spinodal/store"
	"github.com/stretchr/testify/require"
)

var params = integrator.Params{A: 1, K: 0.5, Dx: 1, Dy: 1, M: 1, Dt: 0.01}

// runInto runs n steps of a seeded 6x6 field into a fresh sink in dir.
func runInto(t *testing.T, dir string, n int, opts ...store.Option) []integrator.Record {
	t.Helper()
	sink, err := store.NewTextSink(dir, opts...)
	require.NoError(t, err)

	it, err := integrator.New(params)
	require.NoError(t, err)
	start, err := initconf.Generate(6, 0.5, 0.05, initconf.WithSeed(7))
	require.NoError(t, err)

	var recs []integrator.Record
	tee := integrator.SinkFunc(func(rec integrator.Record) error {
		recs = append(recs, rec)
		return sink.Write(rec)
	})
	require.NoError(t, it.Run(context.Background(), start, 0, n, tee))
	require.NoError(t, sink.Close())

	return recs
}

func TestTextSink_RoundTripIsExact(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	recs := runInto(t, dir, 5)

	frames, err := store.ReadConfigurations(filepath.Join(dir, store.ConfigurationsFile))
	require.NoError(t, err)
	require.Len(t, frames, len(recs))
	for i, fr := range frames {
		require.Equal(t, recs[i].T, fr.T)
		require.Equal(t, recs[i].Field.Values(), fr.Field.Values(), "frame %d", i)
	}

	avgs, err := store.ReadAverages(filepath.Join(dir, store.AveragesFile))
	require.NoError(t, err)
	require.Len(t, avgs, len(recs))
	for i, s := range avgs {
		require.Equal(t, recs[i].Snapshot, s)
	}
}

func TestTextSink_HeaderFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	runInto(t, dir, 0)

	data, err := os.ReadFile(filepath.Join(dir, store.ConfigurationsFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	header := strings.Fields(lines[0])
	require.Len(t, header, 1+36)
	require.Equal(t, "Time", header[0])
	require.Equal(t, "c0_0", header[1])
	require.Equal(t, "c0_5", header[6])
	require.Equal(t, "c5_5", header[36])

	data, err = os.ReadFile(filepath.Join(dir, store.AveragesFile))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), store.AveragesHeader+"\n"))
}

func TestTextSink_SnapshotEvery(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	recs := runInto(t, dir, 7, store.WithSnapshotEvery(3))

	frames, err := store.ReadConfigurations(filepath.Join(dir, store.ConfigurationsFile))
	require.NoError(t, err)
	require.Len(t, frames, 3) // steps 0, 3, 6
	require.Equal(t, recs[3].T, frames[1].T)
	require.Equal(t, recs[6].Field.Values(), frames[2].Field.Values())

	avgs, err := store.ReadAverages(filepath.Join(dir, store.AveragesFile))
	require.NoError(t, err)
	require.Len(t, avgs, 8)
}

func TestTextSink_ShapeChangeAndClosed(t *testing.T) {
	t.Parallel()
	sink, err := store.NewTextSink(t.TempDir())
	require.NoError(t, err)

	a, err := field.Filled(2, 2, 0.5)
	require.NoError(t, err)
	b, err := field.Filled(3, 2, 0.5)
	require.NoError(t, err)

	require.NoError(t, sink.Write(integrator.Record{Field: a}))
	err = sink.Write(integrator.Record{Step: 1, Field: b})
	require.ErrorIs(t, err, store.ErrShapeChanged)
	require.ErrorIs(t, err, field.ErrState)
	require.ErrorIs(t, sink.Write(integrator.Record{Step: 1}), field.ErrNilField)

	require.NoError(t, sink.Flush())
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close(), "second close is a no-op")
	require.ErrorIs(t, sink.Write(integrator.Record{Field: a}), store.ErrClosed)
	require.ErrorIs(t, sink.Flush(), store.ErrClosed)
}

func TestConfigurationReader_Streams(t *testing.T) {
	t.Parallel()
	doc := "Time c0_0 c0_1 c0_2 c1_0 c1_1 c1_2\n" +
		"0 0.1 0.2 0.3 0.4 0.5 0.6\n" +
		"\n" +
		"0.5 1 1 1 0 0 0\n"
	cr, err := store.NewConfigurationReader(strings.NewReader(doc))
	require.NoError(t, err)
	rows, cols := cr.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)

	fr, err := cr.Next()
	require.NoError(t, err)
	require.Equal(t, 0.0, fr.T)
	v, err := fr.Field.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0.4, v)

	fr, err = cr.Next()
	require.NoError(t, err)
	require.Equal(t, 0.5, fr.T)

	_, err = cr.Next()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, cr.Close())
}

func TestConfigurationReader_FlatHeaderIsSquare(t *testing.T) {
	t.Parallel()
	cr, err := store.NewConfigurationReader(strings.NewReader("Time c0 c1 c2 c3\n1 0 0 1 1\n"))
	require.NoError(t, err)
	rows, cols := cr.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
}

func TestReaders_Malformed(t *testing.T) {
	t.Parallel()
	configs := []string{
		"",
		"c0_0\n",
		"Time c0 c1 c2\n",                 // not square
		"Time c0_0 c5_5\n",                // header shape lies
		"Time c0_0 c0_1\n0 0.5\n",         // short line
		"Time c0_0 c0_1\n0 0.5 half\n",    // not a number
		"Time c0_0 c0_1\n0 0.5 0.5 0.5\n", // long line
		"Time c0_0 c0_1\n0 0.5 NaN\n",     // non-finite cell
	}
	for _, doc := range configs {
		cr, err := store.NewConfigurationReader(strings.NewReader(doc))
		if err == nil {
			_, err = cr.Next()
		}
		require.Error(t, err, "%q", doc)
		require.ErrorIs(t, err, field.ErrParameter, "%q", doc)
	}

	averages := []string{
		"",
		"Time AverageConcentration\n",
		store.AveragesHeader + "\n0 0.5 0\n",
		store.AveragesHeader + "\n0 0.5 0 x\n",
		store.AveragesHeader + "\n0 NaN +Inf 1\n",
		store.AveragesHeader + "\n0 0.5 0 -Inf\n",
	}
	for _, doc := range averages {
		_, err := store.DecodeAverages(strings.NewReader(doc))
		require.ErrorIs(t, err, store.ErrMalformed, "%q", doc)
	}

	got, err := store.DecodeAverages(strings.NewReader(store.AveragesHeader + "\n0 0.5 -0.25 12\n"))
	require.NoError(t, err)
	require.Equal(t, []diagnostics.Snapshot{{T: 0, AverageConcentration: 0.5, AverageChemicalPotential: -0.25, FreeEnergy: 12}}, got)
}

func TestReaders_MissingFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := store.ReadConfigurations(filepath.Join(dir, "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = store.ReadAverages(filepath.Join(dir, "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestManifest_RoundTrip(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "run")

	p := config.Default()
	p.N = 12
	p.Seed = 42
	m := store.NewManifest(p)
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)
	require.Equal(t, "running", m.Status)

	m.Completed = 5
	m.Status = "done"
	require.NoError(t, store.WriteManifest(dir, m))

	got, err := store.ReadManifest(dir)
	require.NoError(t, err)
	require.Equal(t, m.RunID, got.RunID)
	require.True(t, m.Created.Equal(got.Created))
	require.Equal(t, p, got.Parameters)
	require.Equal(t, 5, got.Completed)
	require.Equal(t, "done", got.Status)

	require.NotEqual(t, m.RunID, store.NewManifest(p).RunID)
}

func TestManifest_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := store.ReadManifest(dir)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, store.ManifestFile), []byte("run_id: nope\n"), 0o644))
	_, err = store.ReadManifest(dir)
	require.ErrorIs(t, err, store.ErrMalformed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, store.ManifestFile), []byte("run_id: [\n"), 0o644))
	_, err = store.ReadManifest(dir)
	require.ErrorIs(t, err, store.ErrMalformed)
}

func TestWriteFloatsAreShortest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink, err := store.NewTextSink(dir)
	require.NoError(t, err)
	f, err := field.FromRows([][]float64{{0.1, 1}, {0, math.Nextafter(0.5, 1)}})
	require.NoError(t, err)
	require.NoError(t, sink.Write(integrator.Record{T: 0.25, Field: f}))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(filepath.Join(dir, store.ConfigurationsFile))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n0.25 0.1 1 0 0.5000000000000001\n")
}
