// SPDX-License-Identifier: MIT

package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/spinodal/diagnostics"
	"github.com/katalvlaran/spinodal/field"
)

// maxLine bounds one trajectory line (a 1000×1000 field fits comfortably).
const maxLine = 64 << 20

// Frame is one stored field with its time.
type Frame struct {
	T     float64
	Field *field.Field
}

// ConfigurationReader streams frames from a configurations file.
type ConfigurationReader struct {
	sc         *bufio.Scanner
	closer     io.Closer
	rows, cols int
	line       int
}

// OpenConfigurations opens path and parses its header.
func OpenConfigurations(path string) (*ConfigurationReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store.OpenConfigurations: %w", err)
	}
	cr, err := NewConfigurationReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store.OpenConfigurations %s: %w", path, err)
	}
	cr.closer = f

	return cr, nil
}

// NewConfigurationReader parses the header of r. The grid shape is taken
// from the last column name "c<rows-1>_<cols-1>"; a header of bare "c<k>"
// names (one per cell) is read as a square grid.
func NewConfigurationReader(r io.Reader) (*ConfigurationReader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), maxLine)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty file: %w", ErrMalformed)
	}
	names := strings.Fields(sc.Text())
	if len(names) < 2 || names[0] != "Time" {
		return nil, fmt.Errorf("line 1: header must start with Time: %w", ErrMalformed)
	}
	rows, cols, err := headerShape(names[1:])
	if err != nil {
		return nil, fmt.Errorf("line 1: %w", err)
	}

	return &ConfigurationReader{sc: sc, rows: rows, cols: cols, line: 1}, nil
}

// headerShape derives the grid shape from the cell column names.
func headerShape(cells []string) (rows, cols int, err error) {
	last := cells[len(cells)-1]
	if i, j, ok := strings.Cut(strings.TrimPrefix(last, "c"), "_"); ok {
		r, err1 := strconv.Atoi(i)
		c, err2 := strconv.Atoi(j)
		if err1 != nil || err2 != nil || (r+1)*(c+1) != len(cells) {
			return 0, 0, fmt.Errorf("column %q does not match %d cells: %w", last, len(cells), ErrMalformed)
		}
		return r + 1, c + 1, nil
	}
	n := 1
	for n*n < len(cells) {
		n++
	}
	if n*n != len(cells) {
		return 0, 0, fmt.Errorf("%d cells do not form a square grid: %w", len(cells), ErrMalformed)
	}

	return n, n, nil
}

// Shape returns the grid shape declared by the header.
func (cr *ConfigurationReader) Shape() (rows, cols int) { return cr.rows, cr.cols }

// Next returns the next frame, or io.EOF after the last one.
func (cr *ConfigurationReader) Next() (Frame, error) {
	for cr.sc.Scan() {
		cr.line++
		text := strings.TrimSpace(cr.sc.Text())
		if text == "" {
			continue
		}
		vals, err := parseFloats(text, 1+cr.rows*cr.cols)
		if err != nil {
			return Frame{}, fmt.Errorf("line %d: %w", cr.line, err)
		}
		f, err := field.FromSlice(cr.rows, cr.cols, vals[1:])
		if err != nil {
			return Frame{}, fmt.Errorf("line %d: %v: %w", cr.line, err, ErrMalformed)
		}
		return Frame{T: vals[0], Field: f}, nil
	}
	if err := cr.sc.Err(); err != nil {
		return Frame{}, err
	}

	return Frame{}, io.EOF
}

// Close releases the underlying file, if any.
func (cr *ConfigurationReader) Close() error {
	if cr.closer == nil {
		return nil
	}

	return cr.closer.Close()
}

// ReadConfigurations loads every frame of path.
func ReadConfigurations(path string) ([]Frame, error) {
	cr, err := OpenConfigurations(path)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var frames []Frame
	for {
		fr, err := cr.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("store.ReadConfigurations %s: %w", path, err)
		}
		frames = append(frames, fr)
	}
}

// ReadAverages loads the diagnostics series of path.
func ReadAverages(path string) ([]diagnostics.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store.ReadAverages: %w", err)
	}
	defer f.Close()

	out, err := DecodeAverages(f)
	if err != nil {
		return nil, fmt.Errorf("store.ReadAverages %s: %w", path, err)
	}

	return out, nil
}

// DecodeAverages parses an averages document from r.
func DecodeAverages(r io.Reader) ([]diagnostics.Snapshot, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty file: %w", ErrMalformed)
	}
	if strings.Join(strings.Fields(sc.Text()), " ") != AveragesHeader {
		return nil, fmt.Errorf("line 1: unexpected header %q: %w", sc.Text(), ErrMalformed)
	}

	var out []diagnostics.Snapshot
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := parseFloats(text, 4)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, diagnostics.Snapshot{
			T:                        v[0],
			AverageConcentration:     v[1],
			AverageChemicalPotential: v[2],
			FreeEnergy:               v[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// parseFloats splits a whitespace-separated line into exactly want numbers.
func parseFloats(text string, want int) ([]float64, error) {
	parts := strings.Fields(text)
	if len(parts) != want {
		return nil, fmt.Errorf("%d values, want %d: %w", len(parts), want, ErrMalformed)
	}
	out := make([]float64, want)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d %q: %w", i, p, ErrMalformed)
		}
		if !field.IsFinite(v) {
			return nil, fmt.Errorf("value %d %q is not finite: %w", i, p, ErrMalformed)
		}
		out[i] = v
	}

	return out, nil
}
