// SPDX-License-Identifier: MIT

package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/integrator"
)

// File names inside a run directory.
const (
	ConfigurationsFile = "configurations.txt"
	AveragesFile       = "average_parameters.txt"
	ManifestFile       = "run.yaml"
)

// AveragesHeader is the first line of AveragesFile.
const AveragesHeader = "Time AverageConcentration AverageChem.Potential FreeEnergy"

// Sentinel errors.
var (
	// ErrMalformed indicates a trajectory file that does not follow the format.
	ErrMalformed = field.NewParameterError("store: malformed trajectory file")

	// ErrShapeChanged indicates records of different shapes written to one sink.
	ErrShapeChanged = field.NewStateError("store: field shape changed during a run")

	// ErrClosed indicates a write after Close.
	ErrClosed = errors.New("store: sink closed")
)

// Option configures a TextSink.
type Option func(*sinkOptions)

type sinkOptions struct {
	every int
}

// WithSnapshotEvery writes the field of every k-th step only (step 0 always);
// diagnostics are written for every step. k <= 0 selects 1.
func WithSnapshotEvery(k int) Option {
	return func(o *sinkOptions) {
		if k <= 0 {
			k = 1
		}
		o.every = k
	}
}

// TextSink writes records to the text files of a run directory.
// It implements integrator.Sink. Not safe for concurrent use.
type TextSink struct {
	every      int
	cfgFile    *os.File
	avgFile    *os.File
	cfg        *bufio.Writer
	avg        *bufio.Writer
	rows, cols int // 0 until the first record
	closed     bool
	scratch    []byte
}

var _ integrator.Sink = (*TextSink)(nil)

// NewTextSink creates dir if needed and truncates both trajectory files.
func NewTextSink(dir string, opts ...Option) (*TextSink, error) {
	o := sinkOptions{every: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.NewTextSink: %w", err)
	}
	cfgFile, err := os.Create(filepath.Join(dir, ConfigurationsFile))
	if err != nil {
		return nil, fmt.Errorf("store.NewTextSink: %w", err)
	}
	avgFile, err := os.Create(filepath.Join(dir, AveragesFile))
	if err != nil {
		_ = cfgFile.Close()
		return nil, fmt.Errorf("store.NewTextSink: %w", err)
	}

	s := &TextSink{
		every:   o.every,
		cfgFile: cfgFile,
		avgFile: avgFile,
		cfg:     bufio.NewWriterSize(cfgFile, 1<<16),
		avg:     bufio.NewWriter(avgFile),
	}
	if _, err = s.avg.WriteString(AveragesHeader + "\n"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("store.NewTextSink: %w", err)
	}

	return s, nil
}

// Write appends rec to the trajectory files.
func (s *TextSink) Write(rec integrator.Record) error {
	if s.closed {
		return ErrClosed
	}
	if err := field.ValidateNotNil(rec.Field); err != nil {
		return fmt.Errorf("store.Write: %w", err)
	}
	r, c := rec.Field.Shape()
	if s.rows == 0 {
		s.rows, s.cols = r, c
		if err := s.writeHeader(); err != nil {
			return err
		}
	} else if r != s.rows || c != s.cols {
		return fmt.Errorf("store.Write: %dx%d after %dx%d: %w", r, c, s.rows, s.cols, ErrShapeChanged)
	}

	if rec.Step%s.every == 0 {
		b := strconv.AppendFloat(s.scratch[:0], rec.T, 'g', -1, 64)
		for _, v := range rec.Field.Raw() {
			b = append(b, ' ')
			b = strconv.AppendFloat(b, v, 'g', -1, 64)
		}
		b = append(b, '\n')
		s.scratch = b
		if _, err := s.cfg.Write(b); err != nil {
			return fmt.Errorf("store.Write: %w", err)
		}
	}

	snap := rec.Snapshot
	b := strconv.AppendFloat(s.scratch[:0], rec.T, 'g', -1, 64)
	for _, v := range []float64{snap.AverageConcentration, snap.AverageChemicalPotential, snap.FreeEnergy} {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	b = append(b, '\n')
	s.scratch = b
	if _, err := s.avg.Write(b); err != nil {
		return fmt.Errorf("store.Write: %w", err)
	}

	return nil
}

// writeHeader writes "Time c0_0 c0_1 ...".
func (s *TextSink) writeHeader() error {
	if _, err := s.cfg.WriteString("Time"); err != nil {
		return fmt.Errorf("store.Write: header: %w", err)
	}
	for i := 0; i < s.rows; i++ {
		for j := 0; j < s.cols; j++ {
			if _, err := fmt.Fprintf(s.cfg, " c%d_%d", i, j); err != nil {
				return fmt.Errorf("store.Write: header: %w", err)
			}
		}
	}
	if err := s.cfg.WriteByte('\n'); err != nil {
		return fmt.Errorf("store.Write: header: %w", err)
	}

	return nil
}

// Flush pushes buffered lines to the files.
func (s *TextSink) Flush() error {
	if s.closed {
		return ErrClosed
	}

	return errors.Join(s.cfg.Flush(), s.avg.Flush())
}

// Close flushes and closes both files. Further writes fail with ErrClosed.
func (s *TextSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	return errors.Join(s.cfg.Flush(), s.avg.Flush(), s.cfgFile.Close(), s.avgFile.Close())
}
