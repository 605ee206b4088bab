// SPDX-License-Identifier: MIT

// Package config is the configuration surface of a simulation run:
// SimulationParameters with documented defaults, YAML loading and saving,
// command-line overrides, up-front validation and the advisory stability
// bound of the explicit scheme.
//
// Precedence: Default() < YAML file < explicitly set flags.
//
// Components still validate their own inputs; Validate only gathers those
// checks so a command can refuse a bad configuration before any work starts.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/initconf"
	"github.com/katalvlaran/spinodal/integrator"
	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	// ErrNonIntegerGridSize indicates a fractional grid size N.
	ErrNonIntegerGridSize = field.NewParameterError("config: grid size n must be an integer")

	// ErrNonIntegerIterations indicates a fractional iteration count.
	ErrNonIntegerIterations = field.NewParameterError("config: n_iterations must be an integer")

	// ErrWorkers indicates a negative worker count.
	ErrWorkers = field.NewParameterError("config: workers must be >= 0")

	// ErrSnapshotEvery indicates a negative snapshot stride.
	ErrSnapshotEvery = field.NewParameterError("config: snapshot_every must be >= 0")

	// ErrDecode indicates a malformed configuration document or flag value.
	ErrDecode = field.NewParameterError("config: malformed configuration")
)

// Defaults of a run.
const (
	DefaultN             = 100
	DefaultDx            = 1.0
	DefaultDy            = 1.0
	DefaultMobility      = 1.0
	DefaultGradientCoeff = 0.5
	DefaultA             = 1.0
	DefaultC0            = 0.5
	DefaultCNoise        = 0.02
	DefaultT0            = 0.0
	DefaultDt            = 0.01
	DefaultIterations    = 5000
	DefaultPolicy        = "clamp"
	DefaultWorkers       = 1
	DefaultSnapshotEvery = 1
)

// Parameters are the simulation parameters of one run (SimulationParameters).
// Pass by value; a run never changes them.
type Parameters struct {
	N             int     `yaml:"n"`              // grid side, >= 2
	Dx            float64 `yaml:"dx"`             // column spacing, > 0
	Dy            float64 `yaml:"dy"`             // row spacing, > 0
	M             float64 `yaml:"mobility"`       // >= 0
	A             float64 `yaml:"a"`              // double-well coefficient, >= 0
	K             float64 `yaml:"k"`              // gradient coefficient, >= 0
	C0            float64 `yaml:"c0"`             // in [0,1]
	CNoise        float64 `yaml:"c_noise"`        // in [0,1]
	T0            float64 `yaml:"t0"`             // start time
	Dt            float64 `yaml:"dt"`             // >= 0
	Iterations    int     `yaml:"n_iterations"`   // >= 0
	Seed          int64   `yaml:"seed"`           // 0 ⇒ initconf.DefaultSeed
	Policy        string  `yaml:"policy"`         // "clamp" | "strict"
	Workers       int     `yaml:"workers"`        // 0 ⇒ GOMAXPROCS
	SnapshotEvery int     `yaml:"snapshot_every"` // field written every k steps; 0 ⇒ 1
}

// Default returns the reference run: a 100×100 symmetric mixture.
func Default() Parameters {
	return Parameters{
		N:             DefaultN,
		Dx:            DefaultDx,
		Dy:            DefaultDy,
		M:             DefaultMobility,
		A:             DefaultA,
		K:             DefaultGradientCoeff,
		C0:            DefaultC0,
		CNoise:        DefaultCNoise,
		T0:            DefaultT0,
		Dt:            DefaultDt,
		Iterations:    DefaultIterations,
		Seed:          initconf.DefaultSeed,
		Policy:        DefaultPolicy,
		Workers:       DefaultWorkers,
		SnapshotEvery: DefaultSnapshotEvery,
	}
}

// document mirrors Parameters with float integer fields so fractional values
// are reported as ErrNonInteger* instead of a generic decode failure.
type document struct {
	N             float64 `yaml:"n"`
	Dx            float64 `yaml:"dx"`
	Dy            float64 `yaml:"dy"`
	M             float64 `yaml:"mobility"`
	A             float64 `yaml:"a"`
	K             float64 `yaml:"k"`
	C0            float64 `yaml:"c0"`
	CNoise        float64 `yaml:"c_noise"`
	T0            float64 `yaml:"t0"`
	Dt            float64 `yaml:"dt"`
	Iterations    float64 `yaml:"n_iterations"`
	Seed          int64   `yaml:"seed"`
	Policy        string  `yaml:"policy"`
	Workers       int     `yaml:"workers"`
	SnapshotEvery int     `yaml:"snapshot_every"`
}

// Load reads a YAML document over Default(). Unknown keys are rejected.
func Load(path string) (Parameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("config.Load: %w", err)
	}
	p, err := Decode(bytes.NewReader(raw), Default())
	if err != nil {
		return Parameters{}, fmt.Errorf("config.Load %s: %w", path, err)
	}

	return p, nil
}

// Decode reads a YAML document from r; keys absent from the document keep
// their value in base. An empty document returns base unchanged.
func Decode(r io.Reader, base Parameters) (Parameters, error) {
	doc := document{
		N: float64(base.N), Dx: base.Dx, Dy: base.Dy, M: base.M, A: base.A, K: base.K,
		C0: base.C0, CNoise: base.CNoise, T0: base.T0, Dt: base.Dt,
		Iterations: float64(base.Iterations), Seed: base.Seed, Policy: base.Policy,
		Workers: base.Workers, SnapshotEvery: base.SnapshotEvery,
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Parameters{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	n, err := integral(doc.N, ErrNonIntegerGridSize)
	if err != nil {
		return Parameters{}, err
	}
	iters, err := integral(doc.Iterations, ErrNonIntegerIterations)
	if err != nil {
		return Parameters{}, err
	}

	return Parameters{
		N: n, Dx: doc.Dx, Dy: doc.Dy, M: doc.M, A: doc.A, K: doc.K,
		C0: doc.C0, CNoise: doc.CNoise, T0: doc.T0, Dt: doc.Dt,
		Iterations: iters, Seed: doc.Seed, Policy: doc.Policy,
		Workers: doc.Workers, SnapshotEvery: doc.SnapshotEvery,
	}, nil
}

// integral converts v to int or returns sentinel when v is fractional or non-finite.
func integral(v float64, sentinel error) (int, error) {
	if !field.IsFinite(v) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%g: %w", v, sentinel)
	}

	return int(v), nil
}

// Encode writes p as a YAML document.
func (p Parameters) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("config.Encode: %w", err)
	}

	return enc.Close()
}

// Save writes p to path as YAML (0644).
func (p Parameters) Save(path string) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}

	return nil
}

// Validate runs every component's domain check in the order a run would hit them.
//
// Errors: initconf.ErrGridSize, initconf.ErrConcentration, initconf.ErrNoise,
// integrator.ErrMobility, integrator.ErrTimeStep, energy.ErrCoefficient,
// laplacian.ErrSpacing, integrator.ErrIterations, integrator.ErrPolicy,
// ErrWorkers, ErrSnapshotEvery; all are field.ErrParameter.
func (p Parameters) Validate() error {
	const op = "config.Validate"
	if p.N < 2 {
		return fmt.Errorf("%s: n=%d: %w", op, p.N, initconf.ErrGridSize)
	}
	if !field.InUnitInterval(p.C0) {
		return fmt.Errorf("%s: c0=%g: %w", op, p.C0, initconf.ErrConcentration)
	}
	if !field.InUnitInterval(p.CNoise) {
		return fmt.Errorf("%s: c_noise=%g: %w", op, p.CNoise, initconf.ErrNoise)
	}
	if err := p.IntegratorParams().Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%s: n_iterations=%d: %w", op, p.Iterations, integrator.ErrIterations)
	}
	if _, err := integrator.ParsePolicy(p.Policy); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%s: workers=%d: %w", op, p.Workers, ErrWorkers)
	}
	if p.SnapshotEvery < 0 {
		return fmt.Errorf("%s: snapshot_every=%d: %w", op, p.SnapshotEvery, ErrSnapshotEvery)
	}

	return nil
}

// IntegratorParams extracts the physical step parameters.
func (p Parameters) IntegratorParams() integrator.Params {
	return integrator.Params{A: p.A, K: p.K, Dx: p.Dx, Dy: p.Dy, M: p.M, Dt: p.Dt}
}

// IntegratorOptions maps Policy and Workers to integrator options.
func (p Parameters) IntegratorOptions() ([]integrator.Option, error) {
	pol, err := integrator.ParsePolicy(p.Policy)
	if err != nil {
		return nil, err
	}
	if p.Workers < 0 {
		return nil, fmt.Errorf("workers=%d: %w", p.Workers, ErrWorkers)
	}

	return []integrator.Option{integrator.WithPolicy(pol), integrator.WithWorkers(p.Workers)}, nil
}

// InitialOptions maps Seed to generator options.
func (p Parameters) InitialOptions() []initconf.Option {
	return []initconf.Option{initconf.WithSeed(p.Seed)}
}

// StabilityLimit returns an advisory upper bound on dt for the explicit scheme,
//
//	dt ≤ 2 / (M·λ·(2A + 2k·λ)),  λ = 4/dx² + 4/dy²
//
// where λ is the largest eigenvalue of the negated periodic Laplacian and 2A
// the largest curvature of the double well. The bound is a linearisation: it
// guides the choice of dt and is never enforced. Returns +Inf when M, or both
// A and k, are zero, and NaN for invalid spacings.
func StabilityLimit(p integrator.Params) float64 {
	if !field.IsPositive(p.Dx) || !field.IsPositive(p.Dy) {
		return math.NaN()
	}
	lmax := 4/(p.Dx*p.Dx) + 4/(p.Dy*p.Dy)
	denom := p.M * lmax * (2*p.A + 2*p.K*lmax)
	if !(denom > 0) {
		return math.Inf(1)
	}

	return 2 / denom
}
