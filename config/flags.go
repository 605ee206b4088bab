// SPDX-License-Identifier: MIT

package config

import (
	"flag"
	"fmt"
	"strconv"
)

// flagSpec binds one command-line flag to one Parameters field.
type flagSpec struct {
	name  string
	usage string
	get   func(p Parameters) string
	set   func(p *Parameters, s string) error
}

func floatFlag(name, usage string, ref func(p *Parameters) *float64) flagSpec {
	return flagSpec{
		name:  name,
		usage: usage,
		get: func(p Parameters) string {
			return strconv.FormatFloat(*ref(&p), 'g', -1, 64)
		},
		set: func(p *Parameters, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("-%s=%q: %w", name, s, ErrDecode)
			}
			*ref(p) = v
			return nil
		},
	}
}

// countFlag accepts "10", "1e3" and "10.0" but rejects fractional values with sentinel.
func countFlag(name, usage string, sentinel error, ref func(p *Parameters) *int) flagSpec {
	return flagSpec{
		name:  name,
		usage: usage,
		get:   func(p Parameters) string { return strconv.Itoa(*ref(&p)) },
		set: func(p *Parameters, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("-%s=%q: %w", name, s, ErrDecode)
			}
			n, err := integral(v, sentinel)
			if err != nil {
				return fmt.Errorf("-%s: %w", name, err)
			}
			*ref(p) = n
			return nil
		},
	}
}

var flagSpecs = []flagSpec{
	countFlag("n", "grid side N (cells per axis, >= 2)", ErrNonIntegerGridSize,
		func(p *Parameters) *int { return &p.N }),
	floatFlag("dx", "cell spacing along x (> 0)", func(p *Parameters) *float64 { return &p.Dx }),
	floatFlag("dy", "cell spacing along y (> 0)", func(p *Parameters) *float64 { return &p.Dy }),
	floatFlag("mobility", "mobility M (>= 0)", func(p *Parameters) *float64 { return &p.M }),
	floatFlag("a", "double-well coefficient A (>= 0)", func(p *Parameters) *float64 { return &p.A }),
	floatFlag("k", "gradient-energy coefficient k (>= 0)", func(p *Parameters) *float64 { return &p.K }),
	floatFlag("c0", "mean initial concentration in [0,1]", func(p *Parameters) *float64 { return &p.C0 }),
	floatFlag("c-noise", "initial perturbation amplitude in [0,1]", func(p *Parameters) *float64 { return &p.CNoise }),
	floatFlag("t0", "start time", func(p *Parameters) *float64 { return &p.T0 }),
	floatFlag("dt", "time step (>= 0)", func(p *Parameters) *float64 { return &p.Dt }),
	countFlag("iterations", "number of time steps (>= 0)", ErrNonIntegerIterations,
		func(p *Parameters) *int { return &p.Iterations }),
	{
		name:  "seed",
		usage: "initial-field seed (0 selects the default seed)",
		get:   func(p Parameters) string { return strconv.FormatInt(p.Seed, 10) },
		set: func(p *Parameters, s string) error {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("-seed=%q: %w", s, ErrDecode)
			}
			p.Seed = v
			return nil
		},
	},
	{
		name:  "policy",
		usage: "domain policy: clamp or strict",
		get:   func(p Parameters) string { return p.Policy },
		set:   func(p *Parameters, s string) error { p.Policy = s; return nil },
	},
	countFlag("workers", "concurrent row bands per kernel (0 = GOMAXPROCS)", ErrDecode,
		func(p *Parameters) *int { return &p.Workers }),
	countFlag("snapshot-every", "write the field every k steps", ErrDecode,
		func(p *Parameters) *int { return &p.SnapshotEvery }),
}

// RegisterFlags declares one string flag per parameter on fs, showing the
// values of defaults in -help. Values are parsed by ApplyFlags, so a flag
// overrides the configuration file only when it is set explicitly.
func RegisterFlags(fs *flag.FlagSet, defaults Parameters) {
	for _, spec := range flagSpecs {
		fs.String(spec.name, spec.get(defaults), spec.usage)
	}
}

// ApplyFlags copies every explicitly set parameter flag of the parsed fs into p.
// Flags not declared by RegisterFlags are ignored.
//
// Errors: ErrDecode for unparsable values, ErrNonIntegerGridSize or
// ErrNonIntegerIterations for fractional counts.
func (p *Parameters) ApplyFlags(fs *flag.FlagSet) error {
	byName := make(map[string]flagSpec, len(flagSpecs))
	for _, spec := range flagSpecs {
		byName[spec.name] = spec
	}

	var firstErr error
	fs.Visit(func(f *flag.Flag) {
		spec, ok := byName[f.Name]
		if !ok || firstErr != nil {
			return
		}
		if err := spec.set(p, f.Value.String()); err != nil {
			firstErr = fmt.Errorf("config.ApplyFlags: %w", err)
		}
	})

	return firstErr
}
