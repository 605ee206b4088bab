// SPDX-License-Identifier: MIT

// Command spinodal runs a Cahn-Hilliard spinodal-decomposition simulation
// and stores its trajectory.
//
//	spinodal [-config run.yaml] [-out Data] [-replica k] [-n 100 -dt 0.01 -policy strict ...]
//
// Parameters are taken from the defaults, then the YAML file, then any flag
// given explicitly. The run directory receives configurations.txt,
// average_parameters.txt and run.yaml. SIGINT stops the run between steps;
// everything written so far stays valid.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/katalvlaran/spinodal/config"
	"github.com/katalvlaran/spinodal/initconf"
	"github.com/katalvlaran/spinodal/integrator"
	"github.com/katalvlaran/spinodal/morphology"
	"github.com/katalvlaran/spinodal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, "spinodal: ", log.LstdFlags)
	if err := run(ctx, os.Args[1:], logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Fatal(err)
	}
}

// run parses args, performs the simulation and records the outcome in the
// run manifest. A cancelled ctx is reported as context.Canceled.
func run(ctx context.Context, args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("spinodal", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	cfgPath := fs.String("config", "", "YAML parameter file")
	out := fs.String("out", "Data", "run directory")
	replica := fs.Uint64("replica", 0, "ensemble member; k > 0 derives a decorrelated seed from -seed")
	config.RegisterFlags(fs, config.Default())
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := config.Default()
	if *cfgPath != "" {
		var err error
		if p, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if err := p.ApplyFlags(fs); err != nil {
		return err
	}
	if *replica > 0 {
		p.Seed = initconf.ReplicaSeed(p.Seed, *replica)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if limit := config.StabilityLimit(p.IntegratorParams()); p.Dt > limit {
		logger.Printf("warning: dt=%g exceeds the stability limit %.4g; expect clamping or divergence", p.Dt, limit)
	}

	opts, err := p.IntegratorOptions()
	if err != nil {
		return err
	}
	it, err := integrator.New(p.IntegratorParams(), opts...)
	if err != nil {
		return err
	}
	start, err := initconf.Generate(p.N, p.C0, p.CNoise, p.InitialOptions()...)
	if err != nil {
		return err
	}

	manifest := store.NewManifest(p)
	if err = store.WriteManifest(*out, manifest); err != nil {
		return err
	}
	sink, err := store.NewTextSink(*out, store.WithSnapshotEvery(p.SnapshotEvery))
	if err != nil {
		return err
	}
	logger.Printf("run %s: %dx%d grid, %d steps of dt=%g, policy %s, output %s",
		manifest.RunID, p.N, p.N, p.Iterations, p.Dt, it.Policy(), *out)

	prog := &progress{sink: sink, total: p.Iterations, logger: logger}
	runErr := it.Run(ctx, start, p.T0, p.Iterations, prog)
	runErr = errors.Join(runErr, sink.Close())

	manifest.Completed = prog.last.Step
	switch {
	case runErr == nil:
		manifest.Status = "done"
	case errors.Is(runErr, context.Canceled):
		manifest.Status = "stopped"
	default:
		manifest.Status = "failed"
	}
	if err = store.WriteManifest(*out, manifest); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return fmt.Errorf("after %d steps: %w", manifest.Completed, runErr)
	}

	s := prog.last.Snapshot
	logger.Printf("done: t=%g <c>=%.6g <mu>=%.6g F=%.6g, %d cells clamped",
		s.T, s.AverageConcentration, s.AverageChemicalPotential, s.FreeEnergy, prog.clamped)
	if lb, err := morphology.Label(prog.last.Field); err == nil {
		logger.Printf("morphology: %d rich domains, mean size %.1f cells, rich fraction %.3f",
			lb.Count(), lb.MeanSize(), lb.Fraction())
	}

	return nil
}

// progress forwards records to sink and logs every tenth of the run.
type progress struct {
	sink    integrator.Sink
	total   int
	logger  *log.Logger
	last    integrator.Record
	clamped int
	next    int
}

func (p *progress) Write(rec integrator.Record) error {
	if err := p.sink.Write(rec); err != nil {
		return err
	}
	p.last = rec
	p.clamped += rec.Clamped
	if p.total >= 10 && rec.Step > 0 && rec.Step*10 >= (p.next+1)*p.total {
		p.next = rec.Step * 10 / p.total
		p.logger.Printf("%3d%% step %d t=%g F=%.6g", p.next*10, rec.Step, rec.T, rec.Snapshot.FreeEnergy)
	}

	return nil
}
