// Package spinodal simulates spinodal decomposition of a binary mixture with
// the Cahn-Hilliard equation on a periodic 2D grid.
//
// What is in here?
//
//	field/       the concentration Field, error taxonomy, validators, row bands
//	laplacian/   periodic 5-point Laplacian (dx on columns, dy on rows)
//	energy/      double-well chemical potential and total free energy
//	initconf/    seeded initial configurations c0 + noise·(0.5-U)
//	integrator/  explicit Euler step, domain policy (clamp | strict), Run with a Sink
//	diagnostics/ per-step averages and free energy
//	morphology/  phase-domain labelling on the torus (coarsening metrics)
//	config/      run parameters: defaults, YAML, flags, stability advisory
//	store/       text trajectory files and the run manifest
//	render/      PNG/JPEG frames, MJPEG animation, diagnostics charts
//	viewer/      interactive playback (ebiten build tag)
//
// Commands:
//
//	cmd/spinodal       run a simulation into a run directory
//	cmd/spinodal-plot  render a stored run
//	cmd/spinodal-view  play a stored run back (go run -tags ebiten)
//
// Quick start:
//
//	go run ./cmd/spinodal -n 128 -iterations 2000 -out Data
//	go run ./cmd/spinodal-plot -data Data -out Images
//
// Library packages never log and never panic on bad input; they return
// errors that match field.ErrParameter or field.ErrState with errors.Is.
// Option constructors panic only on values that are programmer errors.
package spinodal
