// Package store persists simulation trajectories and reads them back.
//
// A run directory holds three files:
//
//   - configurations.txt: a header "Time c0_0 c0_1 ..." then one line per
//     stored step, "t c[0,0] c[0,1] ..." in row-major order.
//   - average_parameters.txt: a header
//     "Time AverageConcentration AverageChem.Potential FreeEnergy" then one
//     line per step.
//   - run.yaml: the Manifest (run id, creation time, parameters).
//
// Numbers are written in the shortest form that parses back to the same
// float64, so a stored field reloads bit for bit.
package store
