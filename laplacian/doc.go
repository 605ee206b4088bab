// Package laplacian implements the discrete periodic Laplacian used by the
// Cahn-Hilliard integrator.
//
// For a field c with column spacing dx (x axis) and row spacing dy (y axis):
//
//	lap[i,j] = (c[i,j-1] + c[i,j+1] - 2c[i,j]) / dx²
//	         + (c[i-1,j] + c[i+1,j] - 2c[i,j]) / dy²
//
// Indices wrap modulo the axis length on both axes, so the grid is a
// discrete 2-torus and no cell is special. The operator is linear and its
// output sums to zero over the domain (up to rounding).
//
// Row bands may be evaluated concurrently (WithWorkers); the result is
// bit-identical to the serial evaluation because every cell is computed by
// the same expression in the same order.
package laplacian
