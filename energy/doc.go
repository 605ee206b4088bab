// Package energy holds the thermodynamic model of the binary mixture: the
// double-well homogeneous free energy density
//
//	f(c) = A c² (1-c)²
//
// its derivative, the local chemical potential
//
//	µ(c) = 2A (c(1-c)² - c²(1-c))
//
// and the discrete total free energy with a gradient (interfacial) penalty
//
//	F = dx·dy·A·Σ c²(1-c)² + (k/dx²)·Σ (c - c_{x-1})² + (k/dy²)·Σ (c - c_{y-1})²
//
// where the backward differences wrap periodically like the Laplacian.
// Under Cahn-Hilliard dynamics F is a Lyapunov functional: stable explicit
// steps never increase it, which makes it a useful correctness check.
package energy
