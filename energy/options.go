// SPDX-License-Identifier: MIT

// Package energy: functional options for ChemicalPotential.
//
// The worker count changes scheduling only; every cell is evaluated by the
// same expression, so results do not depend on it.

package energy

import "runtime"

// DefaultWorkers evaluates the chemical potential on the caller goroutine.
const DefaultWorkers = 1

const panicWorkersInvalid = "energy: WithWorkers: n must be >= 0"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	workers int // >= 1 after gatherOptions
}

// WithWorkers evaluates the chemical potential in n concurrent row bands.
// n == 0 selects runtime.GOMAXPROCS(0); n < 0 panics.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) {
		if n == 0 {
			o.workers = runtime.GOMAXPROCS(0)
			return
		}
		o.workers = n
	}
}

// gatherOptions resolves defaults and applies opts left to right.
func gatherOptions(opts ...Option) Options {
	o := Options{workers: DefaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
