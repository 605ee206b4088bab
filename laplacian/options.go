// SPDX-License-Identifier: MIT

// Package laplacian: functional options.
//
// Design goals:
//   - Deterministic behavior: the worker count changes scheduling only, never
//     the numbers produced.
//   - Safe by construction: panic only on nonsensical values (programmer error).

package laplacian

import "runtime"

// DefaultWorkers evaluates the stencil on the caller goroutine.
const DefaultWorkers = 1

const panicWorkersInvalid = "laplacian: WithWorkers: n must be >= 0"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	workers int // >= 1 after gatherOptions
}

// WithWorkers sets the number of row bands evaluated concurrently.
// n == 0 selects runtime.GOMAXPROCS(0); n < 0 panics.
//
// Complexity: O(1).
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
