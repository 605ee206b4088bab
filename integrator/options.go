// SPDX-License-Identifier: MIT

package integrator

const (
	// DefaultPolicy is the production domain policy.
	DefaultPolicy = PolicyClamp

	// DefaultWorkers runs the kernels on the caller goroutine.
	DefaultWorkers = 1
)

const (
	panicPolicyInvalid  = "integrator: WithPolicy: unknown policy"
	panicWorkersInvalid = "integrator: WithWorkers: n must be >= 0"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	policy  Policy
	workers int // 0 ⇒ GOMAXPROCS, resolved by the kernels
}

// WithPolicy selects the domain policy. Panics on values other than
// PolicyClamp and PolicyStrict.
func WithPolicy(p Policy) Option {
	if p != PolicyClamp && p != PolicyStrict {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.policy = p }
}

// WithWorkers evaluates the Laplacian and chemical potential in n concurrent
// row bands (0 ⇒ GOMAXPROCS). Results are bit-identical for every n.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{policy: DefaultPolicy, workers: DefaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
