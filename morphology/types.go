// Package morphology defines options and sentinel errors for phase-domain
// labelling of a concentration field.
package morphology

import (
	"github.com/katalvlaran/spinodal/field"
)

// Sentinel errors for morphology operations.
var (
	// ErrComponentIndex indicates a requested domain index is out of range.
	ErrComponentIndex = field.NewParameterError("morphology: domain index out of range")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Phase selects which side of the threshold forms the domains.
type Phase int

const (
	// Rich labels cells with c >= threshold.
	Rich Phase = iota
	// Lean labels cells with c < threshold.
	Lean
)

// DefaultThreshold splits the two phases at the symmetric mixture.
const DefaultThreshold = 0.5

const (
	panicThresholdInvalid = "morphology: WithThreshold: threshold must be finite"
	panicConnInvalid      = "morphology: WithConnectivity: unknown connectivity"
	panicPhaseInvalid     = "morphology: WithPhase: unknown phase"
)

// Option configures Label.
type Option func(*Options)

// Options contains tunable parameters for domain labelling.
type Options struct {
	threshold float64
	conn      Connectivity
	phase     Phase
}

// WithThreshold sets the phase boundary (default 0.5). Panics on NaN/Inf.
func WithThreshold(th float64) Option {
	if !field.IsFinite(th) {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = th }
}

// WithConnectivity selects Conn4 (default) or Conn8.
func WithConnectivity(c Connectivity) Option {
	if c != Conn4 && c != Conn8 {
		panic(panicConnInvalid)
	}

	return func(o *Options) { o.conn = c }
}

// WithPhase selects Rich (default) or Lean domains.
func WithPhase(p Phase) Option {
	if p != Rich && p != Lean {
		panic(panicPhaseInvalid)
	}

	return func(o *Options) { o.phase = p }
}

func gatherOptions(opts ...Option) Options {
	o := Options{threshold: DefaultThreshold, conn: Conn4, phase: Rich}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// neighborOffsets returns (dRow, dCol) pairs for the connectivity.
func neighborOffsets(c Connectivity) [][2]int {
	if c == Conn8 {
		return [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	}

	return [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
}
