// Package push implements the generalized shortest-distance computation
// and weight pushing over an arbitrary semiring.
//
// ShortestDistance computes, per state, the semiring sum of the weights
// of all paths from a source (or, in reverse mode, of all paths to any
// final state, final weights included). It is a Bellman-Ford-style
// relaxation driven by a pluggable queue discipline, converging when
// Plus updates fall within a delta tolerance. The same primitive powers
// the epsilon-closure computation in package rmepsilon.
//
// Push reweights an automaton using those distances as per-state
// potentials, concentrating weight toward the initial (or final) states
// without changing the weight of any accepted string - the invariant
// downstream pruning and determinization rely on.
//
// Convergence in cyclic automatons depends on the semiring: the
// relaxation loop is capped (MaxIterations) and returns
// ErrNoConvergence rather than looping forever when the semiring lacks
// the required closure property.
//
// Complexity (D = number of relaxation rounds until convergence):
//
//   - ShortestDistance: Time O(D·E), Memory O(V)
//   - Reweight / Push:  Time O(V + E) past the distance computation
package push

import (
	"errors"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/queue"
	"github.com/mjansche/wfst/semiring"
)

// Sentinel errors for shortest distance and pushing.
var (
	// ErrNilFst indicates a nil automaton was passed.
	ErrNilFst = errors.New("push: automaton is nil")

	// ErrNoConvergence indicates the relaxation loop hit its iteration
	// cap before distances stabilized within delta.
	ErrNoConvergence = errors.New("push: shortest distance did not converge")

	// ErrBadPotentials indicates Reweight received a potentials slice
	// whose length does not match the automaton's state count.
	ErrBadPotentials = errors.New("push: potentials length does not match state count")
)

// ReweightDirection selects which end of the automaton the weight mass
// is moved toward.
type ReweightDirection int

const (
	// ReweightToFinal moves weight as late as possible along each path.
	ReweightToFinal ReweightDirection = iota

	// ReweightToInitial moves weight as early as possible along each path.
	ReweightToInitial
)

// DistanceOptions configures ShortestDistance.
//
// Source           - state distances are measured from; fst.NoState
// means the automaton's start state. Ignored in Reverse mode.
// Reverse          - compute distances to the final states (final
// weights included) instead of from the source.
// Queue            - expansion discipline; queue.Auto picks topological
// order for acyclic automatons.
// Delta            - convergence tolerance for Plus updates.
// MaxIterations    - cap on state expansions; 0 derives a cap from the
// automaton size.
// ArcFilter        - when non-nil, only arcs it accepts are relaxed
// (rmepsilon restricts to epsilon arcs this way).
// WeightThreshold  - when non-nil, expansion out of states whose
// distance no longer contributes beyond the bound is skipped. This is
// an approximation knob, not an error.
// NState           - when > 0, at most NState distinct states are
// visited; further discoveries are silently not expanded.
type DistanceOptions[W any] struct {
	Source          fst.StateID
	Reverse         bool
	Queue           queue.Type
	Delta           float64
	MaxIterations   int
	ArcFilter       func(fst.Arc[W]) bool
	WeightThreshold *W
	NState          int
}

// DefaultDistanceOptions returns the defaults: distances from the start
// state, Auto queue, DefaultDelta tolerance, size-derived iteration
// cap, no filter, no bounds.
func DefaultDistanceOptions[W any]() DistanceOptions[W] {
	return DistanceOptions[W]{
		Source: fst.NoState,
		Queue:  queue.Auto,
		Delta:  semiring.DefaultDelta,
	}
}

// PushOptions configures Push and PushTotal.
//
// ToInitial         - push weight toward the start state instead of the
// final states.
// RemoveTotalWeight - factor the total automaton weight out instead of
// re-absorbing it at the boundary (PushTotal returns it).
// Delta             - convergence tolerance forwarded to the distance
// computation.
type PushOptions struct {
	ToInitial         bool
	RemoveTotalWeight bool
	Delta             float64
}

// DefaultPushOptions returns the defaults: push to final, keep the
// total weight in the automaton, DefaultDelta tolerance.
func DefaultPushOptions() PushOptions {
	return PushOptions{Delta: semiring.DefaultDelta}
}
