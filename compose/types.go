// Package compose implements on-the-fly composition of two weighted
// transducers: the relational join of A's output tape with B's input
// tape. A string pair (x, z) is accepted by the composition with the
// semiring sum, over every intermediate y, of the weights A assigns to
// (x, y) times the weights B assigns to (y, z).
//
// States of the result are (stateA, stateB, filterState) triples
// discovered lazily from the start pair. Arcs are produced by matching
// A's output labels against B's input labels through a pluggable
// Matcher; epsilon labels on either side pass through with the other
// side standing still, and the composition Filter is the state machine
// that admits exactly one interleaving of every pair of epsilon paths -
// the fix for the classic redundant-epsilon-path problem of naive
// product construction.
//
// Filters (a closed enumeration, selected at construction time):
//
//   - SequenceFilter:    epsilons of A are taken before epsilons of B.
//   - AltSequenceFilter: epsilons of B are taken before epsilons of A.
//   - MatchFilter:       epsilon pairs advance together while possible,
//     then one side finishes alone.
//   - NoEpsilonFilter:   degenerate pass-through, legal when at most one
//     side has epsilons on the shared tape.
//   - AutoFilter:        picks NoEpsilonFilter when the property bits
//     prove a side epsilon-free on the shared tape, else SequenceFilter.
//
// Complexity: O(V_A·V_B·F) states and O(E_A·E_B) arc pairs in the worst
// case; lazy use expands only the states actually visited.
//
// Errors:
//
//	ErrNilFst           - either input automaton is nil.
//	ErrSemiringMismatch - the inputs disagree on the weight semiring.
//	ErrUnknownFilter    - filter value outside the enumeration.
package compose

import (
	"errors"

	"github.com/mjansche/wfst/fst"
)

// Sentinel errors for composition.
var (
	// ErrNilFst indicates a nil input automaton.
	ErrNilFst = errors.New("compose: automaton is nil")

	// ErrUnknownFilter indicates a FilterType outside the enumeration.
	ErrUnknownFilter = errors.New("compose: unknown composition filter")
)

// AnyLabel is the sentinel accepted by Matcher.Find to match every arc.
const AnyLabel fst.Label = -1

// FilterType selects the epsilon-interleaving filter.
type FilterType int

const (
	// AutoFilter inspects the inputs' properties and picks the cheapest
	// correct filter.
	AutoFilter FilterType = iota

	// SequenceFilter realizes epsilon runs as "all of A, then all of B".
	SequenceFilter

	// AltSequenceFilter realizes epsilon runs as "all of B, then all of A".
	AltSequenceFilter

	// MatchFilter advances epsilon pairs jointly while both sides have
	// them, then lets the longer side finish alone.
	MatchFilter

	// NoEpsilonFilter admits every move unconditionally. Correct only
	// when at most one side has epsilons on the shared tape.
	NoEpsilonFilter
)

// Options configures Compose and NewLazy.
type Options struct {
	// Filter selects the epsilon filter; AutoFilter by default.
	Filter FilterType

	// Connect trims non-useful states from the materialized result.
	Connect bool
}

// Option is a functional option for composition.
type Option func(*Options)

// WithFilter selects the epsilon-interleaving filter.
func WithFilter(ft FilterType) Option {
	return func(o *Options) { o.Filter = ft }
}

// WithConnect enables (or disables) trimming of the materialized result
// to its useful states.
func WithConnect(connect bool) Option {
	return func(o *Options) { o.Connect = connect }
}

// DefaultOptions returns the defaults: AutoFilter, Connect enabled.
func DefaultOptions() Options {
	return Options{Filter: AutoFilter, Connect: true}
}
