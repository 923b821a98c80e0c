// Package fst defines the weighted finite-state transducer model shared
// by every algorithm in this module: arcs, states, the read-only and
// mutable automaton contracts, an eager arena-backed implementation
// (Vector), and a lazy cached view (Lazy) for on-the-fly algorithms.
//
// An automaton is a directed graph of states connected by arcs. Each
// arc carries an input label, an output label, a weight from a semiring
// and a destination state. Label 0 (Epsilon) is reserved to mean "no
// symbol consumed/emitted". An automaton has at most one start state;
// a state is accepting iff its final weight is not the semiring Zero.
//
// Contract notes:
//
//   - State ids are dense non-negative integers, stable across mutation
//     (arena indices, never reused within one instance).
//   - Mutators return errors for out-of-range states; read paths treat a
//     dangling arc destination as a fatal programming error and panic,
//     since continuing would silently corrupt results.
//   - Mutation during iteration is disallowed by contract: snapshot the
//     arcs of a state before rewiring it.
//   - Cached property bits are invalidated incrementally on mutation,
//     never more broadly than the mutation can actually break.
//
// Errors:
//
//	ErrNoSuchState      - state id out of range for a mutator.
//	ErrNoStart          - operation requires a start state.
//	ErrSemiringMismatch - binary operation over different semirings.
//	ErrCyclic           - topological order requested on a cyclic automaton.
package fst

import (
	"errors"

	"github.com/mjansche/wfst/semiring"
)

// Sentinel errors for automaton operations.
var (
	// ErrNoSuchState indicates a mutator referenced a state id that was
	// never allocated by AddState.
	ErrNoSuchState = errors.New("fst: no such state")

	// ErrNoStart indicates an operation that requires a start state was
	// applied to an automaton without one.
	ErrNoStart = errors.New("fst: automaton has no start state")

	// ErrSemiringMismatch indicates a binary operation over two automatons
	// with different weight semirings.
	ErrSemiringMismatch = errors.New("fst: semiring mismatch")

	// ErrCyclic indicates a topological order was requested on an
	// automaton containing a cycle.
	ErrCyclic = errors.New("fst: automaton is cyclic")
)

// Label identifies an input or output symbol on an arc. The mapping
// from labels to symbol strings is external to this package.
type Label = int

// Epsilon is the reserved label meaning "no symbol consumed/emitted".
const Epsilon Label = 0

// StateID identifies a state within one automaton instance.
type StateID = int

// NoState is the sentinel for "no state" (e.g. a missing start state,
// which denotes the empty-language automaton).
const NoState StateID = -1

// Arc is one weighted, labeled transition. Arcs are owned by their
// source state; Next must reference a valid state of the same automaton
// (or one resolvable on demand for lazy automatons).
type Arc[W any] struct {
	// ILabel is the input symbol, Epsilon for none.
	ILabel Label

	// OLabel is the output symbol, Epsilon for none.
	OLabel Label

	// Weight is the arc weight in the automaton's semiring.
	Weight W

	// Next is the destination state id.
	Next StateID
}

// Fst is the read-only automaton contract consumed by every algorithm.
//
// Implementations may be eager (Vector) or lazy (Lazy); lazy automatons
// compute states on first access and cache them, and are safe only under
// a single-reader-or-external-synchronization assumption.
type Fst[W any] interface {
	// Semiring returns the weight algebra of this automaton.
	Semiring() semiring.Semiring[W]

	// Start returns the start state id, or NoState for the empty language.
	Start() StateID

	// Final returns the final weight of s; the semiring Zero means s is
	// not accepting.
	Final(s StateID) W

	// NumArcs returns the number of arcs leaving s.
	NumArcs(s StateID) int

	// Arcs returns a restartable iterator over the arcs of s in stored
	// order.
	Arcs(s StateID) *ArcIterator[W]

	// States returns a finite iterator over all states: ascending id for
	// eager automatons, stable discovery order for lazy ones.
	States() StateIterator

	// Properties returns the known property bits intersected with mask.
	// Bits outside the automaton's knowledge are reported unset; use
	// CheckProperties on a Vector to force computation.
	Properties(mask Properties) Properties
}

// Mutable is the mutating automaton contract. Mutation invalidates
// cached properties for the affected bits only.
type Mutable[W any] interface {
	Fst[W]

	// AddState allocates a fresh non-accepting state and returns its id.
	AddState() StateID

	// AddArc appends arc to the arcs of s.
	AddArc(s StateID, arc Arc[W]) error

	// SetStart marks s as the start state.
	SetStart(s StateID) error

	// SetFinal sets the final weight of s (Zero makes s non-accepting).
	SetFinal(s StateID, w W) error

	// DeleteArcs removes all arcs leaving s.
	DeleteArcs(s StateID) error
}

// Expanded is implemented by automatons whose full state set is already
// materialized, making the state count available in O(1).
type Expanded[W any] interface {
	Fst[W]

	// NumStates returns the number of states.
	NumStates() int
}

// CountStates returns the number of states of f, iterating the state
// iterator when f does not implement Expanded (which forces a lazy
// automaton to expand fully).
func CountStates[W any](f Fst[W]) int {
	if e, ok := f.(Expanded[W]); ok {
		return e.NumStates()
	}

	n := 0
	for it := f.States(); it.Next(); {
		n++
	}

	return n
}
