package fst

import (
	"fmt"

	"github.com/mjansche/wfst/semiring"
)

// vectorState is one arena slot: a final weight plus the outgoing arcs
// in insertion order.
type vectorState[W any] struct {
	final W
	arcs  []Arc[W]
}

// Vector is the eager, mutable automaton: an arena of states indexed by
// dense, stable ids. It satisfies Mutable and Expanded.
//
// Property bits are cached together with a "known" mask. Mutators
// invalidate only the bits they can actually break, keeping what can be
// incrementally proven (e.g. appending an arc whose input label is not
// below its predecessor's preserves ILabelSorted).
type Vector[W any] struct {
	sr     semiring.Semiring[W]
	states []vectorState[W]
	start  StateID

	props Properties // cached property bits (valid where known is set)
	known Properties // which bits of props are authoritative
}

// NewVector creates an empty automaton over the given semiring.
// An empty automaton (no start state) denotes the empty language.
func NewVector[W any](sr semiring.Semiring[W]) *Vector[W] {
	return &Vector[W]{
		sr:    sr,
		start: NoState,
		// Vacuously true on zero states; mutators will narrow these.
		props: Acyclic | ILabelSorted | OLabelSorted | NoEpsilons |
			NoIEpsilons | NoOEpsilons | IDeterministic | Unweighted,
		known: AllProperties,
	}
}

// Semiring returns the weight algebra of the automaton.
func (v *Vector[W]) Semiring() semiring.Semiring[W] { return v.sr }

// Start returns the start state id, or NoState if none was set.
func (v *Vector[W]) Start() StateID { return v.start }

// NumStates returns the number of allocated states.
func (v *Vector[W]) NumStates() int { return len(v.states) }

// Final returns the final weight of s (Zero when s is non-accepting).
// Referencing an unallocated state is a fatal contract violation.
func (v *Vector[W]) Final(s StateID) W {
	v.mustHave(s)

	return v.states[s].final
}

// NumArcs returns the number of arcs leaving s.
func (v *Vector[W]) NumArcs(s StateID) int {
	v.mustHave(s)

	return len(v.states[s].arcs)
}

// Arcs returns a restartable iterator over the arcs of s in insertion
// order. The iterator borrows the arc storage: do not mutate s while
// iterating (snapshot with ArcSlice + append to a copy instead).
func (v *Vector[W]) Arcs(s StateID) *ArcIterator[W] {
	v.mustHave(s)

	return NewArcIterator(v.states[s].arcs)
}

// ArcSlice returns the arcs of s as a borrowed, read-only slice.
func (v *Vector[W]) ArcSlice(s StateID) []Arc[W] {
	v.mustHave(s)

	return v.states[s].arcs
}

// States returns an iterator over ids 0..NumStates()-1.
func (v *Vector[W]) States() StateIterator {
	return &rangeStateIterator{n: len(v.states), cur: -1}
}

// AddState allocates a fresh non-accepting state with no arcs.
func (v *Vector[W]) AddState() StateID {
	v.states = append(v.states, vectorState[W]{final: v.sr.Zero()})

	return len(v.states) - 1
}

// AddArc appends arc to the arcs of s. The destination may be a state
// not yet allocated (dense ids may be filled in later during
// construction); reading through such an arc before allocation panics.
func (v *Vector[W]) AddArc(s StateID, arc Arc[W]) error {
	if s < 0 || s >= len(v.states) {
		return fmt.Errorf("%w: %d (have %d states)", ErrNoSuchState, s, len(v.states))
	}
	st := &v.states[s]

	// Incremental property maintenance: narrow only what this arc can
	// actually break.
	if arc.ILabel == Epsilon {
		v.props &^= NoIEpsilons
	}
	if arc.OLabel == Epsilon {
		v.props &^= NoOEpsilons
	}
	if arc.ILabel == Epsilon && arc.OLabel == Epsilon {
		v.props &^= NoEpsilons
	}
	if n := len(st.arcs); n > 0 {
		if st.arcs[n-1].ILabel > arc.ILabel {
			v.unknow(ILabelSorted)
		}
		if st.arcs[n-1].OLabel > arc.OLabel {
			v.unknow(OLabelSorted)
		}
	}
	if !v.sr.Equal(arc.Weight, v.sr.One(), 0) && !v.sr.IsZero(arc.Weight) {
		v.props &^= Unweighted
	}
	if arc.Next == s {
		// A self-loop is a cycle.
		v.props &^= Acyclic
	} else {
		v.unknow(Acyclic)
	}
	// Whether the new input label collides with an existing one is not
	// tracked incrementally; determinism becomes unknown.
	if len(st.arcs) > 0 {
		v.unknow(IDeterministic)
	}

	st.arcs = append(st.arcs, arc)

	return nil
}

// SetStart marks s as the start state.
func (v *Vector[W]) SetStart(s StateID) error {
	if s < 0 || s >= len(v.states) {
		return fmt.Errorf("%w: %d (have %d states)", ErrNoSuchState, s, len(v.states))
	}
	v.start = s

	return nil
}

// SetFinal sets the final weight of s; the semiring Zero makes s
// non-accepting. Sortedness and label properties are unaffected.
func (v *Vector[W]) SetFinal(s StateID, w W) error {
	if s < 0 || s >= len(v.states) {
		return fmt.Errorf("%w: %d (have %d states)", ErrNoSuchState, s, len(v.states))
	}
	if !v.sr.IsZero(w) && !v.sr.Equal(w, v.sr.One(), 0) {
		v.props &^= Unweighted
	}
	v.states[s].final = w

	return nil
}

// DeleteArcs removes all arcs leaving s. Deleting arcs can only make
// negative properties true again, so the affected bits become unknown.
func (v *Vector[W]) DeleteArcs(s StateID) error {
	if s < 0 || s >= len(v.states) {
		return fmt.Errorf("%w: %d (have %d states)", ErrNoSuchState, s, len(v.states))
	}
	v.states[s].arcs = nil
	v.unknow(Acyclic | ILabelSorted | OLabelSorted | NoEpsilons |
		NoIEpsilons | NoOEpsilons | IDeterministic | Unweighted)

	return nil
}

// Properties returns the known property bits intersected with mask,
// without forcing computation of unknown bits.
func (v *Vector[W]) Properties(mask Properties) Properties {
	return v.props & v.known & mask
}

// CheckProperties computes (and caches) every bit in mask that is not
// currently known, then returns the bits of mask that hold.
func (v *Vector[W]) CheckProperties(mask Properties) Properties {
	if unknown := mask &^ v.known; unknown != 0 {
		computed := computeProperties(v)
		v.props = (v.props & v.known & Error) | computed
		v.known = AllProperties
	}

	return v.props & mask
}

// MarkError sets the sticky Error property bit, marking the automaton
// as poisoned by a failed construction.
func (v *Vector[W]) MarkError() {
	v.props |= Error
	v.known |= Error
}

// Clone returns a deep copy sharing no mutable storage with v.
func (v *Vector[W]) Clone() *Vector[W] {
	out := &Vector[W]{
		sr:     v.sr,
		states: make([]vectorState[W], len(v.states)),
		start:  v.start,
		props:  v.props,
		known:  v.known,
	}
	for i := range v.states {
		out.states[i].final = v.states[i].final
		out.states[i].arcs = append([]Arc[W](nil), v.states[i].arcs...)
	}

	return out
}

// CopyFrom replaces the contents of v with a deep copy of o.
// Used by in-place algorithms (e.g. minimization) to publish a rebuilt
// automaton through the caller's pointer.
func (v *Vector[W]) CopyFrom(o *Vector[W]) {
	c := o.Clone()
	*v = *c
}

// mustHave panics when s was never allocated: a read through an invalid
// state id signals a construction bug and must not be papered over.
func (v *Vector[W]) mustHave(s StateID) {
	if s < 0 || s >= len(v.states) {
		panic(fmt.Sprintf("fst: state %d out of range (have %d states)", s, len(v.states)))
	}
}

// unknow drops bits from the known mask.
func (v *Vector[W]) unknow(bits Properties) { v.known &^= bits }
