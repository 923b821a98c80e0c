package fst

import (
	"fmt"

	"github.com/mjansche/wfst/semiring"
)

// Expander is the supplier behind a lazy automaton: it assigns dense
// state ids on its own (e.g. by interning composite-state tuples) and
// produces the arcs and final weight of a state on demand.
//
// Every state id returned by ExpandStart or referenced by an expanded
// arc must be expandable; all discovered ids must stay dense from 0.
type Expander[W any] interface {
	// Semiring returns the weight algebra of the expanded automaton.
	Semiring() semiring.Semiring[W]

	// ExpandStart returns the start state id, interning it if needed,
	// or NoState for the empty language.
	ExpandStart() StateID

	// Expand computes the outgoing arcs and the final weight of s.
	Expand(s StateID) ([]Arc[W], W)
}

// cachedState is one materialized slot of a lazy automaton.
type cachedState[W any] struct {
	arcs  []Arc[W]
	final W
}

// Lazy is an automaton view that computes states on first access and
// caches them by id (the explicit state cache the on-the-fly algorithms
// share). It satisfies Fst.
//
// Lazy is single-writer: do not access one Lazy value from multiple
// goroutines without external synchronization. Independent Lazy values
// over independent inputs are safe to use in parallel.
type Lazy[W any] struct {
	exp Expander[W]

	start     StateID
	startSet  bool
	cache     []*cachedState[W]
	known     int        // states discovered so far (ids 0..known-1)
	props     Properties // asserted by the constructor, never computed
	propsMask Properties
}

// NewLazy wraps an expander in a cached lazy view. The props/propsMask
// pair lets the constructor assert properties it guarantees by
// construction (e.g. composition of sorted inputs); pass 0, 0 when
// nothing is known.
func NewLazy[W any](exp Expander[W], props, propsMask Properties) *Lazy[W] {
	return &Lazy[W]{exp: exp, start: NoState, props: props & propsMask, propsMask: propsMask}
}

// Semiring returns the weight algebra of the automaton.
func (l *Lazy[W]) Semiring() semiring.Semiring[W] { return l.exp.Semiring() }

// Start returns the start state, forcing its discovery on first call.
func (l *Lazy[W]) Start() StateID {
	if !l.startSet {
		l.start = l.exp.ExpandStart()
		l.startSet = true
		if l.start != NoState {
			l.noteState(l.start)
		}
	}

	return l.start
}

// Final returns the final weight of s, expanding s if needed.
func (l *Lazy[W]) Final(s StateID) W { return l.state(s).final }

// NumArcs returns the number of arcs of s, expanding s if needed.
func (l *Lazy[W]) NumArcs(s StateID) int { return len(l.state(s).arcs) }

// Arcs returns a restartable iterator over the cached arcs of s.
func (l *Lazy[W]) Arcs(s StateID) *ArcIterator[W] { return NewArcIterator(l.state(s).arcs) }

// ArcSlice returns the cached arcs of s as a borrowed slice.
func (l *Lazy[W]) ArcSlice(s StateID) []Arc[W] { return l.state(s).arcs }

// Properties returns the constructor-asserted bits intersected with mask.
func (l *Lazy[W]) Properties(mask Properties) Properties { return l.props & l.propsMask & mask }

// States returns an iterator in discovery order. Advancing it expands
// states, so draining the iterator fully materializes the view.
func (l *Lazy[W]) States() StateIterator { return &lazyStateIterator[W]{l: l, cur: -1} }

// state returns the cached slot for s, expanding it on first access.
func (l *Lazy[W]) state(s StateID) *cachedState[W] {
	if s < 0 {
		panic(fmt.Sprintf("fst: lazy access to state %d", s))
	}
	l.noteState(s)
	if l.cache[s] == nil {
		arcs, final := l.exp.Expand(s)
		cs := &cachedState[W]{arcs: arcs, final: final}
		l.cache[s] = cs
		// Arcs may reference states the expander just interned.
		for _, a := range arcs {
			l.noteState(a.Next)
		}
	}

	return l.cache[s]
}

// noteState records that ids up to s exist, growing the cache table.
func (l *Lazy[W]) noteState(s StateID) {
	if s+1 > l.known {
		l.known = s + 1
	}
	for len(l.cache) < l.known {
		l.cache = append(l.cache, nil)
	}
}

// lazyStateIterator walks ids in discovery order, expanding as it goes:
// the frontier grows while expanded arcs keep revealing new states.
type lazyStateIterator[W any] struct {
	l   *Lazy[W]
	cur StateID
}

func (it *lazyStateIterator[W]) Next() bool {
	// Force start discovery so known covers at least the start state.
	it.l.Start()
	it.cur++
	if it.cur >= it.l.known {
		return false
	}
	// Expanding the current state may extend the frontier.
	it.l.state(it.cur)

	return true
}

func (it *lazyStateIterator[W]) ID() StateID { return it.cur }

func (it *lazyStateIterator[W]) Reset() { it.cur = -1 }

// Materialize forces full eager construction of f into a Vector.
// For a Lazy view this expands every discoverable state; for an already
// eager automaton it is a copy.
func Materialize[W any](f Fst[W]) *Vector[W] {
	out := NewVector(f.Semiring())
	// First pass allocates the full dense id range so arcs can be added
	// in any discovery order.
	n := CountStates(f)
	for i := 0; i < n; i++ {
		out.AddState()
	}
	for it := f.States(); it.Next(); {
		s := it.ID()
		for ai := f.Arcs(s); ai.Next(); {
			_ = out.AddArc(s, ai.Arc())
		}
		_ = out.SetFinal(s, f.Final(s))
	}
	if start := f.Start(); start != NoState {
		_ = out.SetStart(start)
	}

	return out
}
