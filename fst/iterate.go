package fst

// ArcIterator iterates the arcs of one state in stored order.
// It is restartable via Reset and finite by construction.
//
// Usage:
//
//	for it := f.Arcs(s); it.Next(); {
//	    arc := it.Arc()
//	    ...
//	}
type ArcIterator[W any] struct {
	arcs []Arc[W]
	pos  int
}

// NewArcIterator wraps an arc slice in an iterator. The iterator
// borrows the slice; callers must not mutate it while iterating.
func NewArcIterator[W any](arcs []Arc[W]) *ArcIterator[W] {
	return &ArcIterator[W]{arcs: arcs, pos: -1}
}

// Next advances to the next arc, reporting whether one exists.
func (it *ArcIterator[W]) Next() bool {
	it.pos++

	return it.pos < len(it.arcs)
}

// Arc returns the current arc. Valid only after a true Next.
func (it *ArcIterator[W]) Arc() Arc[W] { return it.arcs[it.pos] }

// Len returns the total number of arcs the iterator ranges over.
func (it *ArcIterator[W]) Len() int { return len(it.arcs) }

// Reset rewinds the iterator to before the first arc.
func (it *ArcIterator[W]) Reset() { it.pos = -1 }

// StateIterator iterates all states of an automaton. For a lazy
// automaton, advancing the iterator expands states on demand.
type StateIterator interface {
	// Next advances to the next state, reporting whether one exists.
	Next() bool

	// ID returns the current state id. Valid only after a true Next.
	ID() StateID

	// Reset rewinds the iterator to before the first state.
	Reset()
}

// rangeStateIterator iterates ids 0..n-1 for eager automatons.
type rangeStateIterator struct {
	n   int
	cur StateID
}

func (it *rangeStateIterator) Next() bool {
	it.cur++

	return it.cur < it.n
}

func (it *rangeStateIterator) ID() StateID { return it.cur }

func (it *rangeStateIterator) Reset() { it.cur = -1 }
