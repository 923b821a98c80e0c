package compose

import (
	"sort"

	"github.com/mjansche/wfst/fst"
)

// MatchSide selects which arc label a Matcher matches on.
type MatchSide int

const (
	// MatchInput matches on arc input labels.
	MatchInput MatchSide = iota

	// MatchOutput matches on arc output labels.
	MatchOutput
)

// Matcher finds the outgoing arcs of a state carrying a given label on
// the matched side. AnyLabel matches every arc. A matcher also reports
// whether a state has epsilon arcs on its side, which the composition
// filters use for their bookkeeping.
type Matcher[W any] interface {
	// Find returns an iterator over the arcs of s whose matched label
	// equals label (every arc for AnyLabel).
	Find(s fst.StateID, label fst.Label) *fst.ArcIterator[W]

	// HasEpsilons reports whether s has an arc with an epsilon label on
	// the matched side.
	HasEpsilons(s fst.StateID) bool
}

// arcSlicer is the fast path for arc access: both Vector and Lazy
// expose their arc storage as a borrowed slice.
type arcSlicer[W any] interface {
	ArcSlice(s fst.StateID) []fst.Arc[W]
}

// arcsOf returns the arcs of s as a slice, copying through the iterator
// only for foreign Fst implementations.
func arcsOf[W any](f fst.Fst[W], s fst.StateID) []fst.Arc[W] {
	if sl, ok := f.(arcSlicer[W]); ok {
		return sl.ArcSlice(s)
	}
	arcs := make([]fst.Arc[W], 0, f.NumArcs(s))
	for it := f.Arcs(s); it.Next(); {
		arcs = append(arcs, it.Arc())
	}

	return arcs
}

// sideLabel extracts the matched-side label of an arc.
func sideLabel[W any](side MatchSide, a fst.Arc[W]) fst.Label {
	if side == MatchInput {
		return a.ILabel
	}

	return a.OLabel
}

// LinearMatcher scans all arcs of the state. Always correct, O(arcs)
// per Find; the fallback when sortedness cannot be assumed.
type LinearMatcher[W any] struct {
	f    fst.Fst[W]
	side MatchSide
}

// NewLinearMatcher builds a linear-scan matcher over f on side.
func NewLinearMatcher[W any](f fst.Fst[W], side MatchSide) *LinearMatcher[W] {
	return &LinearMatcher[W]{f: f, side: side}
}

// Find scans the arcs of s for the label.
func (m *LinearMatcher[W]) Find(s fst.StateID, label fst.Label) *fst.ArcIterator[W] {
	arcs := arcsOf(m.f, s)
	if label == AnyLabel {
		return fst.NewArcIterator(arcs)
	}
	var hits []fst.Arc[W]
	for _, a := range arcs {
		if sideLabel(m.side, a) == label {
			hits = append(hits, a)
		}
	}

	return fst.NewArcIterator(hits)
}

// HasEpsilons scans for an epsilon label on the matched side.
func (m *LinearMatcher[W]) HasEpsilons(s fst.StateID) bool {
	for _, a := range arcsOf(m.f, s) {
		if sideLabel(m.side, a) == fst.Epsilon {
			return true
		}
	}

	return false
}

// SortedMatcher binary-searches arcs sorted by the matched label.
// Precondition: the automaton's arcs are sorted on that side (the
// ILabelSorted/OLabelSorted property); Find is O(log arcs + hits).
type SortedMatcher[W any] struct {
	f    fst.Fst[W]
	side MatchSide
}

// NewSortedMatcher builds a binary-search matcher over f on side.
// The caller is responsible for the sortedness precondition; use
// fst.ArcSort or fall back to NewLinearMatcher otherwise.
func NewSortedMatcher[W any](f fst.Fst[W], side MatchSide) *SortedMatcher[W] {
	return &SortedMatcher[W]{f: f, side: side}
}

// Find locates the contiguous run of arcs carrying the label.
func (m *SortedMatcher[W]) Find(s fst.StateID, label fst.Label) *fst.ArcIterator[W] {
	arcs := arcsOf(m.f, s)
	if label == AnyLabel {
		return fst.NewArcIterator(arcs)
	}
	lo := sort.Search(len(arcs), func(i int) bool { return sideLabel(m.side, arcs[i]) >= label })
	hi := lo
	for hi < len(arcs) && sideLabel(m.side, arcs[hi]) == label {
		hi++
	}

	return fst.NewArcIterator(arcs[lo:hi])
}

// HasEpsilons checks the first arc: epsilon (label 0) sorts first.
func (m *SortedMatcher[W]) HasEpsilons(s fst.StateID) bool {
	arcs := arcsOf(m.f, s)

	return len(arcs) > 0 && sideLabel(m.side, arcs[0]) == fst.Epsilon
}

// newMatcher picks the sorted strategy when the property bits prove the
// precondition, the linear fallback otherwise.
func newMatcher[W any](f fst.Fst[W], side MatchSide) Matcher[W] {
	want := fst.ILabelSorted
	if side == MatchOutput {
		want = fst.OLabelSorted
	}
	if f.Properties(want) != 0 {
		return NewSortedMatcher(f, side)
	}

	return NewLinearMatcher(f, side)
}
