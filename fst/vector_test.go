// Package fst_test contains unit tests for the automaton model: the
// mutable Vector, property tracking, iterators, connect and reversal.
package fst_test

import (
	"errors"
	"testing"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/semiring"
)

func TestVector_EmptyIsEmptyLanguage(t *testing.T) {
	v := fst.NewVector[float64](semiring.Tropical{})
	if v.Start() != fst.NoState {
		t.Fatalf("fresh automaton start = %d, want NoState", v.Start())
	}
	if v.NumStates() != 0 {
		t.Fatalf("fresh automaton has %d states", v.NumStates())
	}
}

func TestVector_BuildAndIterate(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1 := v.AddState(), v.AddState()
	if err := v.SetStart(s0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 2, Weight: 2, Next: s1}); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	if err := v.SetFinal(s1, sr.One()); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}

	if v.NumArcs(s0) != 1 {
		t.Fatalf("NumArcs(s0) = %d, want 1", v.NumArcs(s0))
	}
	it := v.Arcs(s0)
	if !it.Next() {
		t.Fatal("arc iterator empty")
	}
	a := it.Arc()
	if a.ILabel != 1 || a.OLabel != 2 || a.Weight != 2 || a.Next != s1 {
		t.Fatalf("unexpected arc %+v", a)
	}
	if it.Next() {
		t.Fatal("arc iterator yielded a second arc")
	}
	// Restartable: Reset rewinds.
	it.Reset()
	if !it.Next() {
		t.Fatal("iterator not restartable")
	}

	// Non-accepting state reads as Zero.
	if !sr.IsZero(v.Final(s0)) {
		t.Fatalf("Final(s0) = %v, want Zero", v.Final(s0))
	}

	// State iteration in ascending order.
	var ids []fst.StateID
	for si := v.States(); si.Next(); {
		ids = append(ids, si.ID())
	}
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("state order %v", ids)
	}
}

func TestVector_MutatorErrors(t *testing.T) {
	v := fst.NewVector[float64](semiring.Tropical{})
	if err := v.SetStart(0); !errors.Is(err, fst.ErrNoSuchState) {
		t.Fatalf("SetStart on empty = %v, want ErrNoSuchState", err)
	}
	if err := v.AddArc(5, fst.Arc[float64]{}); !errors.Is(err, fst.ErrNoSuchState) {
		t.Fatalf("AddArc = %v, want ErrNoSuchState", err)
	}
	if err := v.SetFinal(-1, 0); !errors.Is(err, fst.ErrNoSuchState) {
		t.Fatalf("SetFinal = %v, want ErrNoSuchState", err)
	}
	if err := v.DeleteArcs(1); !errors.Is(err, fst.ErrNoSuchState) {
		t.Fatalf("DeleteArcs = %v, want ErrNoSuchState", err)
	}
}

func TestVector_ReadOutOfRangePanics(t *testing.T) {
	v := fst.NewVector[float64](semiring.Tropical{})
	defer func() {
		if recover() == nil {
			t.Fatal("Final on an unallocated state must panic")
		}
	}()
	_ = v.Final(3)
}

func TestVector_PropertyTracking(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1 := v.AddState(), v.AddState()
	_ = v.SetStart(s0)

	// In-order non-epsilon arcs keep sortedness and epsilon facts known.
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 0, Next: s1})
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 0, Next: s1})
	want := fst.ILabelSorted | fst.OLabelSorted | fst.NoEpsilons | fst.NoIEpsilons | fst.NoOEpsilons
	if got := v.Properties(want); got != want {
		t.Fatalf("incremental properties = %v, want %v", got, want)
	}

	// An epsilon arc flips the epsilon facts to known-false.
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: 0, OLabel: 0, Weight: 0, Next: s0})
	if v.Properties(fst.NoEpsilons) != 0 {
		t.Fatal("NoEpsilons must drop after adding an epsilon arc")
	}

	// CheckProperties computes acyclicity: the back arc makes a cycle.
	if v.CheckProperties(fst.Acyclic) != 0 {
		t.Fatal("automaton with a cycle reported Acyclic")
	}
}

func TestVector_CloneIsDeep(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0 := v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: s0})

	c := v.Clone()
	_ = c.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 2, Next: s0})
	if v.NumArcs(s0) != 1 {
		t.Fatalf("mutating the clone changed the original (%d arcs)", v.NumArcs(s0))
	}
	if !fst.EqualFst[float64](v, v.Clone(), 0) {
		t.Fatal("clone is not structurally equal to its source")
	}
}

func TestArcSort(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1 := v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 3, OLabel: 1, Weight: 0, Next: s1})
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 3, Weight: 0, Next: s1})
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 0, Next: s1})

	fst.ArcSort(v, fst.ByILabel)
	if v.Properties(fst.ILabelSorted) == 0 {
		t.Fatal("ArcSort must set ILabelSorted")
	}
	arcs := v.ArcSlice(s0)
	for i := 1; i < len(arcs); i++ {
		if arcs[i-1].ILabel > arcs[i].ILabel {
			t.Fatalf("arcs not sorted by ilabel: %+v", arcs)
		}
	}
}

func TestVector_MarkErrorIsSticky(t *testing.T) {
	v := fst.NewVector[float64](semiring.Tropical{})
	if v.Properties(fst.Error) != 0 {
		t.Fatal("fresh automaton must not carry the Error bit")
	}

	v.MarkError()
	if v.Properties(fst.Error) == 0 {
		t.Fatal("MarkError must set the Error bit")
	}
	// Recomputing other properties must not clear the poison marker.
	s, u := v.AddState(), v.AddState()
	_ = v.SetStart(s)
	_ = v.AddArc(s, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: u})
	v.CheckProperties(fst.AllProperties)
	if v.Properties(fst.Error) == 0 {
		t.Fatal("Error bit must survive property recomputation")
	}
}
