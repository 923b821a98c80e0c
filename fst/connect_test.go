package fst_test

import (
	"testing"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/semiring"
)

// buildDiamondWithDeadEnds: 0→1→3(final), plus an inaccessible state 2
// and a dead-end state 4 reachable from 0 but with no path to a final.
func buildDiamondWithDeadEnds() *fst.Vector[float64] {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	for i := 0; i < 5; i++ {
		v.AddState()
	}
	_ = v.SetStart(0)
	_ = v.AddArc(0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: 1})
	_ = v.AddArc(1, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 2, Next: 3})
	_ = v.AddArc(2, fst.Arc[float64]{ILabel: 9, OLabel: 9, Weight: 9, Next: 3}) // inaccessible
	_ = v.AddArc(0, fst.Arc[float64]{ILabel: 4, OLabel: 4, Weight: 4, Next: 4}) // dead end
	_ = v.SetFinal(3, sr.One())

	return v
}

func TestConnect_TrimsUselessStates(t *testing.T) {
	v := buildDiamondWithDeadEnds()
	fst.Connect(v)

	if v.NumStates() != 3 {
		t.Fatalf("connected automaton has %d states, want 3", v.NumStates())
	}
	if v.Start() != 0 {
		t.Fatalf("start renumbered to %d, want 0", v.Start())
	}
	// The surviving path 0→1→2 must carry the original labels/weights.
	a := v.ArcSlice(0)
	if len(a) != 1 || a[0].ILabel != 1 || a[0].Weight != 1 {
		t.Fatalf("unexpected arcs out of start: %+v", a)
	}
	b := v.ArcSlice(1)
	if len(b) != 1 || b[0].ILabel != 2 || b[0].Weight != 2 {
		t.Fatalf("unexpected arcs out of state 1: %+v", b)
	}
	if sr := (semiring.Tropical{}); !sr.Equal(v.Final(2), 0, 0) {
		t.Fatalf("final weight lost: %v", v.Final(2))
	}
}

func TestConnect_NoStartTrimsEverything(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s := v.AddState()
	_ = v.SetFinal(s, sr.One())
	fst.Connect(v)
	if v.NumStates() != 0 || v.Start() != fst.NoState {
		t.Fatalf("automaton without start must trim to empty, got %d states", v.NumStates())
	}
}

func TestReverse_RoundTripSemantics(t *testing.T) {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1 := v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 2, Weight: 3, Next: s1})
	_ = v.SetFinal(s1, 4)

	r := fst.Reverse[float64](v)
	// Superinitial state 0, images at s+1.
	if r.Start() != 0 {
		t.Fatalf("reverse start = %d, want 0", r.Start())
	}
	if r.NumStates() != 3 {
		t.Fatalf("reverse has %d states, want 3", r.NumStates())
	}
	// The original final weight rides the superinitial epsilon arc.
	super := r.ArcSlice(0)
	if len(super) != 1 || super[0].ILabel != fst.Epsilon || super[0].Weight != 4 || super[0].Next != s1+1 {
		t.Fatalf("unexpected superinitial arcs %+v", super)
	}
	// The arc is reversed; the original start becomes final with One.
	rev := r.ArcSlice(s1 + 1)
	if len(rev) != 1 || rev[0].ILabel != 1 || rev[0].OLabel != 2 || rev[0].Next != s0+1 {
		t.Fatalf("unexpected reversed arc %+v", rev)
	}
	if !sr.Equal(r.Final(s0+1), sr.One(), 0) {
		t.Fatalf("original start not final in reversal: %v", r.Final(s0+1))
	}
}
