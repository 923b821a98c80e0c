// Package minimize merges equivalent states of a deterministic weighted
// automaton, producing the unique (up to renumbering) smallest machine
// with the same weighted string relation.
//
// For idempotent semirings (tropical, boolean) the algorithm is plain
// partition refinement: states start grouped by final weight and are
// repeatedly split by their outgoing (ilabel, olabel, weight,
// target-class) signatures until stable. For non-idempotent semirings
// (log), a weight-pushing pre-pass to the final states first normalizes
// the weight distribution so that equivalent states carry syntactically
// equal signatures; the refinement then proceeds identically.
//
// Equivalent tests two deterministic epsilon-free automatons for
// weighted-language equality by comparing their pushed, trimmed forms
// with a synchronized walk.
//
// Complexity: O(R·V·E/C) per refinement round in this formulation
// (R rounds, C classes); acyclic inputs stabilize in at most the
// automaton height many rounds.
package minimize

import (
	"errors"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/push"
	"github.com/mjansche/wfst/semiring"
)

// Sentinel errors for minimization and equivalence.
var (
	// ErrNilFst indicates a nil input automaton.
	ErrNilFst = errors.New("minimize: automaton is nil")

	// ErrNondeterministic indicates the input has a state with two arcs
	// sharing an input label, which partition refinement cannot handle.
	ErrNondeterministic = errors.New("minimize: automaton is not input-deterministic")

	// ErrHasEpsilons indicates the equivalence test received an
	// automaton with epsilon arcs; run rmepsilon first.
	ErrHasEpsilons = errors.New("minimize: automaton has epsilon arcs")
)

// options holds the tunables shared by Minimize and Equivalent.
type options struct {
	delta float64
}

// Option is a functional option for this package.
type Option func(*options)

// WithDelta sets the numeric tolerance for weight comparisons during
// signature grouping. Default semiring.DefaultDelta.
func WithDelta(delta float64) Option {
	return func(o *options) { o.delta = delta }
}

func buildOptions(opts []Option) options {
	cfg := options{delta: semiring.DefaultDelta}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Minimize reduces v in place to the minimal deterministic automaton
// equivalent to it. The input must be input-deterministic; non-useful
// states are trimmed as a side effect.
//
// Minimizing an already minimal automaton is an identity up to state
// renumbering; minimizing twice equals minimizing once.
func Minimize[W any](v *fst.Vector[W], opts ...Option) error {
	if v == nil {
		return ErrNilFst
	}
	cfg := buildOptions(opts)
	sr := v.Semiring()

	fst.Connect(v)
	if v.NumStates() == 0 {
		return nil
	}
	if v.CheckProperties(fst.IDeterministic) == 0 {
		return ErrNondeterministic
	}

	// Non-idempotent semirings need syntactically comparable weights:
	// push everything toward the final states first.
	if !sr.Properties().Has(semiring.Idempotent) {
		pushed, err := push.Push[W](v, push.PushOptions{Delta: cfg.delta})
		if err != nil {
			return err
		}
		v.CopyFrom(pushed)
	}

	// Canonical arc order: determinism makes ilabels unique per state,
	// so sorting by ilabel yields one signature order per state.
	fst.ArcSort(v, fst.ByILabel)

	classes := refine(v, cfg.delta)
	merged := merge(v, classes)
	v.CopyFrom(merged)

	return nil
}

// refine runs partition refinement to a fixed point and returns the
// class id of every state.
func refine[W any](v *fst.Vector[W], delta float64) []int {
	sr := v.Semiring()
	n := v.NumStates()

	// Initial partition: classes of delta-equal final weights.
	classes := make([]int, n)
	var finalReps []W
	for s := 0; s < n; s++ {
		final := v.Final(s)
		found := -1
		for c, rep := range finalReps {
			if sr.Equal(final, rep, delta) {
				found = c

				break
			}
		}
		if found < 0 {
			found = len(finalReps)
			finalReps = append(finalReps, final)
		}
		classes[s] = found
	}

	// Split classes by signature until no round changes anything.
	for {
		members := make(map[int][]fst.StateID, len(finalReps))
		maxClass := 0
		for s, c := range classes {
			members[c] = append(members[c], s)
			if c > maxClass {
				maxClass = c
			}
		}

		next := make([]int, n)
		nextClass := 0
		changed := false
		for c := 0; c <= maxClass; c++ {
			group := members[c]
			if len(group) == 0 {
				continue
			}
			// Representatives of the sub-classes carved out of group.
			var reps []fst.StateID
			for _, s := range group {
				sub := -1
				for i, rep := range reps {
					if sameSignature(v, s, rep, classes, delta) {
						sub = i

						break
					}
				}
				if sub < 0 {
					sub = len(reps)
					reps = append(reps, s)
				}
				next[s] = nextClass + sub
			}
			if len(reps) > 1 {
				changed = true
			}
			nextClass += len(reps)
		}

		classes = next
		if !changed {
			return classes
		}
	}
}

// sameSignature reports whether a and b agree on their outgoing
// (ilabel, olabel, weight, target-class) sequences.
func sameSignature[W any](v *fst.Vector[W], a, b fst.StateID, classes []int, delta float64) bool {
	sr := v.Semiring()
	aa, ba := v.ArcSlice(a), v.ArcSlice(b)
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		x, y := aa[i], ba[i]
		if x.ILabel != y.ILabel || x.OLabel != y.OLabel {
			return false
		}
		if classes[x.Next] != classes[y.Next] {
			return false
		}
		if !sr.Equal(x.Weight, y.Weight, delta) {
			return false
		}
	}

	return true
}

// merge collapses every class to one state, renumbering classes in
// first-appearance order over ascending state id.
func merge[W any](v *fst.Vector[W], classes []int) *fst.Vector[W] {
	sr := v.Semiring()
	out := fst.NewVector(sr)

	n := v.NumStates()
	classState := make(map[int]fst.StateID, n)
	rep := make(map[int]fst.StateID, n)
	for s := 0; s < n; s++ {
		c := classes[s]
		if _, seen := classState[c]; !seen {
			classState[c] = out.AddState()
			rep[c] = s
		}
	}
	for c, ns := range classState {
		r := rep[c]
		for _, a := range v.ArcSlice(r) {
			a.Next = classState[classes[a.Next]]
			_ = out.AddArc(ns, a)
		}
		_ = out.SetFinal(ns, v.Final(r))
	}
	if v.Start() != fst.NoState {
		_ = out.SetStart(classState[classes[v.Start()]])
	}

	return out
}
