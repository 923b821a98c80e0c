// Package rmepsilon removes epsilon transitions (arcs labeled epsilon
// on both tapes) from a weighted automaton without changing the weight
// it assigns to any string pair.
//
// For every state s, the epsilon-closure of s - the set of states
// reachable from s through chains of epsilon-only arcs, each paired
// with the semiring sum, over all such chains, of the chain's weight
// product - is computed as a generalized shortest-distance problem over
// the epsilon subgraph (package push). The non-epsilon arcs and the
// final weight of every closure member are then folded into s with the
// closure weight pre-multiplied.
//
// The expansion order is a pluggable queue discipline; queue.Auto picks
// topological order when the automaton is known acyclic. The
// WeightThreshold and NState options bound closure expansion in
// pathological cases (their effect is an approximation, not an error).
// Termination of the closure computation in semirings without the
// required closure property is the caller's responsibility; the bounds
// above exist precisely to keep such cases finite.
//
// Complexity: O(V·(V+E)) worst case for the materialized form; each
// lazy state costs one closure computation.
package rmepsilon

import (
	"errors"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/push"
	"github.com/mjansche/wfst/queue"
	"github.com/mjansche/wfst/semiring"
)

// ErrNilFst indicates a nil input automaton.
var ErrNilFst = errors.New("rmepsilon: automaton is nil")

// Options configures epsilon removal.
//
// Queue           - closure expansion discipline (queue.Auto default).
// Connect         - trim non-useful states from the materialized result.
// Reverse         - remove epsilons against the arc direction: the
// automaton is reversed, processed, and reversed back, so weights
// accumulate into successor states instead of predecessors.
// Delta           - convergence tolerance for closure weights.
// WeightThreshold - when non-nil, closure expansion past the bound is
// pruned (approximation knob).
// NState          - when > 0, at most NState states are visited per
// closure.
type Options[W any] struct {
	Queue           queue.Type
	Connect         bool
	Reverse         bool
	Delta           float64
	WeightThreshold *W
	NState          int
}

// DefaultOptions returns the defaults: Auto queue, Connect enabled,
// forward direction, DefaultDelta, no bounds.
func DefaultOptions[W any]() Options[W] {
	return Options[W]{Queue: queue.Auto, Connect: true, Delta: semiring.DefaultDelta}
}

// isEps reports whether an arc is an epsilon transition (no symbol on
// either tape).
func isEps[W any](a fst.Arc[W]) bool {
	return a.ILabel == fst.Epsilon && a.OLabel == fst.Epsilon
}

// closure computes the epsilon-closure of state s in v: closure weights
// indexed by state id, with c[s] = One. Entries for states outside the
// closure are Zero.
func closure[W any](v *fst.Vector[W], s fst.StateID, opts Options[W]) ([]W, error) {
	dopts := push.DefaultDistanceOptions[W]()
	dopts.Source = s
	dopts.Queue = opts.Queue
	dopts.Delta = opts.Delta
	dopts.ArcFilter = isEps[W]
	dopts.WeightThreshold = opts.WeightThreshold
	dopts.NState = opts.NState

	return push.ShortestDistance[W](v, dopts)
}

// RmEpsilon returns an epsilon-free automaton with the same weighted
// string relation as f. The result has zero epsilon arcs; state ids
// are preserved from f (modulo the Connect trim).
func RmEpsilon[W any](f fst.Fst[W], opts Options[W]) (*fst.Vector[W], error) {
	if f == nil {
		return nil, ErrNilFst
	}

	if opts.Reverse {
		// Remove in the reverse direction: reverse, process forward,
		// reverse back, and trim the superinitial detour states.
		fwd := opts
		fwd.Reverse = false
		fwd.Connect = true
		r, err := RmEpsilon[W](fst.Reverse[W](f), fwd)
		if err != nil {
			return nil, err
		}
		out := fst.Reverse[W](r)
		// Reversal introduces fresh superinitial epsilons; collapse them.
		return RmEpsilon[W](out, fwd)
	}

	v, ok := f.(*fst.Vector[W])
	if !ok {
		v = fst.Materialize(f)
	}
	sr := v.Semiring()

	out := fst.NewVector(sr)
	n := v.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}

	for s := 0; s < n; s++ {
		c, err := closure(v, s, opts)
		if err != nil {
			return nil, err
		}
		final := sr.Zero()
		for t := 0; t < n; t++ {
			if sr.IsZero(c[t]) {
				continue
			}
			for _, a := range v.ArcSlice(t) {
				if isEps(a) {
					continue
				}
				a.Weight = sr.Times(c[t], a.Weight)
				_ = out.AddArc(s, a)
			}
			final = sr.Plus(final, sr.Times(c[t], v.Final(t)))
		}
		_ = out.SetFinal(s, final)
	}
	if v.Start() != fst.NoState {
		_ = out.SetStart(v.Start())
	}

	if opts.Connect {
		fst.Connect(out)
	}

	return out, nil
}

// expander is the lazy epsilon-removal view: state ids coincide with
// the input's and each state's closure is computed on first access.
type expander[W any] struct {
	v    *fst.Vector[W]
	opts Options[W]
}

// Semiring returns the weight algebra of the input.
func (e *expander[W]) Semiring() semiring.Semiring[W] { return e.v.Semiring() }

// ExpandStart returns the input's start state.
func (e *expander[W]) ExpandStart() fst.StateID { return e.v.Start() }

// Expand folds the epsilon-closure of s into its rewired arcs and
// merged final weight.
func (e *expander[W]) Expand(s fst.StateID) ([]fst.Arc[W], W) {
	sr := e.v.Semiring()
	c, err := closure(e.v, s, e.opts)
	if err != nil {
		// Lazy views have no error channel on the hot path; an
		// unconverged closure yields the unexpanded remainder dropped.
		// Callers needing strict reporting use the materialized form.
		return nil, sr.Zero()
	}
	var arcs []fst.Arc[W]
	final := sr.Zero()
	for t := range c {
		if sr.IsZero(c[t]) {
			continue
		}
		for _, a := range e.v.ArcSlice(t) {
			if isEps(a) {
				continue
			}
			a.Weight = sr.Times(c[t], a.Weight)
			arcs = append(arcs, a)
		}
		final = sr.Plus(final, sr.Times(c[t], e.v.Final(t)))
	}

	return arcs, final
}

// NewLazy returns an on-the-fly epsilon-removed view of f. The view is
// epsilon-free by construction; Reverse mode and Connect are only
// available on the materialized RmEpsilon.
func NewLazy[W any](f fst.Fst[W], opts Options[W]) (*fst.Lazy[W], error) {
	if f == nil {
		return nil, ErrNilFst
	}
	v, ok := f.(*fst.Vector[W])
	if !ok {
		v = fst.Materialize(f)
	}

	return fst.NewLazy[W](&expander[W]{v: v, opts: opts},
		fst.NoEpsilons, fst.NoEpsilons), nil
}
