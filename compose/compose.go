package compose

import (
	"fmt"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/semiring"
)

// stateTuple is one product state: a state from each input plus the
// filter state.
type stateTuple struct {
	s1, s2 fst.StateID
	fs     FilterState
}

// engine is the lazy product-construction expander: it interns
// (s1, s2, fs) tuples to dense ids and computes the arcs of a product
// state on demand. It implements fst.Expander.
type engine[W any] struct {
	a, b fst.Fst[W]
	sr   semiring.Semiring[W]
	flt  filter
	bm   Matcher[W] // matches B's input tape against A's output labels

	ids    map[stateTuple]fst.StateID
	tuples []stateTuple
}

// newEngine validates the inputs and builds the expander.
func newEngine[W any](a, b fst.Fst[W], opts Options) (*engine[W], error) {
	if a == nil || b == nil {
		return nil, ErrNilFst
	}
	sra, srb := a.Semiring(), b.Semiring()
	if sra.Name() != srb.Name() {
		return nil, fmt.Errorf("%w: %q vs %q", fst.ErrSemiringMismatch, sra.Name(), srb.Name())
	}

	ft := opts.Filter
	if ft == AutoFilter {
		// An epsilon-free side on the shared tape rules out interleaving
		// ambiguity entirely; the degenerate filter is then legal.
		if a.Properties(fst.NoOEpsilons) != 0 || b.Properties(fst.NoIEpsilons) != 0 {
			ft = NoEpsilonFilter
		} else {
			ft = SequenceFilter
		}
	}
	flt, err := newFilter(ft)
	if err != nil {
		return nil, err
	}

	return &engine[W]{
		a:   a,
		b:   b,
		sr:  sra,
		flt: flt,
		bm:  newMatcher(b, MatchInput),
		ids: make(map[stateTuple]fst.StateID),
	}, nil
}

// Semiring returns the shared weight algebra.
func (e *engine[W]) Semiring() semiring.Semiring[W] { return e.sr }

// intern maps a tuple to its dense product state id, allocating one on
// first sight.
func (e *engine[W]) intern(t stateTuple) fst.StateID {
	if id, ok := e.ids[t]; ok {
		return id
	}
	id := len(e.tuples)
	e.ids[t] = id
	e.tuples = append(e.tuples, t)

	return id
}

// ExpandStart interns the (startA, startB, filter-start) tuple.
func (e *engine[W]) ExpandStart() fst.StateID {
	s1, s2 := e.a.Start(), e.b.Start()
	if s1 == fst.NoState || s2 == fst.NoState {
		return fst.NoState
	}

	return e.intern(stateTuple{s1: s1, s2: s2, fs: e.flt.start()})
}

// Expand produces the arcs and final weight of one product state.
//
// Moves considered by the product construction:
//
//   - shared label: every A arc with output ℓ != ε against every B arc
//     with input ℓ, weight w_a ⊗ w_b;
//   - A epsilon-passthrough: A arc with output ε, B stands still,
//     labels (a.ILabel, ε), weight w_a;
//   - B epsilon-passthrough: B arc with input ε, A stands still,
//     labels (ε, b.OLabel), weight w_b;
//   - joint epsilon: A output-ε arc against B input-ε arc.
//
// The filter admits or blocks each move and supplies the successor
// filter state.
func (e *engine[W]) Expand(s fst.StateID) ([]fst.Arc[W], W) {
	t := e.tuples[s]
	var arcs []fst.Arc[W]

	for _, aa := range arcsOf(e.a, t.s1) {
		if aa.OLabel == fst.Epsilon {
			// A moves alone.
			if nfs := e.flt.step(moveA, t.fs); nfs != filterBlocked {
				arcs = append(arcs, fst.Arc[W]{
					ILabel: aa.ILabel,
					OLabel: fst.Epsilon,
					Weight: aa.Weight,
					Next:   e.intern(stateTuple{s1: aa.Next, s2: t.s2, fs: nfs}),
				})
			}
			// Joint epsilon move.
			if nfs := e.flt.step(moveBothEps, t.fs); nfs != filterBlocked {
				for it := e.bm.Find(t.s2, fst.Epsilon); it.Next(); {
					ba := it.Arc()
					arcs = append(arcs, fst.Arc[W]{
						ILabel: aa.ILabel,
						OLabel: ba.OLabel,
						Weight: e.sr.Times(aa.Weight, ba.Weight),
						Next:   e.intern(stateTuple{s1: aa.Next, s2: ba.Next, fs: nfs}),
					})
				}
			}

			continue
		}

		// Shared non-epsilon label.
		if nfs := e.flt.step(moveMatch, t.fs); nfs != filterBlocked {
			for it := e.bm.Find(t.s2, aa.OLabel); it.Next(); {
				ba := it.Arc()
				arcs = append(arcs, fst.Arc[W]{
					ILabel: aa.ILabel,
					OLabel: ba.OLabel,
					Weight: e.sr.Times(aa.Weight, ba.Weight),
					Next:   e.intern(stateTuple{s1: aa.Next, s2: ba.Next, fs: nfs}),
				})
			}
		}
	}

	// B moves alone on its input epsilons.
	if nfs := e.flt.step(moveB, t.fs); nfs != filterBlocked {
		for it := e.bm.Find(t.s2, fst.Epsilon); it.Next(); {
			ba := it.Arc()
			arcs = append(arcs, fst.Arc[W]{
				ILabel: fst.Epsilon,
				OLabel: ba.OLabel,
				Weight: ba.Weight,
				Next:   e.intern(stateTuple{s1: t.s1, s2: ba.Next, fs: nfs}),
			})
		}
	}

	// Final iff both components are final.
	final := e.sr.Zero()
	af, bf := e.a.Final(t.s1), e.b.Final(t.s2)
	if !e.sr.IsZero(af) && !e.sr.IsZero(bf) {
		final = e.sr.Times(af, bf)
	}

	return arcs, final
}

// NewLazy returns the on-the-fly composition of a and b as a cached
// lazy automaton. Construction-time validation (nil inputs, semiring
// mismatch) fails before any state is produced.
func NewLazy[W any](a, b fst.Fst[W], opts ...Option) (*fst.Lazy[W], error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	e, err := newEngine(a, b, cfg)
	if err != nil {
		return nil, err
	}

	return fst.NewLazy[W](e, 0, 0), nil
}

// Compose materializes the composition of a and b. With Connect set
// (the default) the result is trimmed to its useful states.
func Compose[W any](a, b fst.Fst[W], opts ...Option) (*fst.Vector[W], error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	lazy, err := NewLazy(a, b, append([]Option{}, opts...)...)
	if err != nil {
		return nil, err
	}
	out := fst.Materialize[W](lazy)
	if cfg.Connect {
		fst.Connect(out)
	}

	return out, nil
}
