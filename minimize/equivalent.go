package minimize

import (
	"fmt"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/push"
)

// Equivalent reports whether a and b assign the same weight (within
// delta) to every string pair. Both inputs must be input-deterministic
// and epsilon-free; otherwise ErrNondeterministic / ErrHasEpsilons is
// returned. A semiring mismatch is a construction error.
//
// The test normalizes both machines - trim, push weights to final with
// the total weight factored out - and then walks them in lockstep: the
// totals must agree, and from the start pair every reachable state pair
// must agree on final weight and on the (ilabel, olabel, weight, next)
// signature of every arc.
func Equivalent[W any](a, b fst.Fst[W], opts ...Option) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilFst
	}
	cfg := buildOptions(opts)
	sr := a.Semiring()
	if sr.Name() != b.Semiring().Name() {
		return false, fmt.Errorf("%w: %q vs %q", fst.ErrSemiringMismatch,
			sr.Name(), b.Semiring().Name())
	}

	va, err := normalize[W](a, cfg)
	if err != nil {
		return false, err
	}
	vb, err := normalize[W](b, cfg)
	if err != nil {
		return false, err
	}

	// The factored-out totals carry each machine's overall weight.
	if !sr.Equal(va.total, vb.total, cfg.delta) {
		return false, nil
	}

	sa, sb := va.v.Start(), vb.v.Start()
	if sa == fst.NoState || sb == fst.NoState {
		// A trimmed machine with no start accepts nothing.
		return sa == sb, nil
	}

	type pair struct{ a, b fst.StateID }
	seen := map[pair]bool{{sa, sb}: true}
	stack := []pair{{sa, sb}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !sr.Equal(va.v.Final(p.a), vb.v.Final(p.b), cfg.delta) {
			return false, nil
		}
		aa, ba := va.v.ArcSlice(p.a), vb.v.ArcSlice(p.b)
		if len(aa) != len(ba) {
			return false, nil
		}
		for i := range aa {
			x, y := aa[i], ba[i]
			if x.ILabel != y.ILabel || x.OLabel != y.OLabel {
				return false, nil
			}
			if !sr.Equal(x.Weight, y.Weight, cfg.delta) {
				return false, nil
			}
			np := pair{x.Next, y.Next}
			if !seen[np] {
				seen[np] = true
				stack = append(stack, np)
			}
		}
	}

	return true, nil
}

// normalized is a machine in the canonical form the lockstep walk
// compares: trimmed, ilabel-sorted, weights pushed to final with the
// total factored out.
type normalized[W any] struct {
	v     *fst.Vector[W]
	total W
}

// normalize validates the preconditions and canonicalizes f.
func normalize[W any](f fst.Fst[W], cfg options) (normalized[W], error) {
	var out normalized[W]

	v, ok := f.(*fst.Vector[W])
	if ok {
		v = v.Clone()
	} else {
		v = fst.Materialize(f)
	}
	if v.CheckProperties(fst.IDeterministic) == 0 {
		return out, ErrNondeterministic
	}
	if v.CheckProperties(fst.NoIEpsilons|fst.NoOEpsilons) != fst.NoIEpsilons|fst.NoOEpsilons {
		return out, ErrHasEpsilons
	}

	fst.Connect(v)
	pushed, total, err := push.PushTotal[W](v, push.PushOptions{
		RemoveTotalWeight: true,
		Delta:             cfg.delta,
	})
	if err != nil {
		return out, err
	}
	fst.ArcSort(pushed, fst.ByILabel)

	out.v = pushed
	out.total = total

	return out, nil
}
