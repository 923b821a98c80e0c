package push

import (
	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/queue"
)

// Push reweights f so that weight is concentrated as early (to-initial)
// or as late (to-final, the default) as possible along every path,
// leaving the weight of each accepted string unchanged within delta.
// The result is a fresh automaton; f itself is not modified.
//
// With RemoveTotalWeight set, the overall automaton weight is factored
// out and dropped; use PushTotal to receive it instead.
func Push[W any](f fst.Fst[W], opts PushOptions) (*fst.Vector[W], error) {
	out, _, err := PushTotal(f, opts)

	return out, err
}

// PushTotal is Push returning the total automaton weight alongside.
// When RemoveTotalWeight is unset the total is still reported but also
// re-absorbed at the automaton's boundary.
func PushTotal[W any](f fst.Fst[W], opts PushOptions) (*fst.Vector[W], W, error) {
	var zero W
	if f == nil {
		return nil, zero, ErrNilFst
	}
	sr := f.Semiring()

	v, ok := f.(*fst.Vector[W])
	if ok {
		v = v.Clone()
	} else {
		v = fst.Materialize(f)
	}
	start := v.Start()
	if start == fst.NoState || v.NumStates() == 0 {
		return v, sr.Zero(), nil
	}

	dopts := DefaultDistanceOptions[W]()
	dopts.Delta = opts.Delta
	dopts.Queue = queue.Auto

	if opts.ToInitial {
		// The total automaton weight is invariant under reweighting;
		// capture it up front as the distance-to-final of the start.
		ropts := dopts
		ropts.Reverse = true
		rdist, err := ShortestDistance(v, ropts)
		if err != nil {
			return nil, zero, err
		}
		total := rdist[start]

		// Forward distances from the start become the potentials;
		// V(start) = One, so there is no boundary factor to re-absorb.
		dist, err := ShortestDistance(v, dopts)
		if err != nil {
			return nil, zero, err
		}
		if err := Reweight(v, dist, ReweightToInitial); err != nil {
			return nil, zero, err
		}

		if opts.RemoveTotalWeight {
			divideAtStart(v, total)
		}

		return v, total, nil
	}

	// To-final: distances to the final states become the potentials and
	// the start state's potential is the total automaton weight.
	dopts.Reverse = true
	dist, err := ShortestDistance(v, dopts)
	if err != nil {
		return nil, zero, err
	}
	if err := Reweight(v, dist, ReweightToFinal); err != nil {
		return nil, zero, err
	}

	total := dist[start]
	if !opts.RemoveTotalWeight && !sr.IsZero(total) {
		// Re-absorb the boundary factor at the start state.
		arcs := append([]fst.Arc[W](nil), v.ArcSlice(start)...)
		_ = v.DeleteArcs(start)
		for _, a := range arcs {
			a.Weight = sr.Times(total, a.Weight)
			_ = v.AddArc(start, a)
		}
		if final := v.Final(start); !sr.IsZero(final) {
			_ = v.SetFinal(start, sr.Times(total, final))
		}
	}

	return v, total, nil
}

// divideAtStart factors total out of the start state's outgoing arcs
// and final weight.
func divideAtStart[W any](v *fst.Vector[W], total W) {
	sr := v.Semiring()
	start := v.Start()
	if sr.IsZero(total) || start == fst.NoState {
		return
	}
	arcs := append([]fst.Arc[W](nil), v.ArcSlice(start)...)
	_ = v.DeleteArcs(start)
	for _, a := range arcs {
		a.Weight = sr.Divide(a.Weight, total)
		_ = v.AddArc(start, a)
	}
	if final := v.Final(start); !sr.IsZero(final) {
		_ = v.SetFinal(start, sr.Divide(final, total))
	}
}
