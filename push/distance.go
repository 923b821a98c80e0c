package push

import (
	"fmt"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/queue"
)

// ShortestDistance computes per-state path-weight sums over the
// semiring of f.
//
// Forward (default): result[s] = ⊕ over all paths from the source to s
// of the ⊗-product of arc weights along the path (One for the source
// itself). Reverse: result[s] = ⊕ over all paths from s to any final
// state of the path weight ⊗ the final weight.
//
// The relaxation follows the generic single-source algorithm: each
// state carries a settled distance d and an unpropagated remainder r;
// dequeuing a state propagates its remainder along its (filtered) arcs
// and accumulates into the neighbors' d and r. A neighbor whose d did
// not move by more than Delta is not re-enqueued. The result is exact
// for acyclic automatons under a topological queue and converges within
// Delta for k-closed semirings otherwise.
//
// Returns ErrNoConvergence when the expansion cap is exceeded.
func ShortestDistance[W any](f fst.Fst[W], opts DistanceOptions[W]) ([]W, error) {
	if f == nil {
		return nil, ErrNilFst
	}

	if opts.Reverse {
		// Distances to final = forward distances from the superinitial
		// state of the reversal, shifted back by one id.
		rev := fst.Reverse(f)
		ropts := opts
		ropts.Reverse = false
		ropts.Source = rev.Start()
		rd, err := relax[W](rev, ropts)
		if err != nil {
			return nil, err
		}
		out := make([]W, len(rd)-1)
		copy(out, rd[1:])

		return out, nil
	}

	v, ok := f.(*fst.Vector[W])
	if !ok {
		v = fst.Materialize(f)
	}

	return relax[W](v, opts)
}

// relaxer holds the mutable state of one shortest-distance run.
type relaxer[W any] struct {
	v    *fst.Vector[W]
	opts DistanceOptions[W]

	dist     []W    // settled distance per state
	rest     []W    // unpropagated remainder per state
	inQueue  []bool // membership flag, guards duplicate enqueues
	visited  []bool // discovery flag, enforces the NState bound
	nVisited int
	q        queue.Queue
}

// relax runs the distance computation on a materialized automaton.
func relax[W any](v *fst.Vector[W], opts DistanceOptions[W]) ([]W, error) {
	sr := v.Semiring()
	n := v.NumStates()

	src := opts.Source
	if src == fst.NoState {
		src = v.Start()
	}

	r := &relaxer[W]{
		v:       v,
		opts:    opts,
		dist:    make([]W, n),
		rest:    make([]W, n),
		inQueue: make([]bool, n),
		visited: make([]bool, n),
	}
	for i := range r.dist {
		r.dist[i] = sr.Zero()
		r.rest[i] = sr.Zero()
	}
	if src == fst.NoState || n == 0 {
		return r.dist, nil
	}

	r.q = r.newQueue()
	r.dist[src] = sr.One()
	r.rest[src] = sr.One()
	r.enqueue(src)

	// Expansion cap: generous multiple of the automaton size unless the
	// caller set an explicit bound.
	limit := opts.MaxIterations
	if limit <= 0 {
		e := 0
		for s := 0; s < n; s++ {
			e += v.NumArcs(s)
		}
		limit = 16 * (n + e + 1)
	}

	expansions := 0
	for !r.q.Empty() {
		s := r.q.Dequeue()
		r.inQueue[s] = false

		expansions++
		if expansions > limit {
			return nil, fmt.Errorf("%w: after %d expansions (delta=%g)",
				ErrNoConvergence, expansions-1, opts.Delta)
		}

		// Threshold pruning: once a state's distance contributes nothing
		// beyond the bound, stop expanding along it. Deliberately silent.
		if opts.WeightThreshold != nil {
			thr := *opts.WeightThreshold
			if sr.Equal(sr.Plus(r.dist[s], thr), thr, opts.Delta) &&
				!sr.Equal(r.dist[s], thr, opts.Delta) {
				r.rest[s] = sr.Zero()

				continue
			}
		}

		rs := r.rest[s]
		r.rest[s] = sr.Zero()
		r.propagate(s, rs)
	}

	return r.dist, nil
}

// propagate relaxes every (filtered) arc out of s with remainder rs.
func (r *relaxer[W]) propagate(s fst.StateID, rs W) {
	sr := r.v.Semiring()
	for _, a := range r.v.ArcSlice(s) {
		if r.opts.ArcFilter != nil && !r.opts.ArcFilter(a) {
			continue
		}
		w := sr.Times(rs, a.Weight)
		nd := sr.Plus(r.dist[a.Next], w)
		if sr.Equal(r.dist[a.Next], nd, r.opts.Delta) {
			continue
		}

		// NState bound: do not discover states past the budget.
		if !r.visited[a.Next] {
			if r.opts.NState > 0 && r.nVisited >= r.opts.NState {
				continue
			}
			r.visited[a.Next] = true
			r.nVisited++
		}

		r.dist[a.Next] = nd
		r.rest[a.Next] = sr.Plus(r.rest[a.Next], w)
		r.enqueue(a.Next)
	}
}

// enqueue adds s unless it is already queued.
func (r *relaxer[W]) enqueue(s fst.StateID) {
	if !r.visited[s] {
		r.visited[s] = true
		r.nVisited++
	}
	if !r.inQueue[s] {
		r.inQueue[s] = true
		r.q.Enqueue(s)
	}
}

// newQueue builds the configured discipline for this run.
func (r *relaxer[W]) newQueue() queue.Queue {
	switch r.opts.Queue {
	case queue.FIFO:
		return queue.NewFIFO()
	case queue.LIFO:
		return queue.NewLIFO()
	case queue.StateOrder:
		return queue.NewStateOrder()
	case queue.ShortestFirst:
		sr := r.v.Semiring()

		// "Better" = contributes everything the pair sum has, i.e. the
		// natural order of the semiring up to delta.
		return queue.NewShortestFirst(func(a, b fst.StateID) bool {
			return sr.Equal(sr.Plus(r.dist[a], r.dist[b]), r.dist[a], r.opts.Delta)
		})
	case queue.Topological:
		if order, err := fst.TopologicalOrder(r.v); err == nil {
			return queue.NewTopological(order)
		}

		return queue.NewStateOrder()
	default:
		return queue.NewAuto(r.v)
	}
}
