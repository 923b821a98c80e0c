package queue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/queue"
	"github.com/mjansche/wfst/semiring"
)

// drain empties q and returns the dequeue order.
func drain(q queue.Queue) []fst.StateID {
	var out []fst.StateID
	for !q.Empty() {
		out = append(out, q.Dequeue())
	}

	return out
}

func TestFIFO(t *testing.T) {
	q := queue.NewFIFO()
	for _, s := range []fst.StateID{3, 1, 2} {
		q.Enqueue(s)
	}
	require.Equal(t, 3, q.Len())
	require.Equal(t, []fst.StateID{3, 1, 2}, drain(q))
	require.True(t, q.Empty())
}

func TestLIFO(t *testing.T) {
	q := queue.NewLIFO()
	for _, s := range []fst.StateID{3, 1, 2} {
		q.Enqueue(s)
	}
	require.Equal(t, []fst.StateID{2, 1, 3}, drain(q))
}

func TestStateOrder(t *testing.T) {
	q := queue.NewStateOrder()
	for _, s := range []fst.StateID{3, 1, 2} {
		q.Enqueue(s)
	}
	require.Equal(t, []fst.StateID{1, 2, 3}, drain(q))
}

func TestShortestFirst(t *testing.T) {
	dist := map[fst.StateID]float64{1: 5, 2: 1, 3: 3}
	q := queue.NewShortestFirst(func(a, b fst.StateID) bool {
		return dist[a] < dist[b]
	})
	for s := range dist {
		q.Enqueue(s)
	}
	require.Equal(t, []fst.StateID{2, 3, 1}, drain(q))
}

func TestTopological(t *testing.T) {
	q := queue.NewTopological([]fst.StateID{2, 0, 1})
	for _, s := range []fst.StateID{0, 1, 2} {
		q.Enqueue(s)
	}
	require.Equal(t, []fst.StateID{2, 0, 1}, drain(q))

	// States outside the precomputed order rank last, in id order.
	q = queue.NewTopological([]fst.StateID{1})
	for _, s := range []fst.StateID{5, 1, 4} {
		q.Enqueue(s)
	}
	require.Equal(t, []fst.StateID{1, 4, 5}, drain(q))
}

func TestAutoPicksTopological(t *testing.T) {
	sr := semiring.Tropical{}

	// Acyclic chain: Auto must dequeue in topological (here: id) order
	// regardless of enqueue order.
	v := fst.NewVector[float64](sr)
	s0, s1, s2 := v.AddState(), v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: s1})
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: s2})
	_ = v.SetFinal(s2, 0)

	q := queue.NewAuto(v)
	q.Enqueue(s2)
	q.Enqueue(s0)
	q.Enqueue(s1)
	require.Equal(t, []fst.StateID{s0, s1, s2}, drain(q))

	// A self-loop makes the automaton cyclic: Auto falls back to state
	// order, which happens to coincide here.
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 1, Next: s1})
	q = queue.NewAuto(v)
	q.Enqueue(s1)
	q.Enqueue(s0)
	require.Equal(t, []fst.StateID{s0, s1}, drain(q))
}
