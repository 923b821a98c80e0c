// Package queue provides the state-expansion disciplines used by the
// shortest-distance style algorithms (epsilon removal, weight pushing):
// FIFO, LIFO, state-order, shortest-weight-first and topological, plus
// an automatic selector.
//
// A Queue holds state ids awaiting relaxation. The discipline decides
// the next state to expand; correctness of the consuming algorithms
// only requires that every enqueued state is eventually dequeued, but
// the discipline can change convergence speed dramatically (topological
// order visits each state of an acyclic automaton exactly once).
//
// The priority-based disciplines use container/heap with the lazy
// decrease-key strategy: updated states are re-enqueued and the
// consumer skips entries it has already settled.
package queue

import (
	"container/heap"

	"github.com/mjansche/wfst/fst"
)

// Type enumerates the queue disciplines.
type Type int

const (
	// Auto picks Topological when the automaton is known acyclic, else
	// StateOrder.
	Auto Type = iota

	// FIFO dequeues in arrival order (breadth-first flavor).
	FIFO

	// LIFO dequeues most-recent-first (depth-first flavor).
	LIFO

	// StateOrder dequeues the smallest state id first.
	StateOrder

	// ShortestFirst dequeues the state with the best current distance,
	// per a caller-supplied comparison.
	ShortestFirst

	// Topological dequeues in a precomputed topological order.
	Topological
)

// Queue is the discipline contract. Enqueueing a state already present
// is allowed; consumers are expected to tolerate duplicate dequeues.
type Queue interface {
	// Enqueue adds s to the queue.
	Enqueue(s fst.StateID)

	// Dequeue removes and returns the next state per the discipline.
	// Calling Dequeue on an empty queue panics.
	Dequeue() fst.StateID

	// Empty reports whether the queue holds no states.
	Empty() bool

	// Len returns the number of queued states.
	Len() int
}

// fifo is a slice-backed FIFO with a moving head index.
type fifo struct {
	items []fst.StateID
	head  int
}

// NewFIFO returns a first-in-first-out queue.
func NewFIFO() Queue { return &fifo{} }

func (q *fifo) Enqueue(s fst.StateID) { q.items = append(q.items, s) }

func (q *fifo) Dequeue() fst.StateID {
	s := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}

	return s
}

func (q *fifo) Empty() bool { return q.head == len(q.items) }

func (q *fifo) Len() int { return len(q.items) - q.head }

// lifo is a slice-backed stack.
type lifo struct {
	items []fst.StateID
}

// NewLIFO returns a last-in-first-out queue.
func NewLIFO() Queue { return &lifo{} }

func (q *lifo) Enqueue(s fst.StateID) { q.items = append(q.items, s) }

func (q *lifo) Dequeue() fst.StateID {
	s := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]

	return s
}

func (q *lifo) Empty() bool { return len(q.items) == 0 }

func (q *lifo) Len() int { return len(q.items) }

// ordered is a heap-backed queue parameterized by a less function.
type ordered struct {
	items []fst.StateID
	less  func(a, b fst.StateID) bool
}

// heapImpl adapts ordered to heap.Interface.
type heapImpl struct{ *ordered }

func (h heapImpl) Len() int           { return len(h.items) }
func (h heapImpl) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h heapImpl) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h heapImpl) Push(x interface{}) { h.ordered.items = append(h.ordered.items, x.(fst.StateID)) }

func (h heapImpl) Pop() interface{} {
	old := h.ordered.items
	n := len(old)
	s := old[n-1]
	h.ordered.items = old[:n-1]

	return s
}

func (q *ordered) Enqueue(s fst.StateID) { heap.Push(heapImpl{q}, s) }

func (q *ordered) Dequeue() fst.StateID { return heap.Pop(heapImpl{q}).(fst.StateID) }

func (q *ordered) Empty() bool { return len(q.items) == 0 }

func (q *ordered) Len() int { return len(q.items) }

// NewStateOrder returns a queue that dequeues the smallest state id.
func NewStateOrder() Queue {
	return &ordered{less: func(a, b fst.StateID) bool { return a < b }}
}

// NewShortestFirst returns a queue ordered by the caller's comparison,
// typically "current distance of a is better than that of b". Updated
// states should simply be re-enqueued (lazy decrease-key).
func NewShortestFirst(less func(a, b fst.StateID) bool) Queue {
	return &ordered{less: less}
}

// NewTopological returns a queue that dequeues states in the given
// topological order (earlier rank first). States missing from order are
// ranked last in id order.
func NewTopological(order []fst.StateID) Queue {
	rank := make(map[fst.StateID]int, len(order))
	for i, s := range order {
		rank[s] = i
	}
	max := len(order)

	return &ordered{less: func(a, b fst.StateID) bool {
		ra, ok := rank[a]
		if !ok {
			ra = max + a
		}
		rb, ok := rank[b]
		if !ok {
			rb = max + b
		}

		return ra < rb
	}}
}

// NewAuto implements the Auto discipline for a materialized automaton:
// Topological when v proves acyclic, StateOrder otherwise.
func NewAuto[W any](v *fst.Vector[W]) Queue {
	if v.CheckProperties(fst.Acyclic) != 0 {
		if order, err := fst.TopologicalOrder(v); err == nil {
			return NewTopological(order)
		}
	}

	return NewStateOrder()
}
