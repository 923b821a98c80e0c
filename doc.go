// Package wfst is a library for building, transforming, and querying
// weighted finite-state transducers over abstract semirings.
//
// What's inside:
//
//	semiring/  — weight algebras: tropical, log, boolean, product pairs,
//	             plus an explicit name registry
//	fst/       — the automaton model: arcs, mutable Vector storage,
//	             lazy cached views, properties, connect, arc sorting
//	queue/     — state-expansion disciplines (FIFO, LIFO, state-order,
//	             shortest-first, topological, auto)
//	compose/   — on-the-fly composition with pluggable matchers and
//	             epsilon-interleaving filters
//	rmepsilon/ — epsilon removal through weighted closures
//	push/      — generalized shortest distance and weight pushing
//	minimize/  — minimization and weighted equivalence
//
// The algorithms are generic over the weight type: build a machine over
// semiring.Tropical for shortest-path style costs, semiring.Log for
// probability mass, or any Semiring implementation of your own.
//
// Quick taste: one transition (a:b)/2 composed with (b:c)/3 yields
// (a:c)/5 in the tropical semiring:
//
//	a := fst.NewVector[float64](semiring.Tropical{})
//	...
//	c, err := compose.Compose[float64](a, b)
//
// Everything is synchronous and single-threaded; independent automatons
// may be processed concurrently. I/O, symbol tables and drawing are
// deliberately out of scope: persistence layers talk to the same
// AddState/AddArc/iterator contracts the algorithms use.
package wfst
