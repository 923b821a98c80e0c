package fst

// Properties is a bitmask of derived facts about an automaton,
// computed lazily and cached. Each bit means "the fact is known to
// hold"; an unset bit means "false or not yet computed". The Vector
// implementation tracks which bits are known and recomputes on demand.
type Properties uint32

const (
	// Acyclic: the automaton contains no cycle.
	Acyclic Properties = 1 << iota

	// ILabelSorted: every state's arcs are sorted by input label.
	ILabelSorted

	// OLabelSorted: every state's arcs are sorted by output label.
	OLabelSorted

	// NoEpsilons: no arc has both labels equal to Epsilon.
	NoEpsilons

	// NoIEpsilons: no arc has input label Epsilon.
	NoIEpsilons

	// NoOEpsilons: no arc has output label Epsilon.
	NoOEpsilons

	// IDeterministic: no state has two arcs sharing an input label.
	IDeterministic

	// Unweighted: every arc weight and final weight is Zero or One.
	Unweighted

	// Error: the automaton was poisoned by a failed construction and
	// must not be consumed.
	Error
)

// AllProperties masks every property bit.
const AllProperties = Acyclic | ILabelSorted | OLabelSorted | NoEpsilons |
	NoIEpsilons | NoOEpsilons | IDeterministic | Unweighted | Error

// computeProperties scans a Vector and returns the full property mask
// (Error excluded; that bit is sticky, not derived).
func computeProperties[W any](v *Vector[W]) Properties {
	sr := v.sr
	props := ILabelSorted | OLabelSorted | NoEpsilons | NoIEpsilons |
		NoOEpsilons | IDeterministic | Unweighted

	var s StateID
	for s = range v.states {
		st := &v.states[s]
		if !sr.IsZero(st.final) && !sr.Equal(st.final, sr.One(), 0) {
			props &^= Unweighted
		}
		seen := make(map[Label]struct{}, len(st.arcs))
		for i, a := range st.arcs {
			if a.ILabel == Epsilon {
				props &^= NoIEpsilons
			}
			if a.OLabel == Epsilon {
				props &^= NoOEpsilons
			}
			if a.ILabel == Epsilon && a.OLabel == Epsilon {
				props &^= NoEpsilons
			}
			if !sr.Equal(a.Weight, sr.One(), 0) && !sr.IsZero(a.Weight) {
				props &^= Unweighted
			}
			if i > 0 {
				if st.arcs[i-1].ILabel > a.ILabel {
					props &^= ILabelSorted
				}
				if st.arcs[i-1].OLabel > a.OLabel {
					props &^= OLabelSorted
				}
			}
			if _, dup := seen[a.ILabel]; dup {
				props &^= IDeterministic
			}
			seen[a.ILabel] = struct{}{}
		}
	}

	if isAcyclic(v) {
		props |= Acyclic
	}

	return props
}

// isAcyclic runs an iterative three-color DFS over all states.
func isAcyclic[W any](v *Vector[W]) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // on the DFS stack
		black = 2 // fully explored
	)
	color := make([]byte, len(v.states))

	type frame struct {
		s   StateID
		arc int
	}
	var stack []frame

	var root StateID
	for root = range v.states {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack, frame{s: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			arcs := v.states[top.s].arcs
			if top.arc >= len(arcs) {
				color[top.s] = black
				stack = stack[:len(stack)-1]

				continue
			}
			next := arcs[top.arc].Next
			top.arc++
			switch color[next] {
			case gray:
				return false
			case white:
				color[next] = gray
				stack = append(stack, frame{s: next})
			}
		}
	}

	return true
}

// TopologicalOrder returns the states of v in a topological order of
// the arc relation (sources before destinations), or ErrCyclic.
// States unreachable from the start are still included.
func TopologicalOrder[W any](v *Vector[W]) ([]StateID, error) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]byte, len(v.states))
	order := make([]StateID, 0, len(v.states))

	type frame struct {
		s   StateID
		arc int
	}
	var stack []frame

	var root StateID
	for root = range v.states {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack, frame{s: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			arcs := v.states[top.s].arcs
			if top.arc >= len(arcs) {
				color[top.s] = black
				order = append(order, top.s)
				stack = stack[:len(stack)-1]

				continue
			}
			next := arcs[top.arc].Next
			top.arc++
			switch color[next] {
			case gray:
				return nil, ErrCyclic
			case white:
				color[next] = gray
				stack = append(stack, frame{s: next})
			}
		}
	}

	// Post-order is reverse topological; flip it.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
