package fst

// Connect trims v down to its useful states: those reachable from the
// start (accessible) and from which some final state is reachable
// (coaccessible). Surviving states are renumbered densely, preserving
// relative order. An automaton with no start state is trimmed to empty.
//
// Complexity: O(V + E) — one forward DFS, one reverse DFS, one rebuild.
func Connect[W any](v *Vector[W]) {
	n := len(v.states)
	if v.start == NoState || n == 0 {
		*v = *NewVector(v.sr)

		return
	}

	// Forward reachability from the start state.
	accessible := make([]bool, n)
	stack := []StateID{v.start}
	accessible[v.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range v.states[s].arcs {
			if !accessible[a.Next] {
				accessible[a.Next] = true
				stack = append(stack, a.Next)
			}
		}
	}

	// Reverse reachability from the final states.
	rev := make([][]StateID, n)
	var s StateID
	for s = range v.states {
		for _, a := range v.states[s].arcs {
			rev[a.Next] = append(rev[a.Next], s)
		}
	}
	coaccessible := make([]bool, n)
	for s = range v.states {
		if !v.sr.IsZero(v.states[s].final) && !coaccessible[s] {
			coaccessible[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[t] {
			if !coaccessible[p] {
				coaccessible[p] = true
				stack = append(stack, p)
			}
		}
	}

	// Renumber survivors densely and rebuild.
	remap := make([]StateID, n)
	out := NewVector(v.sr)
	for s = range v.states {
		if accessible[s] && coaccessible[s] {
			remap[s] = out.AddState()
		} else {
			remap[s] = NoState
		}
	}
	for s = range v.states {
		if remap[s] == NoState {
			continue
		}
		for _, a := range v.states[s].arcs {
			if remap[a.Next] == NoState {
				continue
			}
			a.Next = remap[a.Next]
			_ = out.AddArc(remap[s], a)
		}
		_ = out.SetFinal(remap[s], v.states[s].final)
	}
	if remap[v.start] != NoState {
		_ = out.SetStart(remap[v.start])
	}

	*v = *out
}

// Reverse returns the reversal of f: state 0 is a fresh superinitial
// state with epsilon arcs (weighted by the original final weights) to
// the reversals of the original final states; every original state s
// maps to s+1; every arc s→t becomes t+1→s+1 with labels unchanged; the
// original start becomes the sole final state with weight One.
//
// Weight order is preserved as-is, which is exact for the commutative
// semirings this module ships.
func Reverse[W any](f Fst[W]) *Vector[W] {
	sr := f.Semiring()
	out := NewVector(sr)
	n := CountStates[W](f)

	// Superinitial state plus one image per original state.
	super := out.AddState()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	_ = out.SetStart(super)

	for it := f.States(); it.Next(); {
		s := it.ID()
		if final := f.Final(s); !sr.IsZero(final) {
			_ = out.AddArc(super, Arc[W]{ILabel: Epsilon, OLabel: Epsilon, Weight: final, Next: s + 1})
		}
		for ai := f.Arcs(s); ai.Next(); {
			a := ai.Arc()
			_ = out.AddArc(a.Next+1, Arc[W]{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight, Next: s + 1})
		}
	}
	if start := f.Start(); start != NoState {
		_ = out.SetFinal(start+1, sr.One())
	}

	return out
}
