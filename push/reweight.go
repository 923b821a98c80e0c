package push

import "github.com/mjansche/wfst/fst"

// Reweight redistributes the arc and final weights of v according to
// the per-state potentials, preserving the weight of every complete
// path up to the absorbed boundary factor.
//
// With ReweightToFinal, every arc s→t with weight w becomes
// potentials[s]⁻¹ ⊗ w ⊗ potentials[t] and the final weight of s becomes
// potentials[s]⁻¹ ⊗ Final(s); the start state's potential is left for
// the caller (Push re-absorbs it, PushTotal reports it). With
// ReweightToInitial the roles of source and destination swap.
//
// States with a Zero potential are left untouched: a Zero potential
// marks a state with no path to (or from) the relevant boundary, whose
// arcs are dead weight anyway.
//
// Returns ErrBadPotentials when len(potentials) != v.NumStates().
func Reweight[W any](v *fst.Vector[W], potentials []W, dir ReweightDirection) error {
	if v == nil {
		return ErrNilFst
	}
	sr := v.Semiring()
	n := v.NumStates()
	if len(potentials) != n {
		return ErrBadPotentials
	}

	for s := 0; s < n; s++ {
		if sr.IsZero(potentials[s]) {
			continue
		}

		// Snapshot, rewrite, replace: mutation during iteration is
		// disallowed by the fst contract.
		arcs := append([]fst.Arc[W](nil), v.ArcSlice(s)...)
		_ = v.DeleteArcs(s)
		for _, a := range arcs {
			if !sr.IsZero(potentials[a.Next]) {
				switch dir {
				case ReweightToFinal:
					a.Weight = sr.Divide(sr.Times(a.Weight, potentials[a.Next]), potentials[s])
				case ReweightToInitial:
					a.Weight = sr.Divide(sr.Times(potentials[s], a.Weight), potentials[a.Next])
				}
			}
			_ = v.AddArc(s, a)
		}

		if final := v.Final(s); !sr.IsZero(final) && dir == ReweightToFinal {
			_ = v.SetFinal(s, sr.Divide(final, potentials[s]))
		}
	}

	// To-initial reweighting moves the boundary factor to the finals.
	if dir == ReweightToInitial {
		for s := 0; s < n; s++ {
			if final := v.Final(s); !sr.IsZero(final) && !sr.IsZero(potentials[s]) {
				_ = v.SetFinal(s, sr.Times(potentials[s], final))
			}
		}
	}

	return nil
}
