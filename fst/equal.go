package fst

// EqualFst reports structural equality of a and b under the same state
// numbering: same semiring, same start, and per state the same final
// weight and the same arc sequence, with weights compared within delta.
//
// This is a test/diagnostic predicate: it distinguishes isomorphic but
// renumbered automatons. Use minimize.Equivalent for language equality.
func EqualFst[W any](a, b Fst[W], delta float64) bool {
	sra, srb := a.Semiring(), b.Semiring()
	if sra.Name() != srb.Name() {
		return false
	}
	if a.Start() != b.Start() {
		return false
	}
	na, nb := CountStates[W](a), CountStates[W](b)
	if na != nb {
		return false
	}

	for s := 0; s < na; s++ {
		if !sra.Equal(a.Final(s), b.Final(s), delta) {
			return false
		}
		if a.NumArcs(s) != b.NumArcs(s) {
			return false
		}
		ita, itb := a.Arcs(s), b.Arcs(s)
		for ita.Next() && itb.Next() {
			aa, ba := ita.Arc(), itb.Arc()
			if aa.ILabel != ba.ILabel || aa.OLabel != ba.OLabel || aa.Next != ba.Next {
				return false
			}
			if !sra.Equal(aa.Weight, ba.Weight, delta) {
				return false
			}
		}
	}

	return true
}
