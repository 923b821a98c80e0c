package semiring

// Boolean is the two-element semiring over bool: an automaton over
// Boolean is an unweighted acceptor (a path either exists or does not).
//
//	Zero = false   One = true
//	Plus = ∨       Times = ∧
//
// Divide is defined only for a One divisor (Divide(a, true) == a);
// dividing by Zero yields Zero.
type Boolean struct{}

// Name returns "boolean".
func (Boolean) Name() string { return "boolean" }

// Zero returns false.
func (Boolean) Zero() bool { return false }

// One returns true.
func (Boolean) One() bool { return true }

// Plus returns a ∨ b.
func (Boolean) Plus(a, b bool) bool { return a || b }

// Times returns a ∧ b.
func (Boolean) Times(a, b bool) bool { return a && b }

// Divide returns a when b is One, Zero otherwise.
func (Boolean) Divide(a, b bool) bool { return a && b }

// Equal is exact; delta is ignored for a discrete semiring.
func (Boolean) Equal(a, b bool, _ float64) bool { return a == b }

// IsZero reports whether w is false.
func (Boolean) IsZero(w bool) bool { return !w }

// Properties reports left+right semiring, commutative, idempotent, path.
func (Boolean) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

// String renders "true" or "false".
func (Boolean) String(w bool) string {
	if w {
		return "true"
	}

	return "false"
}
