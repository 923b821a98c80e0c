package semiring

import (
	"math"
	"strconv"
)

// Tropical is the (min, +) semiring over float64.
//
//	Zero = +Inf   One = 0
//	Plus = min    Times = +    Divide = -
//
// It is commutative, idempotent and has the path property, which makes
// it the cheapest semiring for pruning, determinization and
// minimization. Weights are typically negative log probabilities.
type Tropical struct{}

// Name returns "tropical".
func (Tropical) Name() string { return "tropical" }

// Zero returns +Inf, the weight of "no path".
func (Tropical) Zero() float64 { return math.Inf(1) }

// One returns 0, the weight of the empty path.
func (Tropical) One() float64 { return 0 }

// Plus returns min(a, b).
func (Tropical) Plus(a, b float64) float64 { return math.Min(a, b) }

// Times returns a + b, with Zero absorbing (avoids +Inf + -Inf = NaN).
func (Tropical) Times(a, b float64) float64 {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.Inf(1)
	}

	return a + b
}

// Divide returns a - b for b != Zero; dividing by Zero yields Zero.
func (Tropical) Divide(a, b float64) float64 {
	if math.IsInf(b, 1) || math.IsInf(a, 1) {
		return math.Inf(1)
	}

	return a - b
}

// Equal reports |a-b| <= delta, treating the two infinities as equal
// only to themselves.
func (Tropical) Equal(a, b float64, delta float64) bool { return floatEqual(a, b, delta) }

// IsZero reports whether w is +Inf.
func (Tropical) IsZero(w float64) bool { return math.IsInf(w, 1) }

// Properties reports left+right semiring, commutative, idempotent, path.
func (Tropical) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

// String renders the weight; Zero prints as "Infinity" for readability.
func (Tropical) String(w float64) string { return floatString(w) }

// floatEqual is the shared delta comparison for float64-backed semirings.
func floatEqual(a, b, delta float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}

	return math.Abs(a-b) <= delta
}

// floatString is the shared rendering for float64-backed semirings.
func floatString(w float64) string {
	if math.IsInf(w, 1) {
		return "Infinity"
	}
	if math.IsInf(w, -1) {
		return "-Infinity"
	}

	return strconv.FormatFloat(w, 'g', -1, 64)
}
