package semiring

import "math"

// Log is the log semiring over float64: weights are negative log
// probabilities and Plus performs a numerically stable log-sum-exp.
//
//	Zero = +Inf                    One = 0
//	Plus = -log(e^-a + e^-b)       Times = +    Divide = -
//
// It is commutative but not idempotent: summing a path with itself
// changes the weight (probability mass adds up). Algorithms that need
// syntactic weight equality (minimization) therefore run a
// weight-pushing pre-pass first.
type Log struct{}

// Name returns "log".
func (Log) Name() string { return "log" }

// Zero returns +Inf.
func (Log) Zero() float64 { return math.Inf(1) }

// One returns 0.
func (Log) One() float64 { return 0 }

// Plus returns -log(e^-a + e^-b), computed as
// min(a,b) - log1p(e^-(|a-b|)) to stay stable for large magnitudes.
func (Log) Plus(a, b float64) float64 {
	if math.IsInf(a, 1) {
		return b
	}
	if math.IsInf(b, 1) {
		return a
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	return lo - math.Log1p(math.Exp(lo-hi))
}

// Times returns a + b, with Zero absorbing.
func (Log) Times(a, b float64) float64 {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.Inf(1)
	}

	return a + b
}

// Divide returns a - b for b != Zero; dividing by Zero yields Zero.
func (Log) Divide(a, b float64) float64 {
	if math.IsInf(b, 1) || math.IsInf(a, 1) {
		return math.Inf(1)
	}

	return a - b
}

// Equal reports |a-b| <= delta, infinities equal only to themselves.
func (Log) Equal(a, b float64, delta float64) bool { return floatEqual(a, b, delta) }

// IsZero reports whether w is +Inf.
func (Log) IsZero(w float64) bool { return math.IsInf(w, 1) }

// Properties reports left+right semiring and commutative (not idempotent).
func (Log) Properties() Properties { return LeftSemiring | RightSemiring | Commutative }

// String renders the weight.
func (Log) String(w float64) string { return floatString(w) }
