package semiring

// Pair is the weight value of a Product semiring: a component from each
// of the two inner semirings.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Product is the componentwise product of two semirings: every
// operation applies the first semiring to First and the second to
// Second. A common instance is Product[float64, float64] over two
// Tropical components, used to carry two independent costs per arc.
type Product[A, B any] struct {
	// A is the semiring governing the First component.
	A Semiring[A]

	// B is the semiring governing the Second component.
	B Semiring[B]
}

// NewProduct builds a Product semiring from its two components.
func NewProduct[A, B any](a Semiring[A], b Semiring[B]) Product[A, B] {
	return Product[A, B]{A: a, B: b}
}

// Name returns "<first>_<second>", e.g. "tropical_tropical".
func (p Product[A, B]) Name() string { return p.A.Name() + "_" + p.B.Name() }

// Zero returns the pair of component Zeros.
func (p Product[A, B]) Zero() Pair[A, B] { return Pair[A, B]{p.A.Zero(), p.B.Zero()} }

// One returns the pair of component Ones.
func (p Product[A, B]) One() Pair[A, B] { return Pair[A, B]{p.A.One(), p.B.One()} }

// Plus applies Plus componentwise.
func (p Product[A, B]) Plus(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{p.A.Plus(a.First, b.First), p.B.Plus(a.Second, b.Second)}
}

// Times applies Times componentwise.
func (p Product[A, B]) Times(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{p.A.Times(a.First, b.First), p.B.Times(a.Second, b.Second)}
}

// Divide applies Divide componentwise.
func (p Product[A, B]) Divide(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{p.A.Divide(a.First, b.First), p.B.Divide(a.Second, b.Second)}
}

// Equal holds when both components are equal within delta.
func (p Product[A, B]) Equal(a, b Pair[A, B], delta float64) bool {
	return p.A.Equal(a.First, b.First, delta) && p.B.Equal(a.Second, b.Second, delta)
}

// IsZero holds when both components are Zero.
func (p Product[A, B]) IsZero(w Pair[A, B]) bool {
	return p.A.IsZero(w.First) && p.B.IsZero(w.Second)
}

// Properties is the intersection of the component properties.
func (p Product[A, B]) Properties() Properties {
	// Path selection does not survive pairing: min may pick different
	// arguments per component.
	return p.A.Properties() & p.B.Properties() &^ Path
}

// String renders "(first, second)".
func (p Product[A, B]) String(w Pair[A, B]) string {
	return "(" + p.A.String(w.First) + ", " + p.B.String(w.Second) + ")"
}
