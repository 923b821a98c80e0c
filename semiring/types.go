// Package semiring defines the weight algebra that every automaton
// algorithm in this module is generic over.
//
// A semiring is a set W with two associative operations: Plus (⊕, "sum
// over alternative paths") and Times (⊗, "extension along a path"),
// where Times distributes over Plus, Zero is the Plus identity and
// absorbing for Times, and One is the Times identity.
//
// Weights are plain Go values (float64, bool, pairs); all operations are
// exposed through a Semiring[W] strategy object so that composition,
// epsilon removal, pushing and minimization can be written once and run
// over any of the concrete semirings.
//
// Equality is defined up to a numeric tolerance (delta) for the floating
// semirings; DefaultDelta is the module-wide default.
//
// This file declares Properties, the Semiring interface, shared
// constants, and the sentinel errors of the package.
package semiring

import "errors"

// Sentinel errors for semiring registry operations.
var (
	// ErrDuplicateSemiring indicates Register was called twice for one name.
	ErrDuplicateSemiring = errors.New("semiring: name already registered")

	// ErrEmptyName indicates Register was called with an empty name.
	ErrEmptyName = errors.New("semiring: name is empty")

	// ErrNilFactory indicates Register was called with a nil factory.
	ErrNilFactory = errors.New("semiring: factory is nil")
)

// DefaultDelta is the default tolerance for approximate weight equality
// in floating-point semirings.
const DefaultDelta = 1.0 / 1024

// Properties is a bitmask of algebraic facts about a semiring. Algorithms
// consult it to pick a legal strategy (e.g. minimization requires
// Idempotent, or a weight-pushing pre-pass otherwise).
type Properties uint32

const (
	// LeftSemiring: Times left-distributes over Plus.
	LeftSemiring Properties = 1 << iota

	// RightSemiring: Times right-distributes over Plus.
	RightSemiring

	// Commutative: a ⊗ b == b ⊗ a.
	Commutative

	// Idempotent: a ⊕ a == a.
	Idempotent

	// Path: a ⊕ b ∈ {a, b} (the semiring selects one of its arguments).
	Path
)

// Has reports whether all bits in mask are set.
func (p Properties) Has(mask Properties) bool { return p&mask == mask }

// Semiring is the strategy object over a concrete weight type W.
//
// Contract:
//   - Zero is the Plus identity and absorbing for Times.
//   - One is the Times identity.
//   - Plus and Times are associative; Times distributes over Plus per
//     the Left/RightSemiring property bits.
//   - Divide is the (left-)inverse of Times where defined:
//     Times(Divide(a, b), b) == a for non-Zero b. Dividing by Zero
//     yields Zero.
//   - Equal compares within delta; Zero equals only Zero.
//
// Implementations are stateless values and safe for concurrent use.
type Semiring[W any] interface {
	// Name is the registry name of the semiring (e.g. "tropical").
	Name() string

	// Zero returns the additive identity (the "no path" weight).
	Zero() W

	// One returns the multiplicative identity (the "free move" weight).
	One() W

	// Plus combines weights of alternative paths.
	Plus(a, b W) W

	// Times extends a path weight by an arc weight.
	Times(a, b W) W

	// Divide removes a factor: Times(Divide(a, b), b) == a for b != Zero.
	Divide(a, b W) W

	// Equal reports approximate equality within delta.
	Equal(a, b W, delta float64) bool

	// IsZero reports whether w is (exactly) the Zero weight.
	IsZero(w W) bool

	// Properties returns the algebraic property bitmask.
	Properties() Properties

	// String renders w for diagnostics and error context.
	String(w W) string
}
