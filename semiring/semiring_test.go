// Package semiring_test validates the algebraic contracts of the
// built-in semirings and the behavior of the name registry.
package semiring_test

import (
	"math"
	"testing"

	"github.com/mjansche/wfst/semiring"
)

func TestTropical_Identities(t *testing.T) {
	sr := semiring.Tropical{}
	// Zero is the Plus identity.
	if got := sr.Plus(sr.Zero(), 3); got != 3 {
		t.Fatalf("Plus(Zero, 3) = %v, want 3", got)
	}
	// One is the Times identity.
	if got := sr.Times(sr.One(), 3); got != 3 {
		t.Fatalf("Times(One, 3) = %v, want 3", got)
	}
	// Zero absorbs Times.
	if got := sr.Times(sr.Zero(), 3); !sr.IsZero(got) {
		t.Fatalf("Times(Zero, 3) = %v, want Zero", got)
	}
	// Times(Zero, -Inf) must not produce NaN.
	if got := sr.Times(sr.Zero(), math.Inf(-1)); !sr.IsZero(got) {
		t.Fatalf("Times(Zero, -Inf) = %v, want Zero", got)
	}
}

func TestTropical_PlusIsMin(t *testing.T) {
	sr := semiring.Tropical{}
	if got := sr.Plus(2, 3); got != 2 {
		t.Fatalf("Plus(2, 3) = %v, want 2", got)
	}
}

func TestTropical_DivideInvertsTimes(t *testing.T) {
	sr := semiring.Tropical{}
	a, b := 5.0, 2.0
	if got := sr.Times(sr.Divide(a, b), b); !sr.Equal(got, a, 0) {
		t.Fatalf("Times(Divide(%v, %v), %v) = %v, want %v", a, b, b, got, a)
	}
	// Dividing by Zero yields Zero.
	if got := sr.Divide(3, sr.Zero()); !sr.IsZero(got) {
		t.Fatalf("Divide(3, Zero) = %v, want Zero", got)
	}
}

func TestLog_PlusIsLogSumExp(t *testing.T) {
	sr := semiring.Log{}
	// -log(e^-1 + e^-1) = 1 - log 2.
	want := 1 - math.Log(2)
	if got := sr.Plus(1, 1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Plus(1, 1) = %v, want %v", got, want)
	}
	// Zero is still the identity.
	if got := sr.Plus(sr.Zero(), 7); got != 7 {
		t.Fatalf("Plus(Zero, 7) = %v, want 7", got)
	}
	// Stability: a huge magnitude difference collapses to the smaller.
	if got := sr.Plus(1, 1000); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Plus(1, 1000) = %v, want ~1", got)
	}
}

func TestLog_NotIdempotent(t *testing.T) {
	sr := semiring.Log{}
	if sr.Properties().Has(semiring.Idempotent) {
		t.Fatal("log semiring must not report Idempotent")
	}
	if got := sr.Plus(2, 2); sr.Equal(got, 2, 1e-9) {
		t.Fatalf("Plus(2, 2) = %v, must differ from 2", got)
	}
}

func TestBoolean_Algebra(t *testing.T) {
	sr := semiring.Boolean{}
	if !sr.Plus(false, true) || sr.Plus(false, false) {
		t.Fatal("boolean Plus must be disjunction")
	}
	if sr.Times(true, false) || !sr.Times(true, true) {
		t.Fatal("boolean Times must be conjunction")
	}
	if !sr.Properties().Has(semiring.Idempotent | semiring.Path) {
		t.Fatal("boolean semiring must be idempotent with the path property")
	}
}

func TestProduct_Componentwise(t *testing.T) {
	sr := semiring.NewProduct[float64, float64](semiring.Tropical{}, semiring.Log{})
	a := semiring.Pair[float64, float64]{First: 2, Second: 2}
	b := semiring.Pair[float64, float64]{First: 3, Second: 3}
	got := sr.Plus(a, b)
	if got.First != 2 {
		t.Fatalf("product First = %v, want tropical min 2", got.First)
	}
	if got.Second >= 2 {
		t.Fatalf("product Second = %v, want log-sum below 2", got.Second)
	}
	if sr.Name() != "tropical_log" {
		t.Fatalf("product name = %q", sr.Name())
	}
	// Idempotence does not survive the pairing with log.
	if sr.Properties().Has(semiring.Idempotent) {
		t.Fatal("tropical×log product must not be idempotent")
	}
}

func TestRegistry(t *testing.T) {
	semiring.RegisterBuiltins()
	// Idempotent: a second call must not fail or disturb anything.
	semiring.RegisterBuiltins()

	sr, ok := semiring.LookupAs[float64]("tropical")
	if !ok {
		t.Fatal("tropical not found after RegisterBuiltins")
	}
	if sr.Name() != "tropical" {
		t.Fatalf("lookup returned %q", sr.Name())
	}

	// Wrong weight type must not assert.
	if _, ok := semiring.LookupAs[bool]("tropical"); ok {
		t.Fatal("LookupAs[bool] must fail for a float64 semiring")
	}

	// Duplicate registration is an error.
	if err := semiring.Register("tropical", func() any { return semiring.Tropical{} }); err == nil {
		t.Fatal("expected ErrDuplicateSemiring")
	}
	if err := semiring.Register("", func() any { return nil }); err != semiring.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := semiring.Register("x", nil); err != semiring.ErrNilFactory {
		t.Fatalf("expected ErrNilFactory, got %v", err)
	}
}
