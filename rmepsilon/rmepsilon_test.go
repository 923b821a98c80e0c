package rmepsilon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/rmepsilon"
	"github.com/mjansche/wfst/semiring"
)

// epsChain builds 0 -ε/1-> 1 -ε/1-> 2 with state 2 final at weight 0;
// the whole machine collapses to a single final state of weight 2.
func epsChain() *fst.Vector[float64] {
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1, s2 := v.AddState(), v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: 1, Next: s1})
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: 1, Next: s2})
	_ = v.SetFinal(s2, 0)

	return v
}

func TestRmEpsilonChainCollapses(t *testing.T) {
	out, err := rmepsilon.RmEpsilon[float64](epsChain(), rmepsilon.DefaultOptions[float64]())
	require.NoError(t, err)

	require.Equal(t, 1, out.NumStates())
	require.Equal(t, 0, out.NumArcs(out.Start()))
	require.Equal(t, 2.0, out.Final(out.Start()))
	require.NotZero(t, out.Properties(fst.NoEpsilons))
}

func TestRmEpsilonPreservesWeights(t *testing.T) {
	// 0 -ε/1-> 1 -a/2-> 2(final 3), plus a direct 0 -a/5-> 2.
	// Accepting weights for "a": min(1+2+3, 5+3) = 6.
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1, s2 := v.AddState(), v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: 1, Next: s1})
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 5, Next: s2})
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 2, Next: s2})
	_ = v.SetFinal(s2, 3)

	out, err := rmepsilon.RmEpsilon[float64](v, rmepsilon.DefaultOptions[float64]())
	require.NoError(t, err)

	// Both accepting paths survive, epsilon cost folded into the arc.
	best := sr.Zero()
	for _, a := range out.ArcSlice(out.Start()) {
		require.Equal(t, 1, a.ILabel)
		best = sr.Plus(best, sr.Times(a.Weight, out.Final(a.Next)))
	}
	require.Equal(t, 6.0, best)
}

func TestRmEpsilonEpsilonCycle(t *testing.T) {
	// An epsilon cycle 0 <-> 1 in the tropical semiring converges: the
	// cycle weight 1+1 is worse than staying put, so closures are finite.
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	s0, s1 := v.AddState(), v.AddState()
	_ = v.SetStart(s0)
	_ = v.AddArc(s0, fst.Arc[float64]{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: 1, Next: s1})
	_ = v.AddArc(s1, fst.Arc[float64]{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: 1, Next: s0})
	_ = v.SetFinal(s1, 0)

	out, err := rmepsilon.RmEpsilon[float64](v, rmepsilon.DefaultOptions[float64]())
	require.NoError(t, err)
	require.Equal(t, 1, out.NumStates())
	require.Equal(t, 1.0, out.Final(out.Start()))
}

func TestRmEpsilonNStateBound(t *testing.T) {
	// Bounding closure expansion to the source state alone drops the
	// epsilon-reachable final weight entirely.
	opts := rmepsilon.DefaultOptions[float64]()
	opts.NState = 1
	opts.Connect = false

	out, err := rmepsilon.RmEpsilon[float64](epsChain(), opts)
	require.NoError(t, err)
	require.True(t, out.Semiring().IsZero(out.Final(out.Start())))
}

func TestRmEpsilonReverseDirection(t *testing.T) {
	// Reverse mode pushes epsilon weight toward successors; the weighted
	// relation is unchanged.
	sr := semiring.Tropical{}
	opts := rmepsilon.DefaultOptions[float64]()
	opts.Reverse = true

	out, err := rmepsilon.RmEpsilon[float64](epsChain(), opts)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumStates())
	require.True(t, sr.Equal(2.0, out.Final(out.Start()), semiring.DefaultDelta))
}

func TestRmEpsilonNil(t *testing.T) {
	_, err := rmepsilon.RmEpsilon[float64](nil, rmepsilon.DefaultOptions[float64]())
	require.ErrorIs(t, err, rmepsilon.ErrNilFst)
	_, err = rmepsilon.NewLazy[float64](nil, rmepsilon.DefaultOptions[float64]())
	require.ErrorIs(t, err, rmepsilon.ErrNilFst)
}

func TestLazyAgreesWithMaterialized(t *testing.T) {
	// The lazy view with trimming off matches the eager result on the
	// shared id space.
	v := epsChain()
	opts := rmepsilon.DefaultOptions[float64]()
	opts.Connect = false

	lazy, err := rmepsilon.NewLazy[float64](v, opts)
	require.NoError(t, err)
	eager, err := rmepsilon.RmEpsilon[float64](v, opts)
	require.NoError(t, err)

	require.Equal(t, eager.Start(), lazy.Start())
	require.Equal(t, eager.Final(0), lazy.Final(0))
	require.Equal(t, eager.NumArcs(0), lazy.NumArcs(0))
	require.NotZero(t, lazy.Properties(fst.NoEpsilons))
}
