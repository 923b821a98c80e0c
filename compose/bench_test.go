package compose_test

import (
	"math/rand"
	"testing"

	"github.com/mjansche/wfst/compose"
	"github.com/mjansche/wfst/fst"
	"github.com/mjansche/wfst/semiring"
)

// buildRandomTransducer constructs a transducer with V states and
// roughly d outgoing arcs per state over an alphabet of k symbols.
// Arc targets are uniform, weights uniform in [0, 10).
func buildRandomTransducer(V, d, k int, seed int64) *fst.Vector[float64] {
	r := rand.New(rand.NewSource(seed)) // deterministic seed for reproducibility
	sr := semiring.Tropical{}
	v := fst.NewVector[float64](sr)
	for i := 0; i < V; i++ {
		v.AddState()
	}
	_ = v.SetStart(0)
	for s := 0; s < V; s++ {
		for j := 0; j < d; j++ {
			lbl := 1 + r.Intn(k)
			_ = v.AddArc(s, fst.Arc[float64]{
				ILabel: lbl,
				OLabel: lbl,
				Weight: r.Float64() * 10,
				Next:   r.Intn(V),
			})
		}
	}
	_ = v.SetFinal(V-1, sr.One())

	return v
}

// BenchmarkCompose measures the materialized product construction on
// random acceptors of increasing size, with and without trimming.
func BenchmarkCompose(b *testing.B) {
	cases := []struct {
		name     string
		states   int
		arcs     int
		alphabet int
	}{
		{"Small", 50, 3, 5},
		{"Medium", 200, 4, 10},
		{"Large", 500, 4, 20},
	}

	for _, tc := range cases {
		a := buildRandomTransducer(tc.states, tc.arcs, tc.alphabet, 42)
		c := buildRandomTransducer(tc.states, tc.arcs, tc.alphabet, 43)
		fst.ArcSort(c, fst.ByILabel)

		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := compose.Compose[float64](a, c); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(tc.name+"/NoConnect", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := compose.Compose[float64](a, c, compose.WithConnect(false)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
