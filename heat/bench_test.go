package heat_test

import (
	"testing"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/heat"
)

// BenchmarkStep measures one step of every strategy on the 640×640 plate
// of the default configuration with 32×32 tiles.
// Complexity: O(W×H) per step.
func BenchmarkStep(b *testing.B) {
	const n = 640
	bc := boundary.Condition{X: n / 2, Y: n / 2, Radius: n / 10, Chamfer: n / 4, TPipe: 212, TAir: 70, TGround: 0}
	shape := heat.DefaultShape()

	for _, st := range heat.Strategies {
		b.Run(st.String(), func(b *testing.B) {
			s := newRun(b)
			f, img := newField(b, n, n)
			if err := s.Reset(f, bc, shape); err != nil {
				b.Fatalf("Reset failed: %v", err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.StepWith(st, img, f, bc, shape); err != nil {
					b.Fatalf("step failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkReset measures the parallel pinning pass.
func BenchmarkReset(b *testing.B) {
	const n = 640
	bc := boundary.Condition{X: n / 2, Y: n / 2, Radius: n / 10, Chamfer: n / 4, TPipe: 212, TAir: 70}
	s := newRun(b)
	f, _ := newField(b, n, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Reset(f, bc, heat.DefaultShape())
	}
}
