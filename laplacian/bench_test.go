// Package laplacian_test provides benchmarks for the periodic stencil,
// using deterministic random fields.
package laplacian_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/spinodal/field"
	"github.com/katalvlaran/spinodal/laplacian"
)

var benchSizes = []int{64, 128, 256}

// sink to defeat dead-code elimination
var sinkF *field.Field

func BenchmarkApply(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		for _, w := range []int{1, 4} {
			b.Run(fmt.Sprintf("n=%d/workers=%d", n, w), func(b *testing.B) {
				f := randomField(b, n, n, 1337)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					out, err := laplacian.Apply(f, 1, 1, laplacian.WithWorkers(w))
					if err != nil {
						b.Fatal(err)
					}
					sinkF = out
				}
			})
		}
	}
}
