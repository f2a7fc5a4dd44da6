// Package sparse_test provides benchmarks for the prealloc sparse kernels on
// banded matrices, where the pattern-aware design pays off most.
package sparse_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlmat/sparse"
)

// benchDims are the square matrix dimensions to benchmark.
var benchDims = []int{256, 1024, 4096}

// sink to defeat dead-code elimination
var sinkErr error

// bandPattern builds an n×n pattern with the given half-bandwidth: lane i
// stores minors [i-band, i+band] clipped to range.
func bandPattern(b *testing.B, n, band int) *sparse.SparsityPattern {
	b.Helper()
	offsets := make([]int, n+1)
	var indices []int
	for i := 0; i < n; i++ {
		for j := i - band; j <= i+band; j++ {
			if j >= 0 && j < n {
				indices = append(indices, j)
			}
		}
		offsets[i+1] = len(indices)
	}
	p, err := sparse.NewSparsityPattern(n, n, offsets, indices)
	if err != nil {
		b.Fatal(err)
	}
	return p
}

// bandCsr builds a banded CSR matrix with deterministic random values.
func bandCsr(b *testing.B, n, band int, seed int64) *sparse.CsrMatrix {
	b.Helper()
	p := bandPattern(b, n, band)
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, p.NNZ())
	for i := range values {
		values[i] = 2*rng.Float64() - 1
	}
	m, err := sparse.NewCsrMatrix(p, values)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

// BenchmarkSpAddCsrPrealloc measures in-place addition over identical
// tridiagonal patterns.
func BenchmarkSpAddCsrPrealloc(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchDims {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := bandCsr(b, n, 1, 1337)
			c := bandCsr(b, n, 1, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkErr = sparse.SpAddCsrPrealloc(0.5, c, 2.0, sparse.NoOp(a))
				if sinkErr != nil {
					b.Fatal(sinkErr)
				}
			}
		})
	}
}

// BenchmarkSpMMCsrPrealloc measures the tridiagonal product scattered into a
// pentadiagonal output (the exact product pattern).
func BenchmarkSpMMCsrPrealloc(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchDims {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := bandCsr(b, n, 1, 11)
			bb := bandCsr(b, n, 1, 22)
			c := bandCsr(b, n, 2, 33) // tridiag² is pentadiagonal
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkErr = sparse.SpMMCsrPrealloc(0.0, c, 1.0, sparse.NoOp(a), sparse.NoOp(bb))
				if sinkErr != nil {
					b.Fatal(sinkErr)
				}
			}
		})
	}
}

// BenchmarkSpMMCsrTransposed measures the transposed-operand fallback, which
// materializes one transpose per call.
func BenchmarkSpMMCsrTransposed(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchDims {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := bandCsr(b, n, 1, 44)
			bb := bandCsr(b, n, 1, 55)
			c := bandCsr(b, n, 2, 66)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkErr = sparse.SpMMCsrPrealloc(0.0, c, 1.0, sparse.Transposed(a), sparse.NoOp(bb))
				if sinkErr != nil {
					b.Fatal(sinkErr)
				}
			}
		})
	}
}
