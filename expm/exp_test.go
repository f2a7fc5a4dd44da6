// Package expm_test contains black-box tests for the matrix exponential:
// norm fixtures, algebraic identities, and cross-checks against the gonum
// dense exponential at input scales that exercise every Padé order.
package expm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlmat/expm"
	"github.com/katalvlaran/lvlmat/matrix"
)

// oracleTol is the relative tolerance for comparisons against gonum's Exp.
const oracleTol = 1e-10

// mustFromRows builds a Dense from rows, failing the test on error.
func mustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	return m
}

// toGonum converts a Dense into a gonum dense matrix.
func toGonum(t *testing.T, m *matrix.Dense) *mat.Dense {
	t.Helper()
	out := mat.NewDense(m.Rows(), m.Cols(), nil)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out.Set(i, j, v)
		}
	}
	return out
}

// requireCloseToGonum compares expm.Exp(a) against gonum's exponential of the
// same matrix, element-wise within oracleTol relative to the entry magnitude.
func requireCloseToGonum(t *testing.T, a *matrix.Dense) {
	t.Helper()

	got, err := expm.Exp(a)
	require.NoError(t, err)

	var want mat.Dense
	want.Exp(toGonum(t, a))

	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			g, err := got.At(i, j)
			require.NoError(t, err)
			w := want.At(i, j)
			scale := math.Max(1, math.Abs(w)) // relative for large, absolute for small
			require.InDelta(t, w, g, oracleTol*scale, "exp(A)(%d,%d)", i, j)
		}
	}
}

// TestOneNorm checks the 1-norm against a hand-computed column-sum fixture.
func TestOneNorm(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{-3, 5, 7},
		{2, 6, 4},
		{0, 2, 8},
	})
	// Column absolute sums: 5, 13, 19 — the norm is the largest.
	norm, err := expm.OneNorm(a)
	require.NoError(t, err)
	require.Equal(t, 19.0, norm)
}

// TestOneNormNil ensures the nil sentinel surfaces.
func TestOneNormNil(t *testing.T) {
	_, err := expm.OneNorm(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestExpZeroMatrix verifies exp(0) = I exactly, with no roundoff at all.
func TestExpZeroMatrix(t *testing.T) {
	zero, err := matrix.NewZeros(4, 4)
	require.NoError(t, err)

	e, err := expm.Exp(zero)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v, err := e.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.Equal(t, 1.0, v)
			} else {
				require.Equal(t, 0.0, v)
			}
		}
	}
}

// TestExpScalar verifies the 1×1 short-circuit matches math.Exp exactly.
func TestExpScalar(t *testing.T) {
	a := mustFromRows(t, [][]float64{{-2.75}})

	e, err := expm.Exp(a)
	require.NoError(t, err)

	v, err := e.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, math.Exp(-2.75), v)
}

// TestExpDiagonal verifies exp of a diagonal matrix exponentiates the diagonal.
func TestExpDiagonal(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, -1},
	})

	e, err := expm.Exp(a)
	require.NoError(t, err)

	want := []float64{math.E, math.E * math.E, 1 / math.E}
	for i := 0; i < 3; i++ {
		v, err := e.At(i, i)
		require.NoError(t, err)
		require.InDelta(t, want[i], v, 1e-12*want[i])
		for j := 0; j < 3; j++ {
			if j == i {
				continue
			}
			off, err := e.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, 0.0, off, 1e-12)
		}
	}
}

// TestExpNilpotent verifies the exact finite series for a nilpotent matrix:
// N³ = 0, so exp(N) = I + N + N²/2 with no truncation at all.
func TestExpNilpotent(t *testing.T) {
	n := mustFromRows(t, [][]float64{
		{0, 1, 2},
		{0, 0, 3},
		{0, 0, 0},
	})

	e, err := expm.Exp(n)
	require.NoError(t, err)

	want := [][]float64{
		{1, 1, 3.5}, // 2 + 1·3/2 = 3.5 in the corner
		{0, 1, 3},
		{0, 0, 1},
	}
	for i := range want {
		for j := range want[i] {
			v, err := e.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want[i][j], v, 1e-13)
		}
	}
}

// TestExpSquaringConsistency verifies exp(A) ≈ exp(A/2)² — the identity the
// squaring phase itself relies on, checked across the order boundary.
func TestExpSquaringConsistency(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{0.0, -2.0, 1.0},
		{2.0, 0.0, 0.5},
		{-1.0, 0.3, 0.2},
	})

	whole, err := expm.Exp(a)
	require.NoError(t, err)

	half, err := matrix.Scale(a, 0.5)
	require.NoError(t, err)
	eHalf, err := expm.Exp(half)
	require.NoError(t, err)
	squared, err := matrix.Mul(eHalf, eHalf)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			w, err := whole.At(i, j)
			require.NoError(t, err)
			s, err := squared.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, w, s, 1e-11*math.Max(1, math.Abs(w)))
		}
	}
}

// TestExpInverseIdentity verifies exp(A)·exp(-A) = I (A commutes with -A).
func TestExpInverseIdentity(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{0.4, -1.2},
		{0.7, 0.1},
	})

	ePos, err := expm.Exp(a)
	require.NoError(t, err)
	neg, err := matrix.Scale(a, -1)
	require.NoError(t, err)
	eNeg, err := expm.Exp(neg)
	require.NoError(t, err)

	prod, err := matrix.Mul(ePos, eNeg)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, err := prod.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.InDelta(t, 1.0, v, 1e-12)
			} else {
				require.InDelta(t, 0.0, v, 1e-12)
			}
		}
	}
}

// TestExpAgainstGonumAcrossScales cross-checks against gonum's dense
// exponential with the same base matrix scaled so that each run lands in a
// different region of the order-selection cascade, from the order-3
// approximant up to order 13 with repeated squaring.
func TestExpAgainstGonumAcrossScales(t *testing.T) {
	base := mustFromRows(t, [][]float64{
		{0.1, 0.7, -0.4, 0.0},
		{-0.3, 0.2, 0.5, 0.1},
		{0.6, -0.1, 0.0, 0.8},
		{0.2, 0.0, -0.6, 0.3},
	})

	cases := []struct {
		name  string
		scale float64
	}{
		{"tiny", 1e-3},   // well under θ₃
		{"small", 0.15},  // between θ₃ and θ₅
		{"medium", 0.6},  // between θ₅ and θ₇
		{"large", 1.5},   // between θ₇ and θ₉
		{"scaled", 10.0}, // forces order 13 plus squarings
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := matrix.Scale(base, tc.scale)
			require.NoError(t, err)
			requireCloseToGonum(t, a)
		})
	}
}

// TestExpAgainstGonumAsymmetric cross-checks a stiff, strongly non-normal
// matrix where naive truncation of the series would lose digits.
func TestExpAgainstGonumAsymmetric(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{-1.0, 25.0, 0.0},
		{0.0, -1.0, 25.0},
		{0.0, 0.0, -1.0},
	})
	requireCloseToGonum(t, a)
}

// TestExpNonSquare ensures a rectangular input is rejected up front.
func TestExpNonSquare(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	_, err := expm.Exp(a)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestExpNil ensures a nil input is rejected with the nil sentinel.
func TestExpNil(t *testing.T) {
	_, err := expm.Exp(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestExpDoesNotMutateInput ensures the driver works on a private copy.
func TestExpDoesNotMutateInput(t *testing.T) {
	a := mustFromRows(t, [][]float64{
		{1.5, -0.5},
		{2.0, 3.0},
	})

	_, err := expm.Exp(a)
	require.NoError(t, err)

	want := [][]float64{{1.5, -0.5}, {2.0, 3.0}}
	for i := range want {
		for j := range want[i] {
			v, err := a.At(i, j)
			require.NoError(t, err)
			require.Equal(t, want[i][j], v)
		}
	}
}
