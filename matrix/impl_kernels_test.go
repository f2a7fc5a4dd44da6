// Package matrix_test contains unit tests for the arithmetic kernels
// (Add, Sub, Mul, Scale, Abs, Transpose, MatVec) of the matrix package.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvlmat/matrix"
	"github.com/stretchr/testify/require"
)

// mustFromRows builds a Dense from rows, failing the test on error.
func mustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	return m
}

// requireMatrixEqual asserts that got equals the expected rows exactly.
func requireMatrixEqual(t *testing.T, want [][]float64, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), got.Rows())       // row counts agree
	require.Equal(t, len(want[0]), got.Cols())    // column counts agree
	for i := range want {                         // compare element-wise
		for j := range want[i] {
			v, err := got.At(i, j)
			require.NoError(t, err)
			require.Equal(t, want[i][j], v, "mismatch at (%d,%d)", i, j)
		}
	}
}

// TestAddSub verifies element-wise addition and subtraction on the fast path.
func TestAddSub(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}}) // left operand
	b := mustFromRows(t, [][]float64{{5, 6}, {7, 8}}) // right operand

	sum, err := matrix.Add(a, b) // compute A + B
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{6, 8}, {10, 12}}, sum)

	diff, err := matrix.Sub(b, a) // compute B - A
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{4, 4}, {4, 4}}, diff)
}

// TestAddDimensionMismatch ensures Add rejects operands of unequal shape.
func TestAddDimensionMismatch(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}})         // 1x2 operand
	b := mustFromRows(t, [][]float64{{1}, {2}})       // 2x1 operand
	_, err := matrix.Add(a, b)                        // shapes disagree
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestAddNilOperand ensures Add rejects nil operands with ErrNilMatrix.
func TestAddNilOperand(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1}})      // valid operand
	_, err := matrix.Add(nil, a)                // nil left operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Add(a, nil)                 // nil right operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul verifies the matrix product against a hand-computed fixture.
func TestMul(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})    // 2x3 operand
	b := mustFromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}}) // 3x2 operand

	prod, err := matrix.Mul(a, b) // compute the 2x2 product
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{58, 64}, {139, 154}}, prod)
}

// TestMulInnerMismatch ensures Mul rejects incompatible inner dimensions.
func TestMulInnerMismatch(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}})  // 1x2 operand
	b := mustFromRows(t, [][]float64{{1, 2}})  // 1x2 operand (inner mismatch)
	_, err := matrix.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestMulIdentity verifies that multiplying by the identity preserves the operand.
func TestMulIdentity(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}}) // square operand
	id, err := matrix.NewIdentity(2)                  // 2x2 identity
	require.NoError(t, err)

	prod, err := matrix.Mul(a, id) // A·I
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{1, 2}, {3, 4}}, prod)
}

// TestScaleAbs verifies scalar scaling and the elementwise absolute value.
func TestScaleAbs(t *testing.T) {
	a := mustFromRows(t, [][]float64{{-1, 2}, {3, -4}}) // mixed-sign operand

	scaled, err := matrix.Scale(a, -2) // compute -2·A
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{2, -4}, {-6, 8}}, scaled)

	abs, err := matrix.Abs(a) // compute |A|
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{1, 2}, {3, 4}}, abs)
}

// TestTranspose verifies Aᵀ for a non-square operand.
func TestTranspose(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}) // 2x3 operand

	at, err := matrix.Transpose(a) // compute the 3x2 transpose
	require.NoError(t, err)
	requireMatrixEqual(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)
}

// TestMatVec verifies the matrix-vector product and its validation.
func TestMatVec(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}}) // 2x2 operand

	y, err := matrix.MatVec(a, []float64{1, 1}) // row sums via the ones vector
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, y)

	_, err = matrix.MatVec(a, []float64{1})              // wrong vector length
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // expect mismatch

	_, err = matrix.MatVec(a, nil)               // nil vector
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // expect the nil sentinel
}

// TestKernelsDoNotMutateOperands ensures kernels return fresh results.
func TestKernelsDoNotMutateOperands(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}}) // operand under watch
	b := mustFromRows(t, [][]float64{{5, 6}, {7, 8}}) // second operand

	_, err := matrix.Add(a, b) // run a few kernels over the operands
	require.NoError(t, err)
	_, err = matrix.Mul(a, b)
	require.NoError(t, err)
	_, err = matrix.Scale(a, 3)
	require.NoError(t, err)

	requireMatrixEqual(t, [][]float64{{1, 2}, {3, 4}}, a) // A unchanged
	requireMatrixEqual(t, [][]float64{{5, 6}, {7, 8}}, b) // B unchanged
}
