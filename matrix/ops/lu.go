// Package ops provides advanced matrix operations for the lvlmat/matrix package.
package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlmat/matrix"
)

// LU performs Doolittle LU decomposition with partial pivoting on a square
// matrix m. It returns L (unit lower triangular), U (upper triangular) and
// the row permutation perm such that row i of P·m is row perm[i] of m.
// Returns matrix.ErrNonSquare if m is not square and matrix.ErrSingular when
// no usable pivot exists in a column.
// Time Complexity: O(n³), where n = m.Rows(); Memory: O(n²) for L and U.
func LU(m matrix.Matrix) (matrix.Matrix, matrix.Matrix, []int, error) {
	// Stage 1: Validate input is square
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, nil, nil, fmt.Errorf("LU: %w", err)
	}
	n := m.Rows() // common dimension

	// Stage 2: Prepare working copy, L and the permutation
	A := m.Clone() // destructive elimination happens on the copy
	L, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("LU: %w", err)
	}
	perm := make([]int, n) // identity permutation to start
	for i := 0; i < n; i++ {
		perm[i] = i
	}

	// Stage 3: Execute elimination with partial pivoting
	var (
		i, j, k      int     // loop indices
		pivRow       int     // index of the best pivot row
		pivVal, aVal float64 // pivot magnitude and element temporary
		factor       float64 // elimination multiplier
		rowK, rowJ   float64 // swap temporaries
	)
	for k = 0; k < n; k++ {
		// 3.1: Select the largest |A[i][k]| for i >= k.
		pivRow, pivVal = k, NormZero
		for i = k; i < n; i++ {
			aVal, _ = A.At(i, k)
			if math.Abs(aVal) > pivVal {
				pivRow, pivVal = i, math.Abs(aVal)
			}
		}
		if pivVal == NormZero { // no usable pivot in this column
			return nil, nil, nil, fmt.Errorf("LU: column %d: %w", k, matrix.ErrSingular)
		}
		// 3.2: Swap rows k and pivRow in A, the permutation, and L's prefix.
		if pivRow != k {
			perm[k], perm[pivRow] = perm[pivRow], perm[k]
			for j = 0; j < n; j++ {
				rowK, _ = A.At(k, j)
				rowJ, _ = A.At(pivRow, j)
				_ = A.Set(k, j, rowJ)
				_ = A.Set(pivRow, j, rowK)
			}
			for j = 0; j < k; j++ { // L columns < k already finalized
				rowK, _ = L.At(k, j)
				rowJ, _ = L.At(pivRow, j)
				_ = L.Set(k, j, rowJ)
				_ = L.Set(pivRow, j, rowK)
			}
		}
		// 3.3: Eliminate below the pivot, recording multipliers in L.
		pivValSigned, _ := A.At(k, k) // signed pivot for division
		for i = k + 1; i < n; i++ {
			aVal, _ = A.At(i, k)
			factor = aVal / pivValSigned
			_ = L.Set(i, k, factor)
			for j = k; j < n; j++ {
				rowK, _ = A.At(k, j)
				rowJ, _ = A.At(i, j)
				_ = A.Set(i, j, rowJ-factor*rowK)
			}
		}
	}
	// 3.4: Unit diagonal of L.
	for i = 0; i < n; i++ {
		_ = L.Set(i, i, 1)
	}

	// Stage 4: Finalize — U is the eliminated working copy.
	U := A

	return L, U, perm, nil
}
