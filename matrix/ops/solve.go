// Package ops provides advanced matrix operations for the lvlmat/matrix package.
// Solve computes the solution of A·X = B through LU decomposition with partial
// pivoting, forward substitution (L·Y = P·B) and backward substitution (U·X = Y).
package ops

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/matrix"
)

// NormZero is the additive identity for accumulation and pivot comparisons.
const NormZero = 0.0

// Solve returns X such that A·X = B, where B may carry multiple right-hand
// sides as columns. It returns matrix.ErrNonSquare if A is not square,
// matrix.ErrDimensionMismatch if B.Rows() != A.Rows(), and matrix.ErrSingular
// when A has no unique solution.
// Complexity: O(n³ + n²·k) time for n = A.Rows(), k = B.Cols(); O(n² + n·k) memory.
func Solve(a, b matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: Validate operands
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	n, k := a.Rows(), b.Cols() // system size and right-hand side count
	if b.Rows() != n {         // RHS rows must match system size
		return nil, fmt.Errorf("Solve: rhs %dx%d vs system %dx%d: %w",
			b.Rows(), k, n, n, matrix.ErrDimensionMismatch)
	}

	// Stage 2: Decompose A = P⁻¹·L·U
	L, U, perm, err := LU(a)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	// Stage 3: Prepare result storage
	X, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	y := make([]float64, n) // per-column intermediate L·y = (P·b)_col

	// Stage 4: Execute substitution per right-hand side column
	var (
		col, i, j  int     // loop indices
		sum        float64 // substitution accumulator
		lVal, uVal float64 // factor temporaries
		bVal       float64 // permuted RHS entry
		uDiag      float64 // U's pivot for the back pass
	)
	for col = 0; col < k; col++ {
		// 4.1: Forward substitution L·y = P·b (L has unit diagonal).
		for i = 0; i < n; i++ {
			bVal, _ = b.At(perm[i], col) // apply the row permutation on read
			sum = NormZero
			for j = 0; j < i; j++ { // sum L[i][j]*y[j]
				lVal, _ = L.At(i, j)
				sum += lVal * y[j]
			}
			y[i] = bVal - sum
		}
		// 4.2: Backward substitution U·x = y.
		for i = n - 1; i >= 0; i-- {
			sum = NormZero
			for j = i + 1; j < n; j++ { // sum U[i][j]*x[j]
				uVal, _ = U.At(i, j)
				xVal, _ := X.At(j, col)
				sum += uVal * xVal
			}
			uDiag, _ = U.At(i, i)
			if uDiag == NormZero { // a successful pivoted LU leaves no zero pivot
				return nil, fmt.Errorf("Solve: pivot %d: %w", i, matrix.ErrSingular)
			}
			_ = X.Set(i, col, (y[i]-sum)/uDiag)
		}
	}

	// Stage 5: Finalize and return
	return X, nil
}
