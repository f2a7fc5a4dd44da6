// Package ops provides advanced matrix operations for the lvlmat/matrix package.
// Inverse computes the inverse of a square matrix by solving A·X = I with the
// pivoted LU solver, following strict fail-fast and Go-idiomatic patterns.
package ops

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/matrix"
)

// Inverse returns the inverse of the square matrix m, or an error if m is not
// square or singular.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is non-nil and square.
//	Stage 2 (Prepare): build the identity right-hand side.
//	Stage 3 (Execute): delegate to Solve (LU + substitutions).
//
// Errors: matrix.ErrNonSquare, matrix.ErrSingular, matrix.ErrNilMatrix.
// Complexity: O(n³) time, O(n²) memory, where n = m.Rows().
func Inverse(m matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: Validate input shape
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 2: Identity right-hand side of matching dimension
	ident, err := matrix.NewIdentity(m.Rows())
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 3: Solve A·X = I column-by-column inside the shared solver
	inv, err := Solve(m, ident)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	return inv, nil
}
