// SPDX-License-Identifier: MIT
// Package sparse: the compressed-sparse-column format and its arithmetic.
//
// CscMatrix interprets the shared pattern's major lanes as columns — its cs
// storage is exactly the CSR storage of the transposed matrix. Arithmetic
// reuses the cs kernels through that duality: spadd carries tags through
// unchanged, spmm additionally swaps the operands
// (C = βC + α·op(A)·op(B) ⇔ Cᵀ = βCᵀ + α·op(B)ᵀ·op(A)ᵀ).

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/matrix"
)

// CscMatrix is a sparse matrix in compressed sparse column format.
type CscMatrix struct {
	cs csMatrix
}

// NewCscMatrix builds a CSC matrix over a shared pattern (major lanes =
// columns) and an aligned values slice. The values slice is NOT copied; see
// NewCsrMatrix.
// Errors: ErrNilPattern, ErrValuesLength.
// Complexity: O(1).
func NewCscMatrix(pattern *SparsityPattern, values []float64) (*CscMatrix, error) {
	cs, err := newCsMatrix(pattern, values)
	if err != nil {
		return nil, fmt.Errorf("NewCscMatrix: %w", err)
	}

	return &CscMatrix{cs: cs}, nil
}

// Rows returns the number of rows (the pattern's minor dimension).
func (m *CscMatrix) Rows() int { return m.cs.pattern.MinorDim() }

// Cols returns the number of columns (the pattern's major dimension).
func (m *CscMatrix) Cols() int { return m.cs.pattern.MajorDim() }

// NNZ returns the number of explicitly stored entries.
func (m *CscMatrix) NNZ() int { return m.cs.pattern.NNZ() }

// Pattern returns the shared, immutable sparsity pattern.
func (m *CscMatrix) Pattern() *SparsityPattern { return m.cs.pattern }

// Values returns a read-only view of the stored values, aligned with the
// pattern's minor indices. Callers MUST NOT mutate it; use ValuesMut.
func (m *CscMatrix) Values() []float64 { return m.cs.values }

// ValuesMut returns the mutable backing values slice. Mutating values in
// place is permitted; mutating the pattern is not.
func (m *CscMatrix) ValuesMut() []float64 { return m.cs.values }

// At returns the value at (row, col), or 0 when the position is not stored.
// Complexity: O(log nnz(col)).
func (m *CscMatrix) At(row, col int) float64 { return m.cs.at(col, row) }

// ToDense exports the matrix into a fresh dense matrix (testing/debugging).
// Complexity: O(rows*cols + nnz).
func (m *CscMatrix) ToDense() (*matrix.Dense, error) {
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, fmt.Errorf("CscMatrix.ToDense: %w", err)
	}
	for col := 0; col < m.Cols(); col++ {
		minors := m.cs.pattern.Lane(col)
		values := m.cs.laneValues(col)
		for k, row := range minors {
			_ = d.Set(row, col, values[k])
		}
	}

	return d, nil
}

// csOpCsc converts a tagged CSC operand into a tagged cs-layer operand.
func csOpCsc(a Op[*CscMatrix]) Op[*csMatrix] {
	switch a.Kind() {
	case KindNoOp:
		return NoOp(&a.Inner().cs)
	case KindTranspose:
		return Transposed(&a.Inner().cs)
	default:
		panic(panicUnknownOpKind)
	}
}

// opRowsColsCsc returns the effective (rows, cols) of a tagged CSC operand —
// a Transpose tag swaps the roles.
func opRowsColsCsc(a Op[*CscMatrix]) (int, int) {
	if a.IsTranspose() {
		return a.Inner().Cols(), a.Inner().Rows()
	}
	return a.Inner().Rows(), a.Inner().Cols()
}

// SpAddCscPrealloc computes C := β·C + α·op(A) in place.
// Semantics, preconditions and errors match SpAddCsrPrealloc; the cs duality
// makes the kernel dispatch identical (tags carry through unchanged).
func SpAddCscPrealloc(beta float64, c *CscMatrix, alpha float64, a Op[*CscMatrix]) error {
	ar, ac := opRowsColsCsc(a)
	assertCompatibleSpAddDims(c.Rows(), c.Cols(), ar, ac)

	return spAddCs(beta, &c.cs, alpha, csOpCsc(a))
}

// SpMMCscPrealloc computes C := β·C + α·op(A)·op(B) in place.
// Semantics, preconditions and errors match SpMMCsrPrealloc; under the cs
// duality the operands swap while the tags carry through unchanged.
func SpMMCscPrealloc(beta float64, c *CscMatrix, alpha float64, a, b Op[*CscMatrix]) error {
	ar, ac := opRowsColsCsc(a)
	br, bc := opRowsColsCsc(b)
	assertCompatibleSpMMDims(c.Rows(), c.Cols(), ar, ac, br, bc)

	return spMMCsDispatch(beta, &c.cs, alpha, csOpCsc(b), csOpCsc(a))
}
