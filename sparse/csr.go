// SPDX-License-Identifier: MIT
// Package sparse: the compressed-sparse-row format and its arithmetic.
//
// CsrMatrix interprets the shared pattern's major lanes as rows. Values are
// mutable in place; the pattern never is — changing the pattern means
// constructing a new matrix.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/matrix"
)

// CsrMatrix is a sparse matrix in compressed sparse row format.
type CsrMatrix struct {
	cs csMatrix
}

// NewCsrMatrix builds a CSR matrix over a shared pattern and an aligned
// values slice (index-for-index with the pattern's minor indices). The
// values slice is NOT copied: the matrix takes ownership, and in-place value
// mutation through ValuesMut is part of the format's contract.
// Errors: ErrNilPattern, ErrValuesLength.
// Complexity: O(1).
func NewCsrMatrix(pattern *SparsityPattern, values []float64) (*CsrMatrix, error) {
	cs, err := newCsMatrix(pattern, values)
	if err != nil {
		return nil, fmt.Errorf("NewCsrMatrix: %w", err)
	}

	return &CsrMatrix{cs: cs}, nil
}

// Rows returns the number of rows (the pattern's major dimension).
func (m *CsrMatrix) Rows() int { return m.cs.pattern.MajorDim() }

// Cols returns the number of columns (the pattern's minor dimension).
func (m *CsrMatrix) Cols() int { return m.cs.pattern.MinorDim() }

// NNZ returns the number of explicitly stored entries.
func (m *CsrMatrix) NNZ() int { return m.cs.pattern.NNZ() }

// Pattern returns the shared, immutable sparsity pattern.
func (m *CsrMatrix) Pattern() *SparsityPattern { return m.cs.pattern }

// Values returns a read-only view of the stored values, aligned with the
// pattern's minor indices. Callers MUST NOT mutate it; use ValuesMut.
func (m *CsrMatrix) Values() []float64 { return m.cs.values }

// ValuesMut returns the mutable backing values slice. Mutating values in
// place is permitted; mutating the pattern is not.
func (m *CsrMatrix) ValuesMut() []float64 { return m.cs.values }

// At returns the value at (row, col), or 0 when the position is not stored.
// Complexity: O(log nnz(row)).
func (m *CsrMatrix) At(row, col int) float64 { return m.cs.at(row, col) }

// ToDense exports the matrix into a fresh dense matrix (testing/debugging).
// Complexity: O(rows*cols + nnz).
func (m *CsrMatrix) ToDense() (*matrix.Dense, error) {
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, fmt.Errorf("CsrMatrix.ToDense: %w", err)
	}
	for row := 0; row < m.Rows(); row++ {
		minors := m.cs.pattern.Lane(row)
		values := m.cs.laneValues(row)
		for k, col := range minors {
			_ = d.Set(row, col, values[k])
		}
	}

	return d, nil
}

// csOpCsr converts a tagged CSR operand into a tagged cs-layer operand.
func csOpCsr(a Op[*CsrMatrix]) Op[*csMatrix] {
	switch a.Kind() {
	case KindNoOp:
		return NoOp(&a.Inner().cs)
	case KindTranspose:
		return Transposed(&a.Inner().cs)
	default:
		panic(panicUnknownOpKind)
	}
}

// opRowsCols returns the effective (rows, cols) of a tagged CSR operand —
// a Transpose tag swaps the roles.
func opRowsCols(a Op[*CsrMatrix]) (int, int) {
	if a.IsTranspose() {
		return a.Inner().Cols(), a.Inner().Rows()
	}
	return a.Inner().Rows(), a.Inner().Cols()
}

// SpAddCsrPrealloc computes C := β·C + α·op(A) in place.
//
// Preconditions (programmer errors, asserted by panic):
//   - C and op(A) have identical effective dimensions; a Transpose tag swaps
//     A's row/column roles in the check.
//
// Errors:
//   - *OperationError with kind InvalidPattern when C's pattern lacks a
//     position that op(A) contributes — the result is never silently
//     truncated (C may be partially β-scaled when this is reported).
//
// Complexity: O(nnz(C) + nnz(A)) untransposed; no allocation beyond C.
func SpAddCsrPrealloc(beta float64, c *CsrMatrix, alpha float64, a Op[*CsrMatrix]) error {
	ar, ac := opRowsCols(a)
	assertCompatibleSpAddDims(c.Rows(), c.Cols(), ar, ac)

	return spAddCs(beta, &c.cs, alpha, csOpCsr(a))
}

// SpMMCsrPrealloc computes C := β·C + α·op(A)·op(B) in place.
//
// Preconditions (programmer errors, asserted by panic): the four-case
// dimension table — with R/C the effective (tag-adjusted) dimensions,
// C.Rows() == R(A), C.Cols() == C(B) and C(A) == R(B).
//
// Errors:
//   - *OperationError with kind InvalidPattern when the true product has a
//     nonzero at a position absent from C's pattern (fail loudly; C may be
//     partially updated when this is reported).
//
// Both operands untransposed run allocation-free; a Transpose tag routes
// through a one-time materialized transpose of that operand.
func SpMMCsrPrealloc(beta float64, c *CsrMatrix, alpha float64, a, b Op[*CsrMatrix]) error {
	ar, ac := opRowsCols(a)
	br, bc := opRowsCols(b)
	assertCompatibleSpMMDims(c.Rows(), c.Cols(), ar, ac, br, bc)

	return spMMCsDispatch(beta, &c.cs, alpha, csOpCsr(a), csOpCsr(b))
}

// assertCompatibleSpAddDims enforces the spadd dimension table on effective
// (tag-adjusted) operand dimensions: C.rows == A.rows, C.cols == A.cols.
func assertCompatibleSpAddDims(rows, cols, ar, ac int) {
	if rows != ar {
		panic(fmt.Sprintf("sparse: spadd: C.rows (%d) != A.rows (%d)", rows, ar))
	}
	if cols != ac {
		panic(fmt.Sprintf("sparse: spadd: C.cols (%d) != A.cols (%d)", cols, ac))
	}
}

// assertCompatibleSpMMDims enforces the spmm dimension table on effective
// (tag-adjusted) operand dimensions: each Transpose tag already swapped that
// operand's row/column roles, giving the four symmetric cases.
func assertCompatibleSpMMDims(rows, cols, ar, ac, br, bc int) {
	if rows != ar {
		panic(fmt.Sprintf("sparse: spmm: C.rows (%d) != A.rows (%d)", rows, ar))
	}
	if cols != bc {
		panic(fmt.Sprintf("sparse: spmm: C.cols (%d) != B.cols (%d)", cols, bc))
	}
	if ac != br {
		panic(fmt.Sprintf("sparse: spmm: A.cols (%d) != B.rows (%d)", ac, br))
	}
}
