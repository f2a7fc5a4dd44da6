// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common construction tasks.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders of underlying kernels.
//   - Validation is performed in the constructors/kernels; facades only compose.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(r*c) zero-init by the runtime.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns the n×n identity matrix.
// Stage 1 (Validate/Prepare): allocate zeroed n×n via NewDense.
// Stage 2 (Execute): write 1.0 along the main diagonal.
// Complexity: O(n²) zero-init + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	// Allocate zeroed square matrix (validates n > 0).
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	// Write the unit diagonal directly into flat storage.
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// FromRows builds a *Dense from a slice of equally-sized rows.
// Stage 1 (Validate): non-empty input, rectangular shape.
// Stage 2 (Execute): copy row data into flat storage.
// Errors: ErrInvalidDimensions (empty input), ErrRaggedRows (unequal rows).
// Complexity: O(r*c) time and memory.
func FromRows(rows [][]float64) (*Dense, error) {
	// Validate outer shape.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])

	// Validate rectangularity before any allocation.
	for i := 1; i < r; i++ {
		if len(rows[i]) != c {
			return nil, ErrRaggedRows
		}
	}

	// Allocate and fill.
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		copy(m.data[i*c:(i+1)*c], rows[i]) // contiguous row copy
	}

	return m, nil
}
