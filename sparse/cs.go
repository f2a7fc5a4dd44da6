// SPDX-License-Identifier: MIT
// Package sparse: the orientation-agnostic compressed core.
//
// csMatrix is the single storage layer beneath CsrMatrix and CscMatrix:
// a shared *SparsityPattern plus a values slice aligned index-for-index with
// the pattern's minor indices. CSR interprets major lanes as rows, CSC as
// columns; every arithmetic kernel below is written once in major/minor
// terms and reused by both public formats.
//
// Kernel contract:
//   - Kernels mutate ONLY the output's values slice — never any pattern.
//   - Kernels allocate nothing; all writes land in slots the caller already
//     allocated in the output (the prealloc convention).
//   - A result position missing from the output pattern surfaces as an
//     InvalidPattern operation error before any further slots are written.

package sparse

import "fmt"

// csMatrix couples a shared immutable pattern with mutable values.
type csMatrix struct {
	pattern *SparsityPattern
	values  []float64
}

// newCsMatrix validates value alignment against the pattern.
func newCsMatrix(pattern *SparsityPattern, values []float64) (csMatrix, error) {
	if pattern == nil {
		return csMatrix{}, fmt.Errorf("newCsMatrix: %w", ErrNilPattern)
	}
	if len(values) != pattern.NNZ() {
		return csMatrix{}, fmt.Errorf("newCsMatrix: %d values for %d slots: %w",
			len(values), pattern.NNZ(), ErrValuesLength)
	}

	return csMatrix{pattern: pattern, values: values}, nil
}

// laneValues returns the value slice of major lane i, aligned with
// pattern.Lane(i).
func (m *csMatrix) laneValues(i int) []float64 {
	start, end := m.pattern.laneBounds(i)
	return m.values[start:end]
}

// at returns the stored value at (major, minor), or 0 when the position is
// not part of the pattern.
func (m *csMatrix) at(major, minor int) float64 {
	if offset, ok := m.pattern.Entry(major, minor); ok {
		return m.values[offset]
	}
	return 0
}

// transposed materializes the transpose of m: a fresh csMatrix whose major
// lanes are m's minor indices. Used by the spMM fallback for transposed
// operands; spAdd handles transposition without materializing.
// Complexity: O(major + minor + nnz) time and memory (counting sort).
func (m *csMatrix) transposed() csMatrix {
	major, minor, nnz := m.pattern.MajorDim(), m.pattern.MinorDim(), m.pattern.NNZ()

	// Count entries per transposed lane (per original minor index).
	offsets := make([]int, minor+1)
	for _, j := range m.pattern.minorIndices {
		offsets[j+1]++
	}
	for i := 1; i <= minor; i++ { // prefix-sum into lane offsets
		offsets[i] += offsets[i-1]
	}

	// Scatter entries; source lanes are minor-sorted, so each transposed
	// lane receives its (new) minor indices in increasing major order.
	indices := make([]int, nnz)
	values := make([]float64, nnz)
	fill := make([]int, minor) // next free slot per transposed lane
	copy(fill, offsets[:minor])
	var i, k int
	for i = 0; i < major; i++ {
		start, end := m.pattern.laneBounds(i)
		for k = start; k < end; k++ {
			j := m.pattern.minorIndices[k]
			indices[fill[j]] = i
			values[fill[j]] = m.values[k]
			fill[j]++
		}
	}

	// The arrays are valid by construction; bypass re-validation.
	pattern := &SparsityPattern{
		majorDim:     minor,
		minorDim:     major,
		offsets:      offsets,
		minorIndices: indices,
	}

	return csMatrix{pattern: pattern, values: values}
}

// spAddCs computes C := β·C + α·op(A) over the cs layer. C and op(A) must
// have identical major/minor dimensions (checked by the public wrappers).
//
// NoOp path: merged two-pointer walk per lane — C's lane drives, A's lane
// follows; a position of A missing from C aborts with InvalidPattern.
// Transpose path: every C value is scaled by β first, then A's entries are
// scattered through C's pattern lookup at the swapped position.
//
// Complexity: O(nnz(C) + nnz(A)) for NoOp; O(nnz(C) + nnz(A)·log) transposed.
func spAddCs(beta float64, c *csMatrix, alpha float64, a Op[*csMatrix]) error {
	switch a.Kind() {
	case KindNoOp:
		return spAddCsNoOp(beta, c, alpha, a.Inner())
	case KindTranspose:
		return spAddCsTransposed(beta, c, alpha, a.Inner())
	default:
		panic(panicUnknownOpKind)
	}
}

// spAddCsNoOp is the merged-walk body of spAddCs for an untransposed A.
func spAddCsNoOp(beta float64, c *csMatrix, alpha float64, a *csMatrix) error {
	var lane int // major lane index
	for lane = 0; lane < c.pattern.MajorDim(); lane++ {
		cMinors := c.pattern.Lane(lane)
		cValues := c.laneValues(lane)
		aMinors := a.pattern.Lane(lane)
		aValues := a.laneValues(lane)

		ia := 0 // cursor into A's lane
		for ic, minor := range cMinors {
			cValues[ic] *= beta // positions absent from A are just scaled
			if ia < len(aMinors) && aMinors[ia] == minor {
				cValues[ic] += alpha * aValues[ia]
				ia++
			}
		}
		// Anything left in A's lane has no slot in C.
		if ia < len(aMinors) {
			return newOperationError(InvalidPattern, fmt.Sprintf(
				"spadd: output lane %d lacks position (minor %d) present in the operand",
				lane, aMinors[ia]))
		}
	}

	return nil
}

// spAddCsTransposed is the scatter body of spAddCs for a transposed A.
func spAddCsTransposed(beta float64, c *csMatrix, alpha float64, a *csMatrix) error {
	// Scale every stored C value by β up front; the scatter only adds.
	for i := range c.values {
		c.values[i] *= beta
	}

	var lane, k int // A lane and storage cursor
	for lane = 0; lane < a.pattern.MajorDim(); lane++ {
		start, end := a.pattern.laneBounds(lane)
		for k = start; k < end; k++ {
			minor := a.pattern.minorIndices[k]
			// A's (lane, minor) lands at C's (minor, lane) under transpose.
			offset, ok := c.pattern.Entry(minor, lane)
			if !ok {
				return newOperationError(InvalidPattern, fmt.Sprintf(
					"spadd: output lane %d lacks position (minor %d) present in the transposed operand",
					minor, lane))
			}
			c.values[offset] += alpha * a.values[k]
		}
	}

	return nil
}

// spMMCs computes C := β·C + α·A·B over the cs layer (both operands
// untransposed; the public wrappers reduce every other tag combination to
// this one). Classic sparse GEMM: for each output lane i, every nonzero
// A[i,k] scatters α·A[i,k]·B[k,j] across B's lane k into C's lane i.
//
// A product contribution whose target slot is missing from C's pattern
// aborts with InvalidPattern — the output pattern must be a superset of the
// true product pattern (fail loudly, never silently drop).
//
// Complexity: O(nnz(C) + Σ_{A[i,k]≠0} nnz(B lane k)·log nnz(C lane i)).
func spMMCs(beta float64, c *csMatrix, alpha float64, a, b *csMatrix) error {
	var (
		lane   int // output major lane
		ka, kb int // storage cursors into A and B
	)
	for lane = 0; lane < c.pattern.MajorDim(); lane++ {
		// Scale the output lane by β before accumulating contributions.
		cValues := c.laneValues(lane)
		for i := range cValues {
			cValues[i] *= beta
		}

		// Scatter α·A[lane,k]·B[k,j] into C[lane,j].
		aStart, aEnd := a.pattern.laneBounds(lane)
		for ka = aStart; ka < aEnd; ka++ {
			mid := a.pattern.minorIndices[ka] // middle dimension index k
			av := alpha * a.values[ka]

			bStart, bEnd := b.pattern.laneBounds(mid)
			for kb = bStart; kb < bEnd; kb++ {
				j := b.pattern.minorIndices[kb]
				offset, ok := c.pattern.Entry(lane, j)
				if !ok {
					return newOperationError(InvalidPattern, fmt.Sprintf(
						"spmm: output lane %d lacks position (minor %d) required by the product",
						lane, j))
				}
				c.values[offset] += av * b.values[kb]
			}
		}
	}

	return nil
}

// spMMCsDispatch reduces any tag combination to the NoOp/NoOp kernel,
// materializing transposed operands once (the slow fallback; dimension
// compatibility was already asserted by the public wrapper on the original
// operands).
func spMMCsDispatch(beta float64, c *csMatrix, alpha float64, a, b Op[*csMatrix]) error {
	left := a.Inner()
	if a.IsTranspose() {
		t := left.transposed()
		left = &t
	}
	right := b.Inner()
	if b.IsTranspose() {
		t := right.transposed()
		right = &t
	}

	return spMMCs(beta, c, alpha, left, right)
}
