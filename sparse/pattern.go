// SPDX-License-Identifier: MIT
// Package sparse: the compressed sparsity pattern.
//
// A SparsityPattern is the set of (major, minor) positions a compressed
// matrix may store, held as a major-offsets array plus a minor-index array
// (the classic CSR/CSC index structure, orientation-agnostic). It is
// validated once at construction and immutable thereafter, so any number of
// matrices (e.g., a matrix and a scratch buffer of the same shape) can share
// one pattern by pointer.

package sparse

import (
	"fmt"
	"sort"
)

// SparsityPattern is an immutable compressed index structure.
//
// Invariants (validated by NewSparsityPattern, relied upon everywhere):
//   - len(offsets) == majorDim+1, offsets[0] == 0, non-decreasing,
//     offsets[majorDim] == len(minorIndices).
//   - every minor index lies in [0, minorDim).
//   - minor indices are strictly increasing within each major lane.
type SparsityPattern struct {
	majorDim     int   // number of major lanes (rows for CSR, columns for CSC)
	minorDim     int   // extent of the minor dimension
	offsets      []int // lane i occupies minorIndices[offsets[i]:offsets[i+1]]
	minorIndices []int // minor index per stored entry, lane-sorted
}

// NewSparsityPattern validates and constructs a pattern from raw compressed
// arrays. The input slices are copied; callers keep ownership of theirs.
//
// Stage 1 (Validate): offsets length, start, monotonicity, nnz agreement.
// Stage 2 (Validate): per-lane strict minor ordering and range.
// Stage 3 (Finalize): copy into the immutable structure.
//
// Errors: ErrOffsetsLength, ErrOffsetsStart, ErrOffsetsOrder,
// ErrIndicesLength, ErrMinorOutOfRange, ErrMinorOrder.
// Complexity: O(majorDim + nnz) time, O(majorDim + nnz) memory for the copy.
func NewSparsityPattern(majorDim, minorDim int, offsets, minorIndices []int) (*SparsityPattern, error) {
	// Stage 1: Validate the offsets array.
	if len(offsets) != majorDim+1 {
		return nil, fmt.Errorf("NewSparsityPattern: got %d offsets for major dim %d: %w",
			len(offsets), majorDim, ErrOffsetsLength)
	}
	if offsets[0] != 0 {
		return nil, fmt.Errorf("NewSparsityPattern: offsets[0] = %d: %w", offsets[0], ErrOffsetsStart)
	}
	for i := 1; i <= majorDim; i++ {
		if offsets[i] < offsets[i-1] {
			return nil, fmt.Errorf("NewSparsityPattern: offsets[%d] < offsets[%d]: %w",
				i, i-1, ErrOffsetsOrder)
		}
	}
	if offsets[majorDim] != len(minorIndices) {
		return nil, fmt.Errorf("NewSparsityPattern: last offset %d vs %d indices: %w",
			offsets[majorDim], len(minorIndices), ErrIndicesLength)
	}

	// Stage 2: Validate every lane's minor indices.
	var lane, k, minor, prev int // loop state
	for lane = 0; lane < majorDim; lane++ {
		prev = -1 // sentinel below any valid index
		for k = offsets[lane]; k < offsets[lane+1]; k++ {
			minor = minorIndices[k]
			if minor < 0 || minor >= minorDim {
				return nil, fmt.Errorf("NewSparsityPattern: lane %d index %d (minor dim %d): %w",
					lane, minor, minorDim, ErrMinorOutOfRange)
			}
			if minor <= prev { // duplicates and disorder are both violations
				return nil, fmt.Errorf("NewSparsityPattern: lane %d minor %d after %d: %w",
					lane, minor, prev, ErrMinorOrder)
			}
			prev = minor
		}
	}

	// Stage 3: Copy into the immutable structure.
	offsetsCopy := make([]int, len(offsets))
	copy(offsetsCopy, offsets)
	indicesCopy := make([]int, len(minorIndices))
	copy(indicesCopy, minorIndices)

	return &SparsityPattern{
		majorDim:     majorDim,
		minorDim:     minorDim,
		offsets:      offsetsCopy,
		minorIndices: indicesCopy,
	}, nil
}

// MajorDim returns the number of major lanes.
// Complexity: O(1).
func (p *SparsityPattern) MajorDim() int { return p.majorDim }

// MinorDim returns the extent of the minor dimension.
// Complexity: O(1).
func (p *SparsityPattern) MinorDim() int { return p.minorDim }

// NNZ returns the number of stored positions (explicit entries).
// Complexity: O(1).
func (p *SparsityPattern) NNZ() int { return len(p.minorIndices) }

// Lane returns the minor indices of major lane i as a read-only view into
// the pattern's storage. Callers MUST NOT mutate the returned slice.
// Panics if i is out of range (programmer error, not a data error).
// Complexity: O(1).
func (p *SparsityPattern) Lane(i int) []int {
	return p.minorIndices[p.offsets[i]:p.offsets[i+1]]
}

// laneBounds returns the [start, end) storage offsets of major lane i.
func (p *SparsityPattern) laneBounds(i int) (int, int) {
	return p.offsets[i], p.offsets[i+1]
}

// Entry locates the storage offset of position (major, minor) via binary
// search within the lane. The second return is false when the position is
// not part of the pattern — callers must pre-check membership before
// assuming a value is unconditionally stored.
// Complexity: O(log nnz(lane)).
func (p *SparsityPattern) Entry(major, minor int) (int, bool) {
	start, end := p.laneBounds(major)
	lane := p.minorIndices[start:end]
	// Binary search for the minor index within the sorted lane.
	k := sort.SearchInts(lane, minor)
	if k < len(lane) && lane[k] == minor {
		return start + k, true
	}

	return 0, false
}
