// Package sparse_test contains unit tests for the compressed sparsity
// pattern: construction invariants and position lookup.
package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlmat/sparse"
)

// TestNewSparsityPattern verifies a valid pattern and its accessors.
func TestNewSparsityPattern(t *testing.T) {
	// 3x4 pattern: lane 0 = {1, 3}, lane 1 = {}, lane 2 = {0, 2, 3}.
	p, err := sparse.NewSparsityPattern(3, 4, []int{0, 2, 2, 5}, []int{1, 3, 0, 2, 3})
	require.NoError(t, err)

	require.Equal(t, 3, p.MajorDim())
	require.Equal(t, 4, p.MinorDim())
	require.Equal(t, 5, p.NNZ())
	require.Equal(t, []int{1, 3}, p.Lane(0))
	require.Empty(t, p.Lane(1)) // an empty lane is legal
	require.Equal(t, []int{0, 2, 3}, p.Lane(2))
}

// TestNewSparsityPatternCopiesInputs ensures caller slices stay owned by the
// caller: mutating them after construction must not change the pattern.
func TestNewSparsityPatternCopiesInputs(t *testing.T) {
	offsets := []int{0, 1, 2}
	indices := []int{0, 1}
	p, err := sparse.NewSparsityPattern(2, 2, offsets, indices)
	require.NoError(t, err)

	indices[0] = 1 // caller-side mutation
	require.Equal(t, []int{0}, p.Lane(0))
}

// TestNewSparsityPatternInvalid walks every constructor invariant.
func TestNewSparsityPatternInvalid(t *testing.T) {
	cases := []struct {
		name     string
		major    int
		minor    int
		offsets  []int
		indices  []int
		sentinel error
	}{
		{"offsets too short", 3, 3, []int{0, 1, 1}, []int{0}, sparse.ErrOffsetsLength},
		{"offsets start nonzero", 2, 3, []int{1, 1, 2}, []int{0}, sparse.ErrOffsetsStart},
		{"offsets decreasing", 2, 3, []int{0, 2, 1}, []int{0, 1}, sparse.ErrOffsetsOrder},
		{"last offset vs indices", 2, 3, []int{0, 1, 3}, []int{0, 1}, sparse.ErrIndicesLength},
		{"minor too large", 2, 3, []int{0, 1, 2}, []int{0, 3}, sparse.ErrMinorOutOfRange},
		{"minor negative", 2, 3, []int{0, 1, 2}, []int{0, -1}, sparse.ErrMinorOutOfRange},
		{"duplicate minor in lane", 1, 3, []int{0, 2}, []int{1, 1}, sparse.ErrMinorOrder},
		{"unsorted lane", 1, 3, []int{0, 2}, []int{2, 0}, sparse.ErrMinorOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sparse.NewSparsityPattern(tc.major, tc.minor, tc.offsets, tc.indices)
			require.ErrorIs(t, err, tc.sentinel)
		})
	}
}

// TestEntry verifies binary-search lookup for stored and missing positions.
func TestEntry(t *testing.T) {
	p, err := sparse.NewSparsityPattern(2, 5, []int{0, 3, 4}, []int{0, 2, 4, 1})
	require.NoError(t, err)

	offset, ok := p.Entry(0, 2) // second entry of lane 0
	require.True(t, ok)
	require.Equal(t, 1, offset)

	offset, ok = p.Entry(1, 1) // only entry of lane 1
	require.True(t, ok)
	require.Equal(t, 3, offset)

	_, ok = p.Entry(0, 3) // minor 3 is not stored in lane 0
	require.False(t, ok)
	_, ok = p.Entry(1, 0) // minor 0 is not stored in lane 1
	require.False(t, ok)
}
