package batch

import (
	"math/rand"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transforms "github.com/gomlx/go-transforms"
)

// TestPadFront tests front placement against hand-computed batches.
func TestPadFront(t *testing.T) {
	batch, err := Pad([][]int{{1}, {1, 2, 3}}, Front)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, batch.Shape().Dimensions)
	// Rows of the (maxLen, nSamples) batch: column 0 is [0,0,1], column 1 is [1,2,3].
	assert.Equal(t, []int32{0, 1, 0, 2, 1, 3}, tensors.MustCopyFlatData[int32](batch))
}

// TestPadBack tests back placement against hand-computed batches.
func TestPadBack(t *testing.T) {
	batch, err := Pad([][]int{{1}, {1, 2, 3}}, Back)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, batch.Shape().Dimensions)
	assert.Equal(t, []int32{1, 1, 0, 2, 0, 3}, tensors.MustCopyFlatData[int32](batch))
}

// TestPadNoPaddingNeeded tests that a full-length sequence is reproduced
// exactly for either placement.
func TestPadNoPaddingNeeded(t *testing.T) {
	for _, placement := range []Placement{Front, Back} {
		batch, err := Pad([][]int{{1, 2, 3}}, placement)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1}, batch.Shape().Dimensions)
		assert.Equal(t, []int32{1, 2, 3}, tensors.MustCopyFlatData[int32](batch))
	}
}

// TestPadEmptyInput tests that an empty list of sequences is rejected.
func TestPadEmptyInput(t *testing.T) {
	_, err := Pad(nil, Back)
	require.Error(t, err)
	assert.True(t, errors.Is(err, transforms.ErrInvalidInput))
}

// TestPadColumnsReproduceSequences tests that the non-sentinel run of every
// column reproduces the original sequence, in order, with padding only at the
// placement end.
func TestPadColumnsReproduceSequences(t *testing.T) {
	seqs := [][]int{
		{256, 15, 3, 888, 13},
		{7},
		{},
		{42, 42, 42},
	}
	for _, placement := range []Placement{Front, Back} {
		batch, err := Pad(seqs, placement)
		require.NoError(t, err)

		dims := batch.Shape().Dimensions
		require.Equal(t, []int{5, 4}, dims)
		flat := tensors.MustCopyFlatData[int32](batch)
		maxLen, n := dims[0], dims[1]

		for j, seq := range seqs {
			column := make([]int, 0, maxLen)
			for i := 0; i < maxLen; i++ {
				column = append(column, int(flat[i*n+j]))
			}
			if placement == Front {
				assert.Equal(t, seq, column[maxLen-len(seq):])
				for _, v := range column[:maxLen-len(seq)] {
					assert.Equal(t, PadID, v)
				}
			} else {
				assert.Equal(t, seq, column[:len(seq)])
				for _, v := range column[len(seq):] {
					assert.Equal(t, PadID, v)
				}
			}
		}
	}
}

// TestPadUnknownPlacement tests that placements other than Front behave as Back.
func TestPadUnknownPlacement(t *testing.T) {
	batch, err := Pad([][]int{{1}, {1, 2, 3}}, Placement(99))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 1, 0, 2, 0, 3}, tensors.MustCopyFlatData[int32](batch))
}

// TestOneHot tests the fixed and derived class-count cases.
func TestOneHot(t *testing.T) {
	oh, err := OneHot([]int{0, 2}, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, oh.Shape().Dimensions)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1}, tensors.MustCopyFlatData[float32](oh))

	// Derived class count: max(ids)+1.
	oh, err = OneHot([]int{1, 0, 3}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, oh.Shape().Dimensions)
}

// TestOneHotNegativeClass tests the fill value for non-target entries.
func TestOneHotNegativeClass(t *testing.T) {
	oh, err := OneHot([]int{1}, 2, -1)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 1}, tensors.MustCopyFlatData[float32](oh))
}

// TestOneHotInvalid tests rejection of empty and out-of-range inputs.
func TestOneHotInvalid(t *testing.T) {
	_, err := OneHot(nil, 3, 0)
	assert.True(t, errors.Is(err, transforms.ErrInvalidInput))

	_, err = OneHot([]int{5}, 3, 0)
	assert.True(t, errors.Is(err, transforms.ErrInvalidInput))

	_, err = OneHot([]int{-1}, 3, 0)
	assert.True(t, errors.Is(err, transforms.ErrInvalidInput))
}

// TestDelete tests the degenerate probabilities and input purity.
func TestDelete(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seqs := [][]int{{1, 2, 3}, {4, 5}}

	kept := Delete(rng, seqs, 0)
	assert.Equal(t, seqs, kept)

	emptied := Delete(rng, seqs, 1)
	for _, seq := range emptied {
		assert.Empty(t, seq)
	}

	// Inputs must be untouched.
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, seqs)
}

// TestDeleteDropsRoughlyP tests that the kept fraction tracks 1-p.
func TestDeleteDropsRoughlyP(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seq := make([]int, 10000)
	for i := range seq {
		seq[i] = i + 1
	}
	kept := Delete(rng, [][]int{seq}, 0.3)
	assert.InDelta(t, 7000, len(kept[0]), 300)
}

// TestPatch tests crop length, contiguity and validation.
func TestPatch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seqs := [][]int{{10, 11, 12, 13}, {20, 21}}

	out, err := Patch(rng, seqs, 0.5)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Len(t, out[0], 2)
	require.Len(t, out[1], 1)
	// Contiguity: the crop must appear verbatim inside the source.
	assert.Contains(t, [][]int{{10, 11}, {11, 12}, {12, 13}}, out[0])
	assert.Contains(t, [][]int{{20}, {21}}, out[1])

	full, err := Patch(rng, seqs, 1)
	require.NoError(t, err)
	assert.Equal(t, seqs, full)

	_, err = Patch(rng, seqs, 1.5)
	assert.True(t, errors.Is(err, transforms.ErrInvalidInput))
}
