package batch

import (
	"math/rand"

	"github.com/pkg/errors"

	transforms "github.com/gomlx/go-transforms"
)

// Delete drops each token of each sequence independently with probability p,
// returning freshly allocated sequences. p <= 0 copies the input unchanged,
// p >= 1 empties every sequence.
func Delete(rng *rand.Rand, seqs [][]int, p float64) [][]int {
	out := make([][]int, len(seqs))
	for i, seq := range seqs {
		kept := make([]int, 0, len(seq))
		for _, token := range seq {
			if rng.Float64() > p {
				kept = append(kept, token)
			}
		}
		out[i] = kept
	}
	return out
}

// Patch takes from each sequence a contiguous subsequence of length
// int(fraction*len), with a uniformly random start offset. fraction must be
// in [0, 1].
func Patch(rng *rand.Rand, seqs [][]int, fraction float64) ([][]int, error) {
	if fraction < 0 || fraction > 1 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "Patch: fraction %g outside [0, 1]", fraction)
	}
	out := make([][]int, len(seqs))
	for i, seq := range seqs {
		n := int(fraction * float64(len(seq)))
		start := rng.Intn(len(seq) - n + 1)
		patch := make([]int, n)
		copy(patch, seq[start:start+n])
		out[i] = patch
	}
	return out, nil
}
