// Package batch aligns variable-length integer token sequences into dense
// rectangular batches, and provides the sequence-level encodings and
// augmentations that usually sit next to batching in a preprocessing step:
// one-hot encoding, random token deletion and random contiguous crops.
//
// Example:
//
//	seqs := vectorizer.Transform(texts) // [][]int, ragged
//	t, err := batch.Pad(seqs, batch.Front)
//	if err != nil {
//		panic(err)
//	}
//	// t has shape (maxLen, len(seqs)); column j is sequence j, zero-padded
//	// at the front, ready to feed a recurrent model.
package batch

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	transforms "github.com/gomlx/go-transforms"
	"github.com/gomlx/go-transforms/internal/tensorutil"
)

// PadID is the sentinel token id used to fill unused positions of a batch.
// It must not collide with a real token id in the caller's vocabulary.
const PadID = 0

// Placement selects which end of a sequence receives padding.
//
// The zero value is Back. Any Placement other than Front behaves as Back,
// which keeps the permissive behavior of treating unrecognized placements as
// back-padding.
type Placement int

const (
	// Back appends padding after the last real token.
	Back Placement = iota
	// Front prepends padding before the first real token.
	Front
)

// String implements fmt.Stringer.
func (p Placement) String() string {
	if p == Front {
		return "front"
	}
	return "back"
}

// Pad aligns seqs to the longest sequence among them, filling the unused
// positions with PadID at the chosen end, and returns an Int32 tensor of
// shape (maxLen, len(seqs)): column j read top to bottom reproduces sequence
// j, with padding only before its first token (Front) or after its last one
// (Back). Sequence order is preserved across columns.
//
// seqs must be non-empty; individual sequences may be empty. Token ids pass
// through unchanged, negative ids included.
func Pad(seqs [][]int, placement Placement) (*tensors.Tensor, error) {
	if len(seqs) == 0 {
		return nil, errors.Wrap(transforms.ErrInvalidInput, "Pad: no sequences given, max length is undefined")
	}

	maxLen := 0
	for _, seq := range seqs {
		if len(seq) > maxLen {
			maxLen = len(seq)
		}
	}
	klog.V(2).Infof("Pad: %d sequences, max length %d, placement %s", len(seqs), maxLen, placement)

	// Flat row-major (maxLen, nSamples): position (i, j) is element i of the
	// padded sequence j.
	n := len(seqs)
	flat := make([]int, maxLen*n)
	for j, seq := range seqs {
		offset := 0
		if placement == Front {
			offset = maxLen - len(seq)
		}
		for i, token := range seq {
			flat[(offset+i)*n+j] = token
		}
	}
	return tensorutil.FromInts(flat, maxLen, n), nil
}
