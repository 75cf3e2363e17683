package text

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	transforms "github.com/gomlx/go-transforms"
)

// ToCharCNN encodes each text as a one-hot character matrix padded with zero
// rows at the end to a fixed maxLen, returning a Float32 tensor of shape
// (len(texts), 1, maxLen, enc.NumClasses()). The singleton axis is the
// channel axis convolution layers expect.
//
// Texts longer than maxLen characters are rejected with ErrInvalidInput;
// clip them first (see LenClip).
func ToCharCNN(texts []string, maxLen int, enc *CharEncoder) (*tensors.Tensor, error) {
	if maxLen <= 0 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "ToCharCNN: non-positive max length %d", maxLen)
	}
	encoded := make([][]int, len(texts))
	for i, text := range texts {
		encoded[i] = enc.Encode(text)
		if len(encoded[i]) > maxLen {
			return nil, errors.Wrapf(transforms.ErrInvalidInput,
				"ToCharCNN: text %d has %d characters, max length is %d", i, len(encoded[i]), maxLen)
		}
	}
	return oneHotRows(encoded, maxLen, enc.NumClasses(), false), nil
}

// ToCharCNNRNN encodes each text as a one-hot character matrix padded with
// zero rows at the front, with the max length derived from the longest text,
// returning a Float32 tensor of shape (len(texts), 1, maxLen,
// enc.NumClasses()). Front padding lets a recurrent reader end on real
// characters.
//
// texts must be non-empty, otherwise the max length is undefined.
func ToCharCNNRNN(texts []string, enc *CharEncoder) (*tensors.Tensor, error) {
	if len(texts) == 0 {
		return nil, errors.Wrap(transforms.ErrInvalidInput, "ToCharCNNRNN: no texts given, max length is undefined")
	}
	encoded := make([][]int, len(texts))
	maxLen := 0
	for i, text := range texts {
		encoded[i] = enc.Encode(text)
		if len(encoded[i]) > maxLen {
			maxLen = len(encoded[i])
		}
	}
	klog.V(2).Infof("ToCharCNNRNN: %d texts, derived max length %d", len(texts), maxLen)
	return oneHotRows(encoded, maxLen, enc.NumClasses(), true), nil
}

// oneHotRows lays out per-text one-hot rows into a (n, 1, maxLen, classes)
// tensor, leaving pad rows all zero at the front or the back.
func oneHotRows(encoded [][]int, maxLen, classes int, padFront bool) *tensors.Tensor {
	flat := make([]float32, len(encoded)*maxLen*classes)
	for i, ids := range encoded {
		offset := 0
		if padFront {
			offset = maxLen - len(ids)
		}
		base := i * maxLen * classes
		for pos, id := range ids {
			flat[base+(offset+pos)*classes+id] = 1
		}
	}
	return tensors.FromFlatDataAndDimensions(flat, len(encoded), 1, maxLen, classes)
}
