package batch

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"

	transforms "github.com/gomlx/go-transforms"
)

// OneHot encodes integer class ids as a Float32 tensor of shape
// (len(ids), classes): row i holds negative everywhere except a 1 at column
// ids[i].
//
// classes <= 0 derives the class count as max(ids)+1. Ids outside
// [0, classes) are rejected with ErrInvalidInput, as is an empty ids slice.
func OneHot(ids []int, classes int, negative float32) (*tensors.Tensor, error) {
	if len(ids) == 0 {
		return nil, errors.Wrap(transforms.ErrInvalidInput, "OneHot: no ids given")
	}
	if classes <= 0 {
		for _, id := range ids {
			if id+1 > classes {
				classes = id + 1
			}
		}
	}
	for _, id := range ids {
		if id < 0 || id >= classes {
			return nil, errors.Wrapf(transforms.ErrInvalidInput,
				"OneHot: id %d out of range [0, %d)", id, classes)
		}
	}

	flat := make([]float32, len(ids)*classes)
	if negative != 0 {
		for i := range flat {
			flat[i] = negative
		}
	}
	for i, id := range ids {
		flat[i*classes+id] = 1
	}
	return tensors.FromFlatDataAndDimensions(flat, len(ids), classes), nil
}
