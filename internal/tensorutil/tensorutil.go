// Package tensorutil holds small tensor plumbing shared by the transform
// packages: dtype-dispatched reshape and flat copies of host tensors.
package tensorutil

import (
	"slices"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Reshape returns a new tensor with the same flat contents as t and the given
// dimensions. The element count must match t exactly. t is not modified.
func Reshape(t *tensors.Tensor, dims ...int) (*tensors.Tensor, error) {
	size := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, errors.Errorf("reshape: invalid dimension %d in %v", d, dims)
		}
		size *= d
	}
	if size != t.Shape().Size() {
		return nil, errors.Errorf("reshape: tensor has %d elements, target shape %v has %d",
			t.Shape().Size(), dims, size)
	}

	switch dtype := t.Shape().DType; dtype {
	case dtypes.Float32:
		return reshapeFlat[float32](t, dims), nil
	case dtypes.Float64:
		return reshapeFlat[float64](t, dims), nil
	case dtypes.Int32:
		return reshapeFlat[int32](t, dims), nil
	case dtypes.Int64:
		return reshapeFlat[int64](t, dims), nil
	case dtypes.Uint8:
		return reshapeFlat[uint8](t, dims), nil
	default:
		return nil, errors.Errorf("reshape: unsupported dtype %s", dtype)
	}
}

func reshapeFlat[T float32 | float64 | int32 | int64 | uint8](t *tensors.Tensor, dims []int) *tensors.Tensor {
	// The enclosing dtype switch guarantees T matches t's dtype.
	var out *tensors.Tensor
	tensors.MustConstFlatData(t, func(flat []T) {
		out = tensors.FromFlatDataAndDimensions(slices.Clone(flat), dims...)
	})
	return out
}

// FromInts builds an Int32 tensor with the given dimensions from Go ints.
func FromInts(values []int, dims ...int) *tensors.Tensor {
	flat := make([]int32, len(values))
	for i, v := range values {
		flat[i] = int32(v)
	}
	return tensors.FromFlatDataAndDimensions(flat, dims...)
}

// Uint8Flat returns a copy of the flat contents of a Uint8 tensor.
func Uint8Flat(t *tensors.Tensor) ([]uint8, error) {
	if t.Shape().DType != dtypes.Uint8 {
		return nil, errors.Errorf("expected Uint8 tensor, got %s", t.Shape().DType)
	}
	flat, err := tensors.CopyFlatData[uint8](t)
	if err != nil {
		return nil, errors.Wrap(err, "copying tensor data")
	}
	return flat, nil
}
