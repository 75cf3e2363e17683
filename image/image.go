// Package image provides batch image preprocessing on dense host tensors:
// layout changes (flat to NHWC, NHWC to NCHW), pixel scaling, and the usual
// stochastic augmentations (flips, quarter rotations, color jitter, random
// and centered crops).
//
// Augmentations operate on lists of rank-3 (height, width, channels) Uint8
// tensors, one per image, so images in a list may differ in size. Scaling
// converts Uint8 pixels in [0, 255] to Float32. All functions leave their
// inputs untouched and return freshly allocated tensors.
package image

import (
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"

	transforms "github.com/gomlx/go-transforms"
	"github.com/gomlx/go-transforms/internal/tensorutil"
)

// FromFlat reshapes a flat (or flattened per-sample) tensor into an NHWC
// batch of shape (n, w, h, c), with n derived from the element count.
// Works for any dtype the reshape helper supports.
func FromFlat(t *tensors.Tensor, w, h, c int) (*tensors.Tensor, error) {
	if w <= 0 || h <= 0 || c <= 0 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "FromFlat: non-positive target shape (%d, %d, %d)", w, h, c)
	}
	size := t.Shape().Size()
	if size%(w*h*c) != 0 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput,
			"FromFlat: %d elements do not divide into images of shape (%d, %d, %d)", size, w, h, c)
	}
	return tensorutil.Reshape(t, size/(w*h*c), w, h, c)
}

// ToConv transposes an NHWC batch into the NCHW layout convolution kernels
// expect. The input must be rank-4.
func ToConv(t *tensors.Tensor) (*tensors.Tensor, error) {
	dims := t.Shape().Dimensions
	if len(dims) != 4 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "ToConv: expected rank-4 NHWC tensor, got shape %s", t.Shape())
	}
	n, h, w, c := dims[0], dims[1], dims[2], dims[3]

	switch dtype := t.Shape().DType; dtype {
	case dtypes.Uint8:
		return transposeNHWC[uint8](t, n, h, w, c), nil
	case dtypes.Float32:
		return transposeNHWC[float32](t, n, h, w, c), nil
	case dtypes.Float64:
		return transposeNHWC[float64](t, n, h, w, c), nil
	default:
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "ToConv: unsupported dtype %s", dtype)
	}
}

func transposeNHWC[T uint8 | float32 | float64](t *tensors.Tensor, n, h, w, c int) *tensors.Tensor {
	// The dtype switch in ToConv guarantees T matches t's dtype.
	out := make([]T, n*h*w*c)
	tensors.MustConstFlatData(t, func(flat []T) {
		for b := 0; b < n; b++ {
			for i := 0; i < h; i++ {
				for j := 0; j < w; j++ {
					for k := 0; k < c; k++ {
						out[((b*c+k)*h+i)*w+j] = flat[((b*h+i)*w+j)*c+k]
					}
				}
			}
		}
	})
	return tensors.FromFlatDataAndDimensions(out, n, c, h, w)
}

// Standardize maps Uint8 pixel values [0, 255] to Float32 values in [-1, 1]
// via x/127.5 - 1, preserving shape.
func Standardize(t *tensors.Tensor) (*tensors.Tensor, error) {
	return scaleUint8(t, func(v uint8) float32 { return float32(v)/127.5 - 1 })
}

// ZeroOneScale maps Uint8 pixel values [0, 255] to Float32 values in [0, 1]
// via x/255, preserving shape.
func ZeroOneScale(t *tensors.Tensor) (*tensors.Tensor, error) {
	return scaleUint8(t, func(v uint8) float32 { return float32(v) / 255 })
}

func scaleUint8(t *tensors.Tensor, f func(uint8) float32) (*tensors.Tensor, error) {
	flat, err := tensorutil.Uint8Flat(t)
	if err != nil {
		return nil, errors.Wrap(transforms.ErrInvalidInput, err.Error())
	}
	out := make([]float32, len(flat))
	for i, v := range flat {
		out[i] = f(v)
	}
	return tensors.FromFlatDataAndDimensions(out, t.Shape().Dimensions...), nil
}

// imageDims validates a single rank-3 (H, W, C) Uint8 image and returns its
// dimensions and a copy of its flat pixels.
func imageDims(t *tensors.Tensor) (h, w, c int, flat []uint8, err error) {
	dims := t.Shape().Dimensions
	if len(dims) != 3 {
		return 0, 0, 0, nil, errors.Wrapf(transforms.ErrInvalidInput,
			"expected rank-3 (H, W, C) image, got shape %s", t.Shape())
	}
	flat, err = tensorutil.Uint8Flat(t)
	if err != nil {
		return 0, 0, 0, nil, errors.Wrap(transforms.ErrInvalidInput, err.Error())
	}
	return dims[0], dims[1], dims[2], flat, nil
}
