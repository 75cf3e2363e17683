package image

import (
	"math"
	"math/rand"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"

	transforms "github.com/gomlx/go-transforms"
)

// FlipHorizontal mirrors each image along its width axis with probability
// 0.5, independently per image.
func FlipHorizontal(rng *rand.Rand, imgs []*tensors.Tensor) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if rng.Float64() > 0.5 {
			flat = flipW(flat, h, w, c)
		}
		out[idx] = tensors.FromFlatDataAndDimensions(flat, h, w, c)
	}
	return out, nil
}

// FlipVertical mirrors each image along its height axis with probability
// 0.5, independently per image.
func FlipVertical(rng *rand.Rand, imgs []*tensors.Tensor) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if rng.Float64() > 0.5 {
			flat = flipH(flat, h, w, c)
		}
		out[idx] = tensors.FromFlatDataAndDimensions(flat, h, w, c)
	}
	return out, nil
}

// Reflect applies to each image an independent vertical flip and then an
// independent horizontal flip, each with probability 0.5.
func Reflect(rng *rand.Rand, imgs []*tensors.Tensor) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if rng.Float64() > 0.5 {
			flat = flipH(flat, h, w, c)
		}
		if rng.Float64() > 0.5 {
			flat = flipW(flat, h, w, c)
		}
		out[idx] = tensors.FromFlatDataAndDimensions(flat, h, w, c)
	}
	return out, nil
}

// Rot90 rotates each image by a uniformly random number of counterclockwise
// quarter turns (0 to 3). Non-square images change shape on odd turns.
func Rot90(rng *rand.Rand, imgs []*tensors.Tensor) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		turns := rng.Intn(4)
		for range turns {
			flat, h, w = rot90(flat, h, w, c)
		}
		out[idx] = tensors.FromFlatDataAndDimensions(flat, h, w, c)
	}
	return out, nil
}

// ColorShift jitters each of the first three channels of each image: with
// probability p the channel is shifted by a uniform integer in
// [-scale, scale], then clipped back to [0, 255]. Images must have at least
// three channels and scale must be non-negative.
func ColorShift(rng *rand.Rand, imgs []*tensors.Tensor, p float64, scale int) ([]*tensors.Tensor, error) {
	if scale < 0 {
		return nil, errors.Wrapf(transforms.ErrInvalidInput, "ColorShift: negative scale %d", scale)
	}
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if c < 3 {
			return nil, errors.Wrapf(transforms.ErrInvalidInput,
				"ColorShift: image %d has %d channels, need at least 3", idx, c)
		}
		for channel := 0; channel < 3; channel++ {
			if rng.Float64() >= p {
				continue
			}
			shift := rng.Intn(2*scale+1) - scale
			for pixel := channel; pixel < len(flat); pixel += c {
				shifted := int(flat[pixel]) + shift
				flat[pixel] = uint8(min(255, max(0, shifted)))
			}
		}
		out[idx] = tensors.FromFlatDataAndDimensions(flat, h, w, c)
	}
	return out, nil
}

// Patch crops a (cropH, cropW) window at a uniformly random offset from each
// image. The window must fit inside every image.
func Patch(rng *rand.Rand, imgs []*tensors.Tensor, cropH, cropW int) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if err := checkCrop(h, w, cropH, cropW); err != nil {
			return nil, err
		}
		i := rng.Intn(h - cropH + 1)
		j := rng.Intn(w - cropW + 1)
		out[idx] = tensors.FromFlatDataAndDimensions(crop(flat, w, c, i, j, cropH, cropW), cropH, cropW, c)
	}
	return out, nil
}

// CenterCrop crops a (cropH, cropW) window from the center of each image,
// with offsets round((H-cropH)/2) and round((W-cropW)/2).
func CenterCrop(imgs []*tensors.Tensor, cropH, cropW int) ([]*tensors.Tensor, error) {
	out := make([]*tensors.Tensor, len(imgs))
	for idx, img := range imgs {
		h, w, c, flat, err := imageDims(img)
		if err != nil {
			return nil, err
		}
		if err := checkCrop(h, w, cropH, cropW); err != nil {
			return nil, err
		}
		i := int(math.Round(float64(h-cropH) / 2))
		j := int(math.Round(float64(w-cropW) / 2))
		out[idx] = tensors.FromFlatDataAndDimensions(crop(flat, w, c, i, j, cropH, cropW), cropH, cropW, c)
	}
	return out, nil
}

func checkCrop(h, w, cropH, cropW int) error {
	if cropH <= 0 || cropW <= 0 || cropH > h || cropW > w {
		return errors.Wrapf(transforms.ErrInvalidInput,
			"crop (%d, %d) does not fit image (%d, %d)", cropH, cropW, h, w)
	}
	return nil
}

// flipW reverses the width axis of an (h, w, c) flat image.
func flipW(flat []uint8, h, w, c int) []uint8 {
	out := make([]uint8, len(flat))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			copy(out[(i*w+j)*c:(i*w+j+1)*c], flat[(i*w+(w-1-j))*c:(i*w+(w-j))*c])
		}
	}
	return out
}

// flipH reverses the height axis of an (h, w, c) flat image.
func flipH(flat []uint8, h, w, c int) []uint8 {
	out := make([]uint8, len(flat))
	rowBytes := w * c
	for i := 0; i < h; i++ {
		copy(out[i*rowBytes:(i+1)*rowBytes], flat[(h-1-i)*rowBytes:(h-i)*rowBytes])
	}
	return out
}

// rot90 rotates an (h, w, c) flat image one quarter turn counterclockwise,
// returning the rotated pixels and the new (height, width).
func rot90(flat []uint8, h, w, c int) ([]uint8, int, int) {
	out := make([]uint8, len(flat))
	// out[i, j] = in[j, w-1-i], for out of shape (w, h).
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			copy(out[(i*h+j)*c:(i*h+j+1)*c], flat[(j*w+(w-1-i))*c:(j*w+(w-i))*c])
		}
	}
	return out, w, h
}

func crop(flat []uint8, w, c, i0, j0, cropH, cropW int) []uint8 {
	out := make([]uint8, cropH*cropW*c)
	for i := 0; i < cropH; i++ {
		srcStart := ((i0+i)*w + j0) * c
		copy(out[i*cropW*c:(i+1)*cropW*c], flat[srcStart:srcStart+cropW*c])
	}
	return out
}
