package text

import (
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	transforms "github.com/gomlx/go-transforms"
)

// UnknownID is the class id given to characters absent from the encoder's
// alphabet. Id 0 is reserved for it; alphabet characters use ids from 1.
const UnknownID = 0

// CharEncoder maps characters to small integer class ids for one-hot
// character representations. Input text is NFC-normalized before lookup, so
// composed and decomposed forms of the same character encode identically.
type CharEncoder struct {
	ids map[rune]int
}

// NewCharEncoder builds an encoder from an explicit rune to id mapping.
// Ids must be unique and lie in [1, len(mapping)]; 0 stays reserved for
// unknown characters.
func NewCharEncoder(mapping map[rune]int) (*CharEncoder, error) {
	seen := make(map[int]bool, len(mapping))
	for r, id := range mapping {
		if id < 1 || id > len(mapping) {
			return nil, errors.Wrapf(transforms.ErrInvalidInput,
				"NewCharEncoder: id %d for %q outside [1, %d]", id, r, len(mapping))
		}
		if seen[id] {
			return nil, errors.Wrapf(transforms.ErrInvalidInput, "NewCharEncoder: duplicate id %d", id)
		}
		seen[id] = true
	}
	ids := make(map[rune]int, len(mapping))
	for r, id := range mapping {
		ids[r] = id
	}
	return &CharEncoder{ids: ids}, nil
}

// NewCharEncoderFromAlphabet builds an encoder giving the runes of alphabet
// consecutive ids starting at 1, in order of appearance.
func NewCharEncoderFromAlphabet(alphabet string) (*CharEncoder, error) {
	ids := make(map[rune]int)
	for _, r := range norm.NFC.String(alphabet) {
		if _, ok := ids[r]; ok {
			return nil, errors.Wrapf(transforms.ErrInvalidInput,
				"NewCharEncoderFromAlphabet: duplicate character %q", r)
		}
		ids[r] = len(ids) + 1
	}
	return &CharEncoder{ids: ids}, nil
}

// Encode maps each character of text to its class id, UnknownID for
// characters outside the alphabet.
func (e *CharEncoder) Encode(text string) []int {
	normalized := norm.NFC.String(text)
	out := make([]int, 0, len(normalized))
	for _, r := range normalized {
		out = append(out, e.ids[r]) // missing runes yield UnknownID (0)
	}
	return out
}

// NumClasses returns the one-hot width: one class per alphabet character
// plus the unknown class.
func (e *CharEncoder) NumClasses() int {
	return len(e.ids) + 1
}
