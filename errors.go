package transforms

import "github.com/pkg/errors"

// ErrInvalidInput is returned (wrapped, with context) by any transform given
// inputs it cannot work with: empty collections, out-of-range indices, crops
// larger than the image. Detect it with errors.Is.
//
// Shape or dtype mismatches inside the array library are not translated to
// this error; they propagate as the array library reports them.
var ErrInvalidInput = errors.New("invalid input")
