// Package transforms holds the pieces shared by the data-preprocessing
// packages of this module: batch (sequence padding and encoding), image
// (augmentation), text (clipping and character encodings) and linear (a
// small linear model with pluggable cost).
//
// Every transform is a pure function over its arguments: inputs are never
// mutated and outputs are freshly allocated. Transforms that draw random
// numbers take an explicit *rand.Rand as their first argument, so callers
// control seeding and concurrent use.
//
// Example, padding tokenized sequences into a batch for an RNN:
//
//	seqs := [][]int{{256, 15, 3}, {888, 13}}
//	batchT, err := batch.Pad(seqs, batch.Front)
//	if err != nil {
//		panic(err)
//	}
//	fmt.Printf("batch shape: %s\n", batchT.Shape())
package transforms
