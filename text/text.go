// Package text prepares raw strings for character-level models: clipping to
// a character budget on word boundaries, and encoding strings as one-hot
// character batches for CNN or CNN+RNN front-ends.
package text

import (
	"strings"
)

// LenClip clips each text to fewer than n characters, cutting only on word
// boundaries: it keeps the longest prefix of words whose joined length
// (single-space separators) stays below n.
//
// Texts shorter than n pass through unchanged.
func LenClip(texts []string, n int) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		words := strings.Split(text, " ")
		total := 0
		kept := 0
		for j, word := range words {
			l := len(word) + 1
			if j == 0 {
				l--
			}
			if j == len(words)-1 {
				l--
			}
			total += l
			if total >= n {
				break
			}
			kept++
		}
		out[i] = strings.Join(words[:kept], " ")
	}
	return out
}
