package textnorm

import "strings"

// Similarity computes the Ratcliff/Obershelp ratio between two strings:
// twice the total length of matching blocks divided by the combined length.
// Returns a value in [0, 1]; two empty strings are considered identical.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchingRunes(ra, rb, 0, len(ra), 0, len(rb))
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// KeySimilarity compares two already-normalized keys. Equal keys score 1.0
// and containment of one non-empty key in the other is forced to 0.9 before
// falling back to the block-matching ratio. An empty key never matches.
func KeySimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}
	return Similarity(a, b)
}

// NameSimilarity normalizes both raw names and compares the resulting keys.
func NameSimilarity(a, b string) float64 {
	return KeySimilarity(Normalize(a), Normalize(b))
}

func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingRunes(a, b, alo, i, blo, j)
	total += matchingRunes(a, b, i+size, ahi, j+size, bhi)
	return total
}

// longestMatch finds the longest block of runes common to a[alo:ahi] and
// b[blo:bhi], preferring the earliest position in a, then in b, on ties.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	runLengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := runLengths[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		runLengths = next
	}
	return besti, bestj, bestsize
}
