package verify

import "strings"

// Similarity returns the Ratcliff/Obershelp matching ratio between two
// strings in [0,1], after lowercasing and trimming both. The method finds
// the longest common contiguous substring, recurses on the left and right
// remainders, sums the matched lengths M, and returns 2*M/(len(a)+len(b)).
// The verification thresholds were tuned against exactly this ratio, so an
// edit-distance metric is not a substitute. Symmetric; Similarity(a,a) == 1
// for non-empty a.
func Similarity(a, b string) float64 {
	ar := []rune(strings.ToLower(strings.TrimSpace(a)))
	br := []rune(strings.ToLower(strings.TrimSpace(b)))

	total := len(ar) + len(br)
	if total == 0 {
		return 0
	}
	return 2 * float64(matchedLength(ar, br)) / float64(total)
}

func matchedLength(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedLength(a[:ai], b[:bi]) +
		matchedLength(a[ai+size:], b[bi+size:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// common contiguous run. Ties resolve to the earliest match in a.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > size {
				size = cur[j]
				ai = i - size
				bi = j - size
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
