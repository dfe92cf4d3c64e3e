package naming

import "strings"

// maxSuggestDistance bounds how far a candidate may be from the input to be suggested.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to name by edit distance, comparing
// case-insensitively. It reports false when nothing is close enough.
func Suggest(name string, candidates []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	folded := strings.ToLower(name)

	for _, c := range candidates {
		d := Levenshtein(folded, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions turning a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// keep a as the shorter string; only two rows are needed
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
