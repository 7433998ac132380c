// Package textdist provides edit distance and word similarity for title matching.
package textdist

import "github.com/xrash/smetrics"

// EditDistance returns the Levenshtein distance between a and b
// (insertion, deletion and substitution each cost 1).
// Operates on bytes: input is expected to be ASCII.
func EditDistance(a, b string) int {
	return smetrics.WagnerFischer(a, b, 1, 1, 1)
}

// CollapseRepeats replaces every run of identical consecutive bytes with a single one
// ("coooool" -> "col").
func CollapseRepeats(s string) string {
	if len(s) < 2 {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Similarity returns a score in [0, 1] derived from the edit distance of the
// repeat-collapsed inputs, normalized by the longer collapsed length.
// Two empty strings are identical (1).
func Similarity(a, b string) float64 {
	ca, cb := CollapseRepeats(a), CollapseRepeats(b)
	maxLen := max(len(ca), len(cb))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(EditDistance(ca, cb))/float64(maxLen)
}
