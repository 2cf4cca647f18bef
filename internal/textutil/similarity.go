// Package textutil provides the pure text heuristics the receipt pipeline is
// built on: string similarity, amount extraction, line-role detection,
// currency and payment-method lookup, merchant scoring and confidence
// aggregation. Every function is total: malformed input yields a zero value,
// never a panic or an error.
package textutil

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Similarity scores how alike two strings are on [0,1]. Identical strings
// score 1, the function is symmetric, and strings one substitution apart
// score above 0.8. Comparison is case-insensitive.
func Similarity(a, b string) float64 {
	s1 := strings.ToUpper(strings.TrimSpace(a))
	s2 := strings.ToUpper(strings.TrimSpace(b))

	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Containment is common for merchant variations ("STARBUCKS 001" vs
	// "STARBUCKS"): score by length ratio.
	if strings.Contains(s1, s2) {
		return 0.75 + 0.25*float64(len(s2))/float64(len(s1))
	}
	if strings.Contains(s2, s1) {
		return 0.75 + 0.25*float64(len(s1))/float64(len(s2))
	}

	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	distance := levenshteinDistance(s1, s2)
	score := float64(maxLen-distance) / float64(maxLen)

	// A single edit means near-identical regardless of length.
	if distance == 1 && score < 0.85 {
		score = 0.85
	}

	// Subsequence matching catches OCR drop-outs that Levenshtein punishes.
	if rank := fuzzy.RankMatch(s2, s1); rank >= 0 && rank < len(s1) {
		subseq := 0.6 - 0.4*float64(rank)/float64(len(s1))
		if subseq > score {
			score = subseq
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// FuzzyMatch returns the pool entry most similar to candidate, provided its
// similarity meets the threshold. Returns "" when nothing qualifies.
func FuzzyMatch(candidate string, pool []string, threshold float64) string {
	best := ""
	bestScore := threshold

	for _, p := range pool {
		score := Similarity(candidate, p)
		if score > bestScore || (score == bestScore && best == "") {
			best = p
			bestScore = score
		}
	}

	return best
}

// levenshteinDistance calculates the edit distance between two strings using
// two rows instead of the full matrix.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
