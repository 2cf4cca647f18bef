package textutil

import (
	"strings"
	"unicode"
)

// merchantHeaderLines is how many leading lines are considered when looking
// for the merchant name.
const merchantHeaderLines = 5

// Terms that disqualify a line from being the merchant header.
var merchantBlacklist = []string{
	"receipt",
	"invoice",
	"thank you",
	"welcome",
	"cashier",
	"order",
	"customer copy",
	"tel",
	"phone",
	"fax",
	"www",
	".com",
	"http",
}

// ScoreMerchantName scores how likely a line is to be the merchant header.
// Earlier lines score higher; blacklisted terms, low letter density and
// digit-heavy lines score lower; all-caps headers get a bonus.
func ScoreMerchantName(line string, position int) float64 {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || len(trimmed) > 50 {
		return 0
	}

	lowered := strings.ToLower(trimmed)
	for _, term := range merchantBlacklist {
		if strings.Contains(lowered, term) {
			return 0
		}
	}

	var letters, digits int
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters == 0 {
		return 0
	}

	score := float64(letters) / float64(len(trimmed))

	// Store headers are conventionally printed in capitals.
	if trimmed == strings.ToUpper(trimmed) && letters >= 3 {
		score += 0.2
	}

	// Street numbers, store IDs and phone fragments drag the line down.
	score -= 0.5 * float64(digits) / float64(len(trimmed))

	// Position decay: the header is almost always in the first lines.
	score *= 1.0 - 0.15*float64(position)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ExtractMerchantName scans the first lines of a receipt and returns the
// best-scoring candidate with its score. Returns ("", 0) when no line clears
// the minimum score.
func ExtractMerchantName(lines []string) (string, float64) {
	const minScore = 0.35

	limit := merchantHeaderLines
	if len(lines) < limit {
		limit = len(lines)
	}

	best := ""
	bestScore := 0.0
	for i := 0; i < limit; i++ {
		score := ScoreMerchantName(lines[i], i)
		if score > bestScore {
			best = strings.TrimSpace(lines[i])
			bestScore = score
		}
	}

	if bestScore < minScore {
		return "", 0
	}
	return best, bestScore
}
