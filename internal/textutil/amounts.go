package textutil

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches number-like tokens, optionally currency-prefixed.
// Grouped thousands ("1,234.56") and plain digit runs ("1234.56", "1500")
// are separate branches so an unseparated amount is never split mid-run.
var amountPattern = regexp.MustCompile(`[$€£¥₹]?\s*(?:\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)

// ExtractNumbers scans text for number-like tokens and returns them as
// decimals in order of appearance. Unparseable tokens are skipped.
func ExtractNumbers(text string) []decimal.Decimal {
	matches := amountPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		if d, ok := parseAmount(m); ok {
			out = append(out, d)
		}
	}
	return out
}

// FindLargestAmount returns the largest number found in the text, or nil
// when none parse.
func FindLargestAmount(text string) *decimal.Decimal {
	numbers := ExtractNumbers(text)
	if len(numbers) == 0 {
		return nil
	}

	largest := numbers[0]
	for _, n := range numbers[1:] {
		if n.GreaterThan(largest) {
			largest = n
		}
	}
	return &largest
}

// parseAmount normalizes a raw token into a decimal, resolving comma vs
// period separator ambiguity.
func parseAmount(token string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(token)
	cleaned = strings.TrimLeft(cleaned, "$€£¥₹ ")
	if cleaned == "" {
		return decimal.Decimal{}, false
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastPeriod := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastPeriod >= 0:
		// Whichever separator appears last is the decimal point.
		if lastComma > lastPeriod {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A lone comma followed by exactly two digits reads as a decimal
		// separator ("12,50"); anything else as thousands grouping.
		if len(cleaned)-lastComma-1 == 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
