package textutil

import (
	"regexp"
	"strings"
)

var (
	totalLinePattern    = regexp.MustCompile(`(?i)\b(?:grand\s*total|total\s*due|amount\s*due|balance\s*due|amount\s*payable|total)\b`)
	subtotalLinePattern = regexp.MustCompile(`(?i)\bsub\s*[- ]?total\b`)
	taxLinePattern      = regexp.MustCompile(`(?i)\b(?:sales\s*tax|tax|vat|gst|hst|itbis)\b`)

	dateShapedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
		regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`),
	}
)

// IsLikelyTotalLine reports whether a line looks like it carries the receipt
// total. Subtotal lines do not count even though they contain "total".
func IsLikelyTotalLine(line string) bool {
	if subtotalLinePattern.MatchString(line) {
		// "Subtotal 7.98" is not a total line; "Subtotal ... Total" is.
		stripped := subtotalLinePattern.ReplaceAllString(line, "")
		return totalLinePattern.MatchString(stripped)
	}
	return totalLinePattern.MatchString(line)
}

// IsLikelySubtotalLine reports whether a line looks like a subtotal line.
func IsLikelySubtotalLine(line string) bool {
	return subtotalLinePattern.MatchString(line)
}

// IsLikelyTaxLine reports whether a line looks like a tax/VAT/GST line.
func IsLikelyTaxLine(line string) bool {
	return taxLinePattern.MatchString(line)
}

// IsLikelyDateLine reports whether a line contains a date-shaped token.
func IsLikelyDateLine(line string) bool {
	for _, p := range dateShapedPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// FindContext returns the keyword with up to contextWords words on each
// side, preserving original casing. Returns "" when the keyword is absent.
func FindContext(text, keyword string, contextWords int) string {
	if keyword == "" {
		return ""
	}

	words := strings.Fields(text)
	lowered := strings.ToLower(keyword)

	for i, w := range words {
		if !strings.Contains(strings.ToLower(w), lowered) {
			continue
		}

		start := i - contextWords
		if start < 0 {
			start = 0
		}
		end := i + contextWords + 1
		if end > len(words) {
			end = len(words)
		}
		return strings.Join(words[start:end], " ")
	}

	return ""
}
