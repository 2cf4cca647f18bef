package textutil

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is assumed when no currency signal is found in the text.
const DefaultCurrency = "USD"

// Symbol lookups run in order so multi-rune symbols win over their prefixes.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"C$", "CAD"},
	{"A$", "AUD"},
	{"R$", "BRL"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
	{"₩", "KRW"},
	{"$", "USD"},
}

var currencyKeywords = map[string]string{
	"euro":     "EUR",
	"euros":    "EUR",
	"pound":    "GBP",
	"pounds":   "GBP",
	"sterling": "GBP",
	"yen":      "JPY",
	"rupee":    "INR",
	"rupees":   "INR",
	"dollar":   "USD",
	"dollars":  "USD",
	"peso":     "MXN",
	"pesos":    "MXN",
}

var currencyCodePattern = regexp.MustCompile(`\b[A-Z]{3}\b`)

// Valid ISO codes that are also common English words on receipts.
var ambiguousCodes = map[string]bool{
	"ALL": true, // Albanian lek
	"TRY": true, // Turkish lira
	"TOP": true, // Tongan paʻanga
	"CUP": true, // Cuban peso
	"PEN": true, // Peruvian sol
}

// DetectCurrency finds the currency a receipt is denominated in via symbol,
// keyword or ISO-code lookup, defaulting to USD when nothing matches.
func DetectCurrency(text string) string {
	for _, s := range currencySymbols {
		if strings.Contains(text, s.symbol) {
			return s.code
		}
	}

	lowered := strings.ToLower(text)
	for keyword, code := range currencyKeywords {
		if strings.Contains(lowered, keyword) {
			return code
		}
	}

	// Bare three-letter tokens count only when go-money knows the code.
	for _, candidate := range currencyCodePattern.FindAllString(text, -1) {
		if ambiguousCodes[candidate] {
			continue
		}
		if money.GetCurrency(candidate) != nil {
			return candidate
		}
	}

	return DefaultCurrency
}
