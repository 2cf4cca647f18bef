package textutil

import "strings"

// paymentKeywords is checked in order; earlier entries win so specific
// phrases beat generic ones ("debit" before "card").
var paymentKeywords = []struct {
	keyword string
	method  string
}{
	{"apple pay", "Mobile Payment"},
	{"google pay", "Mobile Payment"},
	{"samsung pay", "Mobile Payment"},
	{"contactless", "Mobile Payment"},
	{"gift card", "Gift Card"},
	{"debit", "Debit Card"},
	{"visa", "Credit Card"},
	{"mastercard", "Credit Card"},
	{"amex", "Credit Card"},
	{"american express", "Credit Card"},
	{"discover", "Credit Card"},
	{"credit", "Credit Card"},
	{"check", "Check"},
	{"cheque", "Check"},
	{"cash", "Cash"},
}

// ExtractPaymentMethod finds the payment method mentioned in the text.
// Returns "" when none is recognized.
func ExtractPaymentMethod(text string) string {
	lowered := strings.ToLower(text)
	for _, p := range paymentKeywords {
		if strings.Contains(lowered, p.keyword) {
			return p.method
		}
	}
	return ""
}
