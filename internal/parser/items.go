package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

// Patterns that disqualify a line from item extraction: totals and payment
// bookkeeping, separators, bare dates/times, store plumbing.
var itemExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:tax|subtotal|sub\s*total|total|grand\s*total|balance|change|cash|credit|debit|card|visa|mastercard|amex|discover|savings|discount|coupon|member|loyalty|points|reward|thank\s*you|have\s*a|store\s*#|cashier|trans|reg|date|time|tel|phone|address|receipt|return|refund|void|paid|purchase|tender|approval)\b`),
	regexp.MustCompile(`^\s*[-=*_.]+\s*$`),
	regexp.MustCompile(`^\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*$`),
	regexp.MustCompile(`^\s*\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AaPp][Mm])?\s*$`),
}

var (
	// "2 x Coffee 7.98" or "2 @ Coffee 7.98"
	qtyNamePricePattern = regexp.MustCompile(`^(\d{1,3})\s*[xX@]\s*(.+?)\s+\$?(\d{1,4}(?:\.\d{2}))\s*[A-Z]?\s*$`)
	// "Coffee 2 @ 3.99"
	nameQtyUnitPattern = regexp.MustCompile(`^(.+?)\s+(\d{1,3})\s*@\s*\$?(\d{1,4}(?:\.\d{2}))\s*(?:EA|EACH)?\s*$`)
	// "Milk  4.99" with an optional trailing tax flag
	namePricePattern = regexp.MustCompile(`^(.+?)\s+\$?(\d{1,4}(?:\.\d{2}))\s*[A-Z]?\s*$`)

	trailingPricePattern = regexp.MustCompile(`\$?\d{1,4}\.\d{2}\s*[A-Z]?\s*$`)
)

var maxItemPrice = decimal.NewFromInt(10000)

// extractItems walks the unclaimed lines and recovers line items. Lines
// already attributed to totals/tax/headers are skipped, as are section
// markers (all-caps lines with no trailing price).
func extractItems(lines []string, claimed map[int]bool) []model.LineItem {
	var items []model.LineItem

	for i, line := range lines {
		if claimed[i] {
			continue
		}
		if isExcludedItemLine(line) {
			continue
		}
		if isSectionHeader(line) {
			continue
		}

		if item, ok := parseItemLine(line); ok {
			items = append(items, item)
		}
	}

	return items
}

func isExcludedItemLine(line string) bool {
	for _, p := range itemExcludePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isSectionHeader detects category markers like "DAIRY" or "FROZEN FOODS":
// all caps, letters only, no trailing price.
func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trailingPricePattern.MatchString(trimmed) {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
		if unicode.IsDigit(r) {
			return false
		}
	}
	return hasLetter
}

func parseItemLine(line string) (model.LineItem, bool) {
	if m := qtyNamePricePattern.FindStringSubmatch(line); m != nil {
		return buildItem(m[2], m[3], m[1])
	}
	if m := nameQtyUnitPattern.FindStringSubmatch(line); m != nil {
		return buildItem(m[1], m[3], m[2])
	}
	if m := namePricePattern.FindStringSubmatch(line); m != nil {
		return buildItem(m[1], m[2], "1")
	}
	return model.LineItem{}, false
}

func buildItem(rawName, rawPrice, rawQty string) (model.LineItem, bool) {
	name := cleanItemName(rawName)
	if name == "" {
		return model.LineItem{}, false
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil || !price.IsPositive() || price.GreaterThan(maxItemPrice) {
		return model.LineItem{}, false
	}

	qty := 1
	if q, convErr := decimal.NewFromString(rawQty); convErr == nil && q.IsPositive() {
		qty = int(q.IntPart())
		if qty < 1 {
			qty = 1
		}
	}

	unit := price
	return model.LineItem{
		Name:      name,
		UnitPrice: &unit,
		Quantity:  qty,
		LineTotal: price.Mul(decimal.NewFromInt(int64(qty))),
	}, true
}

func cleanItemName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, ".,;:-_")
	name = strings.TrimLeft(name, "@#* ")

	hasLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return ""
	}
	return strings.TrimSpace(name)
}
