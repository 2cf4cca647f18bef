// Package parser turns noisy receipt OCR text into a structured
// model.ParsedReceipt. Every field is extracted by an independent strategy
// contributing its own confidence; malformed input degrades to empty fields
// and low confidence, never an error.
package parser

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
	"github.com/Veraticus/the-receipts-must-flow/internal/textutil"
)

// Confidence assigned per extraction strategy. A keyword-matched total is a
// strong signal; falling back to the largest amount in the text is weak.
const (
	keywordTotalConfidence    = 0.9
	lowerHalfTotalBonus       = 0.05
	arithmeticTotalConfidence = 0.98
	largestAmountConfidence   = 0.5
	keywordSubtotalConfidence = 0.85
	keywordTaxConfidence      = 0.85
	dateConfidence            = 0.9
	timeConfidence            = 0.8
	paymentConfidence         = 0.7
	receiptNumberConfidence   = 0.7
	itemsConfidence           = 0.7
	currencySignalConfidence  = 0.9
	currencyDefaultConfidence = 0.5
)

var receiptNumberPattern = regexp.MustCompile(`(?i)\b(?:receipt|rcpt|ref|trans(?:action)?|inv(?:oice)?)\s*(?:no|num|number)?\s*[:#]{1,2}\s*([A-Za-z0-9-]{3,20})`)

var spaceRunPattern = regexp.MustCompile(`\s+`)

// Parser extracts structured receipts from raw OCR text. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a receipt parser.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, now: time.Now}
}

// Parse converts raw OCR text into a structured receipt. It is deterministic
// for identical input (metadata duration aside) and never fails: empty or
// garbage input yields an invalid, zero-confidence receipt.
func (p *Parser) Parse(rawText string) model.ParsedReceipt {
	start := time.Now()
	now := p.now()

	receipt := model.ParsedReceipt{
		RawText:  rawText,
		Currency: textutil.DefaultCurrency,
		Metadata: model.ParseMetadata{
			FieldConfidences: make(map[string]float64),
		},
	}

	lines := splitLines(rawText)
	if len(lines) == 0 {
		receipt.Metadata.Errors = append(receipt.Metadata.Errors, "empty input: no parsable lines")
		receipt.Metadata.Quality = model.QualityInvalid
		receipt.Metadata.DurationMs = time.Since(start).Milliseconds()
		return receipt
	}

	claimed := make(map[int]bool)

	p.extractMerchant(&receipt, lines, claimed)
	p.extractAmounts(&receipt, lines, claimed)
	p.extractDateTime(&receipt, lines, now)
	p.extractAuxiliary(&receipt, rawText)

	if items := extractItems(lines, claimed); len(items) > 0 {
		receipt.Items = items
		receipt.Metadata.FieldConfidences["items"] = itemsConfidence
		p.recordStrategy(&receipt, "items:line-split")
	}

	receipt.Confidence = textutil.OverallConfidence(receipt.Metadata.FieldConfidences)
	receipt.Metadata.Quality = p.AssessQuality(&receipt)
	receipt.Metadata.DurationMs = time.Since(start).Milliseconds()

	p.logger.Debug("receipt parsed",
		"merchant", receipt.MerchantName,
		"total_present", receipt.TotalAmount != nil,
		"items", len(receipt.Items),
		"confidence", receipt.Confidence,
		"quality", receipt.Metadata.Quality,
		"strategies", receipt.Metadata.StrategiesUsed)

	return receipt
}

// ParseBatch parses each text independently; one bad input never aborts the
// batch. Output order matches input order.
func (p *Parser) ParseBatch(texts []string) []model.ParsedReceipt {
	out := make([]model.ParsedReceipt, len(texts))
	for i, t := range texts {
		out[i] = p.Parse(t)
	}
	return out
}

// Validate re-checks the receipt invariants: non-negative total, date not in
// the future, and overall validity.
func (p *Parser) Validate(receipt *model.ParsedReceipt) bool {
	if receipt == nil {
		return false
	}
	if receipt.TotalAmount != nil && receipt.TotalAmount.IsNegative() {
		return false
	}
	if receipt.Date != nil && receipt.Date.After(p.now()) {
		return false
	}
	return receipt.IsValid()
}

// AssessQuality maps confidence and field completeness onto a coarse grade.
func (p *Parser) AssessQuality(receipt *model.ParsedReceipt) model.Quality {
	if receipt == nil || strings.TrimSpace(receipt.RawText) == "" {
		return model.QualityInvalid
	}

	switch {
	case receipt.Confidence >= 0.85 && receipt.HasRequiredFields():
		return model.QualityExcellent
	case receipt.Confidence >= 0.65:
		return model.QualityGood
	case receipt.Confidence >= 0.4:
		return model.QualityFair
	case receipt.Confidence >= 0.15:
		return model.QualityPoor
	default:
		return model.QualityInvalid
	}
}

func (p *Parser) extractMerchant(receipt *model.ParsedReceipt, lines []string, claimed map[int]bool) {
	name, score := textutil.ExtractMerchantName(lines)
	if name == "" {
		return
	}

	receipt.MerchantName = name
	receipt.Metadata.FieldConfidences["merchant_name"] = score
	p.recordStrategy(receipt, "merchant:header-scan")

	for i, line := range lines {
		if strings.TrimSpace(line) == name {
			claimed[i] = true
			break
		}
	}
}

func (p *Parser) extractAmounts(receipt *model.ParsedReceipt, lines []string, claimed map[int]bool) {
	// The last matching line wins: totals conventionally print after
	// subtotal and tax.
	totalIdx := -1
	var total *decimal.Decimal
	for i, line := range lines {
		if !textutil.IsLikelyTotalLine(line) {
			continue
		}
		if amount := lastNumberIn(line); amount != nil {
			totalIdx = i
			total = amount
		}
	}

	totalConf := 0.0
	if total != nil {
		totalConf = keywordTotalConfidence
		if totalIdx >= len(lines)/2 {
			totalConf += lowerHalfTotalBonus
		}
		claimed[totalIdx] = true
		receipt.TotalAmount = total
		p.recordStrategy(receipt, "total:keyword")
	} else if fallback := textutil.FindLargestAmount(receipt.RawText); fallback != nil {
		receipt.TotalAmount = fallback
		totalConf = largestAmountConfidence
		p.recordStrategy(receipt, "total:largest-amount")
	}

	for i, line := range lines {
		if i == totalIdx || !textutil.IsLikelySubtotalLine(line) {
			continue
		}
		if amount := lastNumberIn(line); amount != nil {
			receipt.Subtotal = amount
			receipt.Metadata.FieldConfidences["subtotal"] = keywordSubtotalConfidence
			claimed[i] = true
			p.recordStrategy(receipt, "subtotal:keyword")
		}
	}

	for i, line := range lines {
		if i == totalIdx || textutil.IsLikelySubtotalLine(line) || !textutil.IsLikelyTaxLine(line) {
			continue
		}
		if amount := lastNumberIn(line); amount != nil {
			receipt.Tax = amount
			receipt.Metadata.FieldConfidences["tax"] = keywordTaxConfidence
			claimed[i] = true
			p.recordStrategy(receipt, "tax:keyword")
		}
	}

	// Cross-check the extracted amounts against each other.
	if receipt.TotalAmount != nil && receipt.Subtotal != nil {
		if receipt.TotalAmount.LessThan(*receipt.Subtotal) {
			receipt.Metadata.Warnings = append(receipt.Metadata.Warnings,
				"total is less than subtotal; amounts kept as extracted")
			totalConf *= 0.6
		} else if receipt.Tax != nil {
			sum := receipt.Subtotal.Add(*receipt.Tax)
			if sum.Sub(*receipt.TotalAmount).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)) {
				totalConf = arithmeticTotalConfidence
				p.recordStrategy(receipt, "total:arithmetic")
			}
		}
	}

	if receipt.TotalAmount != nil {
		receipt.Metadata.FieldConfidences["total_amount"] = totalConf
	}
}

func (p *Parser) extractDateTime(receipt *model.ParsedReceipt, lines []string, now time.Time) {
	if date := extractDate(lines, now); date != nil {
		receipt.Date = date
		receipt.Metadata.FieldConfidences["date"] = dateConfidence
		p.recordStrategy(receipt, "date:pattern")
	} else {
		receipt.Metadata.Warnings = append(receipt.Metadata.Warnings, "no valid date found")
	}

	if t := extractTime(lines); t != "" {
		receipt.Time = t
		receipt.Metadata.FieldConfidences["time"] = timeConfidence
		p.recordStrategy(receipt, "time:pattern")
	}
}

func (p *Parser) extractAuxiliary(receipt *model.ParsedReceipt, rawText string) {
	if method := textutil.ExtractPaymentMethod(rawText); method != "" {
		receipt.PaymentMethod = method
		receipt.Metadata.FieldConfidences["payment_method"] = paymentConfidence
		p.recordStrategy(receipt, "payment:keyword")
	}

	if m := receiptNumberPattern.FindStringSubmatch(rawText); m != nil {
		receipt.ReceiptNumber = m[1]
		receipt.Metadata.FieldConfidences["receipt_number"] = receiptNumberConfidence
		p.recordStrategy(receipt, "receipt-number:pattern")
	}

	code := textutil.DetectCurrency(rawText)
	receipt.Currency = code
	lowered := strings.ToLower(rawText)
	if code != textutil.DefaultCurrency || strings.Contains(rawText, "$") || strings.Contains(lowered, "usd") {
		receipt.Metadata.FieldConfidences["currency"] = currencySignalConfidence
		p.recordStrategy(receipt, "currency:symbol")
	} else {
		receipt.Metadata.FieldConfidences["currency"] = currencyDefaultConfidence
	}
}

func (p *Parser) recordStrategy(receipt *model.ParsedReceipt, name string) {
	for _, s := range receipt.Metadata.StrategiesUsed {
		if s == name {
			return
		}
	}
	receipt.Metadata.StrategiesUsed = append(receipt.Metadata.StrategiesUsed, name)
}

// splitLines breaks raw OCR text into trimmed, non-empty lines with common
// OCR artifacts scrubbed.
func splitLines(rawText string) []string {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.ReplaceAll(line, "|", "")
		line = strings.ReplaceAll(line, "\\", "")
		line = spaceRunPattern.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// lastNumberIn returns the last number on a line, where amounts
// conventionally sit.
func lastNumberIn(line string) *decimal.Decimal {
	numbers := textutil.ExtractNumbers(line)
	if len(numbers) == 0 {
		return nil
	}
	n := numbers[len(numbers)-1]
	return &n
}
