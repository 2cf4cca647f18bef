// Package model defines the core domain values produced by the receipt
// pipeline: parsed receipts, classification results, confidence thresholds
// and workflow outcomes.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quality is a coarse human-readable grade of a parsed receipt's usability.
type Quality string

// Quality grades, from best to worst.
const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
	QualityInvalid   Quality = "invalid"
)

// MinValidConfidence is the overall confidence floor below which a parsed
// receipt is considered invalid even when fields were extracted.
const MinValidConfidence = 0.3

// LineItem is a single purchased item recovered from a receipt.
type LineItem struct {
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity  int              `json:"quantity"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

// ParseMetadata records how a receipt was parsed: which strategies fired,
// per-field confidences, and anything that went wrong along the way.
type ParseMetadata struct {
	StrategiesUsed   []string           `json:"strategies_used,omitempty"`
	FieldConfidences map[string]float64 `json:"field_confidences,omitempty"`
	DurationMs       int64              `json:"duration_ms"`
	Warnings         []string           `json:"warnings,omitempty"`
	Errors           []string           `json:"errors,omitempty"`
	Quality          Quality            `json:"quality"`
}

// ParsedReceipt is the structured record recovered from raw OCR text.
// It is constructed once per parse and never mutated afterwards.
type ParsedReceipt struct {
	RawText       string           `json:"raw_text"`
	MerchantName  string           `json:"merchant_name,omitempty"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Time          string           `json:"time,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
	Currency      string           `json:"currency"`
	Items         []LineItem       `json:"items,omitempty"`
	Confidence    float64          `json:"confidence"`
	Metadata      ParseMetadata    `json:"metadata"`
}

// HasRequiredFields reports whether both the total amount and the merchant
// name were extracted.
func (r *ParsedReceipt) HasRequiredFields() bool {
	return r.TotalAmount != nil && r.MerchantName != ""
}

// IsValid reports whether the receipt is usable: at least one of the total
// amount or the merchant name is present and overall confidence clears the
// minimum floor.
func (r *ParsedReceipt) IsValid() bool {
	if r.TotalAmount == nil && r.MerchantName == "" {
		return false
	}
	return r.Confidence >= MinValidConfidence
}
