// Package llm provides the LLM-service collaborator port used for expense
// classification, with raw-HTTP OpenAI and Anthropic backends and a
// deterministic in-memory mock for tests.
package llm

import (
	"context"

	"github.com/shopspring/decimal"
)

// Client defines the interface for LLM providers.
type Client interface {
	ClassifyExpense(ctx context.Context, req ExpenseRequest) (ClassificationResponse, error)
}

// ExpenseRequest carries the expense details sent to the LLM.
type ExpenseRequest struct {
	MerchantName string
	Description  string
	Amount       *decimal.Decimal
}

// ClassificationResponse contains the LLM's classification result.
type ClassificationResponse struct {
	Category   string
	Confidence float64
	Reasoning  string
}

// Config holds configuration for LLM clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	RateLimit   int // requests per second; 0 disables limiting
}
