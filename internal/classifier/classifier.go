// Package classifier assigns spending categories to expenses. Three paths
// are offered: a deterministic rule engine, an LLM call, and a hybrid policy
// that gates the LLM behind configurable confidence thresholds.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/llm"
	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

// Expense is the classification input.
type Expense struct {
	MerchantName string
	Description  string
	Amount       *decimal.Decimal
}

// Classifier categorizes expenses. The LLM client is optional; without one,
// LLM-backed methods report ErrServiceUnavailable and the hybrid path runs
// rules-only.
type Classifier struct {
	rules      *ruleEngine
	llmClient  llm.Client
	thresholds model.ConfidenceThresholds
	logger     *slog.Logger
}

// New creates a Classifier. llmClient may be nil.
func New(logger *slog.Logger, llmClient llm.Client, thresholds model.ConfidenceThresholds) (*Classifier, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		rules:      newRuleEngine(),
		llmClient:  llmClient,
		thresholds: thresholds,
		logger:     logger,
	}, nil
}

// ClassifyWithRules runs only the keyword/merchant-table path. It is total
// and never calls an external service.
func (c *Classifier) ClassifyWithRules(merchantName, description string) model.ClassificationResult {
	start := time.Now()
	category, confidence := c.rules.classify(merchantName, description)
	return model.ClassificationResult{
		Category:         category,
		Confidence:       confidence,
		Method:           model.MethodRuleBased,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}

// ClassifyWithLLM delegates to the configured LLM client. It fails with
// ErrServiceUnavailable when no client is configured and with a wrapped
// ErrLLMResponse when the response cannot be used; it never substitutes a
// rule-based result.
func (c *Classifier) ClassifyWithLLM(ctx context.Context, expense Expense) (model.ClassificationResult, error) {
	if c.llmClient == nil {
		return model.ClassificationResult{}, common.ErrServiceUnavailable
	}

	start := time.Now()
	resp, err := c.llmClient.ClassifyExpense(ctx, llm.ExpenseRequest{
		MerchantName: expense.MerchantName,
		Description:  expense.Description,
		Amount:       expense.Amount,
	})
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("llm classification: %w", err)
	}

	category, _ := model.CanonicalizeCategory(resp.Category)
	return model.ClassificationResult{
		Category:         category,
		Confidence:       resp.Confidence,
		Method:           model.MethodLLM,
		Reasoning:        resp.Reasoning,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// ClassifyHybrid runs rules first and consults the LLM only when the rule
// confidence falls below autoAccept. LLM failures degrade to the rule result,
// so the hybrid path always produces a category.
func (c *Classifier) ClassifyHybrid(ctx context.Context, expense Expense) model.ClassificationResult {
	start := time.Now()

	ruleResult := c.ClassifyWithRules(expense.MerchantName, expense.Description)
	ruleConf := ruleResult.Confidence

	// Fast path: confident rule hit, no LLM call.
	if ruleConf >= c.thresholds.AutoAccept {
		return c.hybridResult(ruleResult, nil, ruleResult, true, start)
	}

	llmResult, err := c.ClassifyWithLLM(ctx, expense)
	if err != nil {
		c.logger.Debug("llm unavailable, degrading to rule result",
			"merchant", expense.MerchantName,
			"rule_confidence", ruleConf,
			"error", err)
		return c.hybridResult(ruleResult, nil, ruleResult, false, start)
	}

	// Below the fallback threshold the rule result carries little signal;
	// take the LLM's answer outright.
	if ruleConf < c.thresholds.LLMFallback {
		consensus := llmResult.Category == ruleResult.Category
		return c.hybridResult(ruleResult, &llmResult, llmResult, consensus, start)
	}

	// Ambiguous band: merge the two predictions.
	if llmResult.Category == ruleResult.Category {
		chosen := ruleResult
		if llmResult.Confidence > chosen.Confidence {
			chosen = llmResult
		}
		return c.hybridResult(ruleResult, &llmResult, chosen, true, start)
	}
	return c.hybridResult(ruleResult, &llmResult, llmResult, false, start)
}

// Classify dispatches to one of the classification paths.
func (c *Classifier) Classify(ctx context.Context, expense Expense, method model.Method) (model.ClassificationResult, error) {
	switch method {
	case model.MethodRuleBased:
		return c.ClassifyWithRules(expense.MerchantName, expense.Description), nil
	case model.MethodLLM:
		return c.ClassifyWithLLM(ctx, expense)
	case model.MethodHybrid:
		return c.ClassifyHybrid(ctx, expense), nil
	default:
		return model.ClassificationResult{}, fmt.Errorf("%w: unknown classification method %q", common.ErrInvalidConfig, method)
	}
}

// ClassifyBatch classifies each expense independently, preserving order.
// A single item's LLM failure degrades to the rule result for that item
// rather than aborting the batch.
func (c *Classifier) ClassifyBatch(ctx context.Context, expenses []Expense, method model.Method) []model.ClassificationResult {
	results := make([]model.ClassificationResult, len(expenses))
	for i, expense := range expenses {
		result, err := c.Classify(ctx, expense, method)
		if err != nil {
			c.logger.Warn("batch item degraded to rule classification",
				"merchant", expense.MerchantName,
				"error", err)
			result = c.ClassifyWithRules(expense.MerchantName, expense.Description)
		}
		results[i] = result
	}
	return results
}

// Thresholds returns the classifier's configured thresholds.
func (c *Classifier) Thresholds() model.ConfidenceThresholds {
	return c.thresholds
}

func (c *Classifier) hybridResult(rule model.ClassificationResult, llmRes *model.ClassificationResult, chosen model.ClassificationResult, consensus bool, start time.Time) model.ClassificationResult {
	ruleConf := rule.Confidence
	out := model.ClassificationResult{
		Category:         chosen.Category,
		Confidence:       chosen.Confidence,
		Method:           model.MethodHybrid,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		RulePrediction:   string(rule.Category),
		RuleConfidence:   &ruleConf,
		Reasoning:        chosen.Reasoning,
		HasConsensus:     consensus,
	}
	if llmRes != nil {
		llmConf := llmRes.Confidence
		out.LLMPrediction = string(llmRes.Category)
		out.LLMConfidence = &llmConf
	}
	return out
}
