package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

// buildPrompt creates the classification prompt for an expense.
func buildPrompt(req ExpenseRequest) string {
	categoryList := ""
	for _, c := range model.CategoryNames() {
		categoryList += fmt.Sprintf("- %s\n", c)
	}

	details := fmt.Sprintf("Merchant: %s", req.MerchantName)
	if req.Description != "" {
		details += fmt.Sprintf("\nDescription: %s", req.Description)
	}
	if req.Amount != nil {
		details += fmt.Sprintf("\nAmount: %s", req.Amount.StringFixed(2))
	}

	return fmt.Sprintf(`Classify this expense into exactly one of the allowed spending categories based solely on the expense details.

Allowed Categories:
%s
Expense Details:
%s

Respond with ONLY a JSON object in this exact shape:
{"category": "<one of the allowed categories>", "confidence": <0.0-1.0>, "reasoning": "<one short sentence>"}

Pick the category that best describes WHAT the merchant sells, not why the purchase might have been made.`,
		categoryList,
		details)
}

// systemPrompt is shared by all backends.
const systemPrompt = "You are an expense classifier. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

// trimMarkdownFences strips a ```json ... ``` wrapper some models insist on.
func trimMarkdownFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
