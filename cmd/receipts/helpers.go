package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-receipts-must-flow/internal/classifier"
	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/llm"
	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// initClassifier builds a classifier from configuration. When no LLM
// provider is configured the classifier still works in rules-only mode.
func initClassifier() (*classifier.Classifier, error) {
	thresholds, ok := model.ThresholdsPreset(viper.GetString("classification.thresholds"))
	if !ok {
		slog.Warn("unknown thresholds preset, using default",
			"preset", viper.GetString("classification.thresholds"))
	}

	var client llm.Client
	if provider := viper.GetString("llm.provider"); provider != "" {
		var err error
		client, err = llm.NewClient(llm.Config{
			Provider:    provider,
			APIKey:      viper.GetString("llm.api_key"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			RateLimit:   viper.GetInt("llm.rate_limit"),
		})
		if err != nil {
			return nil, common.NewUserError("failed to create LLM client", err)
		}
	}

	return classifier.New(slog.Default(), client, thresholds)
}

func renderReceipt(receipt *model.ParsedReceipt) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Parsed Receipt") + "\n")
	writeField(&b, "Merchant", receipt.MerchantName)
	if receipt.TotalAmount != nil {
		writeField(&b, "Total", receipt.Currency+" "+receipt.TotalAmount.StringFixed(2))
	}
	if receipt.Subtotal != nil {
		writeField(&b, "Subtotal", receipt.Subtotal.StringFixed(2))
	}
	if receipt.Tax != nil {
		writeField(&b, "Tax", receipt.Tax.StringFixed(2))
	}
	if receipt.Date != nil {
		writeField(&b, "Date", receipt.Date.Format("2006-01-02"))
	}
	if receipt.Time != "" {
		writeField(&b, "Time", receipt.Time)
	}
	if receipt.PaymentMethod != "" {
		writeField(&b, "Payment", receipt.PaymentMethod)
	}
	if receipt.ReceiptNumber != "" {
		writeField(&b, "Receipt #", receipt.ReceiptNumber)
	}

	if len(receipt.Items) > 0 {
		b.WriteString(labelStyle.Render("Items") + "\n")
		for _, item := range receipt.Items {
			line := fmt.Sprintf("  %dx %-30s %8s", item.Quantity, item.Name, item.LineTotal.StringFixed(2))
			b.WriteString(line + "\n")
		}
	}

	writeField(&b, "Confidence", renderConfidence(receipt.Confidence))
	writeField(&b, "Quality", string(receipt.Metadata.Quality))
	for _, w := range receipt.Metadata.Warnings {
		b.WriteString(warnStyle.Render("  ⚠ "+w) + "\n")
	}
	return b.String()
}

func renderClassification(result *model.ClassificationResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Classification") + "\n")
	writeField(&b, "Category", string(result.Category))
	writeField(&b, "Confidence", renderConfidence(result.Confidence))
	writeField(&b, "Method", string(result.Method))
	if result.Method == model.MethodHybrid {
		writeField(&b, "Consensus", fmt.Sprintf("%t", result.HasConsensus))
		if result.LLMPrediction != "" && !result.HasConsensus {
			writeField(&b, "Rule said", result.RulePrediction)
			writeField(&b, "LLM said", result.LLMPrediction)
		}
	}
	if result.Reasoning != "" {
		writeField(&b, "Reasoning", result.Reasoning)
	}
	return b.String()
}

func renderConfidence(confidence float64) string {
	text := fmt.Sprintf("%.2f", confidence)
	switch {
	case confidence >= 0.7:
		return goodStyle.Render(text)
	case confidence >= 0.4:
		return warnStyle.Render(text)
	default:
		return badStyle.Render(text)
	}
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(labelStyle.Render(label) + " " + value + "\n")
}
