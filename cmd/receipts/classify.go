package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-receipts-must-flow/internal/classifier"
	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <merchant>",
		Short: "Categorize an expense",
		Long: `Assign a spending category to an expense.

By default the hybrid path is used: fast keyword rules first, with an LLM
consulted only when the rules are unsure. Configure an LLM provider under
the llm key (or RECEIPTS_LLM_* environment variables) to enable the LLM
paths; without one, rules-only classification still works.

Examples:
  receipts classify "Starbucks Coffee"
  receipts classify "ABC Store" --description "Various items" --amount 45.00
  receipts classify "ABC Store" --method rule_based`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("description", "d", "", "Free-text description of the purchase")
	cmd.Flags().StringP("amount", "a", "", "Purchase amount, e.g. 45.00")
	cmd.Flags().StringP("method", "m", "hybrid", "Classification method (rule_based, llm, hybrid)")

	_ = viper.BindPFlag("classification.description", cmd.Flags().Lookup("description"))
	_ = viper.BindPFlag("classification.amount", cmd.Flags().Lookup("amount"))
	_ = viper.BindPFlag("classification.method", cmd.Flags().Lookup("method"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	expense := classifier.Expense{
		MerchantName: args[0],
		Description:  viper.GetString("classification.description"),
	}
	if raw := viper.GetString("classification.amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("invalid amount %q", raw), err)
		}
		expense.Amount = &amount
	}

	c, err := initClassifier()
	if err != nil {
		return err
	}

	result, err := c.Classify(ctx, expense, model.Method(viper.GetString("classification.method")))
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Print(renderClassification(&result))
	return nil
}
