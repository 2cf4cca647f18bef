package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/parser"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <text-file>",
		Short: "Parse OCR text into a structured receipt",
		Long: `Parse raw OCR output into a structured receipt record.

The input file should contain the raw text extracted from a receipt image.
Every field is extracted independently with its own confidence score; the
parser never fails outright, a bad scan just yields a low-quality result.

Examples:
  receipts parse scan.txt
  receipts parse scan.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("json", false, "Emit the full parsed receipt as JSON")
	_ = viper.BindPFlag("parse.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runParse(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return common.NewUserError("could not read input file", err)
	}

	p := parser.New(slog.Default())
	receipt := p.Parse(string(raw))

	if viper.GetBool("parse.json") {
		out, marshalErr := json.MarshalIndent(receipt, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to encode receipt: %w", marshalErr)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Print(renderReceipt(&receipt))
	return nil
}
