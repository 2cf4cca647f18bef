package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the spending categories",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(titleStyle.Render("Spending Categories"))
			for _, c := range model.CategoryNames() {
				fmt.Printf("  %s\n", c)
			}
		},
	}
}
