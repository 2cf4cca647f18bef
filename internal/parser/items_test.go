package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractItems(t *testing.T) {
	t.Run("name price lines", func(t *testing.T) {
		items := extractItems([]string{"Milk 4.99", "Bread 2.99"}, nil)
		require.Len(t, items, 2)
		assert.Equal(t, "Milk", items[0].Name)
		assert.Equal(t, 1, items[0].Quantity)
		assert.True(t, decimal.NewFromFloat(4.99).Equal(items[0].LineTotal))
	})

	t.Run("quantity prefix", func(t *testing.T) {
		items := extractItems([]string{"2 x Coffee 3.50"}, nil)
		require.Len(t, items, 1)
		assert.Equal(t, "Coffee", items[0].Name)
		assert.Equal(t, 2, items[0].Quantity)
		assert.True(t, decimal.NewFromFloat(7.00).Equal(items[0].LineTotal))
	})

	t.Run("quantity at unit price", func(t *testing.T) {
		items := extractItems([]string{"Soda 3 @ 1.50"}, nil)
		require.Len(t, items, 1)
		assert.Equal(t, "Soda", items[0].Name)
		assert.Equal(t, 3, items[0].Quantity)
		require.NotNil(t, items[0].UnitPrice)
		assert.True(t, decimal.NewFromFloat(1.50).Equal(*items[0].UnitPrice))
		assert.True(t, decimal.NewFromFloat(4.50).Equal(items[0].LineTotal))
	})

	t.Run("claimed lines are skipped", func(t *testing.T) {
		items := extractItems([]string{"Milk 4.99", "Bread 2.99"}, map[int]bool{0: true})
		require.Len(t, items, 1)
		assert.Equal(t, "Bread", items[0].Name)
	})

	t.Run("bookkeeping lines are excluded", func(t *testing.T) {
		lines := []string{
			"Subtotal 7.98",
			"Tax 0.64",
			"Total 8.62",
			"CASH 10.00",
			"CHANGE 1.38",
			"----------",
			"12/15/2023",
			"14:35",
		}
		assert.Empty(t, extractItems(lines, nil))
	})

	t.Run("section headers are not items", func(t *testing.T) {
		items := extractItems([]string{"DAIRY", "Milk 4.99", "FROZEN FOODS"}, nil)
		require.Len(t, items, 1)
		assert.Equal(t, "Milk", items[0].Name)
	})

	t.Run("unreasonable prices are rejected", func(t *testing.T) {
		assert.Empty(t, extractItems([]string{"Phone 55512.34"}, nil))
	})

	t.Run("tax flag suffix tolerated", func(t *testing.T) {
		items := extractItems([]string{"CANDY PNUT BTR 1.18 F"}, nil)
		require.Len(t, items, 1)
		assert.Equal(t, "CANDY PNUT BTR", items[0].Name)
	})
}

func TestIsSectionHeader(t *testing.T) {
	assert.True(t, isSectionHeader("DAIRY"))
	assert.True(t, isSectionHeader("FROZEN FOODS"))
	assert.False(t, isSectionHeader("DAIRY 4.99"))
	assert.False(t, isSectionHeader("Milk"))
	assert.False(t, isSectionHeader("STORE #4821"))
	assert.False(t, isSectionHeader(""))
}
