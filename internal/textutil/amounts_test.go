package textutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain decimals in order",
			text: "Milk 4.99 Bread 2.99",
			want: []string{"4.99", "2.99"},
		},
		{
			name: "currency prefixed",
			text: "TOTAL $1,234.56",
			want: []string{"1234.56"},
		},
		{
			name: "comma decimal separator",
			text: "Gesamt 12,50",
			want: []string{"12.5"},
		},
		{
			name: "mixed separators",
			text: "1.234,56",
			want: []string{"1234.56"},
		},
		{
			name: "integers",
			text: "qty 3 of item 42",
			want: []string{"3", "42"},
		},
		{
			name: "four digit amount without grouping",
			text: "Total 1234.56",
			want: []string{"1234.56"},
		},
		{
			name: "unseparated integer amount",
			text: "Total 1500",
			want: []string{"1500"},
		},
		{
			name: "five digit run stays whole",
			text: "amount 12345",
			want: []string{"12345"},
		},
		{
			name: "no numbers",
			text: "thank you come again",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNumbers(tt.text)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				expected, err := decimal.NewFromString(w)
				require.NoError(t, err)
				assert.True(t, expected.Equal(got[i]),
					"index %d: want %s, got %s", i, expected, got[i])
			}
		})
	}
}

func TestFindLargestAmount(t *testing.T) {
	t.Run("picks the largest", func(t *testing.T) {
		got := FindLargestAmount("Subtotal 7.98 Tax 0.64 Total 8.62")
		require.NotNil(t, got)
		assert.True(t, decimal.NewFromFloat(8.62).Equal(*got))
	})

	t.Run("unseparated amount stays whole", func(t *testing.T) {
		got := FindLargestAmount("Total 1500")
		require.NotNil(t, got)
		assert.True(t, decimal.NewFromInt(1500).Equal(*got))
	})

	t.Run("nil on no numbers", func(t *testing.T) {
		assert.Nil(t, FindLargestAmount("no amounts here"))
	})

	t.Run("nil on empty", func(t *testing.T) {
		assert.Nil(t, FindLargestAmount(""))
	})
}
