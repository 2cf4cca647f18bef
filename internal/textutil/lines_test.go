package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyTotalLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Total 8.62", true},
		{"TOTAL: $45.00", true},
		{"Grand Total 100.00", true},
		{"Amount Due: 12.00", true},
		{"Balance Due 9.99", true},
		{"Subtotal 7.98", false},
		{"SUB-TOTAL 7.98", false},
		{"Milk 4.99", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyTotalLine(tt.line))
		})
	}
}

func TestIsLikelyTaxLine(t *testing.T) {
	assert.True(t, IsLikelyTaxLine("Tax 0.64"))
	assert.True(t, IsLikelyTaxLine("SALES TAX 1.20"))
	assert.True(t, IsLikelyTaxLine("VAT 20%"))
	assert.True(t, IsLikelyTaxLine("GST 5.00"))
	assert.False(t, IsLikelyTaxLine("Taxi fare 20.00"))
	assert.False(t, IsLikelyTaxLine("Milk 4.99"))
}

func TestIsLikelyDateLine(t *testing.T) {
	assert.True(t, IsLikelyDateLine("Date: 12/15/2023"))
	assert.True(t, IsLikelyDateLine("2023-12-15"))
	assert.True(t, IsLikelyDateLine("Dec 15, 2023"))
	assert.False(t, IsLikelyDateLine("Total 8.62"))
	assert.False(t, IsLikelyDateLine(""))
}

func TestFindContext(t *testing.T) {
	text := "thank you for shopping at WALMART store number 4821 today"

	tests := []struct {
		name         string
		keyword      string
		contextWords int
		want         string
	}{
		{
			name:         "middle of text",
			keyword:      "WALMART",
			contextWords: 2,
			want:         "shopping at WALMART store number",
		},
		{
			name:         "start of text clamps left",
			keyword:      "thank",
			contextWords: 2,
			want:         "thank you for",
		},
		{
			name:         "end of text clamps right",
			keyword:      "today",
			contextWords: 3,
			want:         "store number 4821 today",
		},
		{
			name:         "missing keyword",
			keyword:      "costco",
			contextWords: 2,
			want:         "",
		},
		{
			name:         "empty keyword",
			keyword:      "",
			contextWords: 2,
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindContext(text, tt.keyword, tt.contextWords))
		})
	}
}
