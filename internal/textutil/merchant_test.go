package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		position int
		min      float64
		max      float64
	}{
		{
			name:     "all caps header first line",
			line:     "WALMART",
			position: 0,
			min:      0.8,
			max:      1.0,
		},
		{
			name:     "blacklisted term",
			line:     "RECEIPT",
			position: 0,
			min:      0.0,
			max:      0.0,
		},
		{
			name:     "thank you line",
			line:     "Thank you for shopping",
			position: 0,
			min:      0.0,
			max:      0.0,
		},
		{
			name:     "phone line",
			line:     "Tel: 555-0100",
			position: 1,
			min:      0.0,
			max:      0.0,
		},
		{
			name:     "too short",
			line:     "AB",
			position: 0,
			min:      0.0,
			max:      0.0,
		},
		{
			name:     "digit heavy line",
			line:     "4821 00342 9981",
			position: 0,
			min:      0.0,
			max:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreMerchantName(tt.line, tt.position)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}

	t.Run("later positions score lower", func(t *testing.T) {
		first := ScoreMerchantName("TRADER JOES", 0)
		fourth := ScoreMerchantName("TRADER JOES", 4)
		assert.Greater(t, first, fourth)
	})
}

func TestExtractMerchantName(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "header on first line",
			lines: []string{"WALMART", "Date: 12/15/2023", "Milk 4.99"},
			want:  "WALMART",
		},
		{
			name:  "header after noise",
			lines: []string{"*** RECEIPT ***", "Corner Deli", "123 Main St"},
			want:  "Corner Deli",
		},
		{
			name:  "beyond first five lines is ignored",
			lines: []string{"", "", "", "", "", "WALMART"},
			want:  "",
		},
		{
			name:  "no usable line",
			lines: []string{"123456", "555-0100"},
			want:  "",
		},
		{
			name:  "empty input",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := ExtractMerchantName(tt.lines)
			assert.Equal(t, tt.want, got)
			if tt.want == "" {
				assert.Zero(t, score)
			} else {
				assert.Greater(t, score, 0.0)
			}
		})
	}
}
