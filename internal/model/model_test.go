package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		want     Category
		wantKnow bool
	}{
		{"Food & Dining", CategoryFoodDining, true},
		{"food & dining", CategoryFoodDining, true},
		{"  Groceries  ", CategoryGroceries, true},
		{"food and dining", CategoryFoodDining, true},
		{"transport", CategoryTransportation, true},
		{"gym", CategoryFitness, true},
		{"misc", CategoryOther, true},
		{"Spaceships", CategoryOther, false},
		{"", CategoryOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := CanonicalizeCategory(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnow, known)
		})
	}
}

func TestCategoriesAreStable(t *testing.T) {
	first := Categories()
	second := Categories()
	require.Equal(t, first, second)
	assert.Contains(t, first, CategoryOther)

	// Callers must not be able to mutate the shared set.
	first[0] = Category("Mutated")
	assert.NotEqual(t, first[0], Categories()[0])
}

func TestConfidenceThresholdsValidate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds ConfidenceThresholds
		wantErr    bool
	}{
		{"default preset", DefaultThresholds(), false},
		{"strict preset", StrictThresholds(), false},
		{"lenient preset", LenientThresholds(), false},
		{"custom valid", ConfidenceThresholds{AutoAccept: 0.85, LLMFallback: 0.55, Minimum: 0.35}, false},
		{"fallback above auto accept", ConfidenceThresholds{AutoAccept: 0.5, LLMFallback: 0.8, Minimum: 0.3}, true},
		{"minimum above fallback", ConfidenceThresholds{AutoAccept: 0.9, LLMFallback: 0.4, Minimum: 0.5}, true},
		{"above one", ConfidenceThresholds{AutoAccept: 1.2, LLMFallback: 0.5, Minimum: 0.3}, true},
		{"negative minimum", ConfidenceThresholds{AutoAccept: 0.8, LLMFallback: 0.5, Minimum: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.thresholds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThresholdsPreset(t *testing.T) {
	got, ok := ThresholdsPreset("strict")
	assert.True(t, ok)
	assert.Equal(t, StrictThresholds(), got)

	got, ok = ThresholdsPreset("")
	assert.True(t, ok)
	assert.Equal(t, DefaultThresholds(), got)

	got, ok = ThresholdsPreset("bogus")
	assert.False(t, ok)
	assert.Equal(t, DefaultThresholds(), got)
}

func TestParsedReceiptValidity(t *testing.T) {
	total := decimal.NewFromFloat(8.62)

	t.Run("required fields", func(t *testing.T) {
		r := ParsedReceipt{MerchantName: "WALMART", TotalAmount: &total, Confidence: 0.7}
		assert.True(t, r.HasRequiredFields())
		assert.True(t, r.IsValid())
	})

	t.Run("merchant only is valid but incomplete", func(t *testing.T) {
		r := ParsedReceipt{MerchantName: "WALMART", Confidence: 0.5}
		assert.False(t, r.HasRequiredFields())
		assert.True(t, r.IsValid())
	})

	t.Run("no anchors", func(t *testing.T) {
		r := ParsedReceipt{Confidence: 0.9}
		assert.False(t, r.IsValid())
	})

	t.Run("below confidence floor", func(t *testing.T) {
		r := ParsedReceipt{MerchantName: "WALMART", TotalAmount: &total, Confidence: 0.2}
		assert.False(t, r.IsValid())
	})
}

func TestClassificationResultLevels(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceLevel
		reliable   bool
	}{
		{0.95, ConfidenceVeryHigh, true},
		{0.75, ConfidenceHigh, true},
		{0.7, ConfidenceHigh, false},
		{0.55, ConfidenceMedium, false},
		{0.35, ConfidenceLow, false},
		{0.1, ConfidenceVeryLow, false},
	}

	for _, tt := range tests {
		r := ClassificationResult{Confidence: tt.confidence}
		assert.Equal(t, tt.want, r.Level(), "confidence %.2f", tt.confidence)
		assert.Equal(t, tt.reliable, r.IsReliable(), "confidence %.2f", tt.confidence)
	}
}
