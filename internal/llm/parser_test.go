package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantCategory   string
		wantConfidence float64
		wantErr        bool
	}{
		{
			name:           "plain JSON",
			content:        `{"category": "Food & Dining", "confidence": 0.92, "reasoning": "coffee shop"}`,
			wantCategory:   "Food & Dining",
			wantConfidence: 0.92,
		},
		{
			name: "fenced JSON",
			content: "```json\n" +
				`{"category": "Groceries", "confidence": 0.8, "reasoning": "supermarket"}` +
				"\n```",
			wantCategory:   "Groceries",
			wantConfidence: 0.8,
		},
		{
			name:           "line format fallback",
			content:        "CATEGORY: Transportation\nCONFIDENCE: 0.75\nREASONING: gas station",
			wantCategory:   "Transportation",
			wantConfidence: 0.75,
		},
		{
			name:           "percentage confidence",
			content:        "CATEGORY: Healthcare\nCONFIDENCE: 85%",
			wantCategory:   "Healthcare",
			wantConfidence: 0.85,
		},
		{
			name:           "alias canonicalized",
			content:        `{"category": "food", "confidence": 0.7}`,
			wantCategory:   "Food & Dining",
			wantConfidence: 0.7,
		},
		{
			name:           "confidence clamped",
			content:        `{"category": "Shopping", "confidence": 1.4}`,
			wantCategory:   "Shopping",
			wantConfidence: 1.0,
		},
		{
			name:    "unknown category",
			content: `{"category": "Spaceships", "confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "empty response",
			content: "",
			wantErr: true,
		},
		{
			name:    "prose without structure",
			content: "I think this is probably a restaurant purchase.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrLLMResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 0.001)
		})
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0.85", 0.85},
		{"85%", 0.85},
		{" 0.5 ", 0.5},
		{"confidence is 0.7", 0.7},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseConfidence(tt.input), 0.001)
		})
	}
}

func TestMockClientDeterminism(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()

	first, err := mock.ClassifyExpense(ctx, ExpenseRequest{MerchantName: "Starbucks #1234"})
	require.NoError(t, err)
	second, err := mock.ClassifyExpense(ctx, ExpenseRequest{MerchantName: "Starbucks #1234"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Food & Dining", first.Category)
	assert.Equal(t, 2, mock.CallCount())

	unknown, err := mock.ClassifyExpense(ctx, ExpenseRequest{MerchantName: "Zzyzx Holdings"})
	require.NoError(t, err)
	assert.Equal(t, "Other", unknown.Category)
	assert.Less(t, unknown.Confidence, 0.5)

	mock.Reset()
	assert.Zero(t, mock.CallCount())
}

func TestMockClientFixedResponse(t *testing.T) {
	mock := NewMockClient()
	mock.FixedResponse = &ClassificationResponse{Category: "Travel", Confidence: 0.99}

	got, err := mock.ClassifyExpense(context.Background(), ExpenseRequest{MerchantName: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Category)
	assert.InDelta(t, 0.99, got.Confidence, 0.001)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewClient(Config{Provider: "carrier-pigeon", APIKey: "k"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = NewClient(Config{Provider: "openai"})
	assert.Error(t, err)

	client, err := NewClient(Config{Provider: "anthropic", APIKey: "k", RateLimit: 2})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
