package llm

import (
	"context"
	"strings"
	"sync"

	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

// MockClient is a deterministic Client for tests. It classifies by merchant
// keyword and records every request it receives.
type MockClient struct {
	mu sync.Mutex

	// FixedResponse, when set, is returned for every call.
	FixedResponse *ClassificationResponse
	// Err, when set, is returned for every call.
	Err error

	calls []ExpenseRequest
}

// NewMockClient creates a mock that uses keyword-based classification.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var mockKeywordCategories = []struct {
	keywords []string
	category model.Category
}{
	{[]string{"starbucks", "coffee", "cafe", "restaurant", "pizza", "burger"}, model.CategoryFoodDining},
	{[]string{"walmart", "target", "costco", "grocery", "market"}, model.CategoryGroceries},
	{[]string{"shell", "chevron", "exxon", "uber", "lyft", "parking"}, model.CategoryTransportation},
	{[]string{"netflix", "spotify", "cinema", "theater"}, model.CategoryEntertainment},
	{[]string{"cvs", "walgreens", "pharmacy", "clinic", "dental"}, model.CategoryHealthcare},
	{[]string{"electric", "water", "internet", "wireless", "utility"}, model.CategoryUtilities},
	{[]string{"hotel", "airline", "airbnb", "airways"}, model.CategoryTravel},
	{[]string{"amazon", "ebay", "mall", "store"}, model.CategoryShopping},
}

// ClassifyExpense returns a deterministic classification for the request.
func (m *MockClient) ClassifyExpense(_ context.Context, req ExpenseRequest) (ClassificationResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return ClassificationResponse{}, m.Err
	}
	if m.FixedResponse != nil {
		return *m.FixedResponse, nil
	}

	haystack := strings.ToLower(req.MerchantName + " " + req.Description)
	for _, entry := range mockKeywordCategories {
		for _, kw := range entry.keywords {
			if strings.Contains(haystack, kw) {
				return ClassificationResponse{
					Category:   string(entry.category),
					Confidence: 0.85,
					Reasoning:  "matched keyword " + kw,
				}, nil
			}
		}
	}

	return ClassificationResponse{
		Category:   string(model.CategoryOther),
		Confidence: 0.4,
		Reasoning:  "no recognizable merchant keywords",
	}, nil
}

// CallCount returns the number of recorded requests.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded requests.
func (m *MockClient) Calls() []ExpenseRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExpenseRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears recorded requests.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
