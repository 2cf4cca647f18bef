package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/model"
)

// parseClassification extracts a classification from raw model output.
// JSON is the requested format; a CATEGORY:/CONFIDENCE: line format is
// accepted as recovery for models that ignore the instructions.
func parseClassification(content string) (ClassificationResponse, error) {
	cleaned := trimMarkdownFences(content)

	var jsonResp struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(cleaned), &jsonResp); err == nil && jsonResp.Category != "" {
		return normalizeResponse(jsonResp.Category, jsonResp.Confidence, jsonResp.Reasoning)
	}

	// Fall back to line-oriented parsing.
	var category, reasoning string
	var confidence float64
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CATEGORY:"):
			category = strings.TrimSpace(strings.TrimPrefix(line, "CATEGORY:"))
		case strings.HasPrefix(line, "CONFIDENCE:"):
			confidence = parseConfidence(strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:")))
		case strings.HasPrefix(line, "REASONING:"):
			reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}

	if category == "" {
		return ClassificationResponse{}, fmt.Errorf("%w: no category in response: %q",
			common.ErrLLMResponse, truncate(content, 120))
	}
	return normalizeResponse(category, confidence, reasoning)
}

// normalizeResponse canonicalizes the category label and clamps confidence.
func normalizeResponse(category string, confidence float64, reasoning string) (ClassificationResponse, error) {
	canon, known := model.CanonicalizeCategory(category)
	if !known {
		return ClassificationResponse{}, fmt.Errorf("%w: unknown category %q",
			common.ErrLLMResponse, category)
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return ClassificationResponse{
		Category:   string(canon),
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

// parseConfidence accepts "0.85", "85%" and sloppily formatted variants.
func parseConfidence(s string) float64 {
	if strings.HasSuffix(s, "%") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64); err == nil {
			return v / 100.0
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
