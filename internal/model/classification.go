package model

// Method indicates which classification path produced a result.
type Method string

// Classification methods.
const (
	MethodRuleBased Method = "rule_based"
	MethodLLM       Method = "llm"
	MethodHybrid    Method = "hybrid"
)

// ConfidenceLevel is a coarse bucketing of a confidence score.
type ConfidenceLevel string

// Confidence levels, from strongest to weakest.
const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
)

// ClassificationResult is the outcome of categorizing a single expense.
// Hybrid-mode results additionally carry both underlying predictions so
// callers can inspect disagreements.
type ClassificationResult struct {
	Category         Category `json:"category"`
	Confidence       float64  `json:"confidence"`
	Method           Method   `json:"method"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`

	// Hybrid-only fields.
	RulePrediction string   `json:"rule_prediction,omitempty"`
	RuleConfidence *float64 `json:"rule_confidence,omitempty"`
	LLMPrediction  string   `json:"llm_prediction,omitempty"`
	LLMConfidence  *float64 `json:"llm_confidence,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
	HasConsensus   bool     `json:"has_consensus"`
}

// IsReliable reports whether the result is confident enough to accept
// without review.
func (c *ClassificationResult) IsReliable() bool {
	return c.Confidence > 0.7
}

// Level buckets the result's confidence score.
func (c *ClassificationResult) Level() ConfidenceLevel {
	switch {
	case c.Confidence >= 0.9:
		return ConfidenceVeryHigh
	case c.Confidence >= 0.7:
		return ConfidenceHigh
	case c.Confidence >= 0.5:
		return ConfidenceMedium
	case c.Confidence >= 0.3:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
