package model

import (
	"fmt"

	"github.com/Veraticus/the-receipts-must-flow/internal/common"
)

// ConfidenceThresholds gate the hybrid classifier's behavior. Results at or
// above AutoAccept skip the LLM entirely; rule confidence below LLMFallback
// triggers an LLM call; Minimum is the floor below which a result is flagged
// for review regardless of source.
type ConfidenceThresholds struct {
	AutoAccept  float64 `json:"auto_accept"`
	LLMFallback float64 `json:"llm_fallback"`
	Minimum     float64 `json:"minimum"`
}

// Validate checks the ordering invariant Minimum <= LLMFallback <= AutoAccept <= 1.
func (t ConfidenceThresholds) Validate() error {
	if t.Minimum < 0 || t.AutoAccept > 1 {
		return fmt.Errorf("%w: thresholds must lie in [0,1]", common.ErrInvalidConfig)
	}
	if t.Minimum > t.LLMFallback || t.LLMFallback > t.AutoAccept {
		return fmt.Errorf("%w: require minimum <= llm_fallback <= auto_accept, got %.2f/%.2f/%.2f",
			common.ErrInvalidConfig, t.Minimum, t.LLMFallback, t.AutoAccept)
	}
	return nil
}

// DefaultThresholds returns the standard preset.
func DefaultThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.8, LLMFallback: 0.5, Minimum: 0.3}
}

// StrictThresholds returns a preset that leans on the LLM more often and
// accepts fewer rule results outright.
func StrictThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.9, LLMFallback: 0.7, Minimum: 0.5}
}

// LenientThresholds returns a preset that trusts rule matches aggressively.
func LenientThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.6, LLMFallback: 0.4, Minimum: 0.2}
}

// ThresholdsPreset resolves a named preset. Unknown names fall back to the
// default preset with ok=false.
func ThresholdsPreset(name string) (ConfidenceThresholds, bool) {
	switch name {
	case "", "default":
		return DefaultThresholds(), true
	case "strict":
		return StrictThresholds(), true
	case "lenient":
		return LenientThresholds(), true
	default:
		return DefaultThresholds(), false
	}
}
