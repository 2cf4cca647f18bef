package model

import "time"

// WorkflowStep identifies a stage of the receipt processing pipeline.
type WorkflowStep string

// Pipeline steps in execution order, plus the terminal error state.
const (
	StepInitial  WorkflowStep = "initial"
	StepOCR      WorkflowStep = "ocr"
	StepParse    WorkflowStep = "parse"
	StepClassify WorkflowStep = "classify"
	StepComplete WorkflowStep = "complete"
	StepError    WorkflowStep = "error"
)

// StepTiming records how long a single pipeline step took.
type StepTiming struct {
	Step     WorkflowStep  `json:"step"`
	Duration time.Duration `json:"duration"`
}

// WorkflowResult is the orchestrator's merged output: the parsed receipt,
// the optional classification, and enough signal for callers to decide
// between accept, review and discard.
type WorkflowResult struct {
	ID                string                `json:"id"`
	Receipt           *ParsedReceipt        `json:"receipt,omitempty"`
	Classification    *ClassificationResult `json:"classification,omitempty"`
	Success           bool                  `json:"success"`
	ErrorMessage      string                `json:"error_message,omitempty"`
	OverallConfidence float64               `json:"overall_confidence"`
	NeedsReview       bool                  `json:"needs_review"`
	Warnings          []string              `json:"warnings,omitempty"`
	StepTimings       []StepTiming          `json:"step_timings,omitempty"`
}
