package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/the-receipts-must-flow/internal/classifier"
	"github.com/Veraticus/the-receipts-must-flow/internal/common"
	"github.com/Veraticus/the-receipts-must-flow/internal/model"
	"github.com/Veraticus/the-receipts-must-flow/internal/parser"
)

// Options control a single ProcessReceipt run.
type Options struct {
	// UseClassifier enables the classification step after parsing.
	UseClassifier bool
	// Method selects the classification path; defaults to hybrid.
	Method model.Method
	// Timeout bounds the whole pipeline; zero means no bound beyond ctx.
	Timeout time.Duration
	// OnStepComplete is invoked after each completed step. It runs on its
	// own goroutine and must not be relied on for correctness.
	OnStepComplete func(step model.WorkflowStep)
}

// Orchestrator runs the OCR, parse and classify steps in order.
type Orchestrator struct {
	ocr        OCRClient
	parser     *parser.Parser
	classifier *classifier.Classifier
	logger     *slog.Logger
	newID      func() string
}

// New creates an Orchestrator. The classifier may be nil, in which case the
// classification step is skipped with a warning.
func New(logger *slog.Logger, ocr OCRClient, p *parser.Parser, c *classifier.Classifier) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		ocr:        ocr,
		parser:     p,
		classifier: c,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// ProcessReceipt runs the pipeline for one image. OCR failure stops the
// pipeline with Success=false and a wrapped ErrOCRFailed; parse and
// classification problems degrade into warnings and NeedsReview instead.
// A context deadline surfaces as a wrapped ErrTimeout, distinct from any
// processing failure.
func (o *Orchestrator) ProcessReceipt(ctx context.Context, imagePath string, opts Options) (model.WorkflowResult, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	if opts.Method == "" {
		opts.Method = model.MethodHybrid
	}

	result := model.WorkflowResult{ID: o.newID()}
	o.notify(opts, model.StepInitial)

	// OCR step.
	stepStart := time.Now()
	ocrRes, err := o.ocr.RecognizeText(ctx, imagePath)
	result.StepTimings = append(result.StepTimings, model.StepTiming{Step: model.StepOCR, Duration: time.Since(stepStart)})
	if err != nil {
		if timeoutErr := asTimeout(ctx, err); timeoutErr != nil {
			return o.fail(opts, result, "pipeline timed out during ocr"), timeoutErr
		}
		return o.fail(opts, result, fmt.Sprintf("ocr failed: %v", err)), fmt.Errorf("%w: %w", common.ErrOCRFailed, err)
	}
	if !ocrRes.Success {
		msg := ocrRes.ErrorMessage
		if msg == "" {
			msg = "ocr produced no text"
		}
		return o.fail(opts, result, msg), fmt.Errorf("%w: %s", common.ErrOCRFailed, msg)
	}
	o.notify(opts, model.StepOCR)

	if err := ctx.Err(); err != nil {
		return o.fail(opts, result, "pipeline timed out after ocr"), asTimeout(ctx, err)
	}

	// Parse step. The parser is total; a bad scan yields a low-confidence
	// receipt, not an error.
	stepStart = time.Now()
	receipt := o.parser.Parse(ocrRes.RawText)
	result.StepTimings = append(result.StepTimings, model.StepTiming{Step: model.StepParse, Duration: time.Since(stepStart)})
	result.Receipt = &receipt
	result.Warnings = append(result.Warnings, receipt.Metadata.Warnings...)
	o.notify(opts, model.StepParse)

	if err := ctx.Err(); err != nil {
		return o.fail(opts, result, "pipeline timed out after parse"), asTimeout(ctx, err)
	}

	// Classify step.
	if opts.UseClassifier {
		result.Classification = o.classify(ctx, &receipt, opts, &result)
	}

	result.Success = true
	result.OverallConfidence = overallConfidence(&receipt, result.Classification)
	result.NeedsReview = needsReview(&receipt, result.Classification, result.OverallConfidence, o.reviewFloor())
	o.notify(opts, model.StepComplete)

	o.logger.Info("receipt processed",
		"id", result.ID,
		"image", imagePath,
		"merchant", receipt.MerchantName,
		"quality", receipt.Metadata.Quality,
		"confidence", result.OverallConfidence,
		"needs_review", result.NeedsReview)
	return result, nil
}

// ProcessBatch processes each image independently and preserves order. One
// image's failure or timeout does not abort the rest.
func (o *Orchestrator) ProcessBatch(ctx context.Context, imagePaths []string, opts Options) []model.WorkflowResult {
	results := make([]model.WorkflowResult, len(imagePaths))
	for i, path := range imagePaths {
		result, err := o.ProcessReceipt(ctx, path, opts)
		if err != nil {
			result.Success = false
			if result.ErrorMessage == "" {
				result.ErrorMessage = err.Error()
			}
		}
		results[i] = result
	}
	return results
}

// ValidateImage delegates to the OCR collaborator's pre-check.
func (o *Orchestrator) ValidateImage(imagePath string) bool {
	return o.ocr.ValidateImage(imagePath)
}

func (o *Orchestrator) classify(ctx context.Context, receipt *model.ParsedReceipt, opts Options, result *model.WorkflowResult) *model.ClassificationResult {
	if o.classifier == nil {
		result.Warnings = append(result.Warnings, "classification skipped: no classifier configured")
		return nil
	}

	expense := classifier.Expense{
		MerchantName: receipt.MerchantName,
		Description:  describeItems(receipt),
		Amount:       receipt.TotalAmount,
	}

	stepStart := time.Now()
	classification, err := o.classifier.Classify(ctx, expense, opts.Method)
	result.StepTimings = append(result.StepTimings, model.StepTiming{Step: model.StepClassify, Duration: time.Since(stepStart)})
	if err != nil {
		// Non-fatal: the parse already succeeded.
		o.logger.Warn("classification failed", "id", result.ID, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("classification failed: %v", err))
		return nil
	}
	o.notify(opts, model.StepClassify)
	return &classification
}

func (o *Orchestrator) fail(opts Options, result model.WorkflowResult, msg string) model.WorkflowResult {
	result.Success = false
	result.ErrorMessage = msg
	result.NeedsReview = true
	o.notify(opts, model.StepError)
	o.logger.Warn("receipt pipeline failed", "id", result.ID, "error", msg)
	return result
}

func (o *Orchestrator) notify(opts Options, step model.WorkflowStep) {
	if opts.OnStepComplete == nil {
		return
	}
	cb := opts.OnStepComplete
	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Warn("step callback panicked", "step", step, "panic", r)
			}
		}()
		cb(step)
	}()
}

// asTimeout maps a context deadline onto the pipeline's timeout sentinel.
// Returns nil when the error is not deadline-related.
func asTimeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: canceled: %v", common.ErrTimeout, err)
	}
	return nil
}

func overallConfidence(receipt *model.ParsedReceipt, classification *model.ClassificationResult) float64 {
	if classification == nil {
		return receipt.Confidence
	}
	return (receipt.Confidence + classification.Confidence) / 2
}

// reviewFloor is the llmFallback threshold the classifier was configured
// with; results below it get flagged for manual review.
func (o *Orchestrator) reviewFloor() float64 {
	if o.classifier == nil {
		return model.DefaultThresholds().LLMFallback
	}
	return o.classifier.Thresholds().LLMFallback
}

func needsReview(receipt *model.ParsedReceipt, classification *model.ClassificationResult, overall, floor float64) bool {
	if !receipt.IsValid() || overall < floor {
		return true
	}
	// A hybrid disagreement needs a human eye no matter how confident the
	// winning prediction was.
	if classification != nil && classification.Method == model.MethodHybrid && !classification.HasConsensus {
		return true
	}
	return false
}

func describeItems(receipt *model.ParsedReceipt) string {
	if len(receipt.Items) == 0 {
		return ""
	}
	names := make([]byte, 0, 64)
	for i, item := range receipt.Items {
		if i > 0 {
			names = append(names, ", "...)
		}
		names = append(names, item.Name...)
		if len(names) > 200 {
			break
		}
	}
	return string(names)
}
