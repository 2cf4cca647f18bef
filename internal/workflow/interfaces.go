// Package workflow orchestrates the receipt pipeline: OCR, parse, classify.
// The OCR engine is an external collaborator injected as an interface.
package workflow

import "context"

// OCRResult is what the OCR collaborator returns for an image.
type OCRResult struct {
	Success      bool
	RawText      string
	ErrorMessage string
	Confidence   float64
}

// OCRClient abstracts the external OCR engine.
type OCRClient interface {
	// RecognizeText extracts raw text from the image at path.
	RecognizeText(ctx context.Context, imagePath string) (OCRResult, error)
	// ValidateImage is a fast pre-check that the file looks processable.
	ValidateImage(imagePath string) bool
}
