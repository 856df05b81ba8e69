package report

import (
	"io"
	"unicode/utf8"

	"github.com/nao1215/sentiment/internal/model"
)

// Result is what the writers display: a prediction, the size of the text
// it was made for and, when one was written, the PDF report.
type Result struct {
	// Prediction is the classifier outcome.
	Prediction *model.Prediction `json:"prediction"`

	// TextLength is the number of characters in the classified text.
	TextLength int `json:"text_length"`

	// Lines is the number of body lines in the PDF report.
	Lines int `json:"lines"`

	// Report is the generated PDF, or nil when none was written.
	Report *model.Artifact `json:"report,omitempty"`
}

// NewResult creates a Result for a prediction made on text.
func NewResult(p *model.Prediction, text string, report *model.Artifact) *Result {
	return &Result{
		Prediction: p,
		TextLength: utf8.RuneCountInString(text),
		Lines:      len(model.ReportRequest{RawText: text}.Lines()),
		Report:     report,
	}
}

// Writer defines the interface for result output.
// Implementations write a Result in various formats.
type Writer interface {
	// Write outputs the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *Result) (int, error)
}

// baseWriter provides common functionality for result writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
