package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nao1215/sentiment/internal/model"
)

// barWidth is the length of a full bar in the ASCII chart.
const barWidth = 40

// SimpleWriter outputs human-readable text for terminal display.
// The chart is drawn with ASCII characters so the output can be piped to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose adds the chart values next to the bars.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeChart(&sb, result.Prediction.Chart)
	w.writeFooter(&sb, result)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the title and the prediction.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *Result) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                 SENTIMENT ANALYSIS RESULT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Model Used:          %s\n", result.Prediction.Model))
	sb.WriteString(fmt.Sprintf("Predicted Sentiment: %s\n", result.Prediction.Label))
	sb.WriteString(fmt.Sprintf("Text Length:         %d characters, %d lines\n", result.TextLength, result.Lines))
	sb.WriteString("\n")
}

// writeChart writes the bar chart, one row per bar.
func (w *SimpleWriter) writeChart(sb *strings.Builder, chart model.Chart) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(chart.Title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	maxValue := chart.Max()
	for _, bar := range chart.Bars {
		n := 0
		if maxValue > 0 {
			n = int(math.Round(bar.Value / maxValue * barWidth))
		}
		line := fmt.Sprintf("  %-9s |%s", bar.Label, strings.Repeat("#", n))
		if w.verbose {
			line += fmt.Sprintf(" %.2f", bar.Value)
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes where the PDF report went, if anywhere.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, result *Result) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	if result.Report != nil {
		sb.WriteString(fmt.Sprintf("PDF report: %s (%d page(s), %d bytes)\n",
			reportLocation(result.Report), result.Report.Pages, result.Report.Size))
		sb.WriteString(strings.Repeat("=", 60))
		sb.WriteString("\n")
	}
}

// reportLocation returns the path of a written report, or its name.
func reportLocation(a *model.Artifact) string {
	if a.Path != "" {
		return a.Path
	}
	return a.Name
}
