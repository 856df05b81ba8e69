package report

import (
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/sentiment/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeChart(md, result.Prediction.Chart)
	w.writeAlert(md, result.Prediction.Label)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the result table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *Result) {
	md.H1(Title)
	md.PlainText("")

	rows := [][]string{
		{"Model Used", result.Prediction.Model.String()},
		{"Predicted Sentiment", "**" + result.Prediction.Label + "**"},
		{"Text Length", strconv.Itoa(result.TextLength) + " characters"},
		{"Lines", strconv.Itoa(result.Lines)},
	}
	if result.Report != nil {
		rows = append(rows,
			[]string{"PDF Report", "`" + reportLocation(result.Report) + "`"},
			[]string{"PDF Pages", strconv.Itoa(result.Report.Pages)},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeChart writes the chart values as a table and a mermaid pie chart.
func (w *MarkdownWriter) writeChart(md *markdown.Markdown, chart model.Chart) {
	md.H2(chart.Title)
	md.PlainText("")

	rows := make([][]string, 0, len(chart.Bars))
	for _, bar := range chart.Bars {
		rows = append(rows, []string{bar.Label, strconv.FormatFloat(bar.Value, 'f', 2, 64)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Sentiment", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	pie := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(chart.Title),
		piechart.WithShowData(true),
	)
	slices := 0
	for _, bar := range chart.Bars {
		// Pie slices are integers, so values are charted in percent.
		percent := uint64(math.Round(bar.Value * 100))
		if percent == 0 {
			continue
		}
		pie.LabelAndIntValue(bar.Label, percent)
		slices++
	}
	if slices == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, pie.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the predicted label.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, label string) {
	switch label {
	case model.LabelPositive:
		md.Tip("The text reads as positive.")
	case model.LabelNegative:
		md.Warningf("The text reads as negative.")
	default:
		md.Note("The text reads as neutral or mixed.")
	}
	md.PlainText("")
}

// writeFooter writes the result footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Result generated by [sentiment](https://github.com/nao1215/sentiment)*")
}
