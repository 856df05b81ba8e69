// Package report renders prediction results.
//
// The PDF report is the downloadable artifact of a prediction. It is built
// in two steps: Geometry.Layout computes the pages and the position of every
// text item, and Generator draws that layout with fpdf. Keeping the layout
// pure makes pagination testable without parsing PDF bytes.
//
// The package also contains writers that display a prediction on a
// terminal or in a pipeline:
//   - SimpleWriter: human-readable text with an ASCII bar chart
//   - MarkdownWriter: Markdown with a result table and a mermaid pie chart
//   - JSONWriter: structured JSON for tool integration
package report
