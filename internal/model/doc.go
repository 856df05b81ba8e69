// Package model defines the core data structures shared across sentiment.
//
// This package contains the following main types:
//   - ModelKind: The closed set of classifiers a user can pick from
//   - Prediction: A predicted label together with its chart data
//   - Chart: The bar-chart values shown next to a prediction
//   - ReportRequest: The input of the PDF report generator
//   - Artifact: A generated report document
//
// The models live in their own package so that classifier, report and
// server can share them without import cycles. All types serialize to JSON
// for the API and the JSON result writer.
package model
