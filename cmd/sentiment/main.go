// Package main provides the entry point for the sentiment CLI.
//
// sentiment classifies free text with one of four pre-trained models
// (Logistic Regression, SVM, Random Forest, Decision Tree) and writes the
// result as a PDF report.
//
// Usage:
//
//	sentiment predict -m "SVM" "I really enjoyed this"
//	sentiment serve
//
// See --help for all available options.
package main

// main is the entry point for sentiment.
func main() {
	Execute()
}
