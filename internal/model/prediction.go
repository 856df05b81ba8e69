package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Sentiment labels the chart knows about. Classifiers may emit other
// labels; those are charted as Neutral.
const (
	// LabelPositive is the positive sentiment label.
	LabelPositive = "positive"
	// LabelNegative is the negative sentiment label.
	LabelNegative = "negative"
	// LabelNeutral is the neutral sentiment label.
	LabelNeutral = "neutral"
)

// ChartTitle is the title shown above the sentiment bar chart.
const ChartTitle = "Sentiment Prediction Visualization"

// Bar is a single bar of the sentiment chart.
type Bar struct {
	// Label is the bar caption, e.g. "Positive".
	Label string `json:"label"`

	// Value is the bar height.
	Value float64 `json:"value"`

	// Color is a CSS color name used when drawing the bar.
	Color string `json:"color"`
}

// Chart is the data behind the sentiment bar chart.
type Chart struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
}

// NewSentimentChart builds the chart for a predicted label.
//
// The classifiers only return a label, not class probabilities, so the
// chart is a one-hot vector over Positive, Negative and Neutral: the bar
// matching the label is 1 and the others are 0. Labels other than
// positive/negative light up the Neutral bar.
func NewSentimentChart(label string) Chart {
	values := [3]float64{0, 0, 1}
	switch cases.Fold().String(strings.TrimSpace(label)) {
	case LabelPositive:
		values = [3]float64{1, 0, 0}
	case LabelNegative:
		values = [3]float64{0, 1, 0}
	}

	return Chart{
		Title: ChartTitle,
		Bars: []Bar{
			{Label: "Positive", Value: values[0], Color: "green"},
			{Label: "Negative", Value: values[1], Color: "red"},
			{Label: "Neutral", Value: values[2], Color: "gray"},
		},
	}
}

// Max returns the largest bar value, or 0 for an empty chart.
func (c Chart) Max() float64 {
	var m float64
	for _, b := range c.Bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

// Prediction is the outcome of classifying one piece of text.
type Prediction struct {
	// Model is the classifier that produced the label.
	Model ModelKind `json:"model"`

	// Label is the predicted sentiment as emitted by the classifier.
	Label string `json:"label"`

	// Chart is the visualization data derived from Label.
	Chart Chart `json:"chart"`
}

// NewPrediction creates a Prediction and derives its chart from label.
func NewPrediction(kind ModelKind, label string) *Prediction {
	return &Prediction{
		Model: kind,
		Label: label,
		Chart: NewSentimentChart(label),
	}
}

// ReportRequest returns the report input for this prediction and text.
func (p *Prediction) ReportRequest(rawText string) ReportRequest {
	return ReportRequest{
		RawText:        rawText,
		ModelName:      p.Model.String(),
		PredictedLabel: p.Label,
	}
}
