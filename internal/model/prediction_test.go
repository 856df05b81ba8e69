package model

import "testing"

// TestNewSentimentChart tests the one-hot chart values.
func TestNewSentimentChart(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		label    string
		expected [3]float64
	}{
		{"positive", "positive", [3]float64{1, 0, 0}},
		{"positive upper case", "Positive", [3]float64{1, 0, 0}},
		{"negative", "negative", [3]float64{0, 1, 0}},
		{"negative mixed case", "NeGaTiVe", [3]float64{0, 1, 0}},
		{"neutral", "neutral", [3]float64{0, 0, 1}},
		{"unknown label", "mixed", [3]float64{0, 0, 1}},
		{"empty label", "", [3]float64{0, 0, 1}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			chart := NewSentimentChart(tc.label)
			if chart.Title != ChartTitle {
				t.Errorf("unexpected title %q", chart.Title)
			}
			if len(chart.Bars) != 3 {
				t.Fatalf("expected 3 bars, got %d", len(chart.Bars))
			}
			for i, bar := range chart.Bars {
				if bar.Value != tc.expected[i] {
					t.Errorf("bar %s: got %v, expected %v", bar.Label, bar.Value, tc.expected[i])
				}
			}
			if chart.Max() != 1 {
				t.Errorf("expected max 1, got %v", chart.Max())
			}
		})
	}

	t.Run("bar order and colors", func(t *testing.T) {
		t.Parallel()

		chart := NewSentimentChart("positive")
		want := []Bar{
			{Label: "Positive", Value: 1, Color: "green"},
			{Label: "Negative", Value: 0, Color: "red"},
			{Label: "Neutral", Value: 0, Color: "gray"},
		}
		for i, bar := range chart.Bars {
			if bar != want[i] {
				t.Errorf("bar %d: got %+v, expected %+v", i, bar, want[i])
			}
		}
	})
}

// TestPredictionReportRequest tests conversion to a report request.
func TestPredictionReportRequest(t *testing.T) {
	t.Parallel()

	p := NewPrediction(SVM, "positive")
	req := p.ReportRequest("great product")

	if req.ModelName != "SVM" {
		t.Errorf("expected model name SVM, got %q", req.ModelName)
	}
	if req.PredictedLabel != "positive" {
		t.Errorf("expected label positive, got %q", req.PredictedLabel)
	}
	if req.RawText != "great product" {
		t.Errorf("unexpected raw text %q", req.RawText)
	}
}
