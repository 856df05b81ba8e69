package classifier

import "fmt"

// Model maps a feature vector to a class label.
type Model interface {
	// Predict returns the label for features.
	Predict(features Features) string

	// NumFeatures returns the input dimension the model was trained on.
	NumFeatures() int

	// Classes returns the labels the model can emit.
	Classes() []string
}

// LinearSpec is the on-disk representation of a linear classifier such as
// logistic regression or a linear SVM.
type LinearSpec struct {
	Classes []string `json:"classes"`

	// Coef has one row for binary problems and one row per class otherwise.
	Coef [][]float64 `json:"coef"`

	// Intercept has one entry per Coef row.
	Intercept []float64 `json:"intercept"`
}

// Linear is a linear classifier.
// Binary models pick Classes[1] when the decision value is positive;
// multiclass models pick the class with the highest decision value.
type Linear struct {
	spec        LinearSpec
	numFeatures int
}

// NewLinear validates spec and builds a Linear model from it.
func NewLinear(spec LinearSpec) (*Linear, error) {
	if len(spec.Classes) < 2 {
		return nil, fmt.Errorf("%w: linear model needs at least 2 classes", ErrInvalidModelFile)
	}

	wantRows := len(spec.Classes)
	if wantRows == 2 {
		wantRows = 1
	}
	if len(spec.Coef) != wantRows {
		return nil, fmt.Errorf("%w: expected %d coef rows, got %d", ErrInvalidModelFile, wantRows, len(spec.Coef))
	}
	if len(spec.Intercept) != wantRows {
		return nil, fmt.Errorf("%w: expected %d intercepts, got %d", ErrInvalidModelFile, wantRows, len(spec.Intercept))
	}

	numFeatures := len(spec.Coef[0])
	for i, row := range spec.Coef {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("%w: coef row %d has %d features, row 0 has %d", ErrInvalidModelFile, i, len(row), numFeatures)
		}
	}

	return &Linear{spec: spec, numFeatures: numFeatures}, nil
}

// NumFeatures returns the input dimension.
func (m *Linear) NumFeatures() int {
	return m.numFeatures
}

// Classes returns the labels the model can emit.
func (m *Linear) Classes() []string {
	return m.spec.Classes
}

// Decision returns the decision value of every Coef row.
func (m *Linear) Decision(features Features) []float64 {
	scores := make([]float64, len(m.spec.Coef))
	for r, row := range m.spec.Coef {
		score := m.spec.Intercept[r]
		for idx, x := range features {
			if idx >= 0 && idx < len(row) {
				score += row[idx] * x
			}
		}
		scores[r] = score
	}
	return scores
}

// Predict returns the label for features.
func (m *Linear) Predict(features Features) string {
	scores := m.Decision(features)
	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.spec.Classes[1]
		}
		return m.spec.Classes[0]
	}
	return m.spec.Classes[argmax(scores)]
}

// argmax returns the index of the largest value. Ties go to the first index.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
