package classifier

import (
	"errors"
	"testing"
)

// TestLinear tests binary and multiclass linear models.
func TestLinear(t *testing.T) {
	t.Parallel()

	t.Run("binary uses sign of decision", func(t *testing.T) {
		t.Parallel()

		m, err := NewLinear(LinearSpec{
			Classes:   []string{"negative", "positive"},
			Coef:      [][]float64{{1, -1}},
			Intercept: []float64{0},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := m.Predict(Features{0: 1}); got != "positive" {
			t.Errorf("expected positive, got %q", got)
		}
		if got := m.Predict(Features{1: 1}); got != "negative" {
			t.Errorf("expected negative, got %q", got)
		}
		if got := m.Predict(Features{}); got != "negative" {
			t.Errorf("zero decision should pick first class, got %q", got)
		}
	})

	t.Run("multiclass uses argmax", func(t *testing.T) {
		t.Parallel()

		m, err := NewLinear(LinearSpec{
			Classes:   []string{"a", "b", "c"},
			Coef:      [][]float64{{1, 0}, {0, 1}, {0, 0}},
			Intercept: []float64{0, 0, 0.5},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := m.Predict(Features{0: 1}); got != "a" {
			t.Errorf("expected a, got %q", got)
		}
		if got := m.Predict(Features{1: 2}); got != "b" {
			t.Errorf("expected b, got %q", got)
		}
		if got := m.Predict(nil); got != "c" {
			t.Errorf("expected intercept to win, got %q", got)
		}
		if m.NumFeatures() != 2 {
			t.Errorf("expected 2 features, got %d", m.NumFeatures())
		}
	})

	t.Run("out of range features are ignored", func(t *testing.T) {
		t.Parallel()

		m, err := NewLinear(LinearSpec{
			Classes:   []string{"n", "p"},
			Coef:      [][]float64{{1}},
			Intercept: []float64{-0.5},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Predict(Features{7: 100}); got != "n" {
			t.Errorf("expected n, got %q", got)
		}
	})

	t.Run("invalid specs", func(t *testing.T) {
		t.Parallel()

		specs := []LinearSpec{
			{Classes: []string{"only"}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
			{Classes: []string{"a", "b"}, Coef: [][]float64{{1}, {1}}, Intercept: []float64{0, 0}},
			{Classes: []string{"a", "b"}, Coef: [][]float64{{1}}, Intercept: nil},
			{Classes: []string{"a", "b", "c"}, Coef: [][]float64{{1}, {1, 2}, {1}}, Intercept: []float64{0, 0, 0}},
		}
		for i, spec := range specs {
			if _, err := NewLinear(spec); !errors.Is(err, ErrInvalidModelFile) {
				t.Errorf("spec %d: expected ErrInvalidModelFile, got %v", i, err)
			}
		}
	})
}

// testTree splits on feature 0: <= 0.5 is "neg", otherwise "pos".
func testTree() TreeSpec {
	return TreeSpec{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{0, -2, -2},
		Threshold:     []float64{0.5, 0, 0},
		Value:         [][]float64{{5, 5}, {4, 1}, {0, 3}},
	}
}

// TestDecisionTree tests tree traversal.
func TestDecisionTree(t *testing.T) {
	t.Parallel()

	m, err := NewDecisionTree(TreeModelSpec{Classes: []string{"neg", "pos"}, NumFeatures: 1, Tree: testTree()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		features Features
		expected string
	}{
		{Features{}, "neg"},
		{Features{0: 0.5}, "neg"},
		{Features{0: 0.6}, "pos"},
	}
	for _, tc := range testCases {
		if got := m.Predict(tc.features); got != tc.expected {
			t.Errorf("%v: got %q, expected %q", tc.features, got, tc.expected)
		}
	}
}

// TestTreeValidation tests rejection of malformed trees.
func TestTreeValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		modify func(*TreeSpec)
	}{
		{"length mismatch", func(ts *TreeSpec) { ts.Threshold = ts.Threshold[:2] }},
		{"child points backwards", func(ts *TreeSpec) { ts.ChildrenLeft[0] = 0 }},
		{"child out of range", func(ts *TreeSpec) { ts.ChildrenRight[0] = 9 }},
		{"single child", func(ts *TreeSpec) { ts.ChildrenRight[1] = 2 }},
		{"feature out of range", func(ts *TreeSpec) { ts.Feature[0] = 3 }},
		{"leaf value width", func(ts *TreeSpec) { ts.Value[2] = []float64{1} }},
		{"empty", func(ts *TreeSpec) { *ts = TreeSpec{} }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree := testTree()
			tc.modify(&tree)
			_, err := NewDecisionTree(TreeModelSpec{Classes: []string{"neg", "pos"}, NumFeatures: 1, Tree: tree})
			if !errors.Is(err, ErrInvalidModelFile) {
				t.Errorf("expected ErrInvalidModelFile, got %v", err)
			}
		})
	}

	t.Run("non-positive feature count", func(t *testing.T) {
		t.Parallel()

		_, err := NewDecisionTree(TreeModelSpec{Classes: []string{"neg", "pos"}, Tree: testTree()})
		if !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})
}

// TestRandomForest tests averaging over trees.
func TestRandomForest(t *testing.T) {
	t.Parallel()

	// always "pos" with certainty
	alwaysPos := TreeSpec{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{-2},
		Threshold:     []float64{0},
		Value:         [][]float64{{0, 1}},
	}

	m, err := NewRandomForest(ForestSpec{
		Classes:     []string{"neg", "pos"},
		NumFeatures: 1,
		Trees:       []TreeSpec{testTree(), testTree(), alwaysPos},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// two trees say neg (0.8), one says pos (1.0): mean neg 0.533
	if got := m.Predict(Features{}); got != "neg" {
		t.Errorf("expected neg, got %q", got)
	}
	if got := m.Predict(Features{0: 1}); got != "pos" {
		t.Errorf("expected pos, got %q", got)
	}

	probs := m.Probabilities(Features{})
	if len(probs) != 2 || probs[0]+probs[1] < 0.999 || probs[0]+probs[1] > 1.001 {
		t.Errorf("probabilities should sum to 1: %v", probs)
	}

	t.Run("no trees", func(t *testing.T) {
		t.Parallel()

		_, err := NewRandomForest(ForestSpec{Classes: []string{"a"}, NumFeatures: 1})
		if !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})
}
