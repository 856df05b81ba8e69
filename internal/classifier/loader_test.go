package classifier

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/sentiment/internal/model"
)

// writeFile writes content into dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestExpectedType tests the kind to file type mapping.
func TestExpectedType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     model.ModelKind
		expected string
	}{
		{model.LogisticRegression, TypeLinear},
		{model.SVM, TypeLinear},
		{model.RandomForest, TypeRandomForest},
		{model.DecisionTree, TypeDecisionTree},
		{model.ModelKind(0), ""},
	}

	for _, tc := range testCases {
		if got := ExpectedType(tc.kind); got != tc.expected {
			t.Errorf("ExpectedType(%v) = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}

// TestLoadVectorizer tests reading vectorizer files.
func TestLoadVectorizer(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "vectorizer.json",
			`{"type":"count","vocabulary":{"good":0,"bad":1}}`)

		v, err := LoadVectorizer(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.NumFeatures() != 2 {
			t.Errorf("expected 2 features, got %d", v.NumFeatures())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadVectorizer(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "vectorizer.json", `{"vocabulary":`)
		if _, err := LoadVectorizer(path); !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})

	t.Run("invalid contents", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "vectorizer.json", `{"type":"count","vocabulary":{}}`)
		if _, err := LoadVectorizer(path); !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})
}

// TestDecodeModel tests decoding each model type.
func TestDecodeModel(t *testing.T) {
	t.Parallel()

	linear := `{"type":"linear","classes":["negative","positive"],"coef":[[1,-1]],"intercept":[0]}`
	tree := `{"type":"decision_tree","classes":["negative","positive"],"n_features":2,
		"tree":{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[0,-2,-2],
		"threshold":[0.5,0,0],"value":[[1,1],[1,0],[0,1]]}}`
	forest := `{"type":"random_forest","classes":["negative","positive"],"n_features":2,
		"trees":[{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[0],"value":[[0,2]]}]}`

	t.Run("linear", func(t *testing.T) {
		t.Parallel()

		for _, kind := range []model.ModelKind{model.LogisticRegression, model.SVM} {
			m, err := DecodeModel(kind, []byte(linear))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", kind, err)
			}
			if got := m.Predict(Features{0: 1}); got != "positive" {
				t.Errorf("%s: expected positive, got %q", kind, got)
			}
		}
	})

	t.Run("decision tree", func(t *testing.T) {
		t.Parallel()

		m, err := DecodeModel(model.DecisionTree, []byte(tree))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Predict(Features{0: 1}); got != "positive" {
			t.Errorf("expected positive, got %q", got)
		}
		if m.NumFeatures() != 2 {
			t.Errorf("expected 2 features, got %d", m.NumFeatures())
		}
	})

	t.Run("random forest", func(t *testing.T) {
		t.Parallel()

		m, err := DecodeModel(model.RandomForest, []byte(forest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Predict(nil); got != "positive" {
			t.Errorf("expected positive, got %q", got)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeModel(model.DecisionTree, []byte(linear))
		if !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeModel(model.SVM, []byte(`{"classes":["a","b"]}`))
		if !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeModel(model.ModelKind(42), []byte(linear))
		if !errors.Is(err, model.ErrUnknownModel) {
			t.Errorf("expected ErrUnknownModel, got %v", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeModel(model.SVM, []byte("pickle"))
		if !errors.Is(err, ErrInvalidModelFile) {
			t.Errorf("expected ErrInvalidModelFile, got %v", err)
		}
	})
}

// TestLoadModel tests reading a model from disk.
func TestLoadModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "SVM_model.json",
		`{"type":"linear","classes":["negative","positive"],"coef":[[2]],"intercept":[-1]}`)

	m, err := LoadModel(model.SVM, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Predict(Features{0: 1}); got != "positive" {
		t.Errorf("expected positive, got %q", got)
	}

	if _, err := LoadModel(model.SVM, filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
