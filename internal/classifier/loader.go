package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nao1215/sentiment/internal/model"
)

// Model file types.
const (
	TypeLinear       = "linear"
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
)

// ExpectedType returns the model file type a kind must be stored as.
func ExpectedType(kind model.ModelKind) string {
	switch kind {
	case model.LogisticRegression, model.SVM:
		return TypeLinear
	case model.RandomForest:
		return TypeRandomForest
	case model.DecisionTree:
		return TypeDecisionTree
	default:
		return ""
	}
}

// LoadVectorizer reads a vectorizer from a JSON file.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Model paths come from the operator's config
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer: %w", err)
	}

	var spec VectorizerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidModelFile, path, err)
	}

	v, err := NewVectorizer(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// LoadModel reads the model for kind from a JSON file.
// The file's "type" field must match ExpectedType(kind).
func LoadModel(kind model.ModelKind, path string) (Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Model paths come from the operator's config
	if err != nil {
		return nil, fmt.Errorf("failed to read %s model: %w", kind, err)
	}

	m, err := DecodeModel(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// DecodeModel parses a serialized model for kind.
func DecodeModel(kind model.ModelKind, data []byte) (Model, error) {
	want := ExpectedType(kind)
	if want == "" {
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownModel, int(kind))
	}

	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
	}
	if header.Type != want {
		return nil, fmt.Errorf("%w: %s model must have type %q, got %q", ErrInvalidModelFile, kind, want, header.Type)
	}

	switch want {
	case TypeLinear:
		var spec LinearSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
		}
		return NewLinear(spec)
	case TypeDecisionTree:
		var spec TreeModelSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
		}
		return NewDecisionTree(spec)
	default:
		var spec ForestSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
		}
		return NewRandomForest(spec)
	}
}
