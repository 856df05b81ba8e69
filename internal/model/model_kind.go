package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModel is returned when a model name does not match any ModelKind.
var ErrUnknownModel = errors.New("unknown model")

// ModelKind identifies one of the pre-trained classifiers.
// The zero value is not a valid kind; use ParseModelKind or one of the
// constants below.
type ModelKind int

const (
	// LogisticRegression is a linear model trained with logistic loss.
	LogisticRegression ModelKind = iota + 1

	// SVM is a linear support vector machine.
	SVM

	// RandomForest is an ensemble of decision trees.
	RandomForest

	// DecisionTree is a single decision tree.
	DecisionTree
)

// kindInfo holds the names a ModelKind is known by.
type kindInfo struct {
	// display is the human readable name shown in the UI and the report.
	display string

	// slug is the snake_case name used in config files and URLs.
	slug string

	// stem is the prefix of the serialized model file.
	stem string
}

var kindInfos = map[ModelKind]kindInfo{
	LogisticRegression: {display: "Logistic Regression", slug: "logistic_regression", stem: "LogisticRegression"},
	SVM:                {display: "SVM", slug: "svm", stem: "SVM"},
	RandomForest:       {display: "Random Forest", slug: "random_forest", stem: "RandomForest"},
	DecisionTree:       {display: "Decision Tree", slug: "decision_tree", stem: "DecisionTree"},
}

// AllModelKinds returns every ModelKind in selection order.
func AllModelKinds() []ModelKind {
	return []ModelKind{LogisticRegression, SVM, RandomForest, DecisionTree}
}

// String returns the display name of the kind, e.g. "Logistic Regression".
func (k ModelKind) String() string {
	if info, ok := kindInfos[k]; ok {
		return info.display
	}
	return "Unknown"
}

// Slug returns the snake_case identifier of the kind, e.g. "random_forest".
func (k ModelKind) Slug() string {
	return kindInfos[k].slug
}

// DefaultFileName returns the file name the serialized model is expected
// under when no explicit path is configured.
func (k ModelKind) DefaultFileName() string {
	info, ok := kindInfos[k]
	if !ok {
		return ""
	}
	return info.stem + "_model.json"
}

// Valid reports whether k is one of the known kinds.
func (k ModelKind) Valid() bool {
	_, ok := kindInfos[k]
	return ok
}

// ParseModelKind resolves a display name, slug or file stem to a ModelKind.
// Matching ignores case and surrounding whitespace.
func ParseModelKind(name string) (ModelKind, error) {
	needle := strings.TrimSpace(name)
	for _, k := range AllModelKinds() {
		info := kindInfos[k]
		if strings.EqualFold(needle, info.display) ||
			strings.EqualFold(needle, info.slug) ||
			strings.EqualFold(needle, info.stem) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// MarshalText implements encoding.TextMarshaler using the display name.
func (k ModelKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseModelKind.
func (k *ModelKind) UnmarshalText(text []byte) error {
	parsed, err := ParseModelKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
