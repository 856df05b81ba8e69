package classifier

import "fmt"

// leafMarker marks a missing child in the array tree layout.
const leafMarker = -1

// TreeSpec is a decision tree in flat array form. Node i is a leaf when
// ChildrenLeft[i] is -1; otherwise samples with x[Feature[i]] <= Threshold[i]
// go to ChildrenLeft[i] and the rest to ChildrenRight[i]. Value[i] holds
// the per-class sample counts (or weights) of node i.
type TreeSpec struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// validate checks the array layout. Children must come after their parent,
// which rules out cycles.
func (t TreeSpec) validate(numClasses, numFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidModelFile)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: tree arrays differ in length", ErrInvalidModelFile)
	}

	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafMarker {
			if right != leafMarker {
				return fmt.Errorf("%w: node %d has only one child", ErrInvalidModelFile, i)
			}
			if len(t.Value[i]) != numClasses {
				return fmt.Errorf("%w: leaf %d has %d values, want %d", ErrInvalidModelFile, i, len(t.Value[i]), numClasses)
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("%w: node %d has invalid children", ErrInvalidModelFile, i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= numFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", ErrInvalidModelFile, i, t.Feature[i], numFeatures)
		}
	}
	return nil
}

// leaf walks the tree for features and returns the leaf distribution.
func (t TreeSpec) leaf(features Features) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leafMarker {
		if features[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// TreeModelSpec is the on-disk representation of a single decision tree.
type TreeModelSpec struct {
	Classes     []string `json:"classes"`
	NumFeatures int      `json:"n_features"`
	Tree        TreeSpec `json:"tree"`
}

// DecisionTree is a single decision tree classifier.
type DecisionTree struct {
	spec TreeModelSpec
}

// NewDecisionTree validates spec and builds a DecisionTree from it.
func NewDecisionTree(spec TreeModelSpec) (*DecisionTree, error) {
	if len(spec.Classes) == 0 {
		return nil, fmt.Errorf("%w: tree has no classes", ErrInvalidModelFile)
	}
	if spec.NumFeatures <= 0 {
		return nil, fmt.Errorf("%w: n_features must be positive", ErrInvalidModelFile)
	}
	if err := spec.Tree.validate(len(spec.Classes), spec.NumFeatures); err != nil {
		return nil, err
	}
	return &DecisionTree{spec: spec}, nil
}

// NumFeatures returns the input dimension.
func (m *DecisionTree) NumFeatures() int {
	return m.spec.NumFeatures
}

// Classes returns the labels the model can emit.
func (m *DecisionTree) Classes() []string {
	return m.spec.Classes
}

// Predict returns the majority class of the leaf features fall into.
func (m *DecisionTree) Predict(features Features) string {
	return m.spec.Classes[argmax(m.spec.Tree.leaf(features))]
}

// ForestSpec is the on-disk representation of a random forest.
type ForestSpec struct {
	Classes     []string   `json:"classes"`
	NumFeatures int        `json:"n_features"`
	Trees       []TreeSpec `json:"trees"`
}

// RandomForest averages the class distributions of its trees.
type RandomForest struct {
	spec ForestSpec
}

// NewRandomForest validates spec and builds a RandomForest from it.
func NewRandomForest(spec ForestSpec) (*RandomForest, error) {
	if len(spec.Classes) == 0 {
		return nil, fmt.Errorf("%w: forest has no classes", ErrInvalidModelFile)
	}
	if spec.NumFeatures <= 0 {
		return nil, fmt.Errorf("%w: n_features must be positive", ErrInvalidModelFile)
	}
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", ErrInvalidModelFile)
	}
	for i, tree := range spec.Trees {
		if err := tree.validate(len(spec.Classes), spec.NumFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &RandomForest{spec: spec}, nil
}

// NumFeatures returns the input dimension.
func (m *RandomForest) NumFeatures() int {
	return m.spec.NumFeatures
}

// Classes returns the labels the model can emit.
func (m *RandomForest) Classes() []string {
	return m.spec.Classes
}

// Probabilities returns the mean of the normalized leaf distributions.
func (m *RandomForest) Probabilities(features Features) []float64 {
	probs := make([]float64, len(m.spec.Classes))
	for _, tree := range m.spec.Trees {
		dist := tree.leaf(features)
		var total float64
		for _, v := range dist {
			total += v
		}
		if total == 0 {
			continue
		}
		for i, v := range dist {
			probs[i] += v / total
		}
	}
	for i := range probs {
		probs[i] /= float64(len(m.spec.Trees))
	}
	return probs
}

// Predict returns the class with the highest mean probability.
func (m *RandomForest) Predict(features Features) string {
	return m.spec.Classes[argmax(m.Probabilities(features))]
}
