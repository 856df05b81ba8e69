package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/sentiment/internal/model"
)

// Demo models are tiny keyword models written by `sentiment init --models`
// so the tool can be tried without a trained model set. They know a dozen
// words and three labels.

var demoClasses = []string{model.LabelNegative, model.LabelNeutral, model.LabelPositive}

const (
	demoNegative = 0
	demoNeutral  = 1
	demoPositive = 2
)

// demoTerms lists the vocabulary in index order with the class each term
// signals.
var demoTerms = []struct {
	term  string
	class int
}{
	{"good", demoPositive},
	{"great", demoPositive},
	{"love", demoPositive},
	{"excellent", demoPositive},
	{"happy", demoPositive},
	{"bad", demoNegative},
	{"terrible", demoNegative},
	{"hate", demoNegative},
	{"awful", demoNegative},
	{"sad", demoNegative},
	{"okay", demoNeutral},
	{"fine", demoNeutral},
	{"average", demoNeutral},
}

// DemoVectorizerSpec returns the vectorizer of the demo model set.
func DemoVectorizerSpec() VectorizerSpec {
	vocab := make(map[string]int, len(demoTerms))
	idf := make([]float64, len(demoTerms))
	for i, t := range demoTerms {
		vocab[t.term] = i
		idf[i] = 1
	}
	return VectorizerSpec{
		Type:       WeightingTFIDF,
		Vocabulary: vocab,
		IDF:        idf,
		NGramRange: [2]int{1, 1},
		Norm:       NormL2,
	}
}

// demoLinear builds a linear model that rewards terms of each class with
// weight and penalizes the opposite polarity by half of it.
func demoLinear(weight float64, intercept []float64) LinearSpec {
	coef := make([][]float64, len(demoClasses))
	for c := range coef {
		coef[c] = make([]float64, len(demoTerms))
		for i, t := range demoTerms {
			switch {
			case t.class == c:
				coef[c][i] = weight
			case t.class != demoNeutral && c != demoNeutral:
				coef[c][i] = -weight / 2
			}
		}
	}
	return LinearSpec{Classes: demoClasses, Coef: coef, Intercept: intercept}
}

// demoChainTree builds a tree that checks the given term indices in order
// and answers with the class of the first term present. Text without any
// of them is neutral.
func demoChainTree(terms []int) TreeSpec {
	n := 2*len(terms) + 1
	t := TreeSpec{
		ChildrenLeft:  make([]int, n),
		ChildrenRight: make([]int, n),
		Feature:       make([]int, n),
		Threshold:     make([]float64, n),
		Value:         make([][]float64, n),
	}

	leaf := func(i, class int) {
		t.ChildrenLeft[i] = leafMarker
		t.ChildrenRight[i] = leafMarker
		t.Feature[i] = -2
		t.Value[i] = make([]float64, len(demoClasses))
		t.Value[i][class] = 10
	}

	for k, term := range terms {
		split := 2 * k
		t.ChildrenLeft[split] = split + 2
		t.ChildrenRight[split] = split + 1
		t.Feature[split] = term
		t.Threshold[split] = 0
		t.Value[split] = []float64{1, 1, 1}
		leaf(split+1, demoTerms[term].class)
	}
	leaf(n-1, demoNeutral)

	return t
}

// DemoFiles returns the serialized demo model set keyed by file name.
func DemoFiles() (map[string][]byte, error) {
	all := make([]int, len(demoTerms))
	for i := range all {
		all[i] = i
	}

	docs := map[string]any{
		"vectorizer.json": DemoVectorizerSpec(),
		model.LogisticRegression.DefaultFileName(): struct {
			Type string `json:"type"`
			LinearSpec
		}{TypeLinear, demoLinear(2, []float64{0, 0.1, 0})},
		model.SVM.DefaultFileName(): struct {
			Type string `json:"type"`
			LinearSpec
		}{TypeLinear, demoLinear(1.5, []float64{-0.1, 0.05, -0.1})},
		model.DecisionTree.DefaultFileName(): struct {
			Type string `json:"type"`
			TreeModelSpec
		}{TypeDecisionTree, TreeModelSpec{
			Classes:     demoClasses,
			NumFeatures: len(demoTerms),
			Tree:        demoChainTree(all),
		}},
		model.RandomForest.DefaultFileName(): struct {
			Type string `json:"type"`
			ForestSpec
		}{TypeRandomForest, ForestSpec{
			Classes:     demoClasses,
			NumFeatures: len(demoTerms),
			Trees: []TreeSpec{
				demoChainTree(all),
				demoChainTree([]int{5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 10, 11, 12}),
				demoChainTree([]int{10, 11, 12, 2, 7, 0, 5, 1, 6, 3, 8, 4, 9}),
			},
		}},
	}

	files := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		files[name] = append(data, '\n')
	}
	return files, nil
}

// WriteDemoFiles writes the demo model set into dir and returns the paths
// written. Existing files are overwritten only when force is set.
func WriteDemoFiles(dir string, force bool) ([]string, error) {
	files, err := DemoFiles()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	written := make([]string, 0, len(files))
	for _, name := range demoFileOrder() {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return written, fmt.Errorf("model file already exists: %s (use -f to overwrite)", path)
			}
		}
		if err := os.WriteFile(path, files[name], 0600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// demoFileOrder lists the demo files in a stable order.
func demoFileOrder() []string {
	names := []string{"vectorizer.json"}
	for _, k := range model.AllModelKinds() {
		names = append(names, k.DefaultFileName())
	}
	return names
}
