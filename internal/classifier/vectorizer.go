package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Features is a sparse feature vector indexed by vocabulary position.
type Features map[int]float64

// Weighting schemes supported by the vectorizer.
const (
	WeightingCount = "count"
	WeightingTFIDF = "tfidf"
)

// Normalization schemes supported by the vectorizer.
const (
	NormNone = ""
	NormL1   = "l1"
	NormL2   = "l2"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// VectorizerSpec is the on-disk representation of a vectorizer.
type VectorizerSpec struct {
	// Type is WeightingCount or WeightingTFIDF.
	Type string `json:"type"`

	// Vocabulary maps a term (a token or space-joined n-gram) to its
	// feature index.
	Vocabulary map[string]int `json:"vocabulary"`

	// IDF holds one inverse document frequency per feature index.
	// Required for tf-idf, ignored for counts.
	IDF []float64 `json:"idf,omitempty"`

	// NGramRange is the inclusive [min, max] word n-gram range.
	// Defaults to [1, 1].
	NGramRange [2]int `json:"ngram_range,omitempty"`

	// Binary clips every term count to 1.
	Binary bool `json:"binary,omitempty"`

	// SublinearTF replaces tf with 1 + log(tf).
	SublinearTF bool `json:"sublinear_tf,omitempty"`

	// Norm is NormNone, NormL1 or NormL2.
	Norm string `json:"norm,omitempty"`
}

// Vectorizer maps text to sparse feature vectors.
// It is safe for concurrent use.
type Vectorizer struct {
	spec VectorizerSpec
	size int
}

// NewVectorizer validates spec and builds a Vectorizer from it.
func NewVectorizer(spec VectorizerSpec) (*Vectorizer, error) {
	if len(spec.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidModelFile)
	}

	switch spec.Type {
	case WeightingCount, WeightingTFIDF:
	case "":
		spec.Type = WeightingTFIDF
	default:
		return nil, fmt.Errorf("%w: unknown vectorizer type %q", ErrInvalidModelFile, spec.Type)
	}

	switch spec.Norm {
	case NormNone, NormL1, NormL2:
	default:
		return nil, fmt.Errorf("%w: unknown norm %q", ErrInvalidModelFile, spec.Norm)
	}

	if spec.NGramRange == [2]int{} {
		spec.NGramRange = [2]int{1, 1}
	}
	if spec.NGramRange[0] < 1 || spec.NGramRange[1] < spec.NGramRange[0] {
		return nil, fmt.Errorf("%w: invalid ngram range %v", ErrInvalidModelFile, spec.NGramRange)
	}

	size := 0
	seen := make(map[int]string, len(spec.Vocabulary))
	for term, idx := range spec.Vocabulary {
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative index for term %q", ErrInvalidModelFile, term)
		}
		if other, dup := seen[idx]; dup {
			return nil, fmt.Errorf("%w: terms %q and %q share index %d", ErrInvalidModelFile, other, term, idx)
		}
		seen[idx] = term
		if idx+1 > size {
			size = idx + 1
		}
	}

	if spec.Type == WeightingTFIDF && len(spec.IDF) != size {
		return nil, fmt.Errorf("%w: idf has %d entries, vocabulary needs %d", ErrInvalidModelFile, len(spec.IDF), size)
	}

	return &Vectorizer{spec: spec, size: size}, nil
}

// NumFeatures returns the dimension of the produced vectors.
func (v *Vectorizer) NumFeatures() int {
	return v.size
}

// Tokenize lowercases text and returns its word tokens in order.
func (v *Vectorizer) Tokenize(text string) []string {
	// A Caser keeps state between calls, so each call gets its own.
	lower := cases.Lower(language.Und).String(text)
	return tokenPattern.FindAllString(lower, -1)
}

// Transform lowercases text and maps it to a feature vector.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) Features {
	tokens := v.Tokenize(text)

	counts := make(map[int]float64)
	for n := v.spec.NGramRange[0]; n <= v.spec.NGramRange[1]; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := tokens[i]
			if n > 1 {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if idx, ok := v.spec.Vocabulary[term]; ok {
				counts[idx]++
			}
		}
	}

	features := make(Features, len(counts))
	for idx, tf := range counts {
		switch {
		case v.spec.Binary:
			tf = 1
		case v.spec.SublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.spec.Type == WeightingTFIDF {
			tf *= v.spec.IDF[idx]
		}
		features[idx] = tf
	}

	normalize(features, v.spec.Norm)
	return features
}

// normalize scales features in place to unit l1 or l2 norm.
func normalize(features Features, norm string) {
	var total float64
	switch norm {
	case NormL1:
		for _, x := range features {
			total += math.Abs(x)
		}
	case NormL2:
		for _, x := range features {
			total += x * x
		}
		total = math.Sqrt(total)
	default:
		return
	}
	if total == 0 {
		return
	}
	for idx := range features {
		features[idx] /= total
	}
}

// Terms returns the vocabulary terms present in features, sorted by index.
// It is used for debug logging.
func (v *Vectorizer) Terms(features Features) []string {
	byIndex := make(map[int]string, len(v.spec.Vocabulary))
	for term, idx := range v.spec.Vocabulary {
		byIndex[idx] = term
	}

	indices := make([]int, 0, len(features))
	for idx := range features {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	terms := make([]string, 0, len(indices))
	for _, idx := range indices {
		terms = append(terms, byIndex[idx])
	}
	return terms
}
