package features

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Veraticus/complaint-sorter/internal/linear"
)

// ErrEmptyVocabulary is returned when no term reaches the document frequency floor.
var ErrEmptyVocabulary = errors.New("empty vocabulary; no term reaches min_df")

// TFIDF is a term-frequency / inverse-document-frequency vectorizer.
// Vocabulary is sorted and a term's index is its position.
type TFIDF struct {
	index      map[string]int
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
	NGramMin   int       `json:"ngram_min"`
	NGramMax   int       `json:"ngram_max"`
	MinDF      int       `json:"min_df"`
}

// NewTFIDF returns an unfitted vectorizer over unigrams and bigrams that
// keeps terms seen in at least two documents.
func NewTFIDF() *TFIDF {
	return &TFIDF{NGramMin: 1, NGramMax: 2, MinDF: 2}
}

// Fitted reports whether the vocabulary has been learned.
func (v *TFIDF) Fitted() bool {
	return len(v.Vocabulary) > 0
}

// Size returns the number of features.
func (v *TFIDF) Size() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary and IDF weights from docs.
func (v *TFIDF) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	minDF := v.MinDF
	if minDF < 1 {
		minDF = 1
	}
	vocab := make([]string, 0, len(df))
	for term, count := range df {
		if count >= minDF {
			vocab = append(vocab, term)
		}
	}
	if len(vocab) == 0 {
		return fmt.Errorf("%w (%d documents)", ErrEmptyVocabulary, len(docs))
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	v.Vocabulary = vocab
	v.IDF = make([]float64, len(vocab))
	for i, term := range vocab {
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.buildIndex()
	return nil
}

// Transform maps doc onto an l2-normalized TF-IDF vector. Unknown terms are ignored.
func (v *TFIDF) Transform(doc string) linear.Vector {
	if v.index == nil {
		v.buildIndex()
	}

	counts := make(map[int]float64)
	for _, term := range v.terms(doc) {
		if i, ok := v.index[term]; ok {
			counts[i]++
		}
	}

	vec := linear.Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for i := range counts {
		vec.Indices = append(vec.Indices, i)
	}
	sort.Ints(vec.Indices)
	for _, i := range vec.Indices {
		vec.Values = append(vec.Values, counts[i]*v.IDF[i])
	}
	vec.Normalize()
	return vec
}

// TransformAll vectorizes every document.
func (v *TFIDF) TransformAll(docs []string) []linear.Vector {
	out := make([]linear.Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// FitTransform fits on docs and returns their vectors.
func (v *TFIDF) FitTransform(docs []string) ([]linear.Vector, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.TransformAll(docs), nil
}

// Validate checks that a decoded vectorizer is consistent.
func (v *TFIDF) Validate() error {
	if len(v.Vocabulary) == 0 {
		return ErrEmptyVocabulary
	}
	if len(v.IDF) != len(v.Vocabulary) {
		return fmt.Errorf("vocabulary has %d terms but %d idf weights", len(v.Vocabulary), len(v.IDF))
	}
	if v.NGramMin < 1 || v.NGramMax < v.NGramMin {
		return fmt.Errorf("invalid n-gram range (%d, %d)", v.NGramMin, v.NGramMax)
	}
	return nil
}

func (v *TFIDF) terms(doc string) []string {
	return NGrams(Tokenize(doc), v.NGramMin, v.NGramMax)
}

func (v *TFIDF) buildIndex() {
	v.index = make(map[string]int, len(v.Vocabulary))
	for i, term := range v.Vocabulary {
		v.index[term] = i
	}
}
