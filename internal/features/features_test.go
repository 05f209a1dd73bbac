package features

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "lowercases", input: "Debt Collector CALLED", want: []string{"debt", "collector", "called"}},
		{name: "drops single runes", input: "I paid a $1,200 fee", want: []string{"paid", "200", "fee"}},
		{name: "splits punctuation", input: "late-fee/escrow", want: []string{"late", "fee", "escrow"}},
		{name: "underscore joins", input: "account_number xx", want: []string{"account_number", "xx"}},
		{name: "nfkc folds width", input: "ＭＯＲＴＧＡＧＥ", want: []string{"mortgage"}},
		{name: "accents kept", input: "Café crédit", want: []string{"café", "crédit"}},
		{name: "empty", input: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestNGrams(t *testing.T) {
	tokens := []string{"late", "fee", "charged"}
	assert.Equal(t, []string{"late", "fee", "charged", "late fee", "fee charged"}, NGrams(tokens, 1, 2))
	assert.Equal(t, []string{"late fee", "fee charged"}, NGrams(tokens, 2, 2))
	assert.Equal(t, []string{"late", "fee", "charged"}, NGrams(tokens, 0, 1))
	assert.Empty(t, NGrams(nil, 1, 2))
}

func TestTFIDFFit(t *testing.T) {
	docs := []string{
		"late fee charged",
		"late fee again",
		"mortgage escrow",
	}
	v := NewTFIDF()
	require.NoError(t, v.Fit(docs))

	assert.Equal(t, []string{"fee", "late", "late fee"}, v.Vocabulary)
	want := math.Log(4.0/3.0) + 1
	for _, idf := range v.IDF {
		assert.InDelta(t, want, idf, 1e-12)
	}
	assert.True(t, v.Fitted())
	assert.Equal(t, 3, v.Size())
}

func TestTFIDFTransform(t *testing.T) {
	v := NewTFIDF()
	v.MinDF = 1
	require.NoError(t, v.Fit([]string{"alpha beta", "alpha gamma", "alpha"}))

	vec := v.Transform("alpha alpha beta unknown")
	require.NotEmpty(t, vec.Indices)
	for k := 1; k < len(vec.Indices); k++ {
		assert.Less(t, vec.Indices[k-1], vec.Indices[k])
	}
	assert.InDelta(t, 1.0, vec.SquaredNorm(), 1e-12)

	alpha := v.index["alpha"]
	beta := v.index["beta"]
	var wAlpha, wBeta float64
	for k, i := range vec.Indices {
		switch i {
		case alpha:
			wAlpha = vec.Values[k]
		case beta:
			wBeta = vec.Values[k]
		}
	}
	// alpha: tf 2, idf 1; beta: tf 1, idf ln(4/2)+1.
	ratio := 2.0 / (math.Log(2) + 1)
	assert.InDelta(t, ratio, wAlpha/wBeta, 1e-9)

	empty := v.Transform("nothing known here")
	assert.Equal(t, 0, empty.Len())
}

func TestTFIDFEmptyVocabulary(t *testing.T) {
	v := NewTFIDF()
	err := v.Fit([]string{"one doc only", "another different text"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestTFIDFJSONRoundTripRebuildsIndex(t *testing.T) {
	v := NewTFIDF()
	docs := []string{"escrow shortage letter", "escrow shortage again", "collector called"}
	require.NoError(t, v.Fit(docs))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	var decoded TFIDF
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())

	assert.Equal(t, v.Transform(docs[0]), decoded.Transform(docs[0]))
}

func TestTFIDFValidate(t *testing.T) {
	assert.ErrorIs(t, (&TFIDF{}).Validate(), ErrEmptyVocabulary)
	assert.Error(t, (&TFIDF{Vocabulary: []string{"a"}, NGramMin: 1, NGramMax: 2}).Validate())
	assert.Error(t, (&TFIDF{Vocabulary: []string{"a"}, IDF: []float64{1}, NGramMin: 2, NGramMax: 1}).Validate())
}
