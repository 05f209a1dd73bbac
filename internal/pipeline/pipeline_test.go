package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/complaint-sorter/internal/common"
	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/normalize"
	"github.com/Veraticus/complaint-sorter/internal/testutil/complaints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	assert.Equal(t, []string{LogReg, LinearSVM}, Names())

	for _, name := range Names() {
		p, err := Build(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		assert.False(t, p.Fitted())
	}

	_, err := Build("random_forest")
	assert.ErrorIs(t, err, common.ErrUnknownCandidate)
}

func TestCandidatesReturnsCopy(t *testing.T) {
	c := Candidates()
	c[0].Name = "changed"
	assert.Equal(t, LogReg, Candidates()[0].Name)
}

func TestPipelineFitPredict(t *testing.T) {
	examples := complaints.Examples(20)
	texts := model.Texts(examples)
	labels := model.Labels(examples)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Build(name)
			require.NoError(t, err)
			require.NoError(t, p.Fit(texts, labels))
			assert.True(t, p.Fitted())

			got, err := p.Predict(texts)
			require.NoError(t, err)
			assert.Equal(t, labels, got)

			for label, phrase := range complaints.Exemplars() {
				pred, predErr := p.PredictOne(normalize.String(phrase))
				require.NoError(t, predErr)
				assert.Equal(t, label, pred, "phrase %q", phrase)
			}

			err = p.Fit(texts, labels)
			assert.ErrorContains(t, err, "already fitted")
		})
	}
}

func TestPipelineUnfitted(t *testing.T) {
	p, err := Build(LogReg)
	require.NoError(t, err)

	_, err = p.Predict([]string{"x"})
	assert.ErrorIs(t, err, common.ErrNotFitted)
	_, err = p.PredictOne("x")
	assert.ErrorIs(t, err, common.ErrNotFitted)
	assert.ErrorIs(t, p.Encode(&bytes.Buffer{}), common.ErrNotFitted)

	decoded := &Pipeline{Name: "decoded"}
	assert.ErrorIs(t, decoded.Fit([]string{"a"}, []model.Label{0}), common.ErrUnknownCandidate)
}

func TestPipelineFitMismatch(t *testing.T) {
	p, err := Build(LinearSVM)
	require.NoError(t, err)
	assert.Error(t, p.Fit([]string{"a", "b"}, []model.Label{0}))
}

func TestEncodeDecode(t *testing.T) {
	examples := complaints.Examples(10)
	p, err := Build(LinearSVM)
	require.NoError(t, err)
	require.NoError(t, p.Fit(model.Texts(examples), model.Labels(examples)))

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	loaded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, LinearSVM, loaded.Name)

	want, err := p.Predict(model.Texts(examples))
	require.NoError(t, err)
	got, err := loaded.Predict(model.Texts(examples))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "garbage"},
		{name: "missing parts", input: `{"name":"logreg"}`},
		{name: "bad vectorizer", input: `{"name":"logreg","vectorizer":{"vocabulary":["a"],"idf":[],"ngram_min":1,"ngram_max":2},"model":{"classes":[0],"weights":[[1]],"intercepts":[0]}}`},
		{name: "bad weights", input: `{"name":"logreg","vectorizer":{"vocabulary":["a"],"idf":[1],"ngram_min":1,"ngram_max":2},"model":{"classes":[0],"weights":[[1,2]],"intercepts":[0]}}`},
		{name: "unknown label", input: `{"name":"logreg","vectorizer":{"vocabulary":["a"],"idf":[1],"ngram_min":1,"ngram_max":2},"model":{"classes":[7],"weights":[[1]],"intercepts":[0]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
