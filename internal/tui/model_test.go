package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/tui/themes"
)

type keywordPredictor struct {
	err error
}

func (k keywordPredictor) PredictOne(text string) (model.Prediction, error) {
	if k.err != nil {
		return model.Prediction{}, k.err
	}
	label := model.LabelCreditReporting
	if strings.Contains(text, "mortgage") {
		label = model.LabelMortgage
	}
	return model.Prediction{Text: text, Label: label}, nil
}

func (keywordPredictor) Name() string { return "fake" }

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, kt tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: kt})
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestSubmitClassifiesAndClearsInput(t *testing.T) {
	m := New(keywordPredictor{})
	m = typeText(t, m, "my mortgage escrow")
	m, _ = press(t, m, tea.KeyEnter)

	require.Len(t, m.History(), 1)
	assert.Equal(t, model.LabelMortgage, m.History()[0].Label)
	assert.Equal(t, "my mortgage escrow", m.History()[0].Text)
	assert.Empty(t, m.input.Value())
	assert.NoError(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "3 "+model.LabelMortgage.Name())
	assert.Contains(t, view, "model: fake")
}

func TestSubmitEmptyInputIsIgnored(t *testing.T) {
	m, _ := press(t, New(keywordPredictor{}), tea.KeyEnter)
	assert.Empty(t, m.History())
}

func TestHistoryNewestFirstAndBounded(t *testing.T) {
	m := New(keywordPredictor{}, WithHistorySize(2), WithTheme(themes.CatppuccinMocha))
	for _, text := range []string{"first", "second mortgage", "third"} {
		m = typeText(t, m, text)
		m, _ = press(t, m, tea.KeyEnter)
	}

	require.Len(t, m.History(), 2)
	assert.Equal(t, "third", m.History()[0].Text)
	assert.Equal(t, "second mortgage", m.History()[1].Text)

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Empty(t, m.History())
}

func TestPredictorErrorKeepsInput(t *testing.T) {
	m := New(keywordPredictor{err: errors.New("boom")})
	m = typeText(t, m, "anything")
	m, _ = press(t, m, tea.KeyEnter)

	require.Error(t, m.Err())
	assert.Equal(t, "anything", m.input.Value())
	assert.Contains(t, m.View(), "error: boom")
}

func TestQuit(t *testing.T) {
	for _, kt := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, cmd := press(t, New(keywordPredictor{}), kt)
		assert.True(t, m.Quitting())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestWindowResize(t *testing.T) {
	next, _ := New(keywordPredictor{}).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.input.Width)
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.ByName("catppuccin").Primary)
	assert.Equal(t, themes.Default.Primary, themes.ByName("unknown").Primary)
}
