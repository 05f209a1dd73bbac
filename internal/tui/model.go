// Package tui implements the interactive prediction console.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/tui/themes"
)

// Predictor classifies a single narrative.
type Predictor interface {
	PredictOne(text string) (model.Prediction, error)
	Name() string
}

// DefaultHistorySize is the number of predictions kept on screen.
const DefaultHistorySize = 10

// Model holds the console state.
type Model struct {
	predictor   Predictor
	lastError   error
	theme       themes.Theme
	keymap      KeyMap
	input       textinput.Model
	history     []model.Prediction
	historySize int
	width       int
	quitting    bool
}

// Option configures the Model.
type Option func(*Model)

// WithTheme sets the theme.
func WithTheme(t themes.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithHistorySize sets how many predictions stay visible.
func WithHistorySize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.historySize = n
		}
	}
}

// New creates a console backed by predictor.
func New(predictor Predictor, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Paste a complaint narrative and press enter"
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	m := Model{
		predictor:   predictor,
		theme:       themes.Default,
		keymap:      DefaultKeyMap(),
		input:       input,
		historySize: DefaultHistorySize,
		width:       80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Clear):
			m.history = nil
			m.lastError = nil
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			return m.submit(), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() Model {
	text := m.input.Value()
	if len(text) == 0 {
		return m
	}

	pred, err := m.predictor.PredictOne(text)
	if err != nil {
		m.lastError = err
		return m
	}

	m.lastError = nil
	m.input.Reset()
	m.history = append([]model.Prediction{pred}, m.history...)
	if len(m.history) > m.historySize {
		m.history = m.history[:m.historySize]
	}
	return m
}

// History returns the predictions made so far, newest first.
func (m Model) History() []model.Prediction {
	return m.history
}

// Err returns the error of the last submission, if any.
func (m Model) Err() error {
	return m.lastError
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
