package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/complaint-sorter/internal/cli"
)

// View renders the console.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(cli.SorterIcon + " Complaint sorter"),
		m.theme.Subtitle.Render("model: " + m.predictor.Name()),
		m.theme.RoundedBox.Width(max(m.width-2, 20)).Render(m.input.View()),
	}

	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("error: "+m.lastError.Error()))
	}

	if len(m.history) > 0 {
		lines := make([]string, 0, len(m.history))
		for _, p := range m.history {
			lines = append(lines, fmt.Sprintf("%s %s",
				m.theme.Label.Render(fmt.Sprintf("%d %s", int(p.Label), p.Name())),
				m.theme.Muted.Render(":: "+cli.Truncate(p.Text, cli.EchoLimit))))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	sections = append(sections, m.theme.Muted.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 3)
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
