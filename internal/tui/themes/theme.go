// Package themes holds the color themes of the prediction console.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Muted         lipgloss.Style
	Label         lipgloss.Style
	StatusError   lipgloss.Style
	RoundedBox    lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
	ErrorColor    lipgloss.Color
	MutedColor    lipgloss.Color
	ForegroundClr lipgloss.Color
}

func newTheme(primary, foreground, muted, border, errColor lipgloss.Color) Theme {
	return Theme{
		Primary:       primary,
		Border:        border,
		ErrorColor:    errColor,
		MutedColor:    muted,
		ForegroundClr: foreground,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(foreground),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// Default is the default theme.
var Default = newTheme("#7c3aed", "#fafafa", "#737373", "#404040", "#ef4444")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme("#cba6f7", "#cdd6f4", "#6c7086", "#45475a", "#f38ba8")

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
