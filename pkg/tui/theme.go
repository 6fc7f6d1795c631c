package tui

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the list view.
type Theme struct {
	Title    lipgloss.Style
	Count    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Dragging lipgloss.Style
	Target   lipgloss.Style
	Footer   FooterTheme
}

// FooterTheme groups styles used by the bottom status/input bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Count:    lipgloss.NewStyle().Faint(true),
		Row:      lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Done:     lipgloss.NewStyle().Strikethrough(true).Faint(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Dragging: lipgloss.NewStyle().Reverse(true),
		Target:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}
