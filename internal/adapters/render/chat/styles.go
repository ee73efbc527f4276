package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	userLabel lipgloss.Style
	agentText lipgloss.Style
	userText  lipgloss.Style
	errText   lipgloss.Style
	notice    lipgloss.Style
	footer    lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		userLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		agentText: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		userText:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		errText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:    lipgloss.NewStyle().Faint(true),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}
