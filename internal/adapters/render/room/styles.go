package room

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	badge      lipgloss.Style
	stopwatch  lipgloss.Style
	loader     lipgloss.Style
	section    lipgloss.Style
	panelTitle lipgloss.Style
	detail     lipgloss.Style
	empty      lipgloss.Style
	warning    lipgloss.Style
	ended      lipgloss.Style
	hint       lipgloss.Style
	status     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		stopwatch:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		loader:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		panelTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		empty:      lipgloss.NewStyle().Faint(true),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		ended:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		status:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
