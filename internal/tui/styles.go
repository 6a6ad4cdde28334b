package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#06B6D4")
	success   = lipgloss.Color("#10B981")
	muted     = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	toggleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(accent).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	downloadStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(muted)

	selectedChipStyle = lipgloss.NewStyle().
				Foreground(accent).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(muted)
)
