package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorSubtle  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	colorError   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	headerCellStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	selectedCellStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	labelStyle        = lipgloss.NewStyle().Foreground(colorSubtle)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)
