package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleMenuKey = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleHPGood = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	styleHPLow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleMP = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)
