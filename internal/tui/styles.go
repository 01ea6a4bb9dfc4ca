package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorAccent  = lipgloss.Color("39")  // blue
	colorWarn    = lipgloss.Color("214") // orange
	colorError   = lipgloss.Color("196") // bright red
	colorOK      = lipgloss.Color("76")  // green
	colorMuted   = lipgloss.Color("242") // gray
	colorWhite   = lipgloss.Color("15")
	colorSurface = lipgloss.Color("236")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	countdownStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarn).
			Padding(0, 1).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorOK)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
