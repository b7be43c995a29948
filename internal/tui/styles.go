package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = "#E75480"
	colorMuted   = "#6B7280"
	colorMine    = "#7DD3FC"
	colorTheirs  = "#F9A8D4"
	colorWarn    = "#F59E0B"
	colorDanger  = "#EF4444"
	colorBgPanel = "#1F2430"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1)

	mineNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorMine))

	theirsNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorTheirs))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	panelStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(colorBgPanel)).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarn))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	suggestionPickStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorAccent))
)
