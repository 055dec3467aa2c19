package present

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW     = 11 // minimum width of a circuit column in characters
	gateNameW = 5  // minimum width of gate name inside box
	barW      = 40 // default histogram bar width
	blochR    = 6  // radius of the Bloch projection in rows
)

// Lipgloss styles used across the presenters.
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true)

	cbitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	cbitWireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	cbitConnectorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e0af68")).
				Bold(true)
)
