package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9D8CFF"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	colorError  = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"}

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(cardWidth)

	styleCardSelected = styleCard.BorderForeground(colorAccent)

	styleName  = lipgloss.NewStyle().Bold(true)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleError = lipgloss.NewStyle().Foreground(colorError)
	styleHelp  = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3)
)

const (
	cardWidth   = 36
	cardsPerRow = 3
)
