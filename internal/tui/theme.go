package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Core palette
	Green     = lipgloss.Color("#00FF41")
	DarkGreen = lipgloss.Color("#008F11")
	DimGreen  = lipgloss.Color("#3B7A3B")
	Cyan      = lipgloss.Color("#00D4AA")
	Gold      = lipgloss.Color("#FFD700")
	Red       = lipgloss.Color("#FF4136")

	// Conversation labels
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	BotLabelStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	// Menu sections
	MenuStyle = lipgloss.NewStyle().
			Foreground(Green)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DarkGreen)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Diagnostics
	WarnStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	OKStyle = lipgloss.NewStyle().
		Foreground(Green)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)
)

// SetColor turns styled output on or off for the whole process.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
