package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/secplus-chat/internal/client/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(render.PrimaryColor).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(render.SecondaryColor).
			Italic(true).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Foreground(render.PrimaryColor).
			Bold(true).
			Padding(0, 1)

	transcriptBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(render.AccentColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.MutedColor)

	sendButtonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.SuccessColor).
			Foreground(render.SuccessColor).
			Bold(true).
			Padding(0, 1)

	sendButtonDisabledStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(render.MutedColor).
				Foreground(render.MutedColor).
				Padding(0, 1)

	highlightStyle = lipgloss.NewStyle().
			Foreground(render.SuccessColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(render.MutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(render.MutedColor).
				Italic(true).
				Margin(1, 0)

	placeholderStyle = lipgloss.NewStyle().
				Align(lipgloss.Center).
				Foreground(render.MutedColor).
				Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(render.SuccessColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(render.ErrorColor).
			Bold(true)
)
