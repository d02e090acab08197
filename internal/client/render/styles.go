package render

import "github.com/charmbracelet/lipgloss"

// Color palette - earthy tones, readable on dark backgrounds
var (
	PrimaryColor   = lipgloss.Color("#E8C4A0") // light warm beige
	SecondaryColor = lipgloss.Color("#7EBB81") // light forest green
	AccentColor    = lipgloss.Color("#A8C9A4") // soft sage green
	SuccessColor   = lipgloss.Color("#B5D99C") // bright sage
	MutedColor     = lipgloss.Color("#B8A890") // light taupe
	FgColor        = lipgloss.Color("#F5F3ED") // warm white
	HighlightColor = lipgloss.Color("#F0DEB4") // cream highlight
	ErrorColor     = lipgloss.Color("#E07B7B")
)

var (
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Foreground(FgColor).
			Padding(0, 1)

	botBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Foreground(FgColor).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	vocabWordStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	vocabDefinitionStyle = lipgloss.NewStyle().
				Foreground(FgColor)

	countStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(AccentColor).
			PaddingLeft(1)

	errorBubbleStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true).
				Padding(0, 1)
)
