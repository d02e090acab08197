package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var loadingFrames = []rune("◐◓◑◒")

// updateLoading handles loading screen updates
func (m Model) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit

	case "enter":
		// The backend may come up later; every send reports its own failure.
		if m.err != nil && !m.waitingRetry {
			m.viewState = ViewChat
		}
		return m, nil

	case "r":
		if m.err != nil && !m.waitingRetry {
			m.retryAttempt = 0
			m.err = nil
			return m, checkHealthCmd(m.connMgr)
		}
	}
	return m, nil
}

// viewLoading renders the backend health check screen
func (m Model) viewLoading() string {
	title := titleStyle.Render("🛡  SECURITY+ KÖMƏKÇİSİ")
	subtitle := subtitleStyle.Render("İngilis dilində Security+ mətnləri üçün tərcümə və lüğət")

	dots := strings.Repeat(".", m.loadingDots)
	spin := spinnerStyle.Render(string(loadingFrames[m.loadingDots%len(loadingFrames)]))
	loadingText := mutedStyle.Render("Serverə qoşulur" + dots)

	status := spin + " " + loadingText
	if m.waitingRetry {
		status += mutedStyle.Render(fmt.Sprintf("  (cəhd %d/%d)", m.retryAttempt, maxHealthRetries))
	}

	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Render("\n\n✗ Server cavab vermir: " + m.err.Error())
		if !m.waitingRetry {
			errorMsg += mutedStyle.Render("\nENTER davam et  •  R yenidən yoxla  •  ESC çıx")
		}
	}

	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"\n\n",
		status,
		errorMsg,
	)

	instructions := instructionStyle.Render(
		mutedStyle.Render("Server: ") + highlightStyle.Render(m.connMgr.Origin()) + "  •  " +
			mutedStyle.Render("ESC çıx"))

	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	return centeredMain + "\n" + bottomInstructions
}
