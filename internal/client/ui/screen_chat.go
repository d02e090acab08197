package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateChat handles chat screen key presses
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		return m.send()

	case key.Matches(msg, m.keys.Clear):
		m.client.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m.export()

	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.w.viewport, cmd = m.w.viewport.Update(msg)
		return m, cmd
	}

	// Everything else is typing
	var cmd tea.Cmd
	m.w.input, cmd = m.w.input.Update(msg)
	return m, cmd
}

// viewChat renders the chat screen
func (m Model) viewChat() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		headerStyle.Render("🛡  Security+ Köməkçisi"),
		mutedStyle.Render(m.connMgr.Origin()),
	)

	transcriptBox := transcriptBoxStyle.Render(m.w.viewport.View())

	inputRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		inputBoxStyle.Render(m.w.input.View()),
		m.w.sendButton(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, transcriptBox, inputRow, m.statusLine())
}

func (m Model) statusLine() string {
	var badge string
	switch {
	case m.health.Healthy() && !m.health.GeminiAPIConfigured:
		badge = highlightStyle.Render("●") + mutedStyle.Render(" AI yoxdur")
	case m.health.Healthy():
		badge = highlightStyle.Render("● onlayn")
	default:
		badge = errorStyle.Render("● oflayn")
	}

	if m.status != "" {
		style := highlightStyle
		if m.statusErr {
			style = errorStyle
		}
		return badge + "  " + style.Render(m.status)
	}
	return badge + "  " + m.help.View(m.keys)
}

// sendButton renders the send control, with the busy indicator in place of
// the idle icon while a request is in flight
func (w *widgets) sendButton() string {
	switch {
	case w.busy:
		return sendButtonDisabledStyle.Render(w.spinner.View() + " " + sendLabel)
	case !w.sendEnabled:
		return sendButtonDisabledStyle.Render(sendIcon + " " + sendLabel)
	default:
		return sendButtonStyle.Render(sendIcon + " " + sendLabel)
	}
}

func sendButtonWidth() int {
	return lipgloss.Width(sendButtonStyle.Render(sendIcon + " " + sendLabel))
}
