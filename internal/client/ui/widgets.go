package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/yourusername/secplus-chat/internal/client/chat"
	"github.com/yourusername/secplus-chat/internal/client/render"
	"github.com/yourusername/secplus-chat/internal/client/transcript"
)

const (
	inputHeight = 3
	sendIcon    = "➤"
	sendLabel   = "Göndər"
)

// widgets are the four UI elements the chat client drives. Model is copied on
// every Update, so they live behind a pointer that the handles share.
type widgets struct {
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	sendEnabled bool
	busy        bool

	renderer render.Terminal
	shown    []transcript.Message
}

func newWidgets() *widgets {
	ta := textarea.New()
	ta.Placeholder = "Security+ mətnini yazın..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	// enter sends; a newline needs a modifier
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(spinnerStyle),
	)

	return &widgets{
		input:       ta,
		viewport:    viewport.New(80, 20),
		spinner:     sp,
		sendEnabled: true,
		renderer:    render.Terminal{Width: 80},
	}
}

// handles exposes the widgets to the chat client
func (w *widgets) handles() chat.Handles {
	return chat.Handles{
		Input: inputHandle{w},
		Send:  sendHandle{w},
		Icon:  iconHandle{w},
		View:  viewHandle{w},
	}
}

// resize lays the widgets out for a terminal width; the transcript box and the
// input box both carry a border
func (w *widgets) resize(width, transcriptHeight int) {
	w.viewport.Width = max(width-2, 1)
	w.viewport.Height = transcriptHeight
	w.renderer.Width = w.viewport.Width - 1
	w.input.SetWidth(max(width-2-sendButtonWidth(), 10))
	w.redraw()
}

func (w *widgets) redraw() {
	atBottom := w.viewport.AtBottom()
	if len(w.shown) == 0 {
		w.viewport.SetContent(placeholderStyle.Width(w.viewport.Width).Render(
			"\nİngilis dilində Security+ mətni yazın və ENTER basın."))
	} else {
		w.viewport.SetContent(w.renderer.RenderAll(w.shown))
	}
	if atBottom {
		w.viewport.GotoBottom()
	}
}

type inputHandle struct{ w *widgets }

func (h inputHandle) Value() string     { return h.w.input.Value() }
func (h inputHandle) SetValue(v string) { h.w.input.SetValue(v) }

type sendHandle struct{ w *widgets }

func (h sendHandle) SetEnabled(v bool) { h.w.sendEnabled = v }

type iconHandle struct{ w *widgets }

func (h iconHandle) ShowBusy() { h.w.busy = true }
func (h iconHandle) ShowIdle() { h.w.busy = false }

type viewHandle struct{ w *widgets }

func (h viewHandle) Refresh(msgs []transcript.Message) {
	h.w.shown = msgs
	h.w.redraw()
}

func (h viewHandle) ScrollToBottom() { h.w.viewport.GotoBottom() }
