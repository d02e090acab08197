package ui

import (
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yourusername/secplus-chat/internal/client/chat"
	"github.com/yourusername/secplus-chat/internal/client/connection"
	"github.com/yourusername/secplus-chat/internal/client/transcript"
	"github.com/yourusername/secplus-chat/internal/protocol"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewChat
)

const maxHealthRetries = 3

// Config wires a Model to its collaborators
type Config struct {
	Conn      *connection.Manager
	ExportDir string
	Logger    *zap.Logger
	Clock     clock.Clock
}

// Model is the main Bubble Tea model
type Model struct {
	viewState ViewState
	connMgr   *connection.Manager
	client    *chat.Client
	w         *widgets
	changes   chan struct{} // signalled when an error entry expires

	keys   keyMap
	help   help.Model
	clock  clock.Clock
	logger *zap.Logger

	exportDir string
	width     int
	height    int

	// Loading screen
	loadingDots  int
	health       *protocol.HealthStatus
	err          error
	retryAttempt int
	waitingRetry bool

	// Status line
	status    string
	statusErr bool
	statusSeq int
}

// NewModel creates the model and the chat client behind it
func NewModel(cfg Config) (Model, error) {
	if cfg.Conn == nil {
		return Model{}, errors.New("ui: connection manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	changes := make(chan struct{}, 1)
	t := transcript.New(
		transcript.WithClock(cfg.Clock),
		transcript.WithOnChange(func() {
			// expiries fire on timer goroutines; the loop repaints on its own turn
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	)

	w := newWidgets()
	client, err := chat.New(w.handles(), t, cfg.Conn, chat.WithLogger(cfg.Logger))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		viewState: ViewLoading,
		connMgr:   cfg.Conn,
		client:    client,
		w:         w,
		changes:   changes,
		keys:      defaultKeyMap(),
		help:      help.New(),
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		exportDir: cfg.ExportDir,
		width:     80,
		height:    24,
	}
	m.layout()
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkHealthCmd(m.connMgr),
		tickCmd(),
		listenForChangesCmd(m.changes),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch m.viewState {
		case ViewLoading:
			return m.updateLoading(msg)
		case ViewChat:
			return m.updateChat(msg)
		}

	case tea.MouseMsg:
		if m.viewState == ViewChat {
			var cmd tea.Cmd
			m.w.viewport, cmd = m.w.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case healthCheckedMsg:
		m.health = msg.health
		m.err = msg.err
		if msg.err == nil {
			m.retryAttempt = 0
			m.waitingRetry = false
			m.viewState = ViewChat
			return m, nil
		}

		m.logger.Warn("backend health check failed",
			zap.String("origin", m.connMgr.Origin()),
			zap.Int("attempt", m.retryAttempt+1),
			zap.Error(msg.err))
		if m.viewState == ViewLoading && m.retryAttempt < maxHealthRetries {
			m.retryAttempt++
			m.waitingRetry = true
			return m, retryHealthCmd(m.retryAttempt)
		}
		m.waitingRetry = false
		return m, nil

	case retryMsg:
		if m.viewState == ViewLoading {
			m.waitingRetry = false
			return m, checkHealthCmd(m.connMgr)
		}
		return m, nil

	case analysisDoneMsg:
		m.client.Resolve(msg.outcome)
		return m, nil

	case transcriptChangedMsg:
		m.client.Refresh()
		return m, listenForChangesCmd(m.changes)

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.Error("transcript export failed", zap.Error(msg.err))
			return m.setStatus("Eksport uğursuz oldu: "+msg.err.Error(), true)
		}
		m.logger.Info("transcript exported", zap.String("path", msg.path))
		return m.setStatus("Saxlanıldı: "+msg.path, false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		// the spinner stops ticking once the client is idle
		if !m.w.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.w.spinner, cmd = m.w.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.viewState == ViewLoading {
			m.loadingDots = (m.loadingDots + 1) % 4
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewLoading:
		return m.viewLoading()
	case ViewChat:
		return m.viewChat()
	}
	return ""
}

// Client returns the chat client driven by the model
func (m Model) Client() *chat.Client {
	return m.client
}

// Close cancels pending error expiries
func (m Model) Close() {
	m.client.Transcript().Close()
}

// send hands the input to the chat client and runs the resulting task
func (m Model) send() (tea.Model, tea.Cmd) {
	task, err := m.client.Send()
	if err != nil {
		// empty input and a send while busy are both no-ops
		return m, nil
	}
	return m, tea.Batch(analyzeCmd(task), m.w.spinner.Tick)
}

func (m Model) export() (tea.Model, tea.Cmd) {
	msgs := m.client.Transcript().Messages()
	if len(msgs) == 0 {
		return m.setStatus("Söhbət boşdur", false)
	}
	return m, exportCmd(m.exportDir, msgs, m.clock.Now())
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return m, clearStatusCmd(m.statusSeq)
}

// layout sizes the widgets to the terminal, leaving room for the header,
// the bordered input row and the status line
func (m *Model) layout() {
	chrome := 1 + 2 + (inputHeight + 2) + 1
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.w.resize(m.width, h)
	m.help.Width = m.width
}
