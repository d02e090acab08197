package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/secplus-chat/internal/client/chat"
	"github.com/yourusername/secplus-chat/internal/client/connection"
	"github.com/yourusername/secplus-chat/internal/client/render"
	"github.com/yourusername/secplus-chat/internal/client/transcript"
	"github.com/yourusername/secplus-chat/internal/protocol"
)

const (
	healthTimeout = 5 * time.Second
	statusTTL     = 3 * time.Second
)

// analysisDoneMsg carries the outcome of a send back to the event loop
type analysisDoneMsg struct {
	outcome chat.Outcome
}

// healthCheckedMsg is sent when the backend health check settles
type healthCheckedMsg struct {
	health *protocol.HealthStatus
	err    error
}

// transcriptChangedMsg is sent when the transcript changed outside the event
// loop, i.e. an error entry expired
type transcriptChangedMsg struct{}

// exportDoneMsg is sent when an HTML export finished
type exportDoneMsg struct {
	path string
	err  error
}

// clearStatusMsg drops the status line if it is still the one with seq
type clearStatusMsg struct {
	seq int
}

// retryMsg is sent when it is time to check health again
type retryMsg struct{}

// tickMsg is sent periodically for the loading animation
type tickMsg time.Time

// analyzeCmd runs a send's task off the event loop. The exchange is never
// cancelled; it settles when the backend answers or the transport fails.
func analyzeCmd(task chat.Task) tea.Cmd {
	return func() tea.Msg {
		return analysisDoneMsg{outcome: task(context.Background())}
	}
}

// checkHealthCmd asks the backend whether it is up
func checkHealthCmd(connMgr *connection.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		health, err := connMgr.CheckHealth(ctx)
		return healthCheckedMsg{health: health, err: err}
	}
}

// listenForChangesCmd waits for the next out-of-loop transcript change
func listenForChangesCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return transcriptChangedMsg{}
	}
}

// exportCmd writes msgs as a standalone HTML page into dir
func exportCmd(dir string, msgs []transcript.Message, at time.Time) tea.Cmd {
	return func() tea.Msg {
		doc, err := render.Document("Security+ Söhbət "+at.Format("2006-01-02 15:04"), msgs)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := writeExport(dir, "transcript-"+at.Format("20060102-150405"), []byte(doc))
		return exportDoneMsg{path: path, err: err}
	}
}

// maxExportSuffix bounds the search for a free file name
const maxExportSuffix = 100

// writeExport writes data to dir/base.html, or base-2.html, base-3.html, ...
// if the name is taken. Existing files are never overwritten.
func writeExport(dir, base string, data []byte) (string, error) {
	for i := 1; i <= maxExportSuffix; i++ {
		name := base + ".html"
		if i > 1 {
			name = fmt.Sprintf("%s-%d.html", base, i)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("no free file name for %s in %s", base, dir)
}

// retryHealthCmd waits before the next health check, longer on every attempt
func retryHealthCmd(attempt int) tea.Cmd {
	delay := time.Duration(1<<min(attempt, 4)) * 500 * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return retryMsg{}
	})
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// tickCmd returns a command that sends tick messages for animations
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
