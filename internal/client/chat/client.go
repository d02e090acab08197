// Package chat implements the chat client that sits between the user's input
// and the analysis backend.
//
// The Client never touches widgets directly: it is given handles to the input
// box, the send control, the busy/idle icon pair and the transcript view at
// construction, and drives them through those interfaces. The network exchange
// is returned to the caller as a Task so the host event loop decides where it
// runs, and its Outcome is fed back through Resolve on the same loop.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/secplus-chat/internal/client/connection"
	"github.com/yourusername/secplus-chat/internal/client/transcript"
	"github.com/yourusername/secplus-chat/internal/protocol"
)

// ErrorPrefix starts every error entry shown to the user
const ErrorPrefix = "Xəta baş verdi: "

var (
	// ErrEmptyInput is returned by Send when the trimmed input is empty. Nothing happened.
	ErrEmptyInput = errors.New("chat: empty input")
	// ErrBusy is returned by Send while a request is in flight. Nothing happened.
	ErrBusy = errors.New("chat: request already in flight")

	errEmptyResult = errors.New("empty analysis result")
)

// Input is the text box the user types into
type Input interface {
	Value() string
	SetValue(string)
}

// SendControl is the affordance that starts a send
type SendControl interface {
	SetEnabled(bool)
}

// Indicator is the idle icon / busy indicator pair next to the send control
type Indicator interface {
	ShowBusy()
	ShowIdle()
}

// TranscriptView displays the transcript
type TranscriptView interface {
	// Refresh redraws the view from msgs
	Refresh(msgs []transcript.Message)
	// ScrollToBottom brings the newest message into view
	ScrollToBottom()
}

// Analyzer performs the backend exchange
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*protocol.AnalysisResult, error)
}

// Handles are the UI elements the client drives
type Handles struct {
	Input Input
	Send  SendControl
	Icon  Indicator
	View  TranscriptView
}

func (h Handles) validate() error {
	switch {
	case h.Input == nil:
		return errors.New("chat: input handle is required")
	case h.Send == nil:
		return errors.New("chat: send control handle is required")
	case h.Icon == nil:
		return errors.New("chat: indicator handle is required")
	case h.View == nil:
		return errors.New("chat: transcript view handle is required")
	}
	return nil
}

// Outcome is the settled result of a Task: exactly one of Result and Err is set
type Outcome struct {
	RequestID string
	Result    *protocol.AnalysisResult
	Err       error
}

// Task performs one backend exchange. It is safe to run off the UI loop;
// it touches nothing but the analyzer.
type Task func(ctx context.Context) Outcome

// Client is the chat client. Its methods must be called from a single goroutine.
type Client struct {
	h          Handles
	transcript *transcript.Transcript
	analyzer   Analyzer
	logger     *zap.Logger
	busy       bool
	inFlight   string
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client in idle mode
func New(h Handles, t *transcript.Transcript, a Analyzer, opts ...Option) (*Client, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if t == nil || a == nil {
		return nil, errors.New("chat: transcript and analyzer are required")
	}

	c := &Client{
		h:          h,
		transcript: t,
		analyzer:   a,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.idle()
	c.h.View.Refresh(c.transcript.Messages())
	return c, nil
}

// Busy reports whether a request is in flight
func (c *Client) Busy() bool {
	return c.busy
}

// Transcript returns the transcript the client appends to
func (c *Client) Transcript() *transcript.Transcript {
	return c.transcript
}

// Send reads the input box and, if it holds text, starts a request: the user
// message is appended, the input is cleared and the client enters busy mode.
// The returned Task performs the exchange; pass its Outcome to Resolve.
//
// While busy every send is dropped with ErrBusy and the input is left as is.
func (c *Client) Send() (Task, error) {
	if c.busy {
		c.logger.Debug("send dropped while busy", zap.String("in_flight", c.inFlight))
		return nil, ErrBusy
	}

	text := strings.TrimSpace(c.h.Input.Value())
	if text == "" {
		return nil, ErrEmptyInput
	}

	c.transcript.AppendUser(text)
	c.showNewest()
	c.h.Input.SetValue("")
	c.busyMode()

	id := uuid.New().String()
	c.inFlight = id
	c.logger.Info("analysis requested", zap.String("request_id", id), zap.Int("text_len", len(text)))

	analyzer := c.analyzer
	return func(ctx context.Context) (out Outcome) {
		defer func() {
			if r := recover(); r != nil {
				out = Outcome{RequestID: id, Err: fmt.Errorf("analysis panicked: %v", r)}
			}
		}()

		result, err := analyzer.Analyze(ctx, text)
		if err != nil {
			return Outcome{RequestID: id, Err: err}
		}
		return Outcome{RequestID: id, Result: result}
	}, nil
}

// Resolve renders the outcome of a Task and returns the client to idle mode
func (c *Client) Resolve(o Outcome) {
	defer c.idle()

	if o.Err == nil && o.Result == nil {
		o.Err = errEmptyResult
	}
	if o.Err != nil {
		c.logger.Warn("analysis failed",
			zap.String("request_id", o.RequestID),
			zap.String("kind", string(connection.KindOf(o.Err))),
			zap.Error(o.Err))
		c.transcript.AppendError(ErrorPrefix + o.Err.Error())
		c.showNewest()
		return
	}

	c.logger.Info("analysis rendered",
		zap.String("request_id", o.RequestID),
		zap.Int("vocabulary", len(o.Result.VocabularyList)))
	c.transcript.AppendBot(*o.Result)
	c.showNewest()
}

// Run sends the current input and resolves it before returning, for hosts
// without an event loop. The error is ErrEmptyInput, ErrBusy or nil; backend
// failures are rendered, not returned.
func (c *Client) Run(ctx context.Context) error {
	task, err := c.Send()
	if err != nil {
		return err
	}
	c.Resolve(task(ctx))
	return nil
}

// Refresh redraws the view, for changes that did not go through the client
// such as an error entry expiring.
func (c *Client) Refresh() {
	c.h.View.Refresh(c.transcript.Messages())
}

// Clear empties the transcript, cancelling pending error expiries
func (c *Client) Clear() {
	c.transcript.Clear()
	c.Refresh()
}

// showNewest redraws after an append and scrolls to the new entry
func (c *Client) showNewest() {
	c.h.View.Refresh(c.transcript.Messages())
	c.h.View.ScrollToBottom()
}

func (c *Client) busyMode() {
	c.busy = true
	c.h.Send.SetEnabled(false)
	c.h.Icon.ShowBusy()
}

func (c *Client) idle() {
	c.busy = false
	c.inFlight = ""
	c.h.Send.SetEnabled(true)
	c.h.Icon.ShowIdle()
}
