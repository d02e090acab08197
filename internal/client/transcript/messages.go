package transcript

import (
	"time"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

// Message is one entry of the transcript
type Message interface {
	MessageID() string
	CreatedAt() time.Time
	isMessage()
}

// Meta is shared by every message kind
type Meta struct {
	ID   string
	Time time.Time
}

// MessageID returns the entry's unique id
func (m Meta) MessageID() string { return m.ID }

// CreatedAt returns when the entry was appended
func (m Meta) CreatedAt() time.Time { return m.Time }

// UserMessage is text the user sent
type UserMessage struct {
	Meta
	Text string
}

func (UserMessage) isMessage() {}

// BotMessage is a successful analysis
type BotMessage struct {
	Meta
	Result protocol.AnalysisResult
}

func (BotMessage) isMessage() {}

// ErrorMessage is a failed exchange; it leaves the transcript at ExpiresAt
type ErrorMessage struct {
	Meta
	Text      string
	ExpiresAt time.Time
}

func (ErrorMessage) isMessage() {}
