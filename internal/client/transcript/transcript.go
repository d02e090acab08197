// Package transcript holds the ordered list of chat messages shown to the user.
// Error entries remove themselves after a fixed display duration; every other
// entry stays until the transcript is cleared.
package transcript

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

// DefaultErrorTTL is how long an ErrorMessage stays visible
const DefaultErrorTTL = 5 * time.Second

type entry struct {
	msg   Message
	timer *clock.Timer // non-nil only for ErrorMessage
}

// Transcript is safe for concurrent use; expiry timers fire on their own goroutines.
type Transcript struct {
	mu       sync.Mutex
	entries  []entry
	clock    clock.Clock
	errorTTL time.Duration
	onChange func()
	closed   bool
}

// Option configures a Transcript
type Option func(*Transcript)

// WithClock sets the clock used for timestamps and expiry
func WithClock(c clock.Clock) Option {
	return func(t *Transcript) {
		t.clock = c
	}
}

// WithErrorTTL overrides DefaultErrorTTL
func WithErrorTTL(d time.Duration) Option {
	return func(t *Transcript) {
		t.errorTTL = d
	}
}

// WithOnChange registers a callback run after an entry expires.
// It runs on the timer goroutine, outside the transcript lock.
func WithOnChange(fn func()) Option {
	return func(t *Transcript) {
		t.onChange = fn
	}
}

// New creates an empty transcript
func New(opts ...Option) *Transcript {
	t := &Transcript{
		clock:    clock.New(),
		errorTTL: DefaultErrorTTL,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOnChange replaces the expiry callback
func (t *Transcript) SetOnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

func (t *Transcript) meta() Meta {
	return Meta{ID: uuid.New().String(), Time: t.clock.Now()}
}

// AppendUser appends the text the user sent
func (t *Transcript) AppendUser(text string) UserMessage {
	msg := UserMessage{Meta: t.meta(), Text: text}
	t.append(entry{msg: msg})
	return msg
}

// AppendBot appends a successful analysis
func (t *Transcript) AppendBot(result protocol.AnalysisResult) BotMessage {
	msg := BotMessage{Meta: t.meta(), Result: result}
	t.append(entry{msg: msg})
	return msg
}

// AppendError appends an error entry and schedules its removal
func (t *Transcript) AppendError(text string) ErrorMessage {
	meta := t.meta()
	msg := ErrorMessage{Meta: meta, Text: text, ExpiresAt: meta.Time.Add(t.errorTTL)}

	t.mu.Lock()
	t.entries = append(t.entries, entry{msg: msg})
	closed := t.closed
	t.mu.Unlock()

	if closed {
		return msg
	}

	// The timer is armed outside the lock so a clock that fires synchronously cannot deadlock.
	timer := t.clock.AfterFunc(t.errorTTL, func() { t.expire(meta.ID) })

	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexLocked(meta.ID); i >= 0 && !t.closed {
		t.entries[i].timer = timer
	} else {
		timer.Stop()
	}
	return msg
}

func (t *Transcript) append(e entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

func (t *Transcript) expire(id string) {
	t.mu.Lock()
	removed := t.removeLocked(id, false)
	onChange := t.onChange
	t.mu.Unlock()

	if removed && onChange != nil {
		onChange()
	}
}

// Remove deletes an entry early, cancelling its expiry. It reports whether the entry existed.
func (t *Transcript) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(id, true)
}

func (t *Transcript) removeLocked(id string, stop bool) bool {
	i := t.indexLocked(id)
	if i < 0 {
		return false
	}
	if stop && t.entries[i].timer != nil {
		t.entries[i].timer.Stop()
	}
	t.entries = append(t.entries[:i:i], t.entries[i+1:]...)
	return true
}

func (t *Transcript) indexLocked(id string) int {
	for i, e := range t.entries {
		if e.msg.MessageID() == id {
			return i
		}
	}
	return -1
}

// Clear removes every entry and cancels pending expiries
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimersLocked()
	t.entries = nil
}

// Close cancels pending expiries and stops scheduling new ones. Entries are kept.
func (t *Transcript) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimersLocked()
	t.closed = true
}

func (t *Transcript) stopTimersLocked() {
	for i := range t.entries {
		if t.entries[i].timer != nil {
			t.entries[i].timer.Stop()
			t.entries[i].timer = nil
		}
	}
}

// Messages returns a snapshot in arrival order
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.msg
	}
	return out
}

// Len returns the number of entries
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// PendingExpiries returns how many error entries still have a live timer
func (t *Transcript) PendingExpiries() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if e.timer != nil {
			n++
		}
	}
	return n
}
