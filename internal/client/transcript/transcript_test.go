package transcript

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func kinds(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		switch m.(type) {
		case UserMessage:
			out[i] = "user"
		case BotMessage:
			out[i] = "bot"
		case ErrorMessage:
			out[i] = "error"
		}
	}
	return out
}

func TestAppend_KeepsArrivalOrder(t *testing.T) {
	tr := New(WithClock(clock.NewMock()))
	defer tr.Close()

	u := tr.AppendUser("Salam dünya")
	b := tr.AppendBot(protocol.AnalysisResult{AzTranslation: "Hello", VocabularyList: []protocol.VocabularyItem{}})
	e := tr.AppendError("Xəta baş verdi: boom")

	msgs := tr.Messages()
	if diff := cmp.Diff([]string{"user", "bot", "error"}, kinds(msgs)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, u, msgs[0])
	assert.Equal(t, b, msgs[1])
	assert.Equal(t, e, msgs[2])
	assert.Equal(t, "Salam dünya", msgs[0].(UserMessage).Text)

	ids := map[string]bool{u.ID: true, b.ID: true, e.ID: true}
	assert.Len(t, ids, 3, "message ids must be unique")
}

func TestErrorMessage_ExpiresAfterTTL(t *testing.T) {
	mock := clock.NewMock()
	var changes atomic.Int32
	tr := New(WithClock(mock), WithOnChange(func() { changes.Add(1) }))
	defer tr.Close()

	tr.AppendUser("hi")
	msg := tr.AppendError("Xəta baş verdi: failed to fetch")
	assert.Equal(t, mock.Now().Add(DefaultErrorTTL), msg.ExpiresAt)

	mock.Add(DefaultErrorTTL - time.Nanosecond)
	assert.Equal(t, 2, tr.Len(), "error must still be visible strictly before the deadline")
	assert.Equal(t, int32(0), changes.Load())

	mock.Add(time.Nanosecond)
	require.Eventually(t, func() bool { return tr.Len() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"user"}, kinds(tr.Messages()))
	assert.Eventually(t, func() bool { return changes.Load() == 1 }, time.Second, time.Millisecond)
}

func TestErrorMessage_ExpiresRegardlessOfActivity(t *testing.T) {
	mock := clock.NewMock()
	tr := New(WithClock(mock))
	defer tr.Close()

	tr.AppendError("first")
	mock.Add(2 * time.Second)
	tr.AppendUser("typing on")
	tr.AppendBot(protocol.AnalysisResult{VocabularyList: []protocol.VocabularyItem{}})
	second := tr.AppendError("second")
	mock.Add(3 * time.Second)

	require.Eventually(t, func() bool { return tr.Len() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"user", "bot", "error"}, kinds(tr.Messages()))
	assert.Equal(t, second.ID, tr.Messages()[2].MessageID())

	mock.Add(2 * time.Second)
	require.Eventually(t, func() bool { return tr.Len() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, tr.PendingExpiries())
}

func TestRemove_CancelsExpiry(t *testing.T) {
	mock := clock.NewMock()
	var changes atomic.Int32
	tr := New(WithClock(mock), WithOnChange(func() { changes.Add(1) }))
	defer tr.Close()

	msg := tr.AppendError("gone early")
	assert.Equal(t, 1, tr.PendingExpiries())
	assert.True(t, tr.Remove(msg.ID))
	assert.False(t, tr.Remove(msg.ID))

	mock.Add(DefaultErrorTTL)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, int32(0), changes.Load())
}

func TestClear_CancelsPendingExpiries(t *testing.T) {
	mock := clock.NewMock()
	var changes atomic.Int32
	tr := New(WithClock(mock), WithOnChange(func() { changes.Add(1) }))
	defer tr.Close()

	tr.AppendUser("a")
	tr.AppendError("e1")
	tr.AppendError("e2")
	assert.Equal(t, 2, tr.PendingExpiries())

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.PendingExpiries())

	tr.AppendUser("after clear")
	mock.Add(DefaultErrorTTL)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, int32(0), changes.Load())
}

func TestClose_KeepsEntriesAndStopsTimers(t *testing.T) {
	mock := clock.NewMock()
	tr := New(WithClock(mock))

	tr.AppendError("before close")
	tr.Close()
	tr.AppendError("after close")

	mock.Add(DefaultErrorTTL * 2)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 0, tr.PendingExpiries())
}

func TestErrorMessage_RealClock(t *testing.T) {
	done := make(chan struct{})
	tr := New(WithErrorTTL(20*time.Millisecond), WithOnChange(func() { close(done) }))
	defer tr.Close()

	tr.AppendError("short lived")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("error message did not expire")
	}
	assert.Equal(t, 0, tr.Len())
}

func TestMessages_ReturnsSnapshot(t *testing.T) {
	tr := New(WithClock(clock.NewMock()))
	defer tr.Close()

	tr.AppendUser("one")
	snapshot := tr.Messages()
	tr.AppendUser("two")

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, tr.Len())
}
