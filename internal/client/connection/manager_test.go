package connection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyze_Success(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotMethod, gotPath string

	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"az_translation":"Hello","vocabulary_list":[{"word":"firewall","a2_definition":"a wall for networks"}],"unknown_words_count":1,"security_plus_mini_note":"note"}`)
	})

	m := NewManager(srv.URL + "/")
	result, err := m.Analyze(context.Background(), "Salam dünya")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/analyze", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"text":"Salam dünya"}`, string(gotBody))

	assert.Equal(t, "Hello", result.AzTranslation)
	assert.Equal(t, 1, result.UnknownWordsCount)
	assert.Equal(t, "note", result.SecurityPlusMiniNote)
	require.Len(t, result.VocabularyList, 1)
	assert.Equal(t, "firewall", result.VocabularyList[0].Word)
}

func TestAnalyze_NonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Analysis failed: boom"})
		})

		_, err := NewManager(srv.URL).Analyze(context.Background(), "text")
		require.Error(t, err)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, FailureStatus, e.Kind)
		assert.Equal(t, code, e.StatusCode())
		assert.Equal(t, "API sorğusu uğursuz oldu", err.Error())
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	_, err := NewManager(srv.URL).Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, FailureMalformed, KindOf(err))
	assert.Contains(t, err.Error(), "invalid response body")
}

func TestAnalyze_MissingVocabulary(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"az_translation":"x","security_plus_mini_note":"y","unknown_words_count":0}`)
	})

	_, err := NewManager(srv.URL).Analyze(context.Background(), "text")
	assert.Equal(t, FailureMalformed, KindOf(err))
	assert.ErrorIs(t, err, protocol.ErrMissingVocabulary)
}

func TestAnalyze_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	_, err := NewManager(origin).Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, FailureNetwork, KindOf(err))
	assert.Contains(t, err.Error(), "failed to fetch")
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManager(srv.URL).Analyze(ctx, "text")
	assert.Equal(t, FailureNetwork, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckHealth(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, `{"status":"healthy","gemini_api_configured":false,"services":{"translation":"operational","ai_analysis":"operational"}}`)
	})

	m := NewManager(srv.URL)
	_, checkedAt, _ := m.GetHealth()
	assert.True(t, checkedAt.IsZero())

	health, err := m.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.True(t, health.Healthy())
	assert.False(t, health.GeminiAPIConfigured)

	stored, checkedAt, err := m.GetHealth()
	require.NoError(t, err)
	assert.Same(t, health, stored)
	assert.False(t, checkedAt.IsZero())
}

func TestCheckHealth_RecordsFailure(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	m := NewManager(srv.URL)
	_, err := m.CheckHealth(context.Background())
	require.Error(t, err)

	stored, _, storedErr := m.GetHealth()
	assert.Nil(t, stored)
	assert.Equal(t, FailureStatus, KindOf(storedErr))
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Equal(t, FailureKind(""), KindOf(errors.New("other")))
	assert.Equal(t, FailureKind(""), KindOf(nil))
}
