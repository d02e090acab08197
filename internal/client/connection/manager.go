package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

// Manager talks to the analysis backend over plain HTTP
type Manager struct {
	origin     string
	httpClient *http.Client
	logger     *zap.Logger
	state      *State
	now        func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithHTTPClient replaces the default client. The default has no timeout:
// a request stays in flight until the backend or the transport settles it.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = c
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager for the backend at origin (scheme://host[:port])
func NewManager(origin string, opts ...Option) *Manager {
	m := &Manager{
		origin:     strings.TrimRight(origin, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		state:      NewState(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Origin returns the backend origin requests are sent to
func (m *Manager) Origin() string {
	return m.origin
}

// Analyze posts text to /analyze and decodes the result.
// Every failure is an *Error.
func (m *Manager) Analyze(ctx context.Context, text string) (*protocol.AnalysisResult, error) {
	const op = "analyze"

	body, err := protocol.EncodeAnalyzeRequest(text)
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, Op: op, Msg: "could not encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.origin+protocol.PathAnalyze, bytes.NewReader(body))
	if err != nil {
		return nil, networkError(op, err)
	}
	req.Header.Set("Content-Type", protocol.ContentTypeJSON)

	m.logger.Debug("analyze request", zap.Int("text_len", len(text)))
	started := m.now()

	data, code, err := m.do(op, req)
	if err != nil {
		return nil, err
	}

	result, err := protocol.DecodeAnalysisResult(data)
	if err != nil {
		m.logger.Warn("analyze response not decodable", zap.Int("status", code), zap.Error(err))
		return nil, malformedError(op, code, err)
	}

	m.logger.Info("analysis completed",
		zap.Int("unknown_words", result.UnknownWordsCount),
		zap.Int("vocabulary", len(result.VocabularyList)),
		zap.Duration("took", m.now().Sub(started)))
	return result, nil
}

// CheckHealth probes /health and records the outcome in the manager's state
func (m *Manager) CheckHealth(ctx context.Context) (*protocol.HealthStatus, error) {
	const op = "health"

	health, err := m.checkHealth(ctx, op)
	m.state.Update(health, err, m.now())
	if err != nil {
		m.logger.Warn("health check failed", zap.String("origin", m.origin), zap.Error(err))
		return nil, err
	}
	m.logger.Info("health check",
		zap.String("status", health.Status),
		zap.Bool("gemini_api_configured", health.GeminiAPIConfigured))
	return health, nil
}

func (m *Manager) checkHealth(ctx context.Context, op string) (*protocol.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.origin+protocol.PathHealth, nil)
	if err != nil {
		return nil, networkError(op, err)
	}

	data, code, err := m.do(op, req)
	if err != nil {
		return nil, err
	}

	health, err := protocol.DecodeHealthStatus(data)
	if err != nil {
		return nil, malformedError(op, code, err)
	}
	return health, nil
}

// GetHealth returns the last recorded health probe
func (m *Manager) GetHealth() (*protocol.HealthStatus, time.Time, error) {
	return m.state.Get()
}

// do sends req and returns the body of a 2xx response
func (m *Manager) do(op string, req *http.Request) ([]byte, int, error) {
	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		return nil, 0, networkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.logger.Warn("backend returned error status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(data, 200)))
		return nil, resp.StatusCode, statusError(op, resp.StatusCode)
	}
	if err != nil {
		return nil, resp.StatusCode, networkError(op, err)
	}
	return data, resp.StatusCode, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
