package connection

import (
	"sync"
	"time"

	"github.com/yourusername/secplus-chat/internal/protocol"
)

// State remembers the last health probe of the backend
type State struct {
	health    *protocol.HealthStatus
	err       error
	checkedAt time.Time
	mu        sync.RWMutex
}

// NewState creates an empty health state
func NewState() *State {
	return &State{}
}

// Update records the outcome of a health probe
func (s *State) Update(health *protocol.HealthStatus, err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = health
	s.err = err
	s.checkedAt = at
}

// Get returns the last recorded probe; checkedAt is zero if none ran yet
func (s *State) Get() (health *protocol.HealthStatus, checkedAt time.Time, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health, s.checkedAt, s.err
}
