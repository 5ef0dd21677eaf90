package state

import (
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager is the in-process registry of live call sessions. Each call is an
// independent unit of work: two concurrent calls never observe or mutate
// each other's account, tally, or payment state. The mutex only guards the
// registry map; sessions themselves are single-writer.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*CallSession

	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*CallSession),
		now:      time.Now,
	}
}

// Begin creates and registers the session for a newly connected call.
func (m *Manager) Begin(room, participantID string) *CallSession {
	s := NewCallSession(room, participantID, m.now())
	m.mu.Lock()
	m.sessions[s.SessionID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(sessionID string) (*CallSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End discards the session when the call hangs up. Nothing is persisted.
func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
