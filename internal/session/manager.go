package session

import (
	"sync"

	"github.com/google/uuid"

	"setgame/internal/engine"
)

// Manager manages multiple sessions.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	config     engine.GameConfig
	maxViewers int
}

// NewManager returns a manager that starts every session with config.
func NewManager(config engine.GameConfig, maxViewers int) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		config:     config,
		maxViewers: maxViewers,
	}
}

// Create starts a new session and returns it.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := New(uuid.NewString(), m.config, m.maxViewers)
	m.sessions[s.ID] = s
	return s
}

// Get returns a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove forgets a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// NewClientID returns a fresh identifier for a connecting client.
func NewClientID() string {
	return uuid.NewString()
}
