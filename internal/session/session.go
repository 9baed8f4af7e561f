package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"setgame/internal/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
)

// Viewer is a client watching or playing a session.
type Viewer struct {
	ID   string
	Name string
}

// Session owns one game. All access to the game goes through the session
// mutex.
type Session struct {
	mu         sync.Mutex
	ID         string
	CreatedAt  time.Time
	MaxViewers int

	game    *engine.Game
	viewers []*Viewer
}

// New creates a session with a freshly dealt game.
func New(id string, config engine.GameConfig, maxViewers int) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		MaxViewers: maxViewers,
		game:       engine.NewGame(config),
	}
}

// Apply runs a player intent and returns the resulting events along with
// the state after it.
func (s *Session) Apply(action engine.Action) ([]engine.Event, engine.ViewData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.game.Apply(action)
	if err != nil {
		return nil, s.game.View(), fmt.Errorf("session %s: %s: %w", s.ID, action.Type, err)
	}
	return events, s.game.View(), nil
}

// View returns the current game snapshot.
func (s *Session) View() engine.ViewData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View()
}

// Join adds a viewer. Joining again with the same ID renames the viewer.
func (s *Session) Join(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.viewers {
		if v.ID == id {
			v.Name = name
			return nil
		}
	}
	if s.MaxViewers > 0 && len(s.viewers) >= s.MaxViewers {
		return ErrSessionFull
	}
	s.viewers = append(s.viewers, &Viewer{ID: id, Name: name})
	return nil
}

// Leave removes a viewer.
func (s *Session) Leave(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.viewers {
		if v.ID == id {
			s.viewers = append(s.viewers[:i], s.viewers[i+1:]...)
			return
		}
	}
}

// Viewers returns a copy of the viewer list.
func (s *Session) Viewers() []Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Viewer, len(s.viewers))
	for i, v := range s.viewers {
		out[i] = *v
	}
	return out
}
