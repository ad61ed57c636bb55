package session

import (
	"sync"
	"time"
)

type View int

const (
	ViewHome View = iota
	ViewAnalysis
	ViewVisualization
)

var viewNames = map[View]string{
	ViewHome:          "Home",
	ViewAnalysis:      "Analysis",
	ViewVisualization: "Visualization",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "Unknown"
}

// Session is one user's state. Interactions on a session run one at a time.
type Session struct {
	ID      string
	Store   *ResultStore
	Created time.Time

	mu       sync.Mutex
	view     View
	lastSeen time.Time
	seenMu   sync.Mutex
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		Store:    &ResultStore{},
		Created:  now,
		view:     ViewHome,
		lastSeen: now,
	}
}

// Exclusive runs fn while holding the session's turn lock.
func (s *Session) Exclusive(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// View and SetView must be called from within Exclusive.
func (s *Session) View() View {
	return s.view
}

func (s *Session) SetView(v View) {
	s.view = v
}

func (s *Session) touch(now time.Time) {
	s.seenMu.Lock()
	s.lastSeen = now
	s.seenMu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	return now.Sub(s.lastSeen)
}
