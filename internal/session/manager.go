package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultIdleTimeout = 2 * time.Hour

// Manager keeps sessions apart. Sessions idle past the timeout are dropped
// on lookup or by Sweep.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

func NewManager(idleTimeout time.Duration) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newSession(uuid.NewString(), m.now())
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	now := m.now()
	if s.idleSince(now) > m.idleTimeout {
		delete(m.sessions, id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// unknown or expired. created reports whether a new session was made.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s, false
		}
	}
	return m.Create(), true
}

// Sweep drops idle sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("[SessionManager] Evicted idle sessions",
			slog.Int("evicted", removed),
			slog.Int("active", len(m.sessions)))
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
