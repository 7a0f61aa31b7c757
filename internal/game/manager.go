package game

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lgbarn/aichess-go/internal/errors"
)

// Manager keeps live sessions keyed by id. When full, adding a session
// evicts the least recently used one.
type Manager struct {
	// mu makes GetOrCreate atomic; the cache has its own lock
	mu       sync.Mutex
	sessions *lru.Cache[uuid.UUID, *Session]
}

// NewManager creates a Manager holding at most capacity sessions. onEvict,
// if non-nil, is called for each session dropped to make room.
func NewManager(capacity int, onEvict func(*Session)) (*Manager, error) {
	if capacity < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "session capacity %d", capacity)
	}
	var evicted func(uuid.UUID, *Session)
	if onEvict != nil {
		evicted = func(_ uuid.UUID, s *Session) { onEvict(s) }
	}
	cache, err := lru.NewWithEvict[uuid.UUID, *Session](capacity, evicted)
	if err != nil {
		return nil, err
	}
	return &Manager{sessions: cache}, nil
}

// Create starts a new game under a fresh id.
func (m *Manager) Create() *Session {
	s := NewSession(uuid.New())
	m.sessions.Add(s.ID(), s)
	return s
}

// Add registers an existing session, replacing any with the same id.
func (m *Manager) Add(s *Session) {
	m.sessions.Add(s.ID(), s)
}

// Get returns the session for id and marks it recently used.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "id %s", id)
	}
	return s, nil
}

// GetOrCreate returns the session for id, starting a new game under id
// when there is none. The nil id always gets a fresh one. created reports
// whether a new session was made.
func (m *Manager) GetOrCreate(id uuid.UUID) (s *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != uuid.Nil {
		if s, ok := m.sessions.Get(id); ok {
			return s, false
		}
	} else {
		id = uuid.New()
	}
	s = NewSession(id)
	m.sessions.Add(id, s)
	return s, true
}

// Delete drops the session for id and reports whether it existed.
func (m *Manager) Delete(id uuid.UUID) bool {
	return m.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
