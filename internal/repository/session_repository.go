package repository

import (
	"sync"
	"time"

	"pdf-workbench/internal/domain"
)

// SessionRepository keeps reorder sessions in process memory
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ReorderSession
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.ReorderSession),
		now:      time.Now,
	}
}

// Create stores a new session, replacing any session with the same id
func (r *SessionRepository) Create(session *domain.ReorderSession) error {
	if session == nil || session.ID == "" {
		return &domain.ValidationError{Field: "id", Message: "session id is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// Get returns a live session. Expired sessions are reported as such until
// the next purge removes them.
func (r *SessionRepository) Get(id string) (*domain.ReorderSession, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	session.Lock()
	expired := session.Expired(r.now())
	session.Unlock()
	if expired {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func (r *SessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// PurgeExpired removes every session expired at now and returns their ids
func (r *SessionRepository) PurgeExpired(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged []string
	for id, session := range r.sessions {
		session.Lock()
		expired := session.Expired(now)
		session.Unlock()
		if expired {
			delete(r.sessions, id)
			purged = append(purged, id)
		}
	}
	return purged
}

func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
